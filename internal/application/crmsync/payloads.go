package crmsync

import (
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/udm"
)

// BuildCompanyPayload wraps a company for outbound sync.
// extra holds CRM properties that override the mapped ones.
func BuildCompanyPayload(company *udm.Company, extra map[string]any) *crm.CompanyPayload {
	return &crm.CompanyPayload{Company: company, Properties: extra}
}

// BuildContactPayload wraps a contact for outbound sync. The company CRM id is
// resolved from the account links by the sync service when left empty.
func BuildContactPayload(contact *udm.Contact, companyCRMID string, extra map[string]any) *crm.ContactPayload {
	return &crm.ContactPayload{Contact: contact, CompanyCRMID: companyCRMID, Properties: extra}
}

// BuildDealPayload wraps an opportunity for outbound sync
func BuildDealPayload(opportunity *udm.Opportunity, extra map[string]any) *crm.DealPayload {
	return &crm.DealPayload{Opportunity: opportunity, Properties: extra}
}

// BuildActivityPayload wraps an activity for outbound sync
func BuildActivityPayload(activity *udm.Activity, extra map[string]any) *crm.ActivityPayload {
	return &crm.ActivityPayload{Activity: activity, Properties: extra}
}
