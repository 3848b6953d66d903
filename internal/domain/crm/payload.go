package crm

import (
	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/udm"
)

// CompanyPayload is handed to a vendor client to upsert a company/account.
// Properties are extra CRM properties merged over the mapped ones.
type CompanyPayload struct {
	Company    *udm.Company
	Properties map[string]any
}

// InternalID returns the company ID or uuid.Nil
func (p *CompanyPayload) InternalID() uuid.UUID {
	if p == nil || p.Company == nil {
		return uuid.Nil
	}
	return p.Company.ID
}

// ContactPayload is handed to a vendor client to upsert a contact
type ContactPayload struct {
	Contact *udm.Contact
	// CompanyCRMID is the CRM id of the contact's company when already linked
	CompanyCRMID string
	Properties   map[string]any
}

// InternalID returns the contact ID or uuid.Nil
func (p *ContactPayload) InternalID() uuid.UUID {
	if p == nil || p.Contact == nil {
		return uuid.Nil
	}
	return p.Contact.ID
}

// DealPayload is handed to a vendor client to upsert a deal, and returned by GetDeal.
// Deals read back from a CRM carry CRMID and raw Properties; Opportunity is nil.
type DealPayload struct {
	Opportunity *udm.Opportunity
	CRMID       string
	Properties  map[string]any
}

// InternalID returns the opportunity ID or uuid.Nil
func (p *DealPayload) InternalID() uuid.UUID {
	if p == nil || p.Opportunity == nil {
		return uuid.Nil
	}
	return p.Opportunity.ID
}

// ActivityPayload is handed to a vendor client to log an activity
type ActivityPayload struct {
	Activity   *udm.Activity
	Properties map[string]any
}

// InternalID returns the activity ID or uuid.Nil
func (p *ActivityPayload) InternalID() uuid.UUID {
	if p == nil || p.Activity == nil {
		return uuid.Nil
	}
	return p.Activity.ID
}
