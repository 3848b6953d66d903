package udm

import (
	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/shared"
)

// Event types published when internal entities change
const (
	EventTypeCompanyChanged     = "CompanyChanged"
	EventTypeContactChanged     = "ContactChanged"
	EventTypeOpportunityChanged = "OpportunityChanged"
	EventTypeActivityCreated    = "ActivityCreated"
)

// CompanyChangedEvent is published after a company is created or updated
type CompanyChangedEvent struct {
	shared.BaseDomainEvent
	CompanyID uuid.UUID `json:"company_id"`
}

// NewCompanyChangedEvent creates a CompanyChangedEvent
func NewCompanyChangedEvent(tenantID, companyID uuid.UUID) *CompanyChangedEvent {
	return &CompanyChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyChanged, ObjectTypeCompany, companyID, tenantID),
		CompanyID:       companyID,
	}
}

// ContactChangedEvent is published after a contact is created or updated
type ContactChangedEvent struct {
	shared.BaseDomainEvent
	ContactID uuid.UUID `json:"contact_id"`
}

// NewContactChangedEvent creates a ContactChangedEvent
func NewContactChangedEvent(tenantID, contactID uuid.UUID) *ContactChangedEvent {
	return &ContactChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactChanged, ObjectTypeContact, contactID, tenantID),
		ContactID:       contactID,
	}
}

// OpportunityChangedEvent is published after an opportunity is created or updated
type OpportunityChangedEvent struct {
	shared.BaseDomainEvent
	OpportunityID uuid.UUID `json:"opportunity_id"`
}

// NewOpportunityChangedEvent creates an OpportunityChangedEvent
func NewOpportunityChangedEvent(tenantID, opportunityID uuid.UUID) *OpportunityChangedEvent {
	return &OpportunityChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOpportunityChanged, ObjectTypeOpportunity, opportunityID, tenantID),
		OpportunityID:   opportunityID,
	}
}

// ActivityCreatedEvent carries a new activity; activities are not stored locally
type ActivityCreatedEvent struct {
	shared.BaseDomainEvent
	Activity *Activity `json:"activity"`
}

// NewActivityCreatedEvent creates an ActivityCreatedEvent
func NewActivityCreatedEvent(activity *Activity) *ActivityCreatedEvent {
	return &ActivityCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeActivityCreated, ObjectTypeActivity, activity.ID, activity.TenantID),
		Activity:        activity,
	}
}
