package udm

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Find methods when the entity does not exist for the tenant
var ErrNotFound = errors.New("udm: entity not found")

// CompanyRepository is the read/write contract of company storage
type CompanyRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Company, error)
	Save(ctx context.Context, company *Company) error
}

// ContactRepository is the read/write contract of contact storage
type ContactRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Contact, error)
	Save(ctx context.Context, contact *Contact) error
}

// OpportunityRepository is the read/write contract of opportunity storage
type OpportunityRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Opportunity, error)
	Save(ctx context.Context, opportunity *Opportunity) error
}
