package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LinkKind names the internal entity a link table tracks
type LinkKind string

const (
	LinkKindAccount     LinkKind = "account"
	LinkKindContact     LinkKind = "contact"
	LinkKindOpportunity LinkKind = "opportunity"
)

// IsValid returns true if the kind has a link table
func (k LinkKind) IsValid() bool {
	switch k {
	case LinkKindAccount, LinkKindContact, LinkKindOpportunity:
		return true
	default:
		return false
	}
}

// ParseLinkKind parses a link kind
func ParseLinkKind(raw string) (LinkKind, error) {
	k := LinkKind(raw)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLinkKind, raw)
	}
	return k, nil
}

// Link associates one internal entity with one CRM object, per tenant and system
type Link struct {
	ID               uuid.UUID
	TenantID         uuid.UUID
	System           System
	InternalID       uuid.UUID
	CRMID            string
	CreatedTime      time.Time
	LastModifiedTime time.Time
}

// LinkRepository persists links for a single LinkKind.
// Links are unique on (tenant, system, internal id).
type LinkRepository interface {
	// Kind returns the entity kind this repository tracks
	Kind() LinkKind
	// UpsertLink creates the link or overwrites its CRM id, returning the stored row
	UpsertLink(ctx context.Context, tenantID uuid.UUID, system System, internalID uuid.UUID, crmID string) (*Link, error)
	// GetByInternalID returns the link or nil
	GetByInternalID(ctx context.Context, tenantID uuid.UUID, system System, internalID uuid.UUID) (*Link, error)
	// GetByCRMID returns the link or nil
	GetByCRMID(ctx context.Context, tenantID uuid.UUID, system System, crmID string) (*Link, error)
	// ListForTenantAndSystem pages through links ordered by internal id
	ListForTenantAndSystem(ctx context.Context, tenantID uuid.UUID, system System, limit, offset int) ([]Link, error)
}
