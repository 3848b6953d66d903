package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxFieldNameLength bounds internal and CRM field names
const MaxFieldNameLength = 200

// Direction controls which sync direction a field mapping applies to
type Direction string

const (
	DirectionOutbound      Direction = "outbound"
	DirectionInbound       Direction = "inbound"
	DirectionBidirectional Direction = "bidirectional"
)

// IsValid returns true if the direction is known
func (d Direction) IsValid() bool {
	switch d {
	case DirectionOutbound, DirectionInbound, DirectionBidirectional:
		return true
	default:
		return false
	}
}

// FieldMapping translates one internal field into one CRM property.
// A nil TenantID marks a global record applying to every tenant without an override.
type FieldMapping struct {
	ID               uuid.UUID
	TenantID         *uuid.UUID
	System           System
	ObjectType       ObjectType
	UDMField         string
	CRMField         string
	IsActive         bool
	Direction        Direction
	CreatedTime      time.Time
	LastModifiedTime time.Time
}

// NewFieldMapping creates an active, bidirectional tenant mapping with trimmed field names
func NewFieldMapping(tenantID uuid.UUID, system System, objectType ObjectType, udmField, crmField string) (*FieldMapping, error) {
	m := &FieldMapping{
		ID:         uuid.New(),
		TenantID:   &tenantID,
		System:     system,
		ObjectType: objectType,
		UDMField:   strings.TrimSpace(udmField),
		CRMField:   strings.TrimSpace(crmField),
		IsActive:   true,
		Direction:  DirectionBidirectional,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the mapping's fields
func (m *FieldMapping) Validate() error {
	if !m.System.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownSystem, m.System)
	}
	if !m.ObjectType.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownObjectType, m.ObjectType)
	}
	if err := ValidateFieldName(m.UDMField); err != nil {
		return fmt.Errorf("udm field: %w", err)
	}
	if err := ValidateFieldName(m.CRMField); err != nil {
		return fmt.Errorf("crm field: %w", err)
	}
	if m.Direction == "" {
		m.Direction = DirectionBidirectional
	}
	if !m.Direction.IsValid() {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidMapping, m.Direction)
	}
	return nil
}

// ValidateFieldName checks that a trimmed field name is between 1 and MaxFieldNameLength characters
func ValidateFieldName(name string) error {
	n := len([]rune(strings.TrimSpace(name)))
	if n == 0 || n > MaxFieldNameLength {
		return fmt.Errorf("%w: field name must be 1..%d characters", ErrInvalidMapping, MaxFieldNameLength)
	}
	return nil
}

// IsGlobal reports whether the mapping applies to all tenants
func (m *FieldMapping) IsGlobal() bool {
	return m.TenantID == nil
}

// AppliesOutbound reports whether the mapping is used when building CRM payloads
func (m *FieldMapping) AppliesOutbound() bool {
	return m.Direction == DirectionOutbound || m.Direction == DirectionBidirectional || m.Direction == ""
}

// FieldMappingReader provides read access to mapping records
type FieldMappingReader interface {
	// FindActive returns active records for the tenant and the global scope,
	// global records first, then ordered by udm field
	FindActive(ctx context.Context, tenantID uuid.UUID, system System, objectType ObjectType) ([]FieldMapping, error)
	// FindByID returns a tenant-owned mapping or ErrMappingNotFound
	FindByID(ctx context.Context, tenantID uuid.UUID, system System, id uuid.UUID) (*FieldMapping, error)
	// ListForTenant returns the tenant's own mappings ordered by object type then udm field
	ListForTenant(ctx context.Context, tenantID uuid.UUID, system System) ([]FieldMapping, error)
	// ExistsForUDMField reports whether the tenant already maps the field (case-insensitive)
	ExistsForUDMField(ctx context.Context, tenantID uuid.UUID, system System, objectType ObjectType, udmField string) (bool, error)
}

// FieldMappingWriter provides write access to mapping records
type FieldMappingWriter interface {
	Create(ctx context.Context, m *FieldMapping) error
	Update(ctx context.Context, m *FieldMapping) error
	Delete(ctx context.Context, tenantID uuid.UUID, system System, id uuid.UUID) error
}

// FieldMappingRepository combines mapping reads and writes
type FieldMappingRepository interface {
	FieldMappingReader
	FieldMappingWriter
}
