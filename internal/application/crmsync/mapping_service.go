package crmsync

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/shared"
	"github.com/leadlane/backend/internal/domain/udm"
	"go.uber.org/zap"
)

// Error codes returned by the mapping service
const (
	CodeMappingConflict = "udm_field_name_already_mapped_for_object_type"
	CodeMappingNotFound = "mapping_not_found_for_tenant_and_crm"
	CodeInvalidMapping  = "INVALID_INPUT"
)

// MappingInvalidator drops cached mappings after a change
type MappingInvalidator interface {
	Invalidate(tenantID uuid.UUID, system crm.System)
}

// MappingService manages tenant field mapping overrides
type MappingService struct {
	repo        crm.FieldMappingRepository
	invalidator MappingInvalidator
	logger      *zap.Logger
}

// NewMappingService creates a new MappingService
func NewMappingService(repo crm.FieldMappingRepository, invalidator MappingInvalidator, logger *zap.Logger) *MappingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MappingService{repo: repo, invalidator: invalidator, logger: logger}
}

// List returns the tenant's own overrides ordered by object type then internal field
func (s *MappingService) List(ctx context.Context, tenantID uuid.UUID, system crm.System) ([]FieldMappingResponse, error) {
	mappings, err := s.repo.ListForTenant(ctx, tenantID, system)
	if err != nil {
		return nil, err
	}
	out := make([]FieldMappingResponse, 0, len(mappings))
	for i := range mappings {
		out = append(out, ToFieldMappingResponse(&mappings[i]))
	}
	return out, nil
}

// Create adds a tenant override. The internal field must exist on the object
// type and is stored in its canonical spelling; it is unique per object type.
func (s *MappingService) Create(ctx context.Context, tenantID uuid.UUID, system crm.System, req CreateFieldMappingRequest) (*FieldMappingResponse, error) {
	objectType, err := crm.ParseObjectType(req.ObjectType)
	if err != nil {
		return nil, shared.WrapDomainError(CodeInvalidMapping, "Unknown object type", err)
	}
	m, err := crm.NewFieldMapping(tenantID, system, objectType, req.UDMFieldName, req.CRMFieldName)
	if err != nil {
		return nil, shared.WrapDomainError(CodeInvalidMapping, "Invalid field mapping", err)
	}
	m.UDMField, err = udm.CanonicalFieldName(string(objectType), m.UDMField)
	if err != nil {
		return nil, shared.WrapDomainError(CodeInvalidMapping, "Unknown udm field for object type", err)
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if req.Direction != "" {
		m.Direction = crm.Direction(strings.ToLower(req.Direction))
		if !m.Direction.IsValid() {
			return nil, shared.NewDomainError(CodeInvalidMapping, "Unknown mapping direction")
		}
	}

	exists, err := s.repo.ExistsForUDMField(ctx, tenantID, system, objectType, m.UDMField)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, s.conflict()
	}

	now := time.Now().UTC()
	m.CreatedTime = now
	m.LastModifiedTime = now
	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, crm.ErrMappingConflict) {
			return nil, s.conflict()
		}
		return nil, err
	}
	s.invalidate(tenantID, system)

	s.logger.Info("CRM field mapping created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("crm_system", string(system)),
		zap.String("object_type", string(objectType)),
		zap.String("udm_field", m.UDMField))
	resp := ToFieldMappingResponse(m)
	return &resp, nil
}

// Update changes the CRM field and/or the active flag of a tenant override
func (s *MappingService) Update(ctx context.Context, tenantID uuid.UUID, system crm.System, id uuid.UUID, req UpdateFieldMappingRequest) (*FieldMappingResponse, error) {
	m, err := s.repo.FindByID(ctx, tenantID, system, id)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	if req.CRMFieldName != nil {
		name := strings.TrimSpace(*req.CRMFieldName)
		if err := crm.ValidateFieldName(name); err != nil {
			return nil, shared.WrapDomainError(CodeInvalidMapping, "Invalid crm field name", err)
		}
		m.CRMField = name
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	m.LastModifiedTime = time.Now().UTC()
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, s.mapNotFound(err)
	}
	s.invalidate(tenantID, system)

	resp := ToFieldMappingResponse(m)
	return &resp, nil
}

// Delete removes a tenant override
func (s *MappingService) Delete(ctx context.Context, tenantID uuid.UUID, system crm.System, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, tenantID, system, id); err != nil {
		return s.mapNotFound(err)
	}
	s.invalidate(tenantID, system)
	return nil
}

func (s *MappingService) invalidate(tenantID uuid.UUID, system crm.System) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(tenantID, system)
	}
}

func (s *MappingService) conflict() error {
	return shared.WrapDomainError(CodeMappingConflict,
		"A mapping for this udm field already exists for the object type", crm.ErrMappingConflict)
}

func (s *MappingService) mapNotFound(err error) error {
	if errors.Is(err, crm.ErrMappingNotFound) {
		return shared.WrapDomainError(CodeMappingNotFound,
			"Mapping not found for tenant and crm system", err)
	}
	return err
}
