package crmsync

import (
	"context"
	"fmt"
	"maps"
	"sort"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/udm"
	"go.uber.org/zap"
)

// MappingCache caches resolved mappings per (tenant, system, object type)
type MappingCache interface {
	Get(tenantID uuid.UUID, system crm.System, objectType crm.ObjectType) (map[string]string, bool)
	Put(tenantID uuid.UUID, system crm.System, objectType crm.ObjectType, mapping map[string]string)
	Invalidate(tenantID uuid.UUID, system crm.System)
}

// MappingEngine resolves effective field mappings and translates records
// between the internal data model and CRM property sets.
type MappingEngine struct {
	repo   crm.FieldMappingReader
	cache  MappingCache
	logger *zap.Logger
}

// MappingEngineConfig contains configuration for MappingEngine
type MappingEngineConfig struct {
	Repo crm.FieldMappingReader
	// Cache is optional
	Cache  MappingCache
	Logger *zap.Logger
}

// NewMappingEngine creates a new MappingEngine
func NewMappingEngine(cfg MappingEngineConfig) *MappingEngine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MappingEngine{
		repo:   cfg.Repo,
		cache:  cfg.Cache,
		logger: logger,
	}
}

var _ crm.PropertyMapper = (*MappingEngine)(nil)

// EffectiveMapping returns internal field -> CRM property. Defaults are
// overlaid by global records and then by tenant records; only records applying
// outbound take part. The same mapping, inverted, is used for incoming data.
// The returned map is the caller's own copy.
func (e *MappingEngine) EffectiveMapping(ctx context.Context, tenantID uuid.UUID, system crm.System, objectType crm.ObjectType) (map[string]string, error) {
	if e.cache != nil {
		if m, ok := e.cache.Get(tenantID, system, objectType); ok {
			return maps.Clone(m), nil
		}
	}

	mapping := DefaultMapping(system, objectType)
	records, err := e.repo.FindActive(ctx, tenantID, system, objectType)
	if err != nil {
		return nil, fmt.Errorf("load field mappings: %w", err)
	}
	// Records arrive global first, so tenant records overwrite them
	for i := range records {
		rec := &records[i]
		if !rec.IsActive || !rec.AppliesOutbound() {
			continue
		}
		mapping[rec.UDMField] = rec.CRMField
	}

	if e.cache != nil {
		e.cache.Put(tenantID, system, objectType, maps.Clone(mapping))
	}
	return mapping, nil
}

// Invalidate drops cached mappings of a tenant for one system
func (e *MappingEngine) Invalidate(tenantID uuid.UUID, system crm.System) {
	if e.cache != nil {
		e.cache.Invalidate(tenantID, system)
	}
}

// MapToCRM builds the CRM property set of record. Null values and fields the
// record does not have are skipped; extra is merged last and wins.
func (e *MappingEngine) MapToCRM(ctx context.Context, tenantID uuid.UUID, system crm.System, record udm.Record, extra map[string]any) (map[string]any, error) {
	objectType, err := crm.ParseObjectType(record.ObjectType())
	if err != nil {
		return nil, err
	}
	mapping, err := e.EffectiveMapping(ctx, tenantID, system, objectType)
	if err != nil {
		return nil, err
	}

	props := make(map[string]any, len(mapping)+len(extra))
	for udmField, crmField := range mapping {
		value, ok := record.GetField(udmField)
		if !ok || value == nil {
			continue
		}
		props[crmField] = value
	}
	for k, v := range extra {
		props[k] = v
	}
	return props, nil
}

// MapFromCRM applies CRM properties to a record of the table's type through the
// inverted effective mapping, so whatever MapToCRM emits maps back to the same
// fields. Unmapped properties are dropped. With existing a patched copy is
// returned and existing is left untouched; otherwise a fresh record is built
// which must end up with every required field set, or crm.ErrInvalidObject is
// returned.
func MapFromCRM[T any](
	ctx context.Context,
	e *MappingEngine,
	tenantID uuid.UUID,
	system crm.System,
	table *udm.FieldTable[T],
	props map[string]any,
	existing *T,
) (*T, error) {
	objectType, err := crm.ParseObjectType(table.ObjectType())
	if err != nil {
		return nil, err
	}
	mapping, err := e.EffectiveMapping(ctx, tenantID, system, objectType)
	if err != nil {
		return nil, err
	}
	crmToUDM := invertMapping(mapping)

	var target *T
	if existing != nil {
		target = table.Clone(existing)
	} else {
		target = table.New()
	}

	applied := make(map[string]bool, len(props))
	for crmField, value := range props {
		udmField, ok := crmToUDM[crmField]
		if !ok || !table.Has(udmField) {
			continue
		}
		if err := table.Set(target, udmField, value); err != nil {
			return nil, fmt.Errorf("%w: %w", crm.ErrInvalidObject, err)
		}
		applied[udmField] = true
	}

	if existing == nil {
		for _, req := range table.Required() {
			if v, _ := table.Get(target, req); v == nil || !applied[req] {
				return nil, fmt.Errorf("%w: required field %s.%s not covered by crm properties",
					crm.ErrInvalidObject, table.ObjectType(), req)
			}
		}
	}
	return target, nil
}

// invertMapping turns internal -> CRM into CRM -> internal. When two internal
// fields share a CRM property the one sorting last wins.
func invertMapping(mapping map[string]string) map[string]string {
	udmFields := make([]string, 0, len(mapping))
	for k := range mapping {
		udmFields = append(udmFields, k)
	}
	sort.Strings(udmFields)
	out := make(map[string]string, len(mapping))
	for _, udmField := range udmFields {
		out[mapping[udmField]] = udmField
	}
	return out
}
