package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFieldMappingRepository implements crm.FieldMappingRepository using GORM
type GormFieldMappingRepository struct {
	db *gorm.DB
}

// NewGormFieldMappingRepository creates a new GormFieldMappingRepository
func NewGormFieldMappingRepository(db *gorm.DB) *GormFieldMappingRepository {
	return &GormFieldMappingRepository{db: db}
}

// FindActive returns active global and tenant records, global first so tenant records overlay them
func (r *GormFieldMappingRepository) FindActive(ctx context.Context, tenantID uuid.UUID, system crm.System, objectType crm.ObjectType) ([]crm.FieldMapping, error) {
	var rows []models.CRMFieldMappingModel
	err := r.db.WithContext(ctx).
		Where("(tenant_id = ? OR tenant_id IS NULL) AND crm_system = ? AND object_type = ? AND is_active = ?",
			tenantID, string(system), string(objectType), true).
		Order("CASE WHEN tenant_id IS NULL THEN 0 ELSE 1 END").
		Order("udm_field_name ASC").
		Order("last_modified_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toFieldMappings(rows), nil
}

// FindByID returns a tenant-owned mapping
func (r *GormFieldMappingRepository) FindByID(ctx context.Context, tenantID uuid.UUID, system crm.System, id uuid.UUID) (*crm.FieldMapping, error) {
	var model models.CRMFieldMappingModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND crm_system = ?", id, tenantID, string(system)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, crm.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListForTenant returns the tenant's own mappings ordered by object type then udm field
func (r *GormFieldMappingRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, system crm.System) ([]crm.FieldMapping, error) {
	var rows []models.CRMFieldMappingModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND crm_system = ?", tenantID, string(system)).
		Order("object_type ASC").
		Order("udm_field_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toFieldMappings(rows), nil
}

// ExistsForUDMField reports whether the tenant already maps udmField, compared case-insensitively
func (r *GormFieldMappingRepository) ExistsForUDMField(ctx context.Context, tenantID uuid.UUID, system crm.System, objectType crm.ObjectType, udmField string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CRMFieldMappingModel{}).
		Where("tenant_id = ? AND crm_system = ? AND object_type = ? AND LOWER(udm_field_name) = ?",
			tenantID, string(system), string(objectType), strings.ToLower(strings.TrimSpace(udmField))).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a mapping
func (r *GormFieldMappingRepository) Create(ctx context.Context, m *crm.FieldMapping) error {
	now := time.Now().UTC()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedTime = now
	m.LastModifiedTime = now

	var model models.CRMFieldMappingModel
	model.FromDomain(m)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return crm.ErrMappingConflict
		}
		return err
	}
	return nil
}

// Update writes the mutable columns of a tenant mapping
func (r *GormFieldMappingRepository) Update(ctx context.Context, m *crm.FieldMapping) error {
	m.LastModifiedTime = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.CRMFieldMappingModel{}).
		Where("id = ? AND tenant_id = ? AND crm_system = ?", m.ID, m.TenantID, string(m.System)).
		Updates(map[string]any{
			"crm_field_name":     m.CRMField,
			"is_active":          m.IsActive,
			"direction":          string(m.Direction),
			"last_modified_time": m.LastModifiedTime,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return crm.ErrMappingNotFound
	}
	return nil
}

// Delete hard-deletes a tenant mapping
func (r *GormFieldMappingRepository) Delete(ctx context.Context, tenantID uuid.UUID, system crm.System, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND crm_system = ?", id, tenantID, string(system)).
		Delete(&models.CRMFieldMappingModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return crm.ErrMappingNotFound
	}
	return nil
}

func toFieldMappings(rows []models.CRMFieldMappingModel) []crm.FieldMapping {
	out := make([]crm.FieldMapping, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ crm.FieldMappingRepository = (*GormFieldMappingRepository)(nil)
