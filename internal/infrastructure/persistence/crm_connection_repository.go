package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormConnectionRepository implements crm.ConnectionRepository using GORM
type GormConnectionRepository struct {
	db *gorm.DB
}

// NewGormConnectionRepository creates a new GormConnectionRepository
func NewGormConnectionRepository(db *gorm.DB) *GormConnectionRepository {
	return &GormConnectionRepository{db: db}
}

// ---------------------------------------------------------------------------
// ConnectionReader implementation
// ---------------------------------------------------------------------------

// Get returns the connection for (tenant, system) or nil when none is stored
func (r *GormConnectionRepository) Get(ctx context.Context, tenantID uuid.UUID, system crm.System) (*crm.Connection, error) {
	var model models.CRMConnectionModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND crm_system = ?", tenantID, string(system)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListEnabledSystems returns the distinct systems the tenant has an enabled connection for
func (r *GormConnectionRepository) ListEnabledSystems(ctx context.Context, tenantID uuid.UUID) ([]crm.System, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.CRMConnectionModel{}).
		Where("tenant_id = ? AND is_enabled = ?", tenantID, true).
		Distinct("crm_system").
		Order("crm_system ASC").
		Pluck("crm_system", &names).Error
	if err != nil {
		return nil, err
	}
	systems := make([]crm.System, 0, len(names))
	for _, n := range names {
		systems = append(systems, crm.System(n))
	}
	return systems, nil
}

// ListExpiring returns refreshable enabled connections of a system whose token expires before the given time
func (r *GormConnectionRepository) ListExpiring(ctx context.Context, system crm.System, before time.Time) ([]crm.Connection, error) {
	var rows []models.CRMConnectionModel
	err := r.db.WithContext(ctx).
		Where("crm_system = ? AND is_enabled = ?", string(system), true).
		Where("refresh_token IS NOT NULL AND expires_at IS NOT NULL AND expires_at < ?", before.UTC()).
		Order("expires_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	conns := make([]crm.Connection, len(rows))
	for i := range rows {
		conns[i] = *rows[i].ToDomain()
	}
	return conns, nil
}

// ---------------------------------------------------------------------------
// ConnectionWriter implementation
// ---------------------------------------------------------------------------

// Upsert inserts the connection or updates the stored one on (tenant, system).
// Timestamps are written as the caller stamped them; creation audit columns
// are preserved on update.
func (r *GormConnectionRepository) Upsert(ctx context.Context, conn *crm.Connection) error {
	conn.Normalize()
	conn.CreatedTime = conn.CreatedTime.UTC()
	conn.LastModifiedTime = conn.LastModifiedTime.UTC()
	if conn.ExpiresAt != nil {
		utc := conn.ExpiresAt.UTC()
		conn.ExpiresAt = &utc
	}

	var model models.CRMConnectionModel
	model.FromDomain(conn)

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "crm_system"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token",
			"refresh_token",
			"expires_at",
			"token_type",
			"scope",
			"is_enabled",
			"last_modified_time",
			"modified_by",
		}),
	}).Create(&model).Error
}

// Disable marks the connection disabled. Missing connections are ignored.
func (r *GormConnectionRepository) Disable(ctx context.Context, tenantID uuid.UUID, system crm.System, actor string) error {
	if actor == "" {
		actor = crm.SystemActor
	}
	return r.db.WithContext(ctx).
		Model(&models.CRMConnectionModel{}).
		Where("tenant_id = ? AND crm_system = ?", tenantID, string(system)).
		Updates(map[string]any{
			"is_enabled":         false,
			"last_modified_time": time.Now().UTC(),
			"modified_by":        actor,
		}).Error
}

var _ crm.ConnectionRepository = (*GormConnectionRepository)(nil)
