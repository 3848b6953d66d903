package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLinkRepository implements crm.LinkRepository for one link table
type GormLinkRepository struct {
	db    *gorm.DB
	kind  crm.LinkKind
	table string
}

// NewGormLinkRepository creates a link repository for kind
func NewGormLinkRepository(db *gorm.DB, kind crm.LinkKind) (*GormLinkRepository, error) {
	table, ok := models.LinkTables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", crm.ErrUnknownLinkKind, kind)
	}
	return &GormLinkRepository{db: db, kind: kind, table: table}, nil
}

// NewGormLinkRepositories creates one repository per link kind
func NewGormLinkRepositories(db *gorm.DB) map[crm.LinkKind]crm.LinkRepository {
	repos := make(map[crm.LinkKind]crm.LinkRepository, len(models.LinkTables))
	for kind := range models.LinkTables {
		repo, _ := NewGormLinkRepository(db, kind)
		repos[kind] = repo
	}
	return repos
}

// Kind returns the entity kind this repository tracks
func (r *GormLinkRepository) Kind() crm.LinkKind {
	return r.kind
}

func (r *GormLinkRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// UpsertLink inserts the link or overwrites its CRM id, returning the stored row
func (r *GormLinkRepository) UpsertLink(ctx context.Context, tenantID uuid.UUID, system crm.System, internalID uuid.UUID, crmID string) (*crm.Link, error) {
	now := time.Now().UTC()
	model := models.CRMLinkModel{
		ID:               uuid.New(),
		TenantID:         tenantID,
		CRMSystem:        string(system),
		InternalID:       internalID,
		CRMID:            crmID,
		CreatedTime:      now,
		LastModifiedTime: now,
	}
	err := r.scoped(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "crm_system"}, {Name: "internal_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"crm_id", "last_modified_time"}),
	}).Create(&model).Error
	if err != nil {
		return nil, err
	}
	link, err := r.GetByInternalID(ctx, tenantID, system, internalID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, fmt.Errorf("%s link vanished after upsert", r.kind)
	}
	return link, nil
}

// GetByInternalID returns the link for an internal entity or nil
func (r *GormLinkRepository) GetByInternalID(ctx context.Context, tenantID uuid.UUID, system crm.System, internalID uuid.UUID) (*crm.Link, error) {
	return r.first(r.scoped(ctx).
		Where("tenant_id = ? AND crm_system = ? AND internal_id = ?", tenantID, string(system), internalID))
}

// GetByCRMID returns the link for a CRM object or nil
func (r *GormLinkRepository) GetByCRMID(ctx context.Context, tenantID uuid.UUID, system crm.System, crmID string) (*crm.Link, error) {
	return r.first(r.scoped(ctx).
		Where("tenant_id = ? AND crm_system = ? AND crm_id = ?", tenantID, string(system), crmID))
}

func (r *GormLinkRepository) first(q *gorm.DB) (*crm.Link, error) {
	var model models.CRMLinkModel
	if err := q.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListForTenantAndSystem pages through links ordered by internal id
func (r *GormLinkRepository) ListForTenantAndSystem(ctx context.Context, tenantID uuid.UUID, system crm.System, limit, offset int) ([]crm.Link, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	var rows []models.CRMLinkModel
	err := r.scoped(ctx).
		Where("tenant_id = ? AND crm_system = ?", tenantID, string(system)).
		Order("internal_id ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	links := make([]crm.Link, len(rows))
	for i := range rows {
		links[i] = *rows[i].ToDomain()
	}
	return links, nil
}

var _ crm.LinkRepository = (*GormLinkRepository)(nil)
