package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWebhookEventRepository implements crm.WebhookEventRepository using GORM
type GormWebhookEventRepository struct {
	db *gorm.DB
}

// NewGormWebhookEventRepository creates a new GormWebhookEventRepository
func NewGormWebhookEventRepository(db *gorm.DB) *GormWebhookEventRepository {
	return &GormWebhookEventRepository{db: db}
}

// TryMarkReceived inserts the event with status received. It returns false when
// (system, event id) already exists; the existing row is left untouched.
func (r *GormWebhookEventRepository) TryMarkReceived(ctx context.Context, system crm.System, eventID string, occurredAt *time.Time) (bool, error) {
	model := models.CRMWebhookEventModel{
		CRMSystem:  string(system),
		EventID:    eventID,
		ReceivedAt: time.Now().UTC(),
		OccurredAt: occurredAt,
		Status:     string(crm.WebhookStatusReceived),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// MarkProcessed records the terminal status of an event
func (r *GormWebhookEventRepository) MarkProcessed(ctx context.Context, system crm.System, eventID string, status crm.WebhookEventStatus, lastError *string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&models.CRMWebhookEventModel{}).
		Where("crm_system = ? AND event_id = ?", string(system), eventID).
		Updates(map[string]any{
			"status":       string(status),
			"processed_at": now,
			"last_error":   lastError,
		}).Error
}

// Get returns the ledger entry or nil
func (r *GormWebhookEventRepository) Get(ctx context.Context, system crm.System, eventID string) (*crm.WebhookEvent, error) {
	var model models.CRMWebhookEventModel
	err := r.db.WithContext(ctx).
		Where("crm_system = ? AND event_id = ?", string(system), eventID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ crm.WebhookEventRepository = (*GormWebhookEventRepository)(nil)
