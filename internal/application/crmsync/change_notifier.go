package crmsync

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/shared"
	"github.com/leadlane/backend/internal/domain/udm"
	"go.uber.org/zap"
)

// CodeInvalidChange is returned for change notices that cannot become an event
const CodeInvalidChange = "INVALID_INPUT"

// ChangeNotice reports an internal entity change made outside this service.
// Activities are not stored locally, so their fields travel in Activity.
type ChangeNotice struct {
	EntityType    string         `json:"entity_type" binding:"required,oneof=company contact opportunity activity"`
	EntityID      uuid.UUID      `json:"entity_id"`
	Activity      map[string]any `json:"activity,omitempty"`
	CompanyID     *uuid.UUID     `json:"company_id,omitempty"`
	ContactID     *uuid.UUID     `json:"contact_id,omitempty"`
	OpportunityID *uuid.UUID     `json:"opportunity_id,omitempty"`
}

// ChangeNotifier turns change notices into domain events for the sync handlers
type ChangeNotifier struct {
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewChangeNotifier creates a new ChangeNotifier
func NewChangeNotifier(publisher shared.EventPublisher, logger *zap.Logger) *ChangeNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChangeNotifier{publisher: publisher, logger: logger}
}

// Notify publishes the event matching notice and returns its event ID.
// Sync results are not awaited.
func (n *ChangeNotifier) Notify(ctx context.Context, tenantID uuid.UUID, notice ChangeNotice) (uuid.UUID, error) {
	event, err := n.eventFor(tenantID, notice)
	if err != nil {
		return uuid.Nil, err
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		return uuid.Nil, fmt.Errorf("publish %s: %w", event.EventType(), err)
	}
	n.logger.Debug("Change notice published",
		zap.String("tenant_id", tenantID.String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()))
	return event.EventID(), nil
}

func (n *ChangeNotifier) eventFor(tenantID uuid.UUID, notice ChangeNotice) (shared.DomainEvent, error) {
	if notice.EntityType != udm.ObjectTypeActivity && notice.EntityID == uuid.Nil {
		return nil, shared.NewDomainError(CodeInvalidChange, "entity_id is required")
	}
	switch notice.EntityType {
	case udm.ObjectTypeCompany:
		return udm.NewCompanyChangedEvent(tenantID, notice.EntityID), nil
	case udm.ObjectTypeContact:
		return udm.NewContactChangedEvent(tenantID, notice.EntityID), nil
	case udm.ObjectTypeOpportunity:
		return udm.NewOpportunityChangedEvent(tenantID, notice.EntityID), nil
	case udm.ObjectTypeActivity:
		activity, err := noticeActivity(tenantID, notice)
		if err != nil {
			return nil, err
		}
		return udm.NewActivityCreatedEvent(activity), nil
	default:
		return nil, shared.NewDomainError(CodeInvalidChange, "Unknown entity type")
	}
}

func noticeActivity(tenantID uuid.UUID, notice ChangeNotice) (*udm.Activity, error) {
	activity := udm.NewActivity(tenantID, "")
	if notice.EntityID != uuid.Nil {
		activity.ID = notice.EntityID
	}
	activity.CompanyID = notice.CompanyID
	activity.ContactID = notice.ContactID
	activity.OpportunityID = notice.OpportunityID
	for name, value := range notice.Activity {
		if err := udm.ActivityFields.Set(activity, name, value); err != nil {
			return nil, shared.WrapDomainError(CodeInvalidChange, "Invalid activity field "+name, err)
		}
	}
	if !activity.Type.IsValid() {
		return nil, shared.NewDomainError(CodeInvalidChange, "activity_type is required")
	}
	return activity, nil
}
