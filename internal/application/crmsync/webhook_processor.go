package crmsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/domain/udm"
	"github.com/leadlane/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// HubSpot subscription types routed to the contact pipeline
const (
	hubSpotCompanyPrefix = "company."
	hubSpotContactPrefix = "contact."
)

// ErrInvalidWebhookPayload marks a batch that cannot be parsed
var ErrInvalidWebhookPayload = errors.New("crmsync: invalid webhook payload")

// WebhookBatchResult summarises one delivery
type WebhookBatchResult struct {
	Received   int `json:"received"`
	Processed  int `json:"processed"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// WebhookProcessor applies inbound CRM events to internal entities.
// Events run sequentially; each is deduplicated through the ledger and a
// failure is recorded on that event only.
type WebhookProcessor struct {
	ledger       crm.WebhookEventRepository
	engine       *MappingEngine
	companies    udm.CompanyRepository
	contacts     udm.ContactRepository
	accountLinks crm.LinkRepository
	contactLinks crm.LinkRepository
	metrics      *telemetry.SyncMetrics
	logger       *zap.Logger
}

// WebhookProcessorConfig contains configuration for WebhookProcessor
type WebhookProcessorConfig struct {
	Ledger       crm.WebhookEventRepository
	Engine       *MappingEngine
	Companies    udm.CompanyRepository
	Contacts     udm.ContactRepository
	AccountLinks crm.LinkRepository
	ContactLinks crm.LinkRepository
	Metrics      *telemetry.SyncMetrics
	Logger       *zap.Logger
}

// NewWebhookProcessor creates a new WebhookProcessor
func NewWebhookProcessor(cfg WebhookProcessorConfig) *WebhookProcessor {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookProcessor{
		ledger:       cfg.Ledger,
		engine:       cfg.Engine,
		companies:    cfg.Companies,
		contacts:     cfg.Contacts,
		accountLinks: cfg.AccountLinks,
		contactLinks: cfg.ContactLinks,
		metrics:      cfg.Metrics,
		logger:       logger,
	}
}

// hubSpotEvent is the normalised view of one raw event
type hubSpotEvent struct {
	id         string
	objectID   string
	occurredAt *time.Time
	properties map[string]any
	// objectType is empty for subscription types that are not applied locally
	objectType crm.ObjectType
	subType    string
}

// entityApplier loads, patches and saves the entity behind a link
type entityApplier func(ctx context.Context, tenantID, internalID uuid.UUID, ev *hubSpotEvent) (crm.WebhookEventStatus, error)

// ProcessHubSpotEvents routes each event by its subscription type:
// contact.* events go to contacts, company.* events (or events without a type)
// to companies. Other types are recorded as skipped.
// Every event must carry an id; otherwise nothing is processed.
func (p *WebhookProcessor) ProcessHubSpotEvents(ctx context.Context, tenantID uuid.UUID, raw []map[string]any) (*WebhookBatchResult, error) {
	return p.process(ctx, tenantID, raw, "")
}

// ProcessHubSpotCompanyEvents applies company property changes
func (p *WebhookProcessor) ProcessHubSpotCompanyEvents(ctx context.Context, tenantID uuid.UUID, raw []map[string]any) (*WebhookBatchResult, error) {
	return p.process(ctx, tenantID, raw, crm.ObjectTypeCompany)
}

// ProcessHubSpotContactEvents applies contact property changes
func (p *WebhookProcessor) ProcessHubSpotContactEvents(ctx context.Context, tenantID uuid.UUID, raw []map[string]any) (*WebhookBatchResult, error) {
	return p.process(ctx, tenantID, raw, crm.ObjectTypeContact)
}

func (p *WebhookProcessor) process(ctx context.Context, tenantID uuid.UUID, raw []map[string]any, forceType crm.ObjectType) (*WebhookBatchResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "crm_webhook", "process_hubspot_events",
		telemetry.AttrTenantID, tenantID.String(),
		telemetry.AttrCRMSystem, string(crm.SystemHubSpot),
		telemetry.AttrEventCount, len(raw),
	)
	defer span.End()

	events := make([]*hubSpotEvent, 0, len(raw))
	for i, r := range raw {
		ev, err := parseHubSpotEvent(r)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		if forceType != "" {
			ev.objectType = forceType
		}
		events = append(events, ev)
	}

	result := &WebhookBatchResult{Received: len(events)}
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		p.processOne(ctx, tenantID, ev, result)
	}
	return result, nil
}

func (p *WebhookProcessor) processOne(ctx context.Context, tenantID uuid.UUID, ev *hubSpotEvent, result *WebhookBatchResult) {
	log := p.logger.With(
		zap.String("tenant_id", tenantID.String()),
		zap.String("event_id", ev.id),
		zap.String("object_id", ev.objectID),
		zap.String("subscription_type", ev.subType),
	)

	isNew, err := p.ledger.TryMarkReceived(ctx, crm.SystemHubSpot, ev.id, ev.occurredAt)
	if err != nil {
		log.Error("Failed to record webhook event", zap.Error(err))
		result.Failed++
		p.metrics.IncWebhookEvent(string(crm.SystemHubSpot), string(crm.WebhookStatusFailed))
		return
	}
	if !isNew {
		log.Debug("Duplicate webhook event skipped")
		result.Duplicates++
		return
	}

	status, applyErr := p.applySafely(ctx, tenantID, ev)
	var lastError *string
	if applyErr != nil {
		status = crm.WebhookStatusFailed
		msg := applyErr.Error()
		lastError = &msg
		log.Error("Webhook event failed", zap.Error(applyErr))
	}

	switch status {
	case crm.WebhookStatusProcessed:
		result.Processed++
	case crm.WebhookStatusFailed:
		result.Failed++
	default:
		result.Skipped++
		log.Info("Webhook event skipped", zap.String("status", string(status)))
	}
	p.metrics.IncWebhookEvent(string(crm.SystemHubSpot), string(status))

	if err := p.ledger.MarkProcessed(ctx, crm.SystemHubSpot, ev.id, status, lastError); err != nil {
		log.Error("Failed to mark webhook event", zap.String("status", string(status)), zap.Error(err))
	}
}

// applySafely resolves and applies one event, converting panics into errors
func (p *WebhookProcessor) applySafely(ctx context.Context, tenantID uuid.UUID, ev *hubSpotEvent) (status crm.WebhookEventStatus, err error) {
	defer func() {
		if r := recover(); r != nil {
			status = crm.WebhookStatusFailed
			err = fmt.Errorf("panic while applying webhook event: %v", r)
		}
	}()

	if ev.objectID == "" {
		return crm.WebhookStatusSkippedNoObjectID, nil
	}

	var links crm.LinkRepository
	var apply entityApplier
	switch ev.objectType {
	case crm.ObjectTypeCompany:
		links, apply = p.accountLinks, p.applyCompany
	case crm.ObjectTypeContact:
		links, apply = p.contactLinks, p.applyContact
	default:
		return crm.WebhookStatusSkippedUnsupported, nil
	}
	if links == nil {
		return crm.WebhookStatusSkippedNoLink, nil
	}
	link, err := links.GetByCRMID(ctx, tenantID, crm.SystemHubSpot, ev.objectID)
	if err != nil {
		return crm.WebhookStatusFailed, fmt.Errorf("resolve link: %w", err)
	}
	if link == nil {
		return crm.WebhookStatusSkippedNoLink, nil
	}
	return apply(ctx, tenantID, link.InternalID, ev)
}

func (p *WebhookProcessor) applyCompany(ctx context.Context, tenantID, internalID uuid.UUID, ev *hubSpotEvent) (crm.WebhookEventStatus, error) {
	company, status, err := loadEntity(ctx, p.companies.FindByID, tenantID, internalID)
	if company == nil {
		return status, err
	}
	if isOutOfOrder(ev.occurredAt, company.LastModifiedTime) {
		return crm.WebhookStatusSkippedOutOfOrder, nil
	}
	updated, err := MapFromCRM(ctx, p.engine, tenantID, crm.SystemHubSpot, udm.CompanyFields, ev.properties, company)
	if err != nil {
		return crm.WebhookStatusFailed, err
	}
	updated.Touch(modifierFor(crm.SystemHubSpot), appliedAt(ev.occurredAt))
	if err := p.companies.Save(ctx, updated); err != nil {
		return crm.WebhookStatusFailed, fmt.Errorf("save company: %w", err)
	}
	return crm.WebhookStatusProcessed, nil
}

func (p *WebhookProcessor) applyContact(ctx context.Context, tenantID, internalID uuid.UUID, ev *hubSpotEvent) (crm.WebhookEventStatus, error) {
	if p.contacts == nil {
		return crm.WebhookStatusSkippedNoEntity, nil
	}
	contact, status, err := loadEntity(ctx, p.contacts.FindByID, tenantID, internalID)
	if contact == nil {
		return status, err
	}
	if isOutOfOrder(ev.occurredAt, contact.LastModifiedTime) {
		return crm.WebhookStatusSkippedOutOfOrder, nil
	}
	updated, err := MapFromCRM(ctx, p.engine, tenantID, crm.SystemHubSpot, udm.ContactFields, ev.properties, contact)
	if err != nil {
		return crm.WebhookStatusFailed, err
	}
	updated.Touch(modifierFor(crm.SystemHubSpot), appliedAt(ev.occurredAt))
	if err := p.contacts.Save(ctx, updated); err != nil {
		return crm.WebhookStatusFailed, fmt.Errorf("save contact: %w", err)
	}
	return crm.WebhookStatusProcessed, nil
}

// loadEntity maps udm.ErrNotFound to the skipped status
func loadEntity[T any](
	ctx context.Context,
	find func(ctx context.Context, tenantID, id uuid.UUID) (*T, error),
	tenantID, id uuid.UUID,
) (*T, crm.WebhookEventStatus, error) {
	entity, err := find(ctx, tenantID, id)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, crm.WebhookStatusSkippedNoEntity, nil
		}
		return nil, crm.WebhookStatusFailed, fmt.Errorf("load entity: %w", err)
	}
	if entity == nil {
		return nil, crm.WebhookStatusSkippedNoEntity, nil
	}
	return entity, "", nil
}

// isOutOfOrder reports whether an event is not newer than the stored state.
// Events without a timestamp are always applied.
func isOutOfOrder(occurredAt *time.Time, lastModified time.Time) bool {
	return occurredAt != nil && !occurredAt.After(lastModified)
}

// appliedAt uses the event time as the new modification time so later
// out-of-order checks compare event times with event times
func appliedAt(occurredAt *time.Time) time.Time {
	if occurredAt != nil {
		return occurredAt.UTC()
	}
	return time.Now().UTC()
}

func modifierFor(system crm.System) string {
	return string(system) + "_webhook"
}

func parseHubSpotEvent(raw map[string]any) (*hubSpotEvent, error) {
	id := firstString(raw, "eventId", "event_id", "id")
	if id == "" {
		return nil, crm.ErrMissingEventID
	}
	ev := &hubSpotEvent{
		id:         id,
		objectID:   firstString(raw, "objectId", "object_id", "companyId"),
		properties: eventProperties(raw),
	}
	ev.subType = strings.ToLower(firstString(raw, "subscriptionType", "subscription_type"))
	ev.objectType = objectTypeForSubscription(ev.subType)

	occurred, err := parseOccurredAt(firstValue(raw, "occurredAt", "occurred_at"))
	if err != nil {
		return nil, fmt.Errorf("%w: event %s: %w", ErrInvalidWebhookPayload, id, err)
	}
	ev.occurredAt = occurred
	return ev, nil
}

// objectTypeForSubscription maps a HubSpot subscription type to the object it
// updates, or "" when the type is not handled
func objectTypeForSubscription(subType string) crm.ObjectType {
	switch {
	case subType == "", strings.HasPrefix(subType, hubSpotCompanyPrefix):
		return crm.ObjectTypeCompany
	case strings.HasPrefix(subType, hubSpotContactPrefix):
		return crm.ObjectTypeContact
	default:
		return ""
	}
}

// eventProperties reads the "properties" map or the single
// propertyName/propertyValue pair of a propertyChange event
func eventProperties(raw map[string]any) map[string]any {
	props := make(map[string]any)
	if m, ok := raw["properties"].(map[string]any); ok {
		for k, v := range m {
			props[k] = v
		}
	}
	if name := firstString(raw, "propertyName", "property_name"); name != "" {
		props[name] = firstValue(raw, "propertyValue", "property_value")
	}
	return props
}

func parseOccurredAt(value any) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case float64:
		ts := time.UnixMilli(int64(v)).UTC()
		return &ts, nil
	case int64:
		ts := time.UnixMilli(v).UTC()
		return &ts, nil
	case int:
		ts := time.UnixMilli(int64(v)).UTC()
		return &ts, nil
	case json.Number:
		return udm.ParseTimestamp(v.String())
	case string:
		return udm.ParseTimestamp(v)
	default:
		return nil, fmt.Errorf("unsupported occurredAt %T", value)
	}
}

func firstValue(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		case json.Number:
			s = t.String()
		case int:
			s = strconv.Itoa(t)
		case int64:
			s = strconv.FormatInt(t, 10)
		default:
			s = fmt.Sprint(t)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, udm.ErrNotFound)
}
