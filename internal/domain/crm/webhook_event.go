package crm

import (
	"context"
	"time"
)

// WebhookEventStatus is the processing status of an inbound event
type WebhookEventStatus string

const (
	WebhookStatusReceived           WebhookEventStatus = "received"
	WebhookStatusProcessed          WebhookEventStatus = "processed"
	WebhookStatusSkippedNoObjectID  WebhookEventStatus = "skipped_no_object_id"
	WebhookStatusSkippedNoLink      WebhookEventStatus = "skipped_no_link"
	WebhookStatusSkippedNoEntity    WebhookEventStatus = "skipped_no_company"
	WebhookStatusSkippedOutOfOrder  WebhookEventStatus = "skipped_out_of_order"
	WebhookStatusSkippedUnsupported WebhookEventStatus = "skipped_unsupported_type"
	WebhookStatusFailed             WebhookEventStatus = "failed"
)

// IsTerminal reports whether the status is final
func (s WebhookEventStatus) IsTerminal() bool {
	return s != WebhookStatusReceived && s != ""
}

// WebhookEvent is a ledger entry keyed on (System, EventID)
type WebhookEvent struct {
	System      System
	EventID     string
	ReceivedAt  time.Time
	OccurredAt  *time.Time
	ProcessedAt *time.Time
	Status      WebhookEventStatus
	LastError   *string
}

// WebhookEventRepository is the append-only idempotency ledger
type WebhookEventRepository interface {
	// TryMarkReceived inserts the event as received; false means it already existed
	TryMarkReceived(ctx context.Context, system System, eventID string, occurredAt *time.Time) (bool, error)
	// MarkProcessed sets the terminal status and processed timestamp
	MarkProcessed(ctx context.Context, system System, eventID string, status WebhookEventStatus, lastError *string) error
	// Get returns the ledger entry or nil
	Get(ctx context.Context, system System, eventID string) (*WebhookEvent, error)
}
