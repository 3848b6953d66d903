package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a tenant-scoped fact about one internal record.
// The aggregate is the record that changed; its type is a UDM object type.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
	TenantID() uuid.UUID
}

// BaseDomainEvent carries the envelope shared by every event.
// Embed it by value; the accessors use value receivers so both the
// embedding struct and a pointer to it satisfy DomainEvent.
type BaseDomainEvent struct {
	ID         uuid.UUID `json:"event_id"`
	Type       string    `json:"event_type"`
	Tenant     uuid.UUID `json:"tenant_id"`
	ObjectType string    `json:"object_type"`
	ObjectID   uuid.UUID `json:"object_id"`
	At         time.Time `json:"occurred_at"`
}

// NewBaseDomainEvent stamps a fresh envelope with a random ID and the current UTC time
func NewBaseDomainEvent(eventType, objectType string, objectID, tenantID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:         uuid.New(),
		Type:       eventType,
		Tenant:     tenantID,
		ObjectType: objectType,
		ObjectID:   objectID,
		At:         time.Now().UTC(),
	}
}

func (e BaseDomainEvent) EventID() uuid.UUID     { return e.ID }
func (e BaseDomainEvent) EventType() string      { return e.Type }
func (e BaseDomainEvent) OccurredAt() time.Time  { return e.At }
func (e BaseDomainEvent) AggregateID() uuid.UUID { return e.ObjectID }
func (e BaseDomainEvent) AggregateType() string  { return e.ObjectType }
func (e BaseDomainEvent) TenantID() uuid.UUID    { return e.Tenant }
