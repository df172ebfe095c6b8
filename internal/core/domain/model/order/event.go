package order

import (
	"time"

	"github.com/google/uuid"
)

// Domain event types emitted by the repair-order aggregate.
const (
	EventCreated            = "CREATED"
	EventDiagnosed          = "DIAGNOSED"
	EventAuthorized         = "AUTHORIZED"
	EventInProgress         = "IN_PROGRESS"
	EventWaitingForApproval = "WAITING_FOR_APPROVAL"
	EventCompleted          = "COMPLETED"
	EventReauthorized       = "REAUTHORIZED"
	EventDelivered          = "DELIVERED"
	EventCancelled          = "CANCELLED"
)

// DomainEvent is an immutable audit record of a state change on a repair
// order. Events are appended to the aggregate's log and never mutated.
type DomainEvent struct {
	id        uuid.UUID
	orderID   string
	eventType string
	timestamp time.Time
	metadata  map[string]any
}

// NewDomainEvent creates an event for the given order. The metadata map is
// copied so later changes to the caller's map cannot alter the event.
func NewDomainEvent(orderID, eventType string, timestamp time.Time, metadata map[string]any) DomainEvent {
	return DomainEvent{
		id:        uuid.New(),
		orderID:   orderID,
		eventType: eventType,
		timestamp: timestamp,
		metadata:  copyMetadata(metadata),
	}
}

// RestoreDomainEvent rebuilds an event from persistence with its original id.
func RestoreDomainEvent(id uuid.UUID, orderID, eventType string, timestamp time.Time, metadata map[string]any) DomainEvent {
	return DomainEvent{
		id:        id,
		orderID:   orderID,
		eventType: eventType,
		timestamp: timestamp,
		metadata:  copyMetadata(metadata),
	}
}

// ID returns the event's unique identifier.
func (e DomainEvent) ID() uuid.UUID {
	return e.id
}

// OrderID returns the id of the order the event belongs to.
func (e DomainEvent) OrderID() string {
	return e.orderID
}

// Type returns the event type, e.g. "AUTHORIZED".
func (e DomainEvent) Type() string {
	return e.eventType
}

// Timestamp returns when the event occurred.
func (e DomainEvent) Timestamp() time.Time {
	return e.timestamp
}

// Metadata returns a copy of the event's metadata.
func (e DomainEvent) Metadata() map[string]any {
	return copyMetadata(e.metadata)
}

func copyMetadata(metadata map[string]any) map[string]any {
	copied := make(map[string]any, len(metadata))
	for key, value := range metadata {
		copied[key] = value
	}
	return copied
}
