package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	SourceName   = "scholarship-service"
	EventVersion = "1.0"
)

// Event types published by the service. Consumers (notification delivery,
// audit) live outside this service.
const (
	TypeIdentityRegistered   = "identity.registered"
	TypeScholarshipSubmitted = "scholarship.submitted"
	TypeContributionRecorded = "contribution.recorded"
)

// Event is the envelope for every published domain event.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent builds an event envelope for the given type and payload.
func NewEvent(eventType string, data any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    SourceName,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Publisher emits domain events. Publishing is best-effort from the caller's
// perspective; a failed publish never rolls back the write that triggered it.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
