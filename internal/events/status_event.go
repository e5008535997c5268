package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Event names the frontend subscribes to.
const (
	GenerationStatus = "events:generation:status"
	GenerationBusy   = "events:generation:busy"
	SettingsStatus   = "events:settings:status"
)

// StatusEvent is the payload pushed to the frontend for inline status text
// and busy indication.
type StatusEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Busy      bool      `json:"busy"`
	Timestamp time.Time `json:"timestamp"`
	AttemptID string    `json:"attemptId,omitempty"`
}

type contextKey string

const attemptContextKey contextKey = "linkdraft/events/attempt"

// WithAttempt returns a derived context annotated with a generation attempt
// ID so emitted events can be correlated by the frontend.
func WithAttempt(ctx context.Context, attemptID string) context.Context {
	if strings.TrimSpace(attemptID) == "" {
		return ctx
	}
	return context.WithValue(ctx, attemptContextKey, attemptID)
}

// AttemptFromContext extracts the attempt ID associated with ctx.
func AttemptFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(attemptContextKey).(string); ok {
		return v
	}
	return ""
}

func newStatusEvent(eventType EventType, message string) StatusEvent {
	return StatusEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInfo creates an info StatusEvent.
func NewInfo(message string) StatusEvent {
	return newStatusEvent(EventInfo, message)
}

// NewError creates an error StatusEvent.
func NewError(message string) StatusEvent {
	return newStatusEvent(EventError, message)
}

// NewSuccess creates a success StatusEvent.
func NewSuccess(message string) StatusEvent {
	return newStatusEvent(EventSuccess, message)
}

// NewBusy creates an info StatusEvent carrying the busy flag so the frontend
// can disable controls while an operation is in flight.
func NewBusy(busy bool, message string) StatusEvent {
	evt := newStatusEvent(EventInfo, message)
	evt.Busy = busy
	return evt
}
