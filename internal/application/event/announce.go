package event

import (
	"context"
	"time"

	appctx "github.com/felicityfest/felicity-backend/internal/pkg/context"
)

const (
	EnvelopeVersion  = 1
	EnvelopeProducer = "felicity-backend"

	RouteEventPublished = "event.published"
)

// AnnounceEnvelope is the stable contract for announce messages emitted on
// publish. Consumers should rely on version/producer/occurred_at + payload.
type AnnounceEnvelope[T any] struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	TraceID    string    `json:"trace_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    T         `json:"payload"`
}

// EventPublishedPayload carries the human-readable summary the announce
// collaborator turns into a notification.
type EventPublishedPayload struct {
	EventID     string     `json:"event_id"`
	OrganizerID string     `json:"organizer_id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Eligibility string     `json:"eligibility"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Deadline    *time.Time `json:"registration_deadline"`
}

// TraceIDFromContext reuses the HTTP request id as the announce trace id.
func TraceIDFromContext(ctx context.Context) string {
	return appctx.RequestID(ctx)
}
