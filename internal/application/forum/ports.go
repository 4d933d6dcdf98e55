package forum

import (
	"context"
	"time"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type EventStore interface {
	GetByID(ctx context.Context, id string) (*domain.Event, error)
}

type MessageRepo interface {
	Create(ctx context.Context, m *domain.ForumMessage) error
	GetByID(ctx context.Context, id string) (*domain.ForumMessage, error)
	Update(ctx context.Context, m *domain.ForumMessage) error

	// ToggleReaction applies the toggle atomically at the storage layer so
	// concurrent reactions from different users are all durably applied.
	ToggleReaction(ctx context.Context, messageID, userID, emoji string, now time.Time) (*domain.ForumMessage, error)

	ListByEvent(ctx context.Context, eventID string) ([]*domain.ForumMessage, error)
}

// RegistrationChecker answers whether a participant holds a live (not
// cancelled) registration for an event.
type RegistrationChecker interface {
	HasActiveForEvent(ctx context.Context, eventID, participantID string) (bool, error)
}

type ProfileStore interface {
	ParticipantByUser(ctx context.Context, userID string) (*domain.Participant, error)
	OrganizerByUser(ctx context.Context, userID string) (*domain.Organizer, error)
}

// Broadcaster pushes serialized messages to the live subscribers of an
// event's forum room. Delivery is at-most-once; nothing is persisted.
type Broadcaster interface {
	Broadcast(eventID, msgType string, payload any)
}

type NoopBroadcaster struct{}

func (NoopBroadcaster) Broadcast(string, string, any) {}
