package admission

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
	Update(ctx context.Context, e *domain.Event) error
}

type RegistrationRepo interface {
	// CountByEvent counts every registration for the event, cancelled
	// included. A cancelled spot does not reopen under the limit.
	CountByEvent(ctx context.Context, eventID string) (int, error)
	HasActiveNormal(ctx context.Context, eventID, participantID string) (bool, error)

	// CreateAdmission persists the registration and its ticket in one
	// transaction; they are co-created, never standalone.
	CreateAdmission(ctx context.Context, reg *domain.Registration, ticket *domain.Ticket) error

	ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
	ListByParticipant(ctx context.Context, participantID string) ([]*domain.Registration, error)
}

// ProfileStore resolves participant profiles; profile CRUD lives outside this
// core.
type ProfileStore interface {
	ParticipantByUser(ctx context.Context, userID string) (*domain.Participant, error)
}

type Cache interface {
	Delete(ctx context.Context, keys ...string) error
}
