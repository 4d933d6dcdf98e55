package event

import (
	"context"
	"time"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error

	ListPublished(ctx context.Context, page, pageSize int) ([]*domain.Event, int, error)
	ListByOrganizer(ctx context.Context, organizerID string, page, pageSize int) ([]*domain.Event, int, error)
}

// RegistrationReader gives the event service read access to admission state:
// the live count backing the form lock, and the rows behind analytics/export.
type RegistrationReader interface {
	CountByEvent(ctx context.Context, eventID string) (int, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// AnnouncePublisher is the best-effort publish-time announce collaborator.
type AnnouncePublisher interface {
	PublishEvent(ctx context.Context, routingKey string, v any) error
}

type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(context.Context, string, any) error { return nil }
