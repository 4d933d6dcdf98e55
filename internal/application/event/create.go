package event

import (
	"context"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

type CreateCmd struct {
	ActorID   string
	ActorRole string

	Name string
	Type domain.EventType
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Event, error) {
	if !isOrganizer(cmd.ActorRole) && !isAdmin(cmd.ActorRole) {
		return nil, domain.ErrForbidden("only organizers can create events")
	}
	e, err := domain.NewDraft(cmd.ActorID, cmd.Name, cmd.Type, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
