package event

import (
	"context"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

func (s *Service) Transition(ctx context.Context, eventID string, target domain.EventStatus, actorID, actorRole string) (*domain.Event, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !canManage(actorID, actorRole, ev.OrganizerID) {
		return nil, domain.ErrForbidden("not allowed")
	}

	if err := ev.Transition(target, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}

	s.invalidateDetails(ctx, ev.ID)
	return ev, nil
}
