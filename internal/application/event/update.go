package event

import (
	"context"

	"github.com/felicityfest/felicity-backend/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type UpdateCmd struct {
	ActorID   string
	ActorRole string
	EventID   string

	Update domain.EventUpdate
}

func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Event, error) {
	ev, err := s.repo.GetByID(ctx, cmd.EventID)
	if err != nil {
		return nil, err
	}
	if !canManage(cmd.ActorID, cmd.ActorRole, ev.OrganizerID) {
		return nil, domain.ErrForbidden("not allowed")
	}

	// Form/type locks need the live registration count, never a cached flag.
	regCount := 0
	if cmd.Update.CustomForm != nil || cmd.Update.Type != nil {
		regCount, err = s.regs.CountByEvent(ctx, ev.ID)
		if err != nil {
			return nil, err
		}
	}

	if err := ev.ApplyUpdate(cmd.Update, regCount, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}

	s.invalidateDetails(ctx, ev.ID)
	return ev, nil
}

func (s *Service) invalidateDetails(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	key := cacheKeyEventDetails(eventID)
	if err := s.cache.Delete(ctx, key); err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
	}
}
