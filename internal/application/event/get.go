package event

import (
	"context"

	"github.com/felicityfest/felicity-backend/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

func (s *Service) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	if s.cache != nil {
		var cached domain.Event
		hit, err := s.cache.Get(ctx, cacheKeyEventDetails(eventID), &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("event_id", eventID).Msg("cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyEventDetails(eventID), ev, s.ttlDetails); err != nil {
			zlog.Warn().Err(err).Str("event_id", eventID).Msg("cache write failed")
		}
	}
	return ev, nil
}
