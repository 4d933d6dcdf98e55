package event

import (
	"context"

	"github.com/felicityfest/felicity-backend/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

func (s *Service) Publish(ctx context.Context, eventID, actorID, actorRole string) (*domain.Event, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !canManage(actorID, actorRole, ev.OrganizerID) {
		return nil, domain.ErrForbidden("not allowed")
	}

	if err := ev.Publish(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}

	s.invalidateDetails(ctx, ev.ID)

	// Announce is best-effort: a delivery failure never fails the publish.
	if s.pub != nil {
		env := AnnounceEnvelope[EventPublishedPayload]{
			Version:    EnvelopeVersion,
			Producer:   EnvelopeProducer,
			TraceID:    TraceIDFromContext(ctx),
			OccurredAt: *ev.PublishedAt,
			Payload: EventPublishedPayload{
				EventID:     ev.ID,
				OrganizerID: ev.OrganizerID,
				Name:        ev.Name,
				Type:        string(ev.Type),
				Category:    ev.Category,
				Eligibility: string(ev.Eligibility),
				StartTime:   ev.StartTime,
				EndTime:     ev.EndTime,
				Deadline:    ev.RegistrationDeadline,
			},
		}
		if err := s.pub.PublishEvent(ctx, RouteEventPublished, env); err != nil {
			zlog.Error().
				Err(err).
				Str("rk", RouteEventPublished).
				Str("event_id", ev.ID).
				Msg("announce publish failed")
		}
	}

	return ev, nil
}
