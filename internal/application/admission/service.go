package admission

import (
	"context"
	"fmt"
	"time"

	"github.com/felicityfest/felicity-backend/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type Service struct {
	events   EventStore
	regs     RegistrationRepo
	profiles ProfileStore
	cache    Cache
	clock    Clock

	locks eventLocks
}

func New(events EventStore, regs RegistrationRepo, profiles ProfileStore, cache Cache, clock Clock) *Service {
	return &Service{
		events:   events,
		regs:     regs,
		profiles: profiles,
		cache:    cache,
		clock:    clock,
	}
}

// Admission is the registration/ticket pair created by a successful
// register or purchase.
type Admission struct {
	Registration *domain.Registration
	Ticket       *domain.Ticket
}

// checkGates applies the shared admission gates: event type, stored-status
// guard, deadline, eligibility. Validation happens before any mutation.
func checkGates(ev *domain.Event, want domain.EventType, p *domain.Participant, now time.Time) error {
	if ev.Type != want {
		if want == domain.TypeNormal {
			return domain.ErrValidation("event does not accept registrations")
		}
		return domain.ErrValidation("event does not sell merchandise")
	}
	switch ev.Status {
	case domain.StatusDraft, domain.StatusClosed, domain.StatusCompleted:
		return domain.ErrConflict(fmt.Sprintf("event is %s", ev.Status))
	}
	if ev.RegistrationDeadline == nil || now.After(*ev.RegistrationDeadline) {
		return domain.ErrConflict("registration deadline has passed")
	}
	if !p.Type.Eligible(ev.Eligibility) {
		return domain.ErrForbidden("participant is not eligible for this event")
	}
	return nil
}

func (s *Service) ListMine(ctx context.Context, participantID string) ([]*domain.Registration, error) {
	return s.regs.ListByParticipant(ctx, participantID)
}

func (s *Service) invalidateDetails(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	key := fmt.Sprintf("event:details:%s", eventID)
	if err := s.cache.Delete(ctx, key); err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
	}
}
