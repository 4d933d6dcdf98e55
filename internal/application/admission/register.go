package admission

import (
	"context"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

type RegisterCmd struct {
	EventID  string
	ActorID  string
	FormData map[string]any
}

// Register admits a participant to a normal event. The whole
// check-and-create runs under the event's critical section so the capacity
// check and the insert cannot interleave with another admission.
func (s *Service) Register(ctx context.Context, cmd RegisterCmd) (*Admission, error) {
	p, err := s.profiles.ParticipantByUser(ctx, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.acquire(cmd.EventID)
	defer unlock()

	ev, err := s.events.GetByID(ctx, cmd.EventID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if err := checkGates(ev, domain.TypeNormal, p, now); err != nil {
		return nil, err
	}

	if ev.RegLimit > 0 {
		count, err := s.regs.CountByEvent(ctx, ev.ID)
		if err != nil {
			return nil, err
		}
		if count >= ev.RegLimit {
			return nil, domain.ErrConflict("registration limit reached")
		}
	}

	dup, err := s.regs.HasActiveNormal(ctx, ev.ID, p.UserID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, domain.ErrConflict("already registered for this event")
	}

	ticket := domain.NewTicket(ev.ID, p.UserID, now)
	reg := domain.NewNormalRegistration(ev.ID, p.UserID, cmd.FormData, ticket, now)
	if err := s.regs.CreateAdmission(ctx, reg, ticket); err != nil {
		return nil, err
	}

	return &Admission{Registration: reg, Ticket: ticket}, nil
}
