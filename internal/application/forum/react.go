package forum

import (
	"context"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

func (s *Service) React(ctx context.Context, actor domain.Actor, eventID, messageID, emoji string) (*MessageView, error) {
	acc, err := s.AccessContext(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}
	if !acc.CanParticipate {
		return nil, domain.ErrForbidden("register for the event to join the discussion")
	}

	m, err := s.msgs.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if m.EventID != eventID {
		return nil, domain.ErrNotFound("message not found")
	}

	// The toggle itself runs inside the repo so concurrent reactions from
	// different users never overwrite each other.
	updated, err := s.msgs.ToggleReaction(ctx, messageID, actor.ID, emoji, s.clock.Now())
	if err != nil {
		return nil, err
	}

	view := RenderMessage(updated, actor.ID)
	s.bcast.Broadcast(eventID, MessageUpdated, RenderMessage(updated, ""))
	return &view, nil
}
