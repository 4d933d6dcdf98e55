package forum

import (
	"context"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

func (s *Service) moderated(ctx context.Context, actor domain.Actor, eventID, messageID string) (*domain.ForumMessage, error) {
	acc, err := s.AccessContext(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}
	if !acc.CanModerate {
		return nil, domain.ErrForbidden("moderation requires organizer access")
	}
	m, err := s.msgs.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if m.EventID != eventID {
		return nil, domain.ErrNotFound("message not found")
	}
	return m, nil
}

func (s *Service) Pin(ctx context.Context, actor domain.Actor, eventID, messageID string) (*MessageView, error) {
	m, err := s.moderated(ctx, actor, eventID, messageID)
	if err != nil {
		return nil, err
	}
	m.TogglePin(s.clock.Now())
	if err := s.msgs.Update(ctx, m); err != nil {
		return nil, err
	}
	view := RenderMessage(m, actor.ID)
	s.bcast.Broadcast(eventID, MessageUpdated, RenderMessage(m, ""))
	return &view, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, eventID, messageID string) (*MessageView, error) {
	m, err := s.moderated(ctx, actor, eventID, messageID)
	if err != nil {
		return nil, err
	}
	m.SoftDelete(s.clock.Now())
	if err := s.msgs.Update(ctx, m); err != nil {
		return nil, err
	}
	view := RenderMessage(m, actor.ID)
	s.bcast.Broadcast(eventID, MessageUpdated, RenderMessage(m, ""))
	return &view, nil
}
