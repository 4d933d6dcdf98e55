package forum

import (
	"context"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

type PostCmd struct {
	EventID         string
	Actor           domain.Actor
	Content         string
	ParentMessageID *string
	IsAnnouncement  bool
}

func (s *Service) Post(ctx context.Context, cmd PostCmd) (*MessageView, error) {
	acc, err := s.AccessContext(ctx, cmd.Actor, cmd.EventID)
	if err != nil {
		return nil, err
	}
	if !acc.CanParticipate {
		return nil, domain.ErrForbidden("register for the event to join the discussion")
	}
	if cmd.IsAnnouncement && !acc.CanAnnounce {
		return nil, domain.ErrForbidden("only the organizer can post announcements")
	}

	if cmd.ParentMessageID != nil {
		parent, err := s.msgs.GetByID(ctx, *cmd.ParentMessageID)
		if err != nil {
			return nil, err
		}
		if parent.EventID != cmd.EventID {
			return nil, domain.ErrNotFound("parent message not found")
		}
	}

	name := s.authorName(ctx, cmd.Actor)
	m, err := domain.NewForumMessage(cmd.EventID, cmd.Actor, name, cmd.Content, cmd.ParentMessageID, cmd.IsAnnouncement, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.msgs.Create(ctx, m); err != nil {
		return nil, err
	}

	view := RenderMessage(m, cmd.Actor.ID)
	s.bcast.Broadcast(cmd.EventID, MessageCreated, RenderMessage(m, ""))
	return &view, nil
}
