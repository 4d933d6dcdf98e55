package forum

import (
	"context"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

// AccessContext computes the capability set for an actor against an event's
// forum:
//   - organizers see only their own events (anything else is a not-found,
//     not a forbidden, so ownership is not probeable);
//   - participants need a profile and never see drafts; participation hinges
//     on a live registration;
//   - every other authenticated role gets read/participate access, no
//     moderation.
func (s *Service) AccessContext(ctx context.Context, actor domain.Actor, eventID string) (*domain.AccessContext, error) {
	switch actor.Role {
	case domain.RoleOrganizer:
		org, err := s.profiles.OrganizerByUser(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		ev, err := s.events.GetByID(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if ev.OrganizerID != org.UserID {
			return nil, domain.ErrNotFound("event not found")
		}
		return &domain.AccessContext{
			Event:          ev,
			CanModerate:    true,
			CanAnnounce:    true,
			CanParticipate: true,
		}, nil

	case domain.RoleParticipant:
		ev, err := s.events.GetByID(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if ev.Status == domain.StatusDraft {
			return nil, domain.ErrNotFound("event not found")
		}
		p, err := s.profiles.ParticipantByUser(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		registered, err := s.regs.HasActiveForEvent(ctx, ev.ID, p.UserID)
		if err != nil {
			return nil, err
		}
		return &domain.AccessContext{
			Event:          ev,
			CanParticipate: registered,
		}, nil

	default:
		ev, err := s.events.GetByID(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return &domain.AccessContext{
			Event:          ev,
			CanParticipate: true,
		}, nil
	}
}

// authorName resolves the display name snapshotted onto a message at post
// time.
func (s *Service) authorName(ctx context.Context, actor domain.Actor) string {
	switch actor.Role {
	case domain.RoleParticipant:
		if p, err := s.profiles.ParticipantByUser(ctx, actor.ID); err == nil {
			return p.FullName
		}
	case domain.RoleOrganizer:
		if o, err := s.profiles.OrganizerByUser(ctx, actor.ID); err == nil {
			return o.Name
		}
	}
	return "Felicity Admin"
}
