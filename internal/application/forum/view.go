package forum

import (
	"context"
	"sort"
	"time"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

type ReactionView struct {
	Emoji   string `json:"emoji"`
	Count   int    `json:"count"`
	Reacted bool   `json:"reacted"`
}

type MessageView struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`

	AuthorID   string `json:"author_id"`
	AuthorRole string `json:"author_role"`
	AuthorName string `json:"author_name"`

	ParentID *string `json:"parent_id,omitempty"`
	Content  string  `json:"content"`

	IsPinned       bool `json:"is_pinned"`
	IsAnnouncement bool `json:"is_announcement"`
	IsDeleted      bool `json:"is_deleted"`

	Reactions []ReactionView `json:"reactions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RenderMessage serializes a message relative to the requesting actor.
// Deleted messages always render the fixed placeholder; zero-count reaction
// rows are dropped except for the default-visible subset.
func RenderMessage(m *domain.ForumMessage, requesterID string) MessageView {
	content := m.Content
	if m.IsDeleted {
		content = domain.DeletedMessageContent
	}

	reactions := make([]ReactionView, 0, len(domain.ReactionAlphabet))
	for _, emoji := range domain.ReactionAlphabet {
		count := m.ReactionCount(emoji)
		if count == 0 && !domain.DefaultVisible[emoji] {
			continue
		}
		reactions = append(reactions, ReactionView{
			Emoji:   emoji,
			Count:   count,
			Reacted: requesterID != "" && m.HasReaction(requesterID, emoji),
		})
	}

	return MessageView{
		ID:             m.ID,
		EventID:        m.EventID,
		AuthorID:       m.AuthorID,
		AuthorRole:     m.AuthorRole,
		AuthorName:     m.AuthorName,
		ParentID:       m.ParentID,
		Content:        content,
		IsPinned:       m.IsPinned,
		IsAnnouncement: m.IsAnnouncement,
		IsDeleted:      m.IsDeleted,
		Reactions:      reactions,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// List returns the event's messages ordered pinned-first, then by creation
// time ascending.
func (s *Service) List(ctx context.Context, actor domain.Actor, eventID string) ([]MessageView, error) {
	if _, err := s.AccessContext(ctx, actor, eventID); err != nil {
		return nil, err
	}

	msgs, err := s.msgs.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].IsPinned != msgs[j].IsPinned {
			return msgs[i].IsPinned
		}
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})

	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, RenderMessage(m, actor.ID))
	}
	return out, nil
}
