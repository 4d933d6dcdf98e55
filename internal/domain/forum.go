package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReactionAlphabet is the closed emoji set a message can be reacted with.
// DefaultVisible rows are always rendered even at zero count so the UI keeps
// its baseline affordances.
var (
	ReactionAlphabet = []string{"👍", "❤️", "😂", "🎉", "😮", "😢"}
	DefaultVisible   = map[string]bool{"👍": true, "❤️": true}
)

const DeletedMessageContent = "This message was deleted"

func ValidEmoji(emoji string) bool {
	for _, e := range ReactionAlphabet {
		if e == emoji {
			return true
		}
	}
	return false
}

type Reaction struct {
	UserID string `json:"user_id"`
	Emoji  string `json:"emoji"`
}

type ForumMessage struct {
	ID      string
	EventID string

	AuthorID   string
	AuthorRole string
	// AuthorName is snapshotted at post time and never re-resolved.
	AuthorName string

	ParentID *string
	Content  string

	IsPinned       bool
	IsAnnouncement bool
	IsDeleted      bool

	Reactions []Reaction

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewForumMessage(eventID string, author Actor, authorName, content string, parentID *string, announcement bool, now time.Time) (*ForumMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" || len([]rune(content)) > 2000 {
		return nil, ErrValidation("content must be 1-2000 characters")
	}
	return &ForumMessage{
		ID:             uuid.NewString(),
		EventID:        eventID,
		AuthorID:       author.ID,
		AuthorRole:     author.Role,
		AuthorName:     authorName,
		ParentID:       parentID,
		Content:        content,
		IsAnnouncement: announcement,
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}, nil
}

// SoftDelete clears the content but keeps the node so replies are not
// orphaned.
func (m *ForumMessage) SoftDelete(now time.Time) {
	m.Content = ""
	m.IsDeleted = true
	m.UpdatedAt = now.UTC()
}

func (m *ForumMessage) TogglePin(now time.Time) {
	m.IsPinned = !m.IsPinned
	m.UpdatedAt = now.UTC()
}

// ToggleReaction applies toggle semantics for (userID, emoji): an existing
// same-emoji entry is removed, otherwise same-emoji duplicates are stripped
// first and a fresh entry appended. Entries for other emojis by the same user
// are left alone. Returns whether the user holds the reaction afterwards.
func (m *ForumMessage) ToggleReaction(userID, emoji string, now time.Time) (bool, error) {
	if m.IsDeleted {
		return false, ErrInvalidState("cannot react to a deleted message")
	}
	if !ValidEmoji(emoji) {
		return false, ErrValidation("unsupported emoji")
	}

	had := false
	kept := m.Reactions[:0]
	for _, r := range m.Reactions {
		if r.UserID == userID && r.Emoji == emoji {
			had = true
			continue
		}
		kept = append(kept, r)
	}
	m.Reactions = kept
	if !had {
		m.Reactions = append(m.Reactions, Reaction{UserID: userID, Emoji: emoji})
	}
	m.UpdatedAt = now.UTC()
	return !had, nil
}

func (m *ForumMessage) HasReaction(userID, emoji string) bool {
	for _, r := range m.Reactions {
		if r.UserID == userID && r.Emoji == emoji {
			return true
		}
	}
	return false
}

func (m *ForumMessage) ReactionCount(emoji string) int {
	n := 0
	for _, r := range m.Reactions {
		if r.Emoji == emoji {
			n++
		}
	}
	return n
}

// AccessContext is the capability set computed per actor per event.
type AccessContext struct {
	Event          *Event
	CanModerate    bool
	CanAnnounce    bool
	CanParticipate bool
}
