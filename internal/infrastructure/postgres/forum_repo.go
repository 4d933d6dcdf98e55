package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

type ForumRepo struct {
	db *sql.DB
}

func NewForumRepo(db *sql.DB) *ForumRepo { return &ForumRepo{db: db} }

func (r *ForumRepo) Create(ctx context.Context, m *domain.ForumMessage) error {
	reactions, err := json.Marshal(m.Reactions)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertMessageSQL,
		m.ID, m.EventID, m.AuthorID, m.AuthorRole, m.AuthorName, m.ParentID, m.Content,
		m.IsPinned, m.IsAnnouncement, m.IsDeleted, reactions, m.CreatedAt, m.UpdatedAt,
	)
	return err
}

func (r *ForumRepo) GetByID(ctx context.Context, id string) (*domain.ForumMessage, error) {
	return scanMessage(r.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM forum_messages WHERE id=$1`, id,
	))
}

func (r *ForumRepo) Update(ctx context.Context, m *domain.ForumMessage) error {
	reactions, err := json.Marshal(m.Reactions)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, updateMessageSQL,
		m.ID, m.Content, m.IsPinned, m.IsAnnouncement, m.IsDeleted, reactions, m.UpdatedAt,
	)
	return err
}

// ToggleReaction re-reads the row under FOR UPDATE inside a transaction so
// concurrent toggles from different users all land.
func (r *ForumRepo) ToggleReaction(ctx context.Context, messageID, userID, emoji string, now time.Time) (*domain.ForumMessage, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	m, err := scanMessage(tx.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM forum_messages WHERE id=$1 FOR UPDATE`, messageID,
	))
	if err != nil {
		return nil, err
	}
	if _, err := m.ToggleReaction(userID, emoji, now); err != nil {
		return nil, err
	}
	reactions, err := json.Marshal(m.Reactions)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx, updateMessageSQL,
		m.ID, m.Content, m.IsPinned, m.IsAnnouncement, m.IsDeleted, reactions, m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *ForumRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.ForumMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM forum_messages WHERE event_id=$1 ORDER BY created_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ForumMessage
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMessage(row rowScanner) (*domain.ForumMessage, error) {
	var (
		m         domain.ForumMessage
		reactions []byte
	)
	err := row.Scan(
		&m.ID, &m.EventID, &m.AuthorID, &m.AuthorRole, &m.AuthorName, &m.ParentID, &m.Content,
		&m.IsPinned, &m.IsAnnouncement, &m.IsDeleted, &reactions, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("message not found")
	}
	if err != nil {
		return nil, err
	}
	if len(reactions) > 0 {
		if err := json.Unmarshal(reactions, &m.Reactions); err != nil {
			return nil, err
		}
	}
	return &m, nil
}
