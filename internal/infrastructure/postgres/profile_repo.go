package postgres

import (
	"context"
	"database/sql"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) ParticipantByUser(ctx context.Context, userID string) (*domain.Participant, error) {
	var (
		p   domain.Participant
		typ string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, full_name, type FROM participants WHERE user_id=$1`, userID,
	).Scan(&p.UserID, &p.FullName, &typ)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("participant profile not found")
	}
	if err != nil {
		return nil, err
	}
	p.Type = domain.ParticipantType(typ)
	return &p, nil
}

func (r *ProfileRepo) OrganizerByUser(ctx context.Context, userID string) (*domain.Organizer, error) {
	var o domain.Organizer
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, name FROM organizers WHERE user_id=$1`, userID,
	).Scan(&o.UserID, &o.Name)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("organizer profile not found")
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
