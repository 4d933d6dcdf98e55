package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

type RegistrationRepo struct {
	db *sql.DB
}

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

func (r *RegistrationRepo) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id=$1`, eventID,
	).Scan(&n)
	return n, err
}

func (r *RegistrationRepo) HasActiveNormal(ctx context.Context, eventID, participantID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM registrations
			WHERE event_id=$1 AND participant_id=$2 AND type='normal' AND status != 'cancelled'
		)`, eventID, participantID,
	).Scan(&exists)
	return exists, err
}

// HasActiveForEvent reports whether the participant holds any non-cancelled
// registration for the event, regardless of type.
func (r *RegistrationRepo) HasActiveForEvent(ctx context.Context, eventID, participantID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM registrations
			WHERE event_id=$1 AND participant_id=$2 AND status != 'cancelled'
		)`, eventID, participantID,
	).Scan(&exists)
	return exists, err
}

func (r *RegistrationRepo) CreateAdmission(ctx context.Context, reg *domain.Registration, ticket *domain.Ticket) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, insertTicketSQL,
		ticket.ID, ticket.EventID, ticket.ParticipantID,
		ticket.Code, ticket.QRPayload, string(ticket.Status), ticket.CreatedAt,
	)
	if err != nil {
		return err
	}

	formData, err := json.Marshal(reg.FormData)
	if err != nil {
		return err
	}
	orderLines, err := json.Marshal(reg.Order)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, insertRegistrationSQL,
		reg.ID, reg.EventID, reg.ParticipantID, reg.TicketID,
		string(reg.Type), string(reg.Status),
		formData, orderLines, reg.Attended, reg.TeamComplete,
		reg.CreatedAt, reg.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE event_id=$1 ORDER BY created_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

func (r *RegistrationRepo) ListByParticipant(ctx context.Context, participantID string) ([]*domain.Registration, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE participant_id=$1 ORDER BY created_at DESC`,
		participantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

func collectRegistrations(rows *sql.Rows) ([]*domain.Registration, error) {
	var out []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	var (
		reg                  domain.Registration
		typ, st              string
		formData, orderLines []byte
	)
	err := row.Scan(
		&reg.ID, &reg.EventID, &reg.ParticipantID, &reg.TicketID,
		&typ, &st,
		&formData, &orderLines, &reg.Attended, &reg.TeamComplete,
		&reg.CreatedAt, &reg.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("registration not found")
	}
	if err != nil {
		return nil, err
	}
	reg.Type = domain.EventType(typ)
	reg.Status = domain.RegistrationStatus(st)
	if len(formData) > 0 {
		if err := json.Unmarshal(formData, &reg.FormData); err != nil {
			return nil, err
		}
	}
	if len(orderLines) > 0 {
		if err := json.Unmarshal(orderLines, &reg.Order); err != nil {
			return nil, err
		}
	}
	return &reg, nil
}
