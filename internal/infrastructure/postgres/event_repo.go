package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	form, catalog, err := marshalEmbedded(e)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertEventSQL,
		e.ID, e.OrganizerID, e.Name, e.Description, e.Category,
		string(e.Type), string(e.Status), string(e.Eligibility),
		e.RegistrationDeadline, e.StartTime, e.EndTime, e.RegLimit, e.Fee,
		form, catalog, e.PublishedAt, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return scanEvent(r.db.QueryRowContext(ctx, getEventSQL, id))
}

func (r *EventRepo) Update(ctx context.Context, e *domain.Event) error {
	form, catalog, err := marshalEmbedded(e)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, updateEventSQL,
		e.ID,
		e.Name, e.Description, e.Category,
		string(e.Type), string(e.Status), string(e.Eligibility),
		e.RegistrationDeadline, e.StartTime, e.EndTime, e.RegLimit, e.Fee,
		form, catalog, e.PublishedAt, e.UpdatedAt,
	)
	return err
}

func (r *EventRepo) ListPublished(ctx context.Context, page, pageSize int) ([]*domain.Event, int, error) {
	offset := (page - 1) * pageSize

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE status != 'draft'`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE status != 'draft' ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		pageSize, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := collectEvents(rows)
	return out, total, err
}

func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID string, page, pageSize int) ([]*domain.Event, int, error) {
	offset := (page - 1) * pageSize

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE organizer_id=$1`, organizerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE organizer_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		organizerID, pageSize, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := collectEvents(rows)
	return out, total, err
}

func collectEvents(rows *sql.Rows) ([]*domain.Event, error) {
	var out []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var (
		e             domain.Event
		typ, st, elig string
		form, catalog []byte
	)
	err := row.Scan(
		&e.ID, &e.OrganizerID, &e.Name, &e.Description, &e.Category,
		&typ, &st, &elig,
		&e.RegistrationDeadline, &e.StartTime, &e.EndTime, &e.RegLimit, &e.Fee,
		&form, &catalog, &e.PublishedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, err
	}
	e.Type = domain.EventType(typ)
	e.Status = domain.EventStatus(st)
	e.Eligibility = domain.Eligibility(elig)
	if !e.Status.Valid() {
		return nil, domain.ErrInvalidState("invalid status in db")
	}
	if len(form) > 0 {
		if err := json.Unmarshal(form, &e.CustomForm); err != nil {
			return nil, err
		}
	}
	if len(catalog) > 0 {
		if err := json.Unmarshal(catalog, &e.Merchandise); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

func marshalEmbedded(e *domain.Event) ([]byte, []byte, error) {
	form, err := json.Marshal(e.CustomForm)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := json.Marshal(e.Merchandise)
	if err != nil {
		return nil, nil, err
	}
	return form, catalog, nil
}
