package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"communityevents/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, capacity, event_date, starts_at, ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, nullInt(e.Capacity), nullTime(e.Date), nullTime(e.StartsAt), nullTime(e.EndsAt),
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `
		SELECT id, name, capacity, event_date, starts_at, ends_at, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var capNull sql.NullInt64
	var dateNull, startsNull, endsNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &capNull, &dateNull, &startsNull, &endsNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if capNull.Valid {
		c := int(capNull.Int64)
		e.Capacity = &c
	}
	if dateNull.Valid {
		e.Date = &dateNull.Time
	}
	if startsNull.Valid {
		e.StartsAt = &startsNull.Time
	}
	if endsNull.Valid {
		e.EndsAt = &endsNull.Time
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, capacity, event_date, starts_at, ends_at, created_at, updated_at
		FROM events
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var capNull sql.NullInt64
		var dateNull, startsNull, endsNull sql.NullTime
		if err := rows.Scan(&e.ID, &e.Name, &capNull, &dateNull, &startsNull, &endsNull, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if capNull.Valid {
			c := int(capNull.Int64)
			e.Capacity = &c
		}
		if dateNull.Valid {
			e.Date = &dateNull.Time
		}
		if startsNull.Valid {
			e.StartsAt = &startsNull.Time
		}
		if endsNull.Valid {
			e.EndsAt = &endsNull.Time
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id int64, name *string, capacity *int, date, startsAt, endsAt *time.Time) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *name)
		n++
	}
	if capacity != nil {
		setClauses = append(setClauses, fmt.Sprintf("capacity = $%d", n))
		args = append(args, *capacity)
		n++
	}
	if date != nil {
		setClauses = append(setClauses, fmt.Sprintf("event_date = $%d", n))
		args = append(args, *date)
		n++
	}
	if startsAt != nil {
		setClauses = append(setClauses, fmt.Sprintf("starts_at = $%d", n))
		args = append(args, *startsAt)
		n++
	}
	if endsAt != nil {
		setClauses = append(setClauses, fmt.Sprintf("ends_at = $%d", n))
		args = append(args, *endsAt)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING id, name, capacity, event_date, starts_at, ends_at, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)
	e := &domain.Event{}
	var capNull sql.NullInt64
	var dateNull, startsNull, endsNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.Name, &capNull, &dateNull, &startsNull, &endsNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if capNull.Valid {
		c := int(capNull.Int64)
		e.Capacity = &c
	}
	if dateNull.Valid {
		e.Date = &dateNull.Time
	}
	if startsNull.Valid {
		e.StartsAt = &startsNull.Time
	}
	if endsNull.Valid {
		e.EndsAt = &endsNull.Time
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
