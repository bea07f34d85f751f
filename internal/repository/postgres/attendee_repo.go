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

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

const attendeeColumns = `id, event_id, name, email, phone, age_group, postcode, attended, attended_at, waitlisted, created_at`

// Register inserts the attendee with its waitlist flag derived inside one
// transaction. The event row is locked so concurrent registrations serialize
// and the confirmed count can never overshoot the capacity.
func (r *attendeeRepository) Register(ctx context.Context, a *domain.Attendee) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var capNull sql.NullInt64
	err = tx.QueryRowContext(ctx, `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, a.EventID).Scan(&capNull)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	a.Waitlisted = false
	if capNull.Valid {
		var confirmed int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM attendees WHERE event_id = $1 AND waitlisted = FALSE`,
			a.EventID,
		).Scan(&confirmed)
		if err != nil {
			return err
		}
		a.Waitlisted = confirmed >= int(capNull.Int64)
	}

	query := `
		INSERT INTO attendees (event_id, name, email, phone, age_group, postcode, waitlisted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		a.EventID, a.Name, a.Email, nullString(a.Phone), nullString(a.AgeGroup), nullString(a.Postcode),
		a.Waitlisted, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *attendeeRepository) GetByID(ctx context.Context, id int64) (*domain.Attendee, error) {
	query := fmt.Sprintf(`SELECT %s FROM attendees WHERE id = $1`, attendeeColumns)
	a, err := scanAttendee(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *attendeeRepository) ListByEventID(ctx context.Context, eventID int64, waitlisted *bool, params domain.PaginationParams) ([]*domain.Attendee, int, error) {
	where := "event_id = $1"
	countArgs := []interface{}{eventID}
	if waitlisted != nil {
		where += " AND waitlisted = $2"
		countArgs = append(countArgs, *waitlisted)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM attendees WHERE %s`, where), countArgs...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(countArgs)
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendees
		WHERE %s
		ORDER BY created_at ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, attendeeColumns, where, n+1, n+2)
	args := append(countArgs, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	attendees := make([]*domain.Attendee, 0)
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, 0, err
		}
		attendees = append(attendees, a)
	}
	return attendees, total, rows.Err()
}

func (r *attendeeRepository) ListContactsByEventID(ctx context.Context, eventID int64) ([]*domain.Attendee, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendees
		WHERE event_id = $1 AND phone IS NOT NULL
		ORDER BY id ASC
	`, attendeeColumns)
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	attendees := make([]*domain.Attendee, 0)
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *attendeeRepository) UpdateContact(ctx context.Context, id int64, name, email, phone, ageGroup, postcode *string) (*domain.Attendee, error) {
	setClauses := []string{}
	args := []interface{}{}
	n := 1
	if name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *name)
		n++
	}
	if email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", n))
		args = append(args, *email)
		n++
	}
	if phone != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone = $%d", n))
		args = append(args, *phone)
		n++
	}
	if ageGroup != nil {
		setClauses = append(setClauses, fmt.Sprintf("age_group = $%d", n))
		args = append(args, *ageGroup)
		n++
	}
	if postcode != nil {
		setClauses = append(setClauses, fmt.Sprintf("postcode = $%d", n))
		args = append(args, *postcode)
		n++
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE attendees SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, attendeeColumns)
	a, err := scanAttendee(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// SetAttended writes the flag and the timestamp in the same statement so that
// attended and attended_at can never disagree.
func (r *attendeeRepository) SetAttended(ctx context.Context, id int64, attended bool, attendedAt *time.Time) (*domain.Attendee, error) {
	query := fmt.Sprintf(`
		UPDATE attendees SET attended = $1, attended_at = $2
		WHERE id = $3
		RETURNING %s
	`, attendeeColumns)
	a, err := scanAttendee(r.DB.QueryRowContext(ctx, query, attended, nullTime(attendedAt), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *attendeeRepository) SetSignature(ctx context.Context, id int64, signature []byte) error {
	query := `UPDATE attendees SET signature = $1 WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, signature, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *attendeeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM attendees WHERE id = $1`
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

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAttendee(row rowScanner) (*domain.Attendee, error) {
	a := &domain.Attendee{}
	var phoneNull, ageNull, postNull sql.NullString
	var attendedAtNull sql.NullTime
	err := row.Scan(
		&a.ID, &a.EventID, &a.Name, &a.Email, &phoneNull, &ageNull, &postNull,
		&a.Attended, &attendedAtNull, &a.Waitlisted, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if phoneNull.Valid {
		a.Phone = &phoneNull.String
	}
	if ageNull.Valid {
		a.AgeGroup = &ageNull.String
	}
	if postNull.Valid {
		a.Postcode = &postNull.String
	}
	if attendedAtNull.Valid {
		a.AttendedAt = &attendedAtNull.Time
	}
	return a, nil
}
