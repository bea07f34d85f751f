package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"communityevents/internal/domain"
)

type campaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) domain.CampaignRepository {
	return &campaignRepository{
		DB: db,
	}
}

const campaignColumns = `id, kind, message, event_id, status, scheduled_for, sent_at, created_at, updated_at`

func (r *campaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	query := `
		INSERT INTO campaigns (kind, message, event_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var eventID sql.NullInt64
	if c.EventID != nil {
		eventID = sql.NullInt64{Int64: *c.EventID, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		string(c.Kind), c.Message, eventID, string(c.Status), c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
}

func (r *campaignRepository) GetByID(ctx context.Context, id int64) (*domain.Campaign, error) {
	query := fmt.Sprintf(`SELECT %s FROM campaigns WHERE id = $1`, campaignColumns)
	c, err := scanCampaign(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *campaignRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Campaign, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM campaigns`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM campaigns
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, campaignColumns)
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, total, rows.Err()
}

// Schedule transitions draft -> scheduled. The status predicate in the UPDATE
// makes the transition atomic; a zero-row result is disambiguated with a fetch.
func (r *campaignRepository) Schedule(ctx context.Context, id int64, at time.Time) (*domain.Campaign, error) {
	query := fmt.Sprintf(`
		UPDATE campaigns SET status = 'scheduled', scheduled_for = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'draft'
		RETURNING %s
	`, campaignColumns)
	c, err := scanCampaign(r.DB.QueryRowContext(ctx, query, at, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrInvalidState
		}
		return nil, err
	}
	return c, nil
}

// MarkSent transitions draft or scheduled -> sent. Sent is terminal, so an
// already sent campaign yields ErrInvalidState.
func (r *campaignRepository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE campaigns SET status = 'sent', sent_at = $1, updated_at = NOW()
		WHERE id = $2 AND status IN ('draft', 'scheduled')
	`
	result, err := r.DB.ExecContext(ctx, query, at, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return domain.ErrInvalidState
	}
	return nil
}

func (r *campaignRepository) ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]*domain.Campaign, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM campaigns
		WHERE status = 'scheduled' AND scheduled_for <= $1
		ORDER BY scheduled_for ASC
		LIMIT $2
	`, campaignColumns)
	rows, err := r.DB.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// AcquireDispatchLock takes a postgres advisory lock keyed by the campaign ID.
// Advisory locks are session scoped, so the lock is held on a dedicated
// connection that the release func gives back to the pool.
func (r *campaignRepository) AcquireDispatchLock(ctx context.Context, id int64) (release func(), acquired bool, err error) {
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := conn.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, id).Scan(&acquired); err != nil {
		conn.Close()
		return nil, false, err
	}
	if !acquired {
		conn.Close()
		return nil, false, nil
	}
	release = func() {
		// Unlock on the same session; closing the connection would release
		// the lock anyway, the explicit unlock keeps the session reusable.
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, id)
		conn.Close()
	}
	return release, true, nil
}

func (r *campaignRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM campaigns WHERE id = $1 AND status = 'draft'`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return domain.ErrInvalidState
	}
	return nil
}

func scanCampaign(row rowScanner) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	var kind, status string
	var eventIDNull sql.NullInt64
	var scheduledNull, sentNull sql.NullTime
	err := row.Scan(
		&c.ID, &kind, &c.Message, &eventIDNull, &status, &scheduledNull, &sentNull,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Kind = domain.CampaignKind(kind)
	c.Status = domain.CampaignStatus(status)
	if eventIDNull.Valid {
		c.EventID = &eventIDNull.Int64
	}
	if scheduledNull.Valid {
		c.ScheduledFor = &scheduledNull.Time
	}
	if sentNull.Valid {
		c.SentAt = &sentNull.Time
	}
	return c, nil
}
