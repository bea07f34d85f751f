package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"communityevents/internal/domain"
)

type campaignRecipientRepository struct {
	DB *sql.DB
}

func NewCampaignRecipientRepository(db *sql.DB) domain.CampaignRecipientRepository {
	return &campaignRecipientRepository{
		DB: db,
	}
}

const recipientColumns = `id, campaign_id, phone_number, name, attendee_id, status, sent_at, error, created_at`

// Attach inserts each recipient as pending. The unique index on
// (campaign_id, phone_number) plus ON CONFLICT DO NOTHING dedupes phone
// numbers within the campaign.
func (r *campaignRecipientRepository) Attach(ctx context.Context, campaignID int64, recipients []*domain.CampaignRecipient) (int, error) {
	query := `
		INSERT INTO campaign_recipients (campaign_id, phone_number, name, attendee_id, status, created_at)
		VALUES ($1, $2, $3, $4, 'pending', $5)
		ON CONFLICT (campaign_id, phone_number) DO NOTHING
	`
	inserted := 0
	for _, rec := range recipients {
		var attendeeID sql.NullInt64
		if rec.AttendeeID != nil {
			attendeeID = sql.NullInt64{Int64: *rec.AttendeeID, Valid: true}
		}
		result, err := r.DB.ExecContext(ctx, query,
			campaignID, rec.PhoneNumber, nullString(rec.Name), attendeeID, rec.CreatedAt,
		)
		if err != nil {
			return inserted, err
		}
		if rows, _ := result.RowsAffected(); rows > 0 {
			inserted++
		}
	}
	return inserted, nil
}

func (r *campaignRecipientRepository) ListByCampaignID(ctx context.Context, campaignID int64, status *domain.RecipientStatus) ([]*domain.CampaignRecipient, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM campaign_recipients
		WHERE campaign_id = $1
		ORDER BY id ASC
	`, recipientColumns)
	args := []interface{}{campaignID}
	if status != nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM campaign_recipients
			WHERE campaign_id = $1 AND status = $2
			ORDER BY id ASC
		`, recipientColumns)
		args = append(args, string(*status))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	recipients := make([]*domain.CampaignRecipient, 0)
	for rows.Next() {
		rec, err := scanRecipient(rows)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, rec)
	}
	return recipients, rows.Err()
}

// MarkSent only fires on a pending row, so a recipient already settled by an
// earlier pass is never sent twice.
func (r *campaignRecipientRepository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE campaign_recipients SET status = 'sent', sent_at = $1, error = NULL
		WHERE id = $2 AND status = 'pending'
	`
	result, err := r.DB.ExecContext(ctx, query, at, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidState
	}
	return nil
}

func (r *campaignRecipientRepository) MarkFailed(ctx context.Context, id int64, sendErr string) error {
	query := `
		UPDATE campaign_recipients SET status = 'failed', error = $1
		WHERE id = $2 AND status = 'pending'
	`
	result, err := r.DB.ExecContext(ctx, query, sendErr, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidState
	}
	return nil
}

func (r *campaignRecipientRepository) CountByStatus(ctx context.Context, campaignID int64) (domain.RecipientCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'sent'),
			COUNT(*) FILTER (WHERE status = 'failed')
		FROM campaign_recipients
		WHERE campaign_id = $1
	`
	var counts domain.RecipientCounts
	err := r.DB.QueryRowContext(ctx, query, campaignID).Scan(&counts.Pending, &counts.Sent, &counts.Failed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.RecipientCounts{}, err
	}
	return counts, nil
}

func scanRecipient(row rowScanner) (*domain.CampaignRecipient, error) {
	rec := &domain.CampaignRecipient{}
	var nameNull, errNull sql.NullString
	var attendeeIDNull sql.NullInt64
	var sentNull sql.NullTime
	var status string
	err := row.Scan(
		&rec.ID, &rec.CampaignID, &rec.PhoneNumber, &nameNull, &attendeeIDNull,
		&status, &sentNull, &errNull, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Status = domain.RecipientStatus(status)
	if nameNull.Valid {
		rec.Name = &nameNull.String
	}
	if attendeeIDNull.Valid {
		rec.AttendeeID = &attendeeIDNull.Int64
	}
	if sentNull.Valid {
		rec.SentAt = &sentNull.Time
	}
	if errNull.Valid {
		rec.Error = &errNull.String
	}
	return rec, nil
}
