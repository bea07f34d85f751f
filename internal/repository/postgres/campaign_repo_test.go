package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"communityevents/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var campaignCols = []string{"id", "kind", "message", "event_id", "status", "scheduled_for", "sent_at", "created_at", "updated_at"}

func TestCampaignRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("event campaign", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		eventID := int64(1)
		c := domain.NewCampaign(domain.CampaignKindEvent, "See you Saturday!", &eventID, created, created)
		mock.ExpectQuery(`INSERT INTO campaigns \(kind, message, event_id, status, created_at, updated_at\)`).
			WithArgs("event", "See you Saturday!", sql.NullInt64{Int64: 1, Valid: true}, "draft", created, created).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		repo := NewCampaignRepository(db)
		require.NoError(t, repo.Create(ctx, c))
		require.Equal(t, int64(7), c.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("announcement has no event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		c := domain.NewCampaign(domain.CampaignKindAnnouncement, "AGM moved to May", nil, created, created)
		mock.ExpectQuery(`INSERT INTO campaigns`).
			WithArgs("announcement", "AGM moved to May", sql.NullInt64{}, "draft", created, created).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))

		repo := NewCampaignRepository(db)
		require.NoError(t, repo.Create(ctx, c))
		require.Equal(t, int64(8), c.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCampaignRepository_Schedule(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	at := time.Date(2026, 4, 17, 10, 0, 0, 0, time.UTC)

	t.Run("draft becomes scheduled", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE campaigns SET status = 'scheduled', scheduled_for = \$1, updated_at = NOW\(\)`).
			WithArgs(at, int64(7)).
			WillReturnRows(sqlmock.NewRows(campaignCols).
				AddRow(int64(7), "event", "See you Saturday!", int64(1), "scheduled", at, nil, created, created))

		repo := NewCampaignRepository(db)
		got, err := repo.Schedule(ctx, 7, at)
		require.NoError(t, err)
		require.Equal(t, domain.CampaignStatusScheduled, got.Status)
		require.Equal(t, at, *got.ScheduledFor)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already sent is invalid state", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		sentAt := created.Add(time.Hour)
		mock.ExpectQuery(`UPDATE campaigns SET status = 'scheduled'`).
			WithArgs(at, int64(7)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`SELECT id, kind, message, event_id, status, scheduled_for, sent_at, created_at, updated_at`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(campaignCols).
				AddRow(int64(7), "event", "See you Saturday!", int64(1), "sent", nil, sentAt, created, created))

		repo := NewCampaignRepository(db)
		got, err := repo.Schedule(ctx, 7, at)
		require.True(t, errors.Is(err, domain.ErrInvalidState))
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing campaign is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE campaigns SET status = 'scheduled'`).
			WithArgs(at, int64(99)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`SELECT id, kind, message, event_id, status, scheduled_for, sent_at, created_at, updated_at`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		repo := NewCampaignRepository(db)
		got, err := repo.Schedule(ctx, 99, at)
		require.True(t, errors.Is(err, domain.ErrNotFound))
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCampaignRepository_MarkSent(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	at := time.Date(2026, 4, 18, 19, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE campaigns SET status = 'sent', sent_at = \$1, updated_at = NOW\(\)`).
			WithArgs(at, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewCampaignRepository(db)
		require.NoError(t, repo.MarkSent(ctx, 7, at))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already sent is invalid state", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE campaigns SET status = 'sent'`).
			WithArgs(at, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT id, kind, message, event_id, status, scheduled_for, sent_at, created_at, updated_at`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(campaignCols).
				AddRow(int64(7), "event", "msg", nil, "sent", nil, at, created, created))

		repo := NewCampaignRepository(db)
		err = repo.MarkSent(ctx, 7, at)
		require.True(t, errors.Is(err, domain.ErrInvalidState))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCampaignRepository_ListDueScheduled(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 4, 17, 10, 30, 0, 0, time.UTC)
	due := now.Add(-10 * time.Minute)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE status = 'scheduled' AND scheduled_for <= \$1`).
		WithArgs(now, 10).
		WillReturnRows(sqlmock.NewRows(campaignCols).
			AddRow(int64(7), "event", "See you Saturday!", int64(1), "scheduled", due, nil, created, created))

	repo := NewCampaignRepository(db)
	got, err := repo.ListDueScheduled(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(7), got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepository_AcquireDispatchLock(t *testing.T) {
	ctx := context.Background()

	t.Run("acquired then released", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT pg_try_advisory_lock\(\$1\)`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(true))
		mock.ExpectExec(`SELECT pg_advisory_unlock\(\$1\)`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewCampaignRepository(db)
		release, acquired, err := repo.AcquireDispatchLock(ctx, 7)
		require.NoError(t, err)
		require.True(t, acquired)
		require.NotNil(t, release)
		release()
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("held elsewhere", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT pg_try_advisory_lock\(\$1\)`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(false))

		repo := NewCampaignRepository(db)
		release, acquired, err := repo.AcquireDispatchLock(ctx, 7)
		require.NoError(t, err)
		require.False(t, acquired)
		require.Nil(t, release)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCampaignRepository_Delete(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("draft deleted", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM campaigns WHERE id = \$1 AND status = 'draft'`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewCampaignRepository(db)
		require.NoError(t, repo.Delete(ctx, 7))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sent campaign is invalid state", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM campaigns WHERE id = \$1 AND status = 'draft'`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT id, kind, message, event_id, status, scheduled_for, sent_at, created_at, updated_at`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(campaignCols).
				AddRow(int64(7), "event", "msg", nil, "sent", nil, created, created, created))

		repo := NewCampaignRepository(db)
		err = repo.Delete(ctx, 7)
		require.True(t, errors.Is(err, domain.ErrInvalidState))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
