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

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	capacity := 120
	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
	}{
		{
			name: "success with capacity",
			event: &domain.Event{
				Name:      "Spring Social",
				Capacity:  &capacity,
				CreatedAt: created,
				UpdatedAt: created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(name, capacity, event_date, starts_at, ends_at, created_at, updated_at\)`).
					WithArgs("Spring Social", sql.NullInt64{Int64: 120, Valid: true}, sql.NullTime{}, sql.NullTime{}, sql.NullTime{}, created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
			},
			wantID:  1,
			wantErr: false,
		},
		{
			name: "success unlimited capacity",
			event: &domain.Event{
				Name:      "Open Day",
				CreatedAt: created,
				UpdatedAt: created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WithArgs("Open Day", sql.NullInt64{}, sql.NullTime{}, sql.NullTime{}, sql.NullTime{}, created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
			},
			wantID:  2,
			wantErr: false,
		},
		{
			name: "db error",
			event: &domain.Event{
				Name:      "Broken",
				CreatedAt: created,
				UpdatedAt: created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantID:  0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 4, 18, 0, 0, 0, 0, time.UTC)

	capacity := 50
	tests := []struct {
		name       string
		id         int64
		mock       func(mock sqlmock.Sqlmock)
		want       *domain.Event
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, capacity, event_date, starts_at, ends_at, created_at, updated_at`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "event_date", "starts_at", "ends_at", "created_at", "updated_at"}).
						AddRow(int64(1), "Spring Social", int64(50), date, nil, nil, created, created))
			},
			want: &domain.Event{
				ID:        1,
				Name:      "Spring Social",
				Capacity:  &capacity,
				Date:      &date,
				CreatedAt: created,
				UpdatedAt: created,
			},
			wantErr: false,
		},
		{
			name: "not found",
			id:   99,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, capacity, event_date, starts_at, ends_at, created_at, updated_at`).
					WithArgs(int64(99)).
					WillReturnError(sql.ErrNoRows)
			},
			want:       nil,
			wantErr:    true,
			isNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	params := domain.PaginationParams{Page: 1, PageSize: 20}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`SELECT id, name, capacity, event_date, starts_at, ends_at, created_at, updated_at`).
			WithArgs(20, 0).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "event_date", "starts_at", "ends_at", "created_at", "updated_at"}).
				AddRow(int64(2), "Open Day", nil, nil, nil, nil, created, created).
				AddRow(int64(1), "Spring Social", int64(50), nil, nil, nil, created, created))

		repo := NewEventRepository(db)
		got, total, err := repo.List(ctx, params)
		require.NoError(t, err)
		require.Equal(t, 2, total)
		require.Len(t, got, 2)
		require.Equal(t, "Open Day", got[0].Name)
		require.Nil(t, got[0].Capacity)
		require.NotNil(t, got[1].Capacity)
		require.Equal(t, 50, *got[1].Capacity)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
			WillReturnError(sql.ErrConnDone)

		repo := NewEventRepository(db)
		got, total, err := repo.List(ctx, params)
		require.Error(t, err)
		require.Nil(t, got)
		require.Zero(t, total)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("updates capacity only", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), capacity = \$1`).
			WithArgs(80, int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "event_date", "starts_at", "ends_at", "created_at", "updated_at"}).
				AddRow(int64(1), "Spring Social", int64(80), nil, nil, nil, created, created))

		capacity := 80
		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, 1, nil, &capacity, nil, nil, nil)
		require.NoError(t, err)
		require.Equal(t, 80, *got.Capacity)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no fields falls back to fetch", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, capacity, event_date, starts_at, ends_at, created_at, updated_at`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "event_date", "starts_at", "ends_at", "created_at", "updated_at"}).
				AddRow(int64(1), "Spring Social", nil, nil, nil, nil, created, created))

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, 1, nil, nil, nil, nil, nil)
		require.NoError(t, err)
		require.Equal(t, "Spring Social", got.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		name := "Renamed"
		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), name = \$1`).
			WithArgs("Renamed", int64(42)).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, 42, &name, nil, nil, nil, nil)
		require.Error(t, err)
		require.True(t, errors.Is(err, domain.ErrNotFound))
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         int64
		mock       func(mock sqlmock.Sqlmock)
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr:    false,
			isNotFound: false,
		},
		{
			name: "not found",
			id:   99,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs(int64(99)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr:    true,
			isNotFound: true,
		},
		{
			name: "db error",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr:    true,
			isNotFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Delete(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
