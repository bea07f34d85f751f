package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"communityevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventFixture() (*fakeEventRepo, *fakeQREncoder, domain.EventService) {
	events := newFakeEventRepo()
	encoder := &fakeQREncoder{}
	svc := NewEventService(events, encoder, "https://events.example.org", 2*time.Second)
	return events, encoder, svc
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		_, _, svc := newEventFixture()
		date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

		got, err := svc.Create(ctx, "  Spring Social  ", intPtr(80), &date, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "Spring Social", got.Name)
		assert.Equal(t, 80, *got.Capacity)
		assert.NotZero(t, got.ID)
	})

	t.Run("unlimited capacity", func(t *testing.T) {
		_, _, svc := newEventFixture()
		got, err := svc.Create(ctx, "Open Day", nil, nil, nil, nil)
		require.NoError(t, err)
		assert.Nil(t, got.Capacity)
	})

	t.Run("zero capacity is a legal bound", func(t *testing.T) {
		_, _, svc := newEventFixture()
		got, err := svc.Create(ctx, "Volunteers Briefing", intPtr(0), nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, *got.Capacity)
	})

	t.Run("validation", func(t *testing.T) {
		_, _, svc := newEventFixture()

		_, err := svc.Create(ctx, "   ", nil, nil, nil, nil)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))

		_, err = svc.Create(ctx, "Spring Social", intPtr(-1), nil, nil, nil)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("repository error", func(t *testing.T) {
		events, _, svc := newEventFixture()
		events.err = errors.New("db down")

		_, err := svc.Create(ctx, "Spring Social", nil, nil, nil, nil)
		require.Error(t, err)
	})
}

func TestEventService_Update(t *testing.T) {
	ctx := context.Background()
	events, _, svc := newEventFixture()
	event := events.add("Spring Social", intPtr(50))

	got, err := svc.Update(ctx, event.ID, strPtr(" Autumn Social "), intPtr(60), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Autumn Social", got.Name)
	assert.Equal(t, 60, *got.Capacity)

	_, err = svc.Update(ctx, event.ID, strPtr("  "), nil, nil, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = svc.Update(ctx, event.ID, nil, intPtr(-1), nil, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = svc.Update(ctx, 99, strPtr("Autumn Social"), nil, nil, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEventService_GetByID(t *testing.T) {
	ctx := context.Background()
	events, _, svc := newEventFixture()
	event := events.add("Spring Social", nil)

	got, err := svc.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)

	_, err = svc.GetByID(ctx, 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEventService_List(t *testing.T) {
	ctx := context.Background()
	events, _, svc := newEventFixture()

	got, total, err := svc.List(ctx, domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.NotNil(t, got, "an empty list must not be nil")
	assert.Zero(t, total)

	events.add("Spring Social", nil)
	events.add("Winter Gala", nil)
	got, total, err = svc.List(ctx, domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, total)
}

func TestEventService_Delete(t *testing.T) {
	ctx := context.Background()
	events, _, svc := newEventFixture()
	event := events.add("Spring Social", nil)

	require.NoError(t, svc.Delete(ctx, event.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, event.ID), domain.ErrNotFound))
}

func TestEventService_RegistrationQR(t *testing.T) {
	ctx := context.Background()
	events, encoder, svc := newEventFixture()
	event := events.add("Spring Social", nil)

	png, err := svc.RegistrationQR(ctx, event.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	assert.Equal(t, fmt.Sprintf("https://events.example.org/events/%d", event.ID), encoder.lastContent)

	_, err = svc.RegistrationQR(ctx, 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
