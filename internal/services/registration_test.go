package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"communityevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[int64]*domain.Event
	nextID int64
	err    error // if set, Create returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[int64]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) add(name string, capacity *int) *domain.Event {
	e := &domain.Event{ID: f.nextID, Name: name, Capacity: capacity, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.byID[e.ID] = e
	f.nextID++
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = f.nextID
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id int64, name *string, capacity *int, date, startsAt, endsAt *time.Time) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if name != nil {
		e.Name = *name
	}
	if capacity != nil {
		e.Capacity = capacity
	}
	if date != nil {
		e.Date = date
	}
	if startsAt != nil {
		e.StartsAt = startsAt
	}
	if endsAt != nil {
		e.EndsAt = endsAt
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeAttendeeRepo is an in-memory AttendeeRepository. Register mirrors the
// real repository's capacity check against the linked fakeEventRepo.
type fakeAttendeeRepo struct {
	events      *fakeEventRepo
	byID        map[int64]*domain.Attendee
	nextID      int64
	registerErr error
	setErr      error
}

func newFakeAttendeeRepo(events *fakeEventRepo) *fakeAttendeeRepo {
	return &fakeAttendeeRepo{
		events: events,
		byID:   make(map[int64]*domain.Attendee),
		nextID: 1,
	}
}

func (f *fakeAttendeeRepo) Register(ctx context.Context, a *domain.Attendee) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	event, ok := f.events.byID[a.EventID]
	if !ok {
		return domain.ErrNotFound
	}
	a.Waitlisted = false
	if event.Capacity != nil {
		confirmed := 0
		for _, existing := range f.byID {
			if existing.EventID == a.EventID && !existing.Waitlisted {
				confirmed++
			}
		}
		a.Waitlisted = confirmed >= *event.Capacity
	}
	a.ID = f.nextID
	f.nextID++
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAttendeeRepo) GetByID(ctx context.Context, id int64) (*domain.Attendee, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAttendeeRepo) ListByEventID(ctx context.Context, eventID int64, waitlisted *bool, params domain.PaginationParams) ([]*domain.Attendee, int, error) {
	out := []*domain.Attendee{}
	for _, a := range f.byID {
		if a.EventID != eventID {
			continue
		}
		if waitlisted != nil && a.Waitlisted != *waitlisted {
			continue
		}
		out = append(out, a)
	}
	return out, len(out), nil
}

func (f *fakeAttendeeRepo) ListContactsByEventID(ctx context.Context, eventID int64) ([]*domain.Attendee, error) {
	out := []*domain.Attendee{}
	for id := int64(1); id < f.nextID; id++ {
		a, ok := f.byID[id]
		if !ok {
			continue
		}
		if a.EventID == eventID && a.Phone != nil {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttendeeRepo) UpdateContact(ctx context.Context, id int64, name, email, phone, ageGroup, postcode *string) (*domain.Attendee, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if name != nil {
		a.Name = *name
	}
	if email != nil {
		a.Email = *email
	}
	if phone != nil {
		a.Phone = phone
	}
	if ageGroup != nil {
		a.AgeGroup = ageGroup
	}
	if postcode != nil {
		a.Postcode = postcode
	}
	return a, nil
}

func (f *fakeAttendeeRepo) SetAttended(ctx context.Context, id int64, attended bool, attendedAt *time.Time) (*domain.Attendee, error) {
	if f.setErr != nil {
		return nil, f.setErr
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.Attended = attended
	a.AttendedAt = attendedAt
	return a, nil
}

func (f *fakeAttendeeRepo) SetSignature(ctx context.Context, id int64, signature []byte) error {
	a, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Signature = signature
	return nil
}

func (f *fakeAttendeeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeEmailService records confirmations instead of sending them.
type fakeEmailService struct {
	sent []*domain.RegistrationConfirmationData
	err  error
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakeQREncoder records the last encoded content.
type fakeQREncoder struct {
	lastContent string
	png         []byte
	err         error
}

func (f *fakeQREncoder) EncodePNG(content string, size int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastContent = content
	if f.png != nil {
		return f.png, nil
	}
	return []byte("png:" + content), nil
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func newRegistrationFixture() (*fakeEventRepo, *fakeAttendeeRepo, *fakeEmailService, domain.RegistrationService) {
	events := newFakeEventRepo()
	attendees := newFakeAttendeeRepo(events)
	emails := &fakeEmailService{}
	svc := NewRegistrationService(events, attendees, emails, 2*time.Second)
	return events, attendees, emails, svc
}

func TestRegistrationService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed while capacity remains", func(t *testing.T) {
		events, _, emails, svc := newRegistrationFixture()
		event := events.add("Spring Social", intPtr(2))

		got, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Alice", Email: "Alice@Example.com", Phone: strPtr("+61400000001")})
		require.NoError(t, err)
		assert.False(t, got.Waitlisted)
		assert.Equal(t, "alice@example.com", got.Email)
		require.Len(t, emails.sent, 1)
		assert.Equal(t, "Spring Social", emails.sent[0].EventName)
		assert.False(t, emails.sent[0].Waitlisted)
	})

	t.Run("waitlisted when the event is full", func(t *testing.T) {
		events, _, emails, svc := newRegistrationFixture()
		event := events.add("Spring Social", intPtr(2))

		a, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Alice", Email: "a@example.com", Phone: strPtr("+61400000001")})
		require.NoError(t, err)
		b, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Bob", Email: "b@example.com", Phone: strPtr("+61400000002")})
		require.NoError(t, err)
		c, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Carol", Email: "c@example.com", Phone: strPtr("+61400000003")})
		require.NoError(t, err)

		assert.False(t, a.Waitlisted)
		assert.False(t, b.Waitlisted)
		assert.True(t, c.Waitlisted)
		require.Len(t, emails.sent, 3)
		assert.True(t, emails.sent[2].Waitlisted)
	})

	t.Run("unlimited capacity never waitlists", func(t *testing.T) {
		events, _, _, svc := newRegistrationFixture()
		event := events.add("Open Day", nil)

		for i := 0; i < 5; i++ {
			got, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Guest", Email: "g@example.com", Phone: strPtr("+61400000004")})
			require.NoError(t, err)
			assert.False(t, got.Waitlisted)
		}
	})

	t.Run("validation", func(t *testing.T) {
		events, _, _, svc := newRegistrationFixture()
		event := events.add("Spring Social", nil)

		_, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "  ", Email: "a@example.com", Phone: strPtr("+61400000001")})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))

		_, err = svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Alice", Email: "not-an-email", Phone: strPtr("+61400000001")})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("phone is required", func(t *testing.T) {
		events, attendees, _, svc := newRegistrationFixture()
		event := events.add("Spring Social", nil)

		_, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Alice", Email: "a@example.com"})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))

		_, err = svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Alice", Email: "a@example.com", Phone: strPtr("   ")})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))

		stored, _, err := attendees.ListByEventID(ctx, event.ID, nil, domain.PaginationParams{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Empty(t, stored)

		got, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Alice", Email: "a@example.com", Phone: strPtr(" +61400000001 ")})
		require.NoError(t, err)
		assert.Equal(t, "+61400000001", *got.Phone)
	})

	t.Run("zero capacity waitlists everyone", func(t *testing.T) {
		events, _, _, svc := newRegistrationFixture()
		event := events.add("Volunteers Briefing", intPtr(0))

		got, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Alice", Email: "a@example.com", Phone: strPtr("+61400000001")})
		require.NoError(t, err)
		assert.True(t, got.Waitlisted)
	})

	t.Run("event missing", func(t *testing.T) {
		_, _, _, svc := newRegistrationFixture()
		_, err := svc.Register(ctx, 99, domain.NewRegistration{Name: "Alice", Email: "a@example.com", Phone: strPtr("+61400000001")})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("mail failure does not fail the registration", func(t *testing.T) {
		events, _, emails, svc := newRegistrationFixture()
		emails.err = errors.New("ses unavailable")
		event := events.add("Spring Social", nil)

		got, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Alice", Email: "a@example.com", Phone: strPtr("+61400000001")})
		require.NoError(t, err)
		assert.NotZero(t, got.ID)
	})
}

func TestRegistrationService_UpdateContact(t *testing.T) {
	ctx := context.Background()

	t.Run("success normalizes email", func(t *testing.T) {
		events, _, _, svc := newRegistrationFixture()
		event := events.add("Spring Social", nil)
		a, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Alice", Email: "a@example.com", Phone: strPtr("+61400000001")})
		require.NoError(t, err)

		got, err := svc.UpdateContact(ctx, a.ID, nil, strPtr(" New@Example.com "), strPtr("+61400000009"), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", got.Email)
		assert.Equal(t, "+61400000009", *got.Phone)
		assert.Equal(t, "Alice", got.Name)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		events, _, _, svc := newRegistrationFixture()
		event := events.add("Spring Social", nil)
		a, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Alice", Email: "a@example.com", Phone: strPtr("+61400000001")})
		require.NoError(t, err)

		_, err = svc.UpdateContact(ctx, a.ID, nil, strPtr("nope"), nil, nil, nil)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("not found", func(t *testing.T) {
		_, _, _, svc := newRegistrationFixture()
		_, err := svc.UpdateContact(ctx, 99, strPtr("Alice"), nil, nil, nil, nil)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestRegistrationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting a confirmed attendee promotes nobody", func(t *testing.T) {
		events, attendees, _, svc := newRegistrationFixture()
		event := events.add("Spring Social", intPtr(1))

		a, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Alice", Email: "a@example.com", Phone: strPtr("+61400000001")})
		require.NoError(t, err)
		b, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Bob", Email: "b@example.com", Phone: strPtr("+61400000002")})
		require.NoError(t, err)
		require.True(t, b.Waitlisted)

		require.NoError(t, svc.Delete(ctx, a.ID))

		after, err := attendees.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.True(t, after.Waitlisted, "waitlisted attendee must stay waitlisted")
	})

	t.Run("not found", func(t *testing.T) {
		_, _, _, svc := newRegistrationFixture()
		err := svc.Delete(ctx, 99)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestRegistrationService_SaveSignature(t *testing.T) {
	ctx := context.Background()
	events, attendees, _, svc := newRegistrationFixture()
	event := events.add("Spring Social", nil)
	a, err := svc.Register(ctx, event.ID, domain.NewRegistration{Name: "Alice", Email: "a@example.com", Phone: strPtr("+61400000001")})
	require.NoError(t, err)

	require.Error(t, svc.SaveSignature(ctx, a.ID, nil))

	sig := []byte{0x89, 0x50}
	require.NoError(t, svc.SaveSignature(ctx, a.ID, sig))
	stored, err := attendees.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, sig, stored.Signature)
}
