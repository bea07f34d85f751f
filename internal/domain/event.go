package domain

import (
	"context"
	"time"
)

// Event represents a chapter event attendees register for.
// Capacity nil means unlimited.
// swagger:model Event
type Event struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Capacity  *int       `json:"capacity"`
	Date      *time.Time `json:"date"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name string, capacity *int, date, startsAt, endsAt *time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:      name,
		Capacity:  capacity,
		Date:      date,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, id int64, name *string, capacity *int, date, startsAt, endsAt *time.Time) (*Event, error)
	Delete(ctx context.Context, id int64) error
}

// EventService defines the business logic for event administration.
type EventService interface {
	Create(ctx context.Context, name string, capacity *int, date, startsAt, endsAt *time.Time) (*Event, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, id int64, name *string, capacity *int, date, startsAt, endsAt *time.Time) (*Event, error)
	Delete(ctx context.Context, id int64) error
	// RegistrationQR renders a PNG QR code of the public registration page URL.
	RegistrationQR(ctx context.Context, id int64) ([]byte, error)
}
