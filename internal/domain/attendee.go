package domain

import (
	"context"
	"time"
)

// Attendee represents a person registered for an event.
// Attended and AttendedAt always move together: Attended is true exactly when
// AttendedAt is non-nil.
// swagger:model Attendee
type Attendee struct {
	ID         int64      `json:"id"`
	EventID    int64      `json:"event_id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      *string    `json:"phone"`
	AgeGroup   *string    `json:"age_group"`
	Postcode   *string    `json:"postcode"`
	Attended   bool       `json:"attended"`
	AttendedAt *time.Time `json:"attended_at"`
	Waitlisted bool       `json:"waitlisted"`
	Signature  []byte     `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewAttendee returns a new Attendee for the given event. ID and Waitlisted are
// set by the repository on registration.
func NewAttendee(eventID int64, name, email string, phone, ageGroup, postcode *string, createdAt time.Time) *Attendee {
	return &Attendee{
		EventID:   eventID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		AgeGroup:  ageGroup,
		Postcode:  postcode,
		CreatedAt: createdAt,
	}
}

// AttendeeRepository defines storage operations for attendees.
type AttendeeRepository interface {
	// Register inserts the attendee inside a single transaction that locks the
	// event row, counts confirmed attendees, and derives Waitlisted from the
	// event capacity. It sets ID and Waitlisted on the given attendee.
	Register(ctx context.Context, attendee *Attendee) error
	GetByID(ctx context.Context, id int64) (*Attendee, error)
	ListByEventID(ctx context.Context, eventID int64, waitlisted *bool, params PaginationParams) ([]*Attendee, int, error)
	// ListContactsByEventID returns the event's attendees that have a phone number.
	ListContactsByEventID(ctx context.Context, eventID int64) ([]*Attendee, error)
	UpdateContact(ctx context.Context, id int64, name, email, phone, ageGroup, postcode *string) (*Attendee, error)
	// SetAttended writes the attended flag and its timestamp in one statement.
	SetAttended(ctx context.Context, id int64, attended bool, attendedAt *time.Time) (*Attendee, error)
	SetSignature(ctx context.Context, id int64, signature []byte) error
	Delete(ctx context.Context, id int64) error
}

// NewRegistration is the input for registering an attendee.
type NewRegistration struct {
	Name     string
	Email    string
	Phone    *string
	AgeGroup *string
	Postcode *string
}

// RegistrationService defines attendee registration and administration.
type RegistrationService interface {
	// Register creates an attendee for the event, waitlisting when the event
	// is at capacity. A confirmation email is sent best-effort.
	Register(ctx context.Context, eventID int64, reg NewRegistration) (*Attendee, error)
	GetByID(ctx context.Context, id int64) (*Attendee, error)
	ListByEvent(ctx context.Context, eventID int64, waitlisted *bool, params PaginationParams) ([]*Attendee, int, error)
	UpdateContact(ctx context.Context, id int64, name, email, phone, ageGroup, postcode *string) (*Attendee, error)
	SaveSignature(ctx context.Context, id int64, signature []byte) error
	// Delete removes the attendee. Nobody is promoted off the waitlist.
	Delete(ctx context.Context, id int64) error
}

// CheckinService drives attendance marking, by ID or by scanned QR token.
type CheckinService interface {
	SetAttended(ctx context.Context, attendeeID int64, attended bool) (*Attendee, error)
	// Toggle flips the current attended flag. Concurrent toggles are
	// last-writer-wins.
	Toggle(ctx context.Context, attendeeID int64) (*Attendee, error)
	// CheckInByQR resolves a scanned token and marks the attendee as attended.
	// The token's event must match both the attendee's record and the event
	// being scanned.
	CheckInByQR(ctx context.Context, eventID int64, payload string) (*Attendee, error)
	// BadgeQR renders a PNG QR code of the attendee's check-in token.
	BadgeQR(ctx context.Context, attendeeID int64) ([]byte, error)
}
