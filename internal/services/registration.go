package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"communityevents/internal/domain"
)

type registrationService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

func NewRegistrationService(eventRepo domain.EventRepository, attendeeRepo domain.AttendeeRepository, emailService domain.EmailService, timeout time.Duration) domain.RegistrationService {
	return &registrationService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *registrationService) Register(ctx context.Context, eventID int64, reg domain.NewRegistration) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	if reg.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if reg.Email == "" || !strings.Contains(reg.Email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	// Phone is required at registration time: the recipient pool for event
	// campaigns is built from attendee phone numbers. The column stays
	// nullable for rows created outside self-service registration.
	if reg.Phone == nil || strings.TrimSpace(*reg.Phone) == "" {
		return nil, fmt.Errorf("%w: phone is required", domain.ErrInvalidInput)
	}
	trimmedPhone := strings.TrimSpace(*reg.Phone)
	reg.Phone = &trimmedPhone

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	attendee := domain.NewAttendee(eventID, reg.Name, reg.Email, reg.Phone, reg.AgeGroup, reg.Postcode, time.Now())
	// The repository re-reads the capacity under a row lock, so the waitlist
	// decision holds even when registrations race.
	if err := s.attendeeRepo.Register(ctx, attendee); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("register attendee: %w", err)
	}

	// Confirmation is best-effort; a mail failure never fails the registration.
	data := &domain.RegistrationConfirmationData{
		Email:      attendee.Email,
		Name:       attendee.Name,
		EventName:  event.Name,
		Waitlisted: attendee.Waitlisted,
	}
	if event.Date != nil {
		data.EventDate = event.Date.Format("Monday, 2 January 2006")
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		log.Printf("[REGISTRATION] confirmation email to %s failed: %v", attendee.Email, err)
	}

	return attendee, nil
}

func (s *registrationService) GetByID(ctx context.Context, id int64) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendee, err := s.attendeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	return attendee, nil
}

func (s *registrationService) ListByEvent(ctx context.Context, eventID int64, waitlisted *bool, params domain.PaginationParams) ([]*domain.Attendee, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}

	attendees, total, err := s.attendeeRepo.ListByEventID(ctx, eventID, waitlisted, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendees: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, total, nil
}

func (s *registrationService) UpdateContact(ctx context.Context, id int64, name, email, phone, ageGroup, postcode *string) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		name = &trimmed
	}
	if email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*email))
		if normalized == "" || !strings.Contains(normalized, "@") {
			return nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
		}
		email = &normalized
	}

	updated, err := s.attendeeRepo.UpdateContact(ctx, id, name, email, phone, ageGroup, postcode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update attendee: %w", err)
	}
	return updated, nil
}

func (s *registrationService) SaveSignature(ctx context.Context, id int64, signature []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if len(signature) == 0 {
		return fmt.Errorf("%w: signature is empty", domain.ErrInvalidInput)
	}
	if err := s.attendeeRepo.SetSignature(ctx, id, signature); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("save signature: %w", err)
	}
	return nil
}

// Delete removes the attendee without touching the rest of the event: nobody
// is promoted off the waitlist when a confirmed spot frees up.
func (s *registrationService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.attendeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete attendee: %w", err)
	}
	return nil
}
