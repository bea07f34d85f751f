package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"communityevents/internal/domain"
)

// qrImageSize is the edge length of generated QR code PNGs.
const qrImageSize = 256

type eventService struct {
	eventRepo      domain.EventRepository
	qrEncoder      domain.QRImageEncoder
	publicOrigin   string
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, qrEncoder domain.QRImageEncoder, publicOrigin string, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		qrEncoder:      qrEncoder,
		publicOrigin:   publicOrigin,
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, name string, capacity *int, date, startsAt, endsAt *time.Time) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	// Zero is a legal bound: every registrant waitlists until it is raised.
	if capacity != nil && *capacity < 0 {
		return nil, fmt.Errorf("%w: capacity cannot be negative", domain.ErrInvalidInput)
	}

	now := time.Now()
	event := domain.NewEvent(name, capacity, date, startsAt, endsAt, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) Update(ctx context.Context, id int64, name *string, capacity *int, date, startsAt, endsAt *time.Time) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		name = &trimmed
	}
	if capacity != nil && *capacity < 0 {
		return nil, fmt.Errorf("%w: capacity cannot be negative", domain.ErrInvalidInput)
	}

	updated, err := s.eventRepo.Update(ctx, id, name, capacity, date, startsAt, endsAt)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) RegistrationQR(ctx context.Context, id int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	png, err := s.qrEncoder.EncodePNG(domain.RegistrationURL(s.publicOrigin, id), qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("render registration qr: %w", err)
	}
	return png, nil
}
