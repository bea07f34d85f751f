package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"communityevents/internal/domain"
)

type checkinService struct {
	attendeeRepo   domain.AttendeeRepository
	qrEncoder      domain.QRImageEncoder
	contextTimeout time.Duration
}

func NewCheckinService(attendeeRepo domain.AttendeeRepository, qrEncoder domain.QRImageEncoder, timeout time.Duration) domain.CheckinService {
	return &checkinService{
		attendeeRepo:   attendeeRepo,
		qrEncoder:      qrEncoder,
		contextTimeout: timeout,
	}
}

func (s *checkinService) SetAttended(ctx context.Context, attendeeID int64, attended bool) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.setAttended(ctx, attendeeID, attended)
}

func (s *checkinService) setAttended(ctx context.Context, attendeeID int64, attended bool) (*domain.Attendee, error) {
	var attendedAt *time.Time
	if attended {
		now := time.Now()
		attendedAt = &now
	}
	attendee, err := s.attendeeRepo.SetAttended(ctx, attendeeID, attended, attendedAt)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set attended: %w", err)
	}
	return attendee, nil
}

// Toggle reads the current flag and writes its inverse. Two concurrent
// toggles of the same attendee are last-writer-wins.
func (s *checkinService) Toggle(ctx context.Context, attendeeID int64) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendee, err := s.attendeeRepo.GetByID(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	return s.setAttended(ctx, attendeeID, !attendee.Attended)
}

// CheckInByQR resolves a scanned badge token and marks the attendee attended.
// The token's event must agree with the attendee's stored event and with the
// event the scanning station is operating for.
func (s *checkinService) CheckInByQR(ctx context.Context, eventID int64, payload string) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendeeID, tokenEventID, err := domain.ParseCheckinToken(payload)
	if err != nil {
		return nil, err
	}

	attendee, err := s.attendeeRepo.GetByID(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	if attendee.EventID != tokenEventID || attendee.EventID != eventID {
		return nil, domain.ErrEventMismatch
	}

	// Scanning an already checked-in badge is a no-op, not an error.
	if attendee.Attended {
		return attendee, nil
	}
	return s.setAttended(ctx, attendeeID, true)
}

func (s *checkinService) BadgeQR(ctx context.Context, attendeeID int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendee, err := s.attendeeRepo.GetByID(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	png, err := s.qrEncoder.EncodePNG(domain.EncodeCheckinToken(attendee.ID, attendee.EventID), qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("render badge qr: %w", err)
	}
	return png, nil
}
