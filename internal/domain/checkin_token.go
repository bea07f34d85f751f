package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Check-in tokens are the payload embedded in attendee badge QR codes:
// "ATTENDEE:<attendeeID>:<eventID>" with decimal IDs.
const checkinTokenPrefix = "ATTENDEE"

// EncodeCheckinToken builds the QR payload for an attendee badge.
func EncodeCheckinToken(attendeeID, eventID int64) string {
	return fmt.Sprintf("%s:%d:%d", checkinTokenPrefix, attendeeID, eventID)
}

// ParseCheckinToken parses a scanned QR payload. It returns ErrMalformedToken
// when the payload does not have the expected shape.
func ParseCheckinToken(payload string) (attendeeID, eventID int64, err error) {
	parts := strings.Split(strings.TrimSpace(payload), ":")
	if len(parts) != 3 || parts[0] != checkinTokenPrefix {
		return 0, 0, ErrMalformedToken
	}
	attendeeID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil || attendeeID <= 0 {
		return 0, 0, ErrMalformedToken
	}
	eventID, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil || eventID <= 0 {
		return 0, 0, ErrMalformedToken
	}
	return attendeeID, eventID, nil
}

// RegistrationURL builds the public registration page URL for an event,
// embedded in event poster QR codes.
func RegistrationURL(origin string, eventID int64) string {
	return fmt.Sprintf("%s/events/%d", strings.TrimSuffix(origin, "/"), eventID)
}

// QRImageEncoder renders arbitrary content as a PNG QR code (infrastructure port).
type QRImageEncoder interface {
	EncodePNG(content string, size int) ([]byte, error)
}
