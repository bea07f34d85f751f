package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"communityevents/internal/delivery/http/helpers"
	"communityevents/internal/domain"
)

// SetAttendanceRequest is the request body for PATCH /attendees/{attendeeID}/attendance.
type SetAttendanceRequest struct {
	Attended *bool `json:"attended"`
}

// Validate implements Validator.
func (s SetAttendanceRequest) Validate() []string {
	if s.Attended == nil {
		return []string{"attended is required"}
	}
	return nil
}

// ScanRequest is the request body for POST /events/{eventID}/checkins/scan.
// Payload is the raw string decoded from the scanned QR code.
type ScanRequest struct {
	Payload string `json:"payload"`
}

// Validate implements Validator.
func (s ScanRequest) Validate() []string {
	if strings.TrimSpace(s.Payload) == "" {
		return []string{"payload is required"}
	}
	return nil
}

type CheckinController struct {
	Logger  *slog.Logger
	Service domain.CheckinService
}

func NewCheckinController(logger *slog.Logger, svc domain.CheckinService) *CheckinController {
	return &CheckinController{
		Logger:  logger,
		Service: svc,
	}
}

// SetAttendance godoc
// @Summary Set an attendee's attendance flag
// @Description Marks or unmarks attendance. The attendance timestamp always travels with the flag: set on true, cleared on false.
// @Tags checkins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attendeeID path int true "Attendee ID"
// @Param body body SetAttendanceRequest true "Attendance flag"
// @Success 200 {object} controllers.AttendeeSuccessResponse "data contains the updated attendee"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID}/attendance [patch]
func (c *CheckinController) SetAttendance(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := pathID(w, r, "attendeeID")
	if !ok {
		return
	}
	var req SetAttendanceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	attendee, err := c.Service.SetAttended(r.Context(), attendeeID, *req.Attended)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendee)
}

// ToggleAttendance godoc
// @Summary Toggle an attendee's attendance flag
// @Description Reads the current flag and flips it. Concurrent toggles are last-writer-wins.
// @Tags checkins
// @Produce json
// @Security BearerAuth
// @Param attendeeID path int true "Attendee ID"
// @Success 200 {object} controllers.AttendeeSuccessResponse "data contains the updated attendee"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID}/attendance/toggle [post]
func (c *CheckinController) ToggleAttendance(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := pathID(w, r, "attendeeID")
	if !ok {
		return
	}
	attendee, err := c.Service.Toggle(r.Context(), attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendee)
}

// Scan godoc
// @Summary Check an attendee in from a scanned QR code
// @Description Resolves the scanned payload to an attendee and marks attendance. The token's event must match both the attendee's record and the event being scanned; a mismatch returns 409 and marks nothing. Scanning an already-attended badge is a no-op returning the attendee.
// @Tags checkins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID of the scanning station"
// @Param body body ScanRequest true "Decoded QR payload"
// @Success 200 {object} controllers.AttendeeSuccessResponse "data contains the checked-in attendee"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (malformed payload)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (attendee)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event mismatch)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/checkins/scan [post]
func (c *CheckinController) Scan(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req ScanRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	attendee, err := c.Service.CheckInByQR(r.Context(), eventID, req.Payload)
	if err != nil {
		if errors.Is(err, domain.ErrEventMismatch) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "token belongs to a different event")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendee)
}

// BadgeQR godoc
// @Summary Check-in QR code for an attendee
// @Description Returns a PNG QR code encoding the attendee's check-in token, for printing on badges or mailing with the confirmation.
// @Tags checkins
// @Produce png
// @Security BearerAuth
// @Param attendeeID path int true "Attendee ID"
// @Success 200 {file} file "PNG image"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID}/qr [get]
func (c *CheckinController) BadgeQR(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := pathID(w, r, "attendeeID")
	if !ok {
		return
	}
	png, err := c.Service.BadgeQR(r.Context(), attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
