package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"communityevents/internal/delivery/http/helpers"
	"communityevents/internal/domain"
)

// RegisterAttendeeRequest is the request body for POST /events/{eventID}/attendees.
type RegisterAttendeeRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	AgeGroup *string `json:"age_group"`
	Postcode *string `json:"postcode"`
}

// Validate implements Validator.
func (r RegisterAttendeeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(strings.TrimSpace(r.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	if r.Phone == nil || strings.TrimSpace(*r.Phone) == "" {
		errs = append(errs, "phone is required")
	}
	return errs
}

// AttendeeSuccessResponse is the success response envelope carrying a single attendee.
type AttendeeSuccessResponse struct {
	Data  *domain.Attendee  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListAttendeesResponse is the data payload for GET /events/{eventID}/attendees (200).
type ListAttendeesResponse struct {
	Items      []*domain.Attendee     `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListAttendeesSuccessResponse is the success response envelope for GET /events/{eventID}/attendees (200).
type ListAttendeesSuccessResponse struct {
	Data  ListAttendeesResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewAttendeeController(logger *slog.Logger, svc domain.RegistrationService) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register an attendee for an event
// @Description Public self-service registration. When the event is at capacity the attendee is created waitlisted; the response carries the waitlisted flag either way.
// @Tags attendees
// @Accept json
// @Produce json
// @Param eventID path int true "Event ID"
// @Param body body RegisterAttendeeRequest true "Registration details"
// @Success 201 {object} controllers.AttendeeSuccessResponse "data contains the created attendee"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [post]
func (c *AttendeeController) Register(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req RegisterAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	attendee, err := c.Service.Register(r.Context(), eventID, domain.NewRegistration{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		AgeGroup: req.AgeGroup,
		Postcode: req.Postcode,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, attendee)
}

// ListByEvent godoc
// @Summary List attendees of an event
// @Description Returns a paginated list of the event's attendees. Optional waitlisted query filters to waitlisted (true) or confirmed (false) attendees.
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param waitlisted query bool false "Filter by waitlist status"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListAttendeesSuccessResponse "data contains items and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *AttendeeController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var waitlisted *bool
	switch r.URL.Query().Get("waitlisted") {
	case "":
	case "true":
		v := true
		waitlisted = &v
	case "false":
		v := false
		waitlisted = &v
	default:
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "waitlisted must be true or false")
		return
	}
	params := helpers.ParsePagination(r)
	attendees, total, err := c.Service.ListByEvent(r.Context(), eventID, waitlisted, params)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListAttendeesResponse{Items: attendees, Pagination: meta})
}

// GetAttendee godoc
// @Summary Get an attendee by ID
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param attendeeID path int true "Attendee ID"
// @Success 200 {object} controllers.AttendeeSuccessResponse "data contains the attendee"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID} [get]
func (c *AttendeeController) GetAttendee(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := pathID(w, r, "attendeeID")
	if !ok {
		return
	}
	attendee, err := c.Service.GetByID(r.Context(), attendeeID)
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

// UpdateAttendeeRequest is the request body for PATCH /attendees/{attendeeID}.
// All fields optional; omitted fields are unchanged.
type UpdateAttendeeRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	AgeGroup *string `json:"age_group"`
	Postcode *string `json:"postcode"`
}

// Validate implements Validator.
func (u UpdateAttendeeRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.Email != nil && !emailRegex.MatchString(strings.TrimSpace(*u.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// UpdateContact godoc
// @Summary Update an attendee's contact details
// @Description Updates name, email, phone, age group, and postcode. Attendance and waitlist state are not touched here.
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attendeeID path int true "Attendee ID"
// @Param body body UpdateAttendeeRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.AttendeeSuccessResponse "data contains the updated attendee"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID} [patch]
func (c *AttendeeController) UpdateContact(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := pathID(w, r, "attendeeID")
	if !ok {
		return
	}
	var req UpdateAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	attendee, err := c.Service.UpdateContact(r.Context(), attendeeID, req.Name, req.Email, req.Phone, req.AgeGroup, req.Postcode)
	if err != nil {
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

// SaveSignatureRequest is the request body for PUT /attendees/{attendeeID}/signature.
// Signature carries the image captured at the door, base64-encoded.
type SaveSignatureRequest struct {
	Signature []byte `json:"signature"`
}

// Validate implements Validator.
func (s SaveSignatureRequest) Validate() []string {
	if len(s.Signature) == 0 {
		return []string{"signature is required"}
	}
	return nil
}

// SaveSignature godoc
// @Summary Store an attendee's signature
// @Description Stores the signature image captured at check-in.
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attendeeID path int true "Attendee ID"
// @Param body body SaveSignatureRequest true "Base64-encoded signature image"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID}/signature [put]
func (c *AttendeeController) SaveSignature(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := pathID(w, r, "attendeeID")
	if !ok {
		return
	}
	var req SaveSignatureRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SaveSignature(r.Context(), attendeeID, req.Signature); err != nil {
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
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteStatusResponse{Status: "saved"})
}

// DeleteAttendee godoc
// @Summary Delete an attendee
// @Description Removes the attendee. Nobody is promoted off the waitlist by a deletion.
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param attendeeID path int true "Attendee ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID} [delete]
func (c *AttendeeController) DeleteAttendee(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := pathID(w, r, "attendeeID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), attendeeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteStatusResponse{Status: "deleted"})
}
