package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"communityevents/internal/delivery/http/helpers"
	"communityevents/internal/domain"
)

// CreateCampaignRequest is the request body for POST /campaigns.
type CreateCampaignRequest struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	EventID *int64 `json:"event_id"`
}

// Validate implements Validator.
func (c CreateCampaignRequest) Validate() []string {
	var errs []string
	if c.Kind != string(domain.CampaignKindEvent) && c.Kind != string(domain.CampaignKindAnnouncement) {
		errs = append(errs, "kind must be event or announcement")
	}
	if strings.TrimSpace(c.Message) == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

// CampaignSuccessResponse is the success response envelope carrying a single campaign.
type CampaignSuccessResponse struct {
	Data  *domain.Campaign  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CampaignDetailResponse is the data payload for GET /campaigns/{campaignID} (200).
type CampaignDetailResponse struct {
	Campaign   *domain.Campaign            `json:"campaign"`
	Recipients []*domain.CampaignRecipient `json:"recipients"`
	Counts     domain.RecipientCounts      `json:"counts"`
}

// CampaignDetailSuccessResponse is the success response envelope for GET /campaigns/{campaignID} (200).
type CampaignDetailSuccessResponse struct {
	Data  CampaignDetailResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// ListCampaignsResponse is the data payload for GET /campaigns (200).
type ListCampaignsResponse struct {
	Items      []*domain.Campaign     `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListCampaignsSuccessResponse is the success response envelope for GET /campaigns (200).
type ListCampaignsSuccessResponse struct {
	Data  ListCampaignsResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// AttachRecipientsRequest is the request body for POST /campaigns/{campaignID}/recipients.
type AttachRecipientsRequest struct {
	Contacts []domain.RecipientContact `json:"contacts"`
}

// Validate implements Validator.
func (a AttachRecipientsRequest) Validate() []string {
	if len(a.Contacts) == 0 {
		return []string{"contacts is required"}
	}
	return nil
}

// AttachedResponse is the data payload for recipient attach endpoints.
type AttachedResponse struct {
	Attached int `json:"attached"`
}

// AttachedSuccessResponse is the success response envelope for recipient attach endpoints (200).
type AttachedSuccessResponse struct {
	Data  AttachedResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ScheduleCampaignRequest is the request body for POST /campaigns/{campaignID}/schedule.
type ScheduleCampaignRequest struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// Validate implements Validator.
func (s ScheduleCampaignRequest) Validate() []string {
	if s.ScheduledFor.IsZero() {
		return []string{"scheduled_for is required"}
	}
	return nil
}

// DispatchSuccessResponse is the success response envelope for POST /campaigns/{campaignID}/dispatch (200).
type DispatchSuccessResponse struct {
	Data  *domain.DispatchSummary `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type CampaignController struct {
	Logger  *slog.Logger
	Service domain.CampaignService
}

func NewCampaignController(logger *slog.Logger, svc domain.CampaignService) *CampaignController {
	return &CampaignController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateCampaign godoc
// @Summary Create a draft SMS campaign
// @Description Creates a draft campaign. Kind event requires event_id; kind announcement must not carry one.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateCampaignRequest true "Campaign data"
// @Success 201 {object} controllers.CampaignSuccessResponse "data contains the created campaign"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (linked event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /campaigns [post]
func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req CreateCampaignRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	campaign, err := c.Service.Create(r.Context(), domain.CampaignKind(req.Kind), req.Message, req.EventID)
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, campaign)
}

// ListCampaigns godoc
// @Summary List campaigns
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListCampaignsSuccessResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /campaigns [get]
func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	campaigns, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListCampaignsResponse{Items: campaigns, Pagination: meta})
}

// GetCampaign godoc
// @Summary Get a campaign with its recipients
// @Description Returns the campaign, all its recipients with per-recipient delivery state, and status counts.
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param campaignID path int true "Campaign ID"
// @Success 200 {object} controllers.CampaignDetailSuccessResponse "data contains campaign, recipients, and counts"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /campaigns/{campaignID} [get]
func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathID(w, r, "campaignID")
	if !ok {
		return
	}
	campaign, recipients, counts, err := c.Service.GetByID(r.Context(), campaignID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "campaign not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CampaignDetailResponse{Campaign: campaign, Recipients: recipients, Counts: counts})
}

// AttachRecipients godoc
// @Summary Attach contacts to a draft campaign
// @Description Adds manual recipients. Phone numbers already attached to the campaign are skipped; the response reports how many were actually added. Draft campaigns only.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param campaignID path int true "Campaign ID"
// @Param body body AttachRecipientsRequest true "Contacts to attach"
// @Success 200 {object} controllers.AttachedSuccessResponse "data contains the attached count"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (campaign not draft)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /campaigns/{campaignID}/recipients [post]
func (c *CampaignController) AttachRecipients(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathID(w, r, "campaignID")
	if !ok {
		return
	}
	var req AttachRecipientsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	attached, err := c.Service.AttachContacts(r.Context(), campaignID, req.Contacts)
	if err != nil {
		c.writeCampaignError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AttachedResponse{Attached: attached})
}

// AttachEventAttendees godoc
// @Summary Seed a campaign's recipients from its event's attendees
// @Description Attaches every attendee of the campaign's linked event that has a phone number. Event-kind draft campaigns only.
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param campaignID path int true "Campaign ID"
// @Success 200 {object} controllers.AttachedSuccessResponse "data contains the attached count"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (not an event campaign)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (campaign not draft)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /campaigns/{campaignID}/recipients/event-attendees [post]
func (c *CampaignController) AttachEventAttendees(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathID(w, r, "campaignID")
	if !ok {
		return
	}
	attached, err := c.Service.AttachEventAttendees(r.Context(), campaignID)
	if err != nil {
		c.writeCampaignError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AttachedResponse{Attached: attached})
}

// ScheduleCampaign godoc
// @Summary Schedule a draft campaign
// @Description Moves a draft campaign to scheduled; the dispatch worker sends it once scheduled_for passes.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param campaignID path int true "Campaign ID"
// @Param body body ScheduleCampaignRequest true "When to send"
// @Success 200 {object} controllers.CampaignSuccessResponse "data contains the scheduled campaign"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (campaign not draft)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /campaigns/{campaignID}/schedule [post]
func (c *CampaignController) ScheduleCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathID(w, r, "campaignID")
	if !ok {
		return
	}
	var req ScheduleCampaignRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	campaign, err := c.Service.Schedule(r.Context(), campaignID, req.ScheduledFor)
	if err != nil {
		c.writeCampaignError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, campaign)
}

// DispatchCampaign godoc
// @Summary Dispatch a campaign now
// @Description Runs one synchronous delivery pass over the campaign's pending recipients and marks the campaign sent. Re-dispatching after a partial pass only touches recipients still pending; dispatching an already-sent campaign returns 409.
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param campaignID path int true "Campaign ID"
// @Success 200 {object} controllers.DispatchSuccessResponse "data contains sent and failed counts"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already sent or a pass is running)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /campaigns/{campaignID}/dispatch [post]
func (c *CampaignController) DispatchCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathID(w, r, "campaignID")
	if !ok {
		return
	}
	summary, err := c.Service.Dispatch(r.Context(), campaignID)
	if err != nil {
		c.writeCampaignError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}

// DeleteCampaign godoc
// @Summary Delete a draft campaign
// @Description Removes a draft campaign and its recipients. Scheduled and sent campaigns cannot be deleted.
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param campaignID path int true "Campaign ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (campaign not draft)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /campaigns/{campaignID} [delete]
func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathID(w, r, "campaignID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), campaignID); err != nil {
		c.writeCampaignError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteStatusResponse{Status: "deleted"})
}

// writeCampaignError maps campaign service errors to the shared status scheme.
func (c *CampaignController) writeCampaignError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "campaign not found")
	case errors.Is(err, domain.ErrInvalidState):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
