package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"communityevents/internal/delivery/http/controllers"
	"communityevents/internal/delivery/http/middleware"
	"communityevents/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Registration, event detail, and the event registration QR are public; the
// admin surface sits behind bearer auth.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	eventController *controllers.EventController,
	attendeeController *controllers.AttendeeController,
	checkinController *controllers.CheckinController,
	campaignController *controllers.CampaignController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Public surface: self-service registration and what the registration
	// page needs to render.
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("GET /events/{eventID}/qr", eventController.RegistrationQR)
	mux.HandleFunc("POST /events/{eventID}/attendees", attendeeController.Register)

	// Events (admin)
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", auth(eventController.ListEvents))
	mux.HandleFunc("PATCH /events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))

	// Attendees (admin)
	mux.HandleFunc("GET /events/{eventID}/attendees", auth(attendeeController.ListByEvent))
	mux.HandleFunc("GET /attendees/{attendeeID}", auth(attendeeController.GetAttendee))
	mux.HandleFunc("PATCH /attendees/{attendeeID}", auth(attendeeController.UpdateContact))
	mux.HandleFunc("PUT /attendees/{attendeeID}/signature", auth(attendeeController.SaveSignature))
	mux.HandleFunc("DELETE /attendees/{attendeeID}", auth(attendeeController.DeleteAttendee))

	// Check-in (admin)
	mux.HandleFunc("PATCH /attendees/{attendeeID}/attendance", auth(checkinController.SetAttendance))
	mux.HandleFunc("POST /attendees/{attendeeID}/attendance/toggle", auth(checkinController.ToggleAttendance))
	mux.HandleFunc("POST /events/{eventID}/checkins/scan", auth(checkinController.Scan))
	mux.HandleFunc("GET /attendees/{attendeeID}/qr", auth(checkinController.BadgeQR))

	// Campaigns (admin)
	mux.HandleFunc("POST /campaigns", auth(campaignController.CreateCampaign))
	mux.HandleFunc("GET /campaigns", auth(campaignController.ListCampaigns))
	mux.HandleFunc("GET /campaigns/{campaignID}", auth(campaignController.GetCampaign))
	mux.HandleFunc("POST /campaigns/{campaignID}/recipients", auth(campaignController.AttachRecipients))
	mux.HandleFunc("POST /campaigns/{campaignID}/recipients/event-attendees", auth(campaignController.AttachEventAttendees))
	mux.HandleFunc("POST /campaigns/{campaignID}/schedule", auth(campaignController.ScheduleCampaign))
	mux.HandleFunc("POST /campaigns/{campaignID}/dispatch", auth(campaignController.DispatchCampaign))
	mux.HandleFunc("DELETE /campaigns/{campaignID}", auth(campaignController.DeleteCampaign))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
