package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"communityevents/config"
	_ "communityevents/docs"
	"communityevents/internal/adapters/auth"
	"communityevents/internal/adapters/email"
	"communityevents/internal/adapters/qr"
	"communityevents/internal/adapters/sms"
	delivery "communityevents/internal/delivery/http"
	"communityevents/internal/delivery/http/controllers"
	"communityevents/internal/delivery/http/middleware"
	"communityevents/internal/repository/postgres"
	"communityevents/internal/services"
	"communityevents/internal/workers"
)

const (
	serviceTimeout  = 5 * time.Second
	dispatchTimeout = 2 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// @title Community Events API
// @version 1.0
// @description Event registration, QR check-in, and SMS campaign dispatch.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	attendeeRepo := postgres.NewAttendeeRepository(db)
	campaignRepo := postgres.NewCampaignRepository(db)
	recipientRepo := postgres.NewCampaignRecipientRepository(db)

	// Adapters
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.Region,
			AccessKeyID:        cfg.Email.AccessKeyID,
			SecretAccessKey:    cfg.Email.SecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	smsSender, err := sms.NewSender(sms.SenderConfig{
		Provider: cfg.SMS.Provider,
		SenderID: cfg.SMS.SenderID,
		SNS: sms.SNSConfig{
			Region:          cfg.SMS.Region,
			AccessKeyID:     cfg.SMS.AccessKeyID,
			SecretAccessKey: cfg.SMS.SecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create sms sender", "err", err)
		os.Exit(1)
	}
	qrEncoder := qr.NewGenerator()
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	eventService := services.NewEventService(eventRepo, qrEncoder, cfg.PublicOrigin, serviceTimeout)
	registrationService := services.NewRegistrationService(eventRepo, attendeeRepo, emailService, serviceTimeout)
	checkinService := services.NewCheckinService(attendeeRepo, qrEncoder, serviceTimeout)
	campaignService := services.NewCampaignService(
		campaignRepo,
		recipientRepo,
		attendeeRepo,
		eventRepo,
		smsSender,
		cfg.DispatchConcurrency,
		serviceTimeout,
		dispatchTimeout,
	)

	// Controllers
	eventController := controllers.NewEventController(logger, eventService)
	attendeeController := controllers.NewAttendeeController(logger, registrationService)
	checkinController := controllers.NewCheckinController(logger, checkinService)
	campaignController := controllers.NewCampaignController(logger, campaignService)

	mux := delivery.NewRouter(logger, verifier, eventController, attendeeController, checkinController, campaignController)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background dispatch of scheduled campaigns.
	worker := workers.NewDispatchWorker(campaignService, cfg.DispatchInterval, logger)
	go worker.Run(ctx)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}
}
