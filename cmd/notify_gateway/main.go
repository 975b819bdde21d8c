package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/b1connect/notify-gateway/internal/notification_service/adapters/mailer"
	"github.com/b1connect/notify-gateway/internal/notification_service/adapters/sapb1"
	"github.com/b1connect/notify-gateway/internal/notification_service/adapters/smsprovider"
	"github.com/b1connect/notify-gateway/internal/notification_service/app"
	httptransport "github.com/b1connect/notify-gateway/internal/notification_service/transport/http"
	"github.com/b1connect/notify-gateway/internal/platform/config"
	"github.com/b1connect/notify-gateway/internal/platform/logger"
)

const serviceName = "notify_gateway"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(os.Stdout, cfg.LogLevel)
	appLogger.Info("notify gateway starting...", "port", cfg.ServerPort)

	if errs := cfg.Validate(); len(errs) > 0 {
		appLogger.Error("configuration validation failed")
		for _, e := range errs {
			appLogger.Error("  - " + e)
		}
		os.Exit(1)
	}
	appLogger.Info("configuration validated")

	ctx := context.Background()

	sapClient := sapb1.NewClient(sapb1.Config{
		ServiceLayerURL: cfg.SAPServiceLayerURL,
		CompanyDB:       cfg.SAPCompanyDB,
		Username:        cfg.SAPUsername,
		Password:        cfg.SAPPassword,
		SkipTLSVerify:   cfg.SAPSkipTLSVerify,
	}, appLogger)

	// SAP is a hard dependency; refuse to start without it.
	if err := sapClient.Login(ctx); err != nil {
		appLogger.Error("SAP Service Layer connection failed; check credentials and URL", "error", err)
		os.Exit(1)
	}
	appLogger.Info("SAP Service Layer connection successful")

	mailSender, err := mailer.NewSMTPSender(mailer.Config{
		Host:     cfg.EmailHost,
		Port:     cfg.EmailPort,
		Secure:   cfg.EmailSecure,
		User:     cfg.EmailUser,
		Password: cfg.EmailPassword,
		From:     cfg.EmailFrom,
	}, appLogger)
	if err != nil {
		appLogger.Error("failed to initialize email sender", "error", err)
		os.Exit(1)
	}
	if err := mailSender.Verify(ctx); err != nil {
		appLogger.Warn("email relay verification failed; emails may not be sent", "error", err)
	} else {
		appLogger.Info("email relay connection successful")
	}

	smsSender := smsprovider.NewTwilioProvider(smsprovider.Config{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		FromNumber: cfg.TwilioPhoneNumber,
	}, appLogger)
	if smsSender.IsEnabled() {
		appLogger.Info("SMS provider configured and ready")
	}

	dispatcher := app.NewDispatcher(sapClient, mailSender, smsSender, appLogger)

	validate := validator.New()
	notificationHandler := httptransport.NewNotificationHandler(dispatcher, appLogger, validate)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httptransport.RequestLogger(appLogger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(httptransport.PrometheusMetrics)

	r.Get("/", handleRoot)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api", func(api chi.Router) {
		notificationHandler.RegisterRoutes(api)
	})

	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.ServerPort), Handler: r}
	go func() {
		appLogger.Info(fmt.Sprintf("server listening on port %d", cfg.ServerPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed to serve", "error", err)
		}
	}()

	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)
	<-quitChan
	appLogger.Info("shutdown signal received, shutting down HTTP server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("HTTP server shutdown failed", "error", err)
	} else {
		appLogger.Info("HTTP server shut down gracefully")
	}

	// Release the Service Layer session before exiting.
	sapClient.Logout(ctxShutdown)
	appLogger.Info("notify gateway shut down")
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"name":    "SAP Business One Email & SMS Sender",
		"version": "1.0.0",
		"status":  "running",
		"endpoints": map[string]string{
			"health":               "GET /api/health",
			"sendEmail":            "POST /api/email",
			"sendSMS":              "POST /api/sms",
			"documentNotification": "POST /api/document-notification",
			"bulkNotifications":    "POST /api/bulk-notifications",
			"businessPartners":     "GET /api/business-partners",
			"metrics":              "GET /metrics",
		},
	})
}
