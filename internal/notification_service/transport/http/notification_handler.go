// Package http is the gateway's HTTP transport: request DTOs, handlers
// and middleware around the notification dispatcher.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/b1connect/notify-gateway/internal/notification_service/app"
	"github.com/b1connect/notify-gateway/internal/notification_service/domain"
)

// NotificationService is the dispatcher surface the handlers need.
// Satisfied by *app.Dispatcher; substituted in tests.
type NotificationService interface {
	SendEmail(ctx context.Context, req app.EmailRequest) *domain.Outcome
	SendSMS(ctx context.Context, req app.SMSRequest) *domain.Outcome
	SendDocumentNotification(ctx context.Context, code string, docType domain.DocumentType, docNum int, includeEmail, includeSMS bool) *domain.Outcome
	SendBulkNotifications(ctx context.Context, codes []string, subject, message string, includeEmail, includeSMS bool) *domain.Outcome
	ListBusinessPartnersWithEmail(ctx context.Context) *domain.Outcome
}

// NotificationHandler translates the JSON API into dispatcher calls.
type NotificationHandler struct {
	service  NotificationService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewNotificationHandler creates the handler.
func NewNotificationHandler(service NotificationService, logger *slog.Logger, validate *validator.Validate) *NotificationHandler {
	return &NotificationHandler{
		service:  service,
		logger:   logger.With("handler", "notification"),
		validate: validate,
	}
}

// RegisterRoutes mounts the API routes on the given router.
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Post("/email", h.handleSendEmail)
	r.Post("/sms", h.handleSendSMS)
	r.Post("/document-notification", h.handleDocumentNotification)
	r.Post("/bulk-notifications", h.handleBulkNotifications)
	r.Get("/business-partners", h.handleListBusinessPartners)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Default().Error("failed to write JSON response", "error", err)
		}
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, domain.Fail(message))
}

// respondOutcome maps a dispatcher outcome to 200 or 400 with the
// envelope unchanged.
func respondOutcome(w http.ResponseWriter, outcome *domain.Outcome) {
	if outcome.Success {
		respondWithJSON(w, http.StatusOK, outcome)
		return
	}
	respondWithJSON(w, http.StatusBadRequest, outcome)
}

func (h *NotificationHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *NotificationHandler) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	// Subject is the only tagged field on this DTO.
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Subject is required")
		return
	}
	if req.BusinessPartnerCode == "" && len(req.To) == 0 {
		respondWithError(w, http.StatusBadRequest, "Either businessPartnerCode or to (email address) is required")
		return
	}
	// Text and html are deliberately unvalidated: a document reference
	// supplies the body via its template, and a subject-only email is an
	// accepted degenerate case.

	appReq := app.EmailRequest{
		BusinessPartnerCode: req.BusinessPartnerCode,
		To:                  []string(req.To),
		Subject:             req.Subject,
		Text:                req.Text,
		HTML:                req.HTML,
		DocumentNumber:      req.DocumentNumber,
	}
	if req.DocumentType != "" {
		docType, err := domain.ParseDocumentType(req.DocumentType)
		if err != nil {
			// An unrecognized kind falls back to caller-supplied content,
			// same as a kind without a template.
			h.logger.DebugContext(ctx, "ignoring unknown document type on email request", "document_type", req.DocumentType)
		} else {
			appReq.DocumentType = docType
		}
	}

	respondOutcome(w, h.service.SendEmail(ctx, appReq))
}

func (h *NotificationHandler) handleSendSMS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SendSMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if req.BusinessPartnerCode == "" && req.To == "" {
		respondWithError(w, http.StatusBadRequest, "Either businessPartnerCode or to (phone number) is required")
		return
	}

	respondOutcome(w, h.service.SendSMS(ctx, app.SMSRequest{
		BusinessPartnerCode: req.BusinessPartnerCode,
		To:                  req.To,
		Message:             req.Message,
	}))
}

func (h *NotificationHandler) handleDocumentNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req DocumentNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, documentValidationMessage(err))
		return
	}

	docType, err := domain.ParseDocumentType(req.DocumentType)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "documentType is required (Invoice, Order, Quotation, or DeliveryNote)")
		return
	}

	respondOutcome(w, h.service.SendDocumentNotification(
		ctx,
		req.BusinessPartnerCode,
		docType,
		req.DocumentNumber,
		boolOrDefault(req.IncludeEmail, true),
		boolOrDefault(req.IncludeSMS, true),
	))
}

func documentValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request payload"
	}
	switch verrs[0].Field() {
	case "BusinessPartnerCode":
		return "businessPartnerCode is required"
	case "DocumentType":
		return "documentType is required (Invoice, Order, Quotation, or DeliveryNote)"
	default:
		return "documentNumber is required"
	}
}

func (h *NotificationHandler) handleBulkNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BulkNotificationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, bulkValidationMessage(err))
		return
	}

	outcome := h.service.SendBulkNotifications(
		ctx,
		req.BusinessPartnerCodes,
		req.Subject,
		req.Message,
		boolOrDefault(req.IncludeEmail, true),
		boolOrDefault(req.IncludeSMS, false),
	)

	// Bulk always returns 200; per-item failures live in the item list.
	respondWithJSON(w, http.StatusOK, outcome)
}

func bulkValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request payload"
	}
	switch verrs[0].Field() {
	case "BusinessPartnerCodes":
		return "businessPartnerCodes array is required"
	case "Subject":
		return "subject is required"
	default:
		return "message is required"
	}
}

func (h *NotificationHandler) handleListBusinessPartners(w http.ResponseWriter, r *http.Request) {
	respondOutcome(w, h.service.ListBusinessPartnersWithEmail(r.Context()))
}
