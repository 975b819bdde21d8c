// Package app holds the notification dispatcher: it resolves recipients
// through the ERP directory, formats document-derived messages and fans
// out to the mail and SMS channels, aggregating partial success.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/b1connect/notify-gateway/internal/notification_service/domain"
	"github.com/b1connect/notify-gateway/internal/notification_service/format"
)

// Pause between consecutive SMS sends in a batch, to stay under the
// provider's rate limits.
const defaultSMSPause = 100 * time.Millisecond

// EmailRequest describes one email dispatch. BusinessPartnerCode and To
// are not mutually exclusive: a resolved partner address and caller
// addresses are combined, partner first.
type EmailRequest struct {
	BusinessPartnerCode string
	To                  []string
	Subject             string
	Text                string
	HTML                string
	DocumentType        domain.DocumentType // empty when no document reference
	DocumentNumber      int
}

// SMSRequest describes one SMS dispatch. A caller-supplied To overrides
// the partner's resolved number.
type SMSRequest struct {
	BusinessPartnerCode string
	To                  string
	Message             string
}

// Dispatcher orchestrates lookup, formatting and channel sends. All
// methods return an Outcome; collaborator failures never escape as errors.
type Dispatcher struct {
	directory DirectoryClient
	mail      MailSender
	sms       SMSSender
	logger    *slog.Logger
	smsPause  time.Duration
}

// NewDispatcher wires the dispatcher to its collaborators.
func NewDispatcher(directory DirectoryClient, mail MailSender, sms SMSSender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		directory: directory,
		mail:      mail,
		sms:       sms,
		logger:    logger.With("service", "dispatcher"),
		smsPause:  defaultSMSPause,
	}
}

// SendEmail resolves recipients, applies a document template when one
// matches, and sends a single email.
func (d *Dispatcher) SendEmail(ctx context.Context, req EmailRequest) *domain.Outcome {
	var recipients []string

	if req.BusinessPartnerCode != "" {
		bp, err := d.directory.GetBusinessPartner(ctx, req.BusinessPartnerCode)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Fail(fmt.Sprintf("Business Partner %s not found", req.BusinessPartnerCode))
			}
			d.logger.ErrorContext(ctx, "business partner lookup failed", "card_code", req.BusinessPartnerCode, "error", err)
			return domain.Fail(err.Error())
		}
		if bp.EmailAddress == "" {
			return domain.Fail(fmt.Sprintf("Business Partner %s does not have an email address", req.BusinessPartnerCode))
		}
		recipients = append(recipients, bp.EmailAddress)
	}

	// Partner-resolved address and caller addresses are a union, in that
	// order. Pinned by tests; do not "fix".
	recipients = append(recipients, req.To...)

	if len(recipients) == 0 {
		return domain.Fail("No recipients specified")
	}

	msg := &domain.EmailMessage{
		To:      recipients,
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    req.HTML,
	}

	if req.DocumentType != "" && req.DocumentNumber > 0 {
		if formatted := d.documentEmail(ctx, req.DocumentType, req.DocumentNumber); formatted != nil {
			formatted.To = recipients
			msg = formatted
		}
	}

	return d.deliverEmail(ctx, msg)
}

// deliverEmail performs the actual mail send and wraps the result.
func (d *Dispatcher) deliverEmail(ctx context.Context, msg *domain.EmailMessage) *domain.Outcome {
	messageID, err := d.mail.Send(ctx, msg)
	if err != nil {
		d.logger.ErrorContext(ctx, "email send failed", "error", err, "recipients", msg.To)
		return domain.Fail(err.Error())
	}

	return domain.OK("Email sent successfully", domain.EmailReceipt{
		MessageID:  messageID,
		Recipients: msg.To,
	})
}

// documentEmail looks up the referenced document and renders its template.
// Unrecognized kinds, missing documents and lookup failures all yield nil,
// which keeps the caller-supplied content in place.
func (d *Dispatcher) documentEmail(ctx context.Context, docType domain.DocumentType, docNum int) *domain.EmailMessage {
	doc, err := d.directory.GetDocument(ctx, docType, docNum)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			d.logger.WarnContext(ctx, "document lookup failed, keeping caller content", "type", docType, "number", docNum, "error", err)
		}
		return nil
	}

	var (
		msg  *domain.EmailMessage
		ferr error
	)
	switch docType {
	case domain.DocumentTypeInvoice:
		msg, ferr = format.InvoiceEmail(doc)
	case domain.DocumentTypeOrder:
		msg, ferr = format.OrderConfirmationEmail(doc)
	default:
		return nil
	}
	if ferr != nil {
		d.logger.ErrorContext(ctx, "template rendering failed, keeping caller content", "type", docType, "error", ferr)
		return nil
	}
	return msg
}

// SendSMS resolves the recipient number and sends a single text message.
// The channel-configured check runs before any lookup.
func (d *Dispatcher) SendSMS(ctx context.Context, req SMSRequest) *domain.Outcome {
	if !d.sms.IsEnabled() {
		return domain.Fail("SMS service is not configured")
	}

	var phone string

	if req.BusinessPartnerCode != "" {
		bp, err := d.directory.GetBusinessPartner(ctx, req.BusinessPartnerCode)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Fail(fmt.Sprintf("Business Partner %s not found", req.BusinessPartnerCode))
			}
			d.logger.ErrorContext(ctx, "business partner lookup failed", "card_code", req.BusinessPartnerCode, "error", err)
			return domain.Fail(err.Error())
		}
		phone = bp.Phone()
		if phone == "" {
			return domain.Fail(fmt.Sprintf("Business Partner %s does not have a phone number", req.BusinessPartnerCode))
		}
	}

	if req.To != "" {
		phone = req.To
	}
	if phone == "" {
		return domain.Fail("No phone number specified")
	}

	sid, err := d.sms.Send(ctx, &domain.SMSMessage{To: phone, Body: req.Message})
	if err != nil {
		d.logger.ErrorContext(ctx, "SMS send failed", "error", err, "to", phone)
		return domain.Fail(err.Error())
	}

	return domain.OK("SMS sent successfully", domain.SMSReceipt{SID: sid, To: phone})
}
