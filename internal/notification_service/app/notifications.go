package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/b1connect/notify-gateway/internal/notification_service/domain"
	"github.com/b1connect/notify-gateway/internal/notification_service/format"
)

// SendDocumentNotification notifies a partner about one document over the
// requested channels. Partner and document are looked up once; a missing
// record fails the whole operation. A channel is attempted only when it
// was requested and the partner has an address for it.
func (d *Dispatcher) SendDocumentNotification(ctx context.Context, code string, docType domain.DocumentType, docNum int, includeEmail, includeSMS bool) *domain.Outcome {
	bp, err := d.directory.GetBusinessPartner(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Fail(fmt.Sprintf("Business Partner %s not found", code))
		}
		d.logger.ErrorContext(ctx, "business partner lookup failed", "card_code", code, "error", err)
		return domain.Fail(err.Error())
	}

	doc, err := d.directory.GetDocument(ctx, docType, docNum)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Fail(fmt.Sprintf("%s %d not found", docType, docNum))
		}
		d.logger.ErrorContext(ctx, "document lookup failed", "type", docType, "number", docNum, "error", err)
		return domain.Fail(err.Error())
	}

	results := &domain.DocumentNotificationData{}
	attempted := 0

	if includeEmail && bp.EmailAddress != "" {
		attempted++
		results.Email = d.sendDocumentEmail(ctx, bp, doc, docType)
	}
	if includeSMS && bp.Phone() != "" {
		attempted++
		results.SMS = d.sendDocumentSMS(ctx, bp, doc, docType)
	}

	successCount := 0
	if results.Email != nil && results.Email.Success {
		successCount++
	}
	if results.SMS != nil && results.SMS.Success {
		successCount++
	}

	summary := fmt.Sprintf("Sent %d of %d notifications", successCount, attempted)
	if successCount > 0 {
		return &domain.Outcome{Success: true, Message: summary, Data: results}
	}
	return &domain.Outcome{Success: false, Error: summary, Data: results}
}

// sendDocumentEmail renders the kind-specific email for the document and
// delivers it to the partner's address. Kinds without a dedicated email
// template get a subject-only message.
func (d *Dispatcher) sendDocumentEmail(ctx context.Context, bp *domain.BusinessPartner, doc *domain.Document, docType domain.DocumentType) *domain.Outcome {
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
		msg = &domain.EmailMessage{Subject: fmt.Sprintf("%s #%d", docType, doc.DocNum)}
	}
	if ferr != nil {
		d.logger.ErrorContext(ctx, "template rendering failed", "type", docType, "error", ferr)
		return domain.Fail(ferr.Error())
	}

	msg.To = []string{bp.EmailAddress}
	return d.deliverEmail(ctx, msg)
}

// sendDocumentSMS renders the kind-specific text for the document and
// delivers it to the partner's preferred number. Templated bodies are
// capped at one SMS segment.
func (d *Dispatcher) sendDocumentSMS(ctx context.Context, bp *domain.BusinessPartner, doc *domain.Document, docType domain.DocumentType) *domain.Outcome {
	if !d.sms.IsEnabled() {
		return domain.Fail("SMS service is not configured")
	}

	var body string
	switch docType {
	case domain.DocumentTypeInvoice:
		body = format.InvoiceSMS(bp.CardName, doc.DocNum, doc.DocTotal)
	case domain.DocumentTypeOrder:
		body = format.OrderConfirmationSMS(bp.CardName, doc.DocNum)
	case domain.DocumentTypeDeliveryNote:
		body = format.DeliveryNotificationSMS(bp.CardName, doc.DocNum)
	default:
		body = format.GenericDocumentSMS(docType, doc.DocNum, bp.CardName)
	}
	body = format.CustomSMS(body)

	phone := bp.Phone()
	sid, err := d.sms.Send(ctx, &domain.SMSMessage{To: phone, Body: body})
	if err != nil {
		d.logger.ErrorContext(ctx, "SMS send failed", "error", err, "to", phone)
		return domain.Fail(err.Error())
	}
	return domain.OK("SMS sent successfully", domain.SMSReceipt{SID: sid, To: phone})
}

// SendBulkNotifications dispatches the same content to many partners,
// strictly sequentially in caller order. Per-recipient failures are
// recorded in the item list and never abort the batch.
func (d *Dispatcher) SendBulkNotifications(ctx context.Context, codes []string, subject, message string, includeEmail, includeSMS bool) *domain.Outcome {
	items := make([]domain.BulkItem, 0, len(codes))

	for i, code := range codes {
		item := domain.BulkItem{BusinessPartnerCode: code}

		if includeEmail {
			item.Email = d.SendEmail(ctx, EmailRequest{
				BusinessPartnerCode: code,
				Subject:             subject,
				Text:                message,
			})
		}
		if includeSMS {
			item.SMS = d.SendSMS(ctx, SMSRequest{
				BusinessPartnerCode: code,
				Message:             message,
			})
			if i < len(codes)-1 {
				d.pause(ctx)
			}
		}

		items = append(items, item)
	}

	successCount := 0
	for i := range items {
		if items[i].Succeeded() {
			successCount++
		}
	}

	summary := fmt.Sprintf("Successfully sent notifications to %d of %d business partners", successCount, len(codes))
	d.logger.InfoContext(ctx, "bulk dispatch finished", "recipients", len(codes), "succeeded", successCount)

	if successCount > 0 {
		return &domain.Outcome{Success: true, Message: summary, Data: items}
	}
	return &domain.Outcome{Success: false, Error: summary, Data: items}
}

// ListBusinessPartnersWithEmail returns the partners that can receive
// email notifications.
func (d *Dispatcher) ListBusinessPartnersWithEmail(ctx context.Context) *domain.Outcome {
	partners, err := d.directory.ListBusinessPartnersWithEmail(ctx)
	if err != nil {
		d.logger.ErrorContext(ctx, "business partner list failed", "error", err)
		return domain.Fail(err.Error())
	}
	return domain.OK(fmt.Sprintf("Found %d business partners with an email address", len(partners)), partners)
}

// pause waits the configured inter-SMS delay, cut short by context
// cancellation.
func (d *Dispatcher) pause(ctx context.Context) {
	if d.smsPause <= 0 {
		return
	}
	t := time.NewTimer(d.smsPause)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
