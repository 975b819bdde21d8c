package format

import (
	"fmt"
	"unicode/utf8"

	"github.com/b1connect/notify-gateway/internal/notification_service/domain"
)

// Single-segment SMS limit. Templated bodies longer than this are cut to
// smsTruncateAt characters plus an ellipsis marker.
const (
	smsMaxLength  = 160
	smsTruncateAt = 157
)

// InvoiceSMS renders the invoice-ready text notification.
func InvoiceSMS(customerName string, docNum int, total float64) string {
	return fmt.Sprintf("Hello %s, your invoice #%d for $%.2f is ready. Please check your email for details. Thank you!", customerName, docNum, total)
}

// OrderConfirmationSMS renders the order confirmation text notification.
func OrderConfirmationSMS(customerName string, docNum int) string {
	return fmt.Sprintf("Hi %s! Your order #%d has been confirmed and is being processed. Thank you for your business!", customerName, docNum)
}

// DeliveryNotificationSMS renders the shipped notification.
func DeliveryNotificationSMS(customerName string, docNum int) string {
	return fmt.Sprintf("Hi %s! Your order #%d has been shipped and is on its way. Track your delivery for updates.", customerName, docNum)
}

// GenericDocumentSMS is the fallback for document kinds without a dedicated
// template.
func GenericDocumentSMS(docType domain.DocumentType, docNum int, customerName string) string {
	return fmt.Sprintf("%s #%d is ready for %s", docType, docNum, customerName)
}

// CustomSMS caps a templated body at a single SMS segment, counting
// characters rather than bytes so multi-byte names are never cut
// mid-rune. Raw caller-supplied text is never passed through here; the
// dispatcher sends it untouched.
func CustomSMS(body string) string {
	if utf8.RuneCountInString(body) <= smsMaxLength {
		return body
	}
	return string([]rune(body)[:smsTruncateAt]) + "..."
}
