package domain

// Outcome is the result of one dispatch attempt, and also the response
// envelope the HTTP layer returns. A successful outcome always carries a
// delivery identifier or a "sent" message; a failed one always carries a
// non-empty Error.
type Outcome struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK builds a successful outcome.
func OK(message string, data interface{}) *Outcome {
	return &Outcome{Success: true, Message: message, Data: data}
}

// Fail builds a failed outcome.
func Fail(errMsg string) *Outcome {
	return &Outcome{Success: false, Error: errMsg}
}

// EmailReceipt is the structured payload of a successful email dispatch.
type EmailReceipt struct {
	MessageID  string   `json:"messageId"`
	Recipients []string `json:"recipients"`
}

// SMSReceipt is the structured payload of a successful SMS dispatch.
type SMSReceipt struct {
	SID string `json:"sid"`
	To  string `json:"to"`
}

// DocumentNotificationData holds the per-channel outcomes of a document
// notification. A nil channel outcome means the channel was not attempted,
// either because it was not requested or the partner lacks an address for it.
type DocumentNotificationData struct {
	Email *Outcome `json:"email"`
	SMS   *Outcome `json:"sms"`
}

// BulkItem is the per-recipient result of a bulk dispatch.
type BulkItem struct {
	BusinessPartnerCode string   `json:"businessPartnerCode"`
	Email               *Outcome `json:"email"`
	SMS                 *Outcome `json:"sms"`
}

// Succeeded reports whether at least one channel succeeded for this item.
func (b *BulkItem) Succeeded() bool {
	if b.Email != nil && b.Email.Success {
		return true
	}
	if b.SMS != nil && b.SMS.Success {
		return true
	}
	return false
}
