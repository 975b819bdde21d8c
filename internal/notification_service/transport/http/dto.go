package http

import "encoding/json"

// StringList accepts either a single JSON string or an array of strings;
// existing callers send both shapes.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*s = nil
		return nil
	}
	*s = StringList{single}
	return nil
}

// SendEmailRequest is the body of POST /api/email.
type SendEmailRequest struct {
	BusinessPartnerCode string     `json:"businessPartnerCode,omitempty"`
	To                  StringList `json:"to,omitempty"`
	Subject             string     `json:"subject" validate:"required"`
	Text                string     `json:"text,omitempty"`
	HTML                string     `json:"html,omitempty"`
	DocumentType        string     `json:"documentType,omitempty"`
	DocumentNumber      int        `json:"documentNumber,omitempty"`
}

// SendSMSRequest is the body of POST /api/sms. DocumentNumber is accepted
// for wire compatibility but not used.
type SendSMSRequest struct {
	BusinessPartnerCode string `json:"businessPartnerCode,omitempty"`
	To                  string `json:"to,omitempty"`
	Message             string `json:"message" validate:"required"`
	DocumentNumber      int    `json:"documentNumber,omitempty"`
}

// DocumentNotificationRequest is the body of POST /api/document-notification.
// Both channels default to enabled when omitted.
type DocumentNotificationRequest struct {
	BusinessPartnerCode string `json:"businessPartnerCode" validate:"required"`
	DocumentType        string `json:"documentType" validate:"required"`
	DocumentNumber      int    `json:"documentNumber" validate:"required,gt=0"`
	IncludeEmail        *bool  `json:"includeEmail,omitempty"`
	IncludeSMS          *bool  `json:"includeSMS,omitempty"`
}

// BulkNotificationsRequest is the body of POST /api/bulk-notifications.
// Email defaults to enabled, SMS to disabled.
type BulkNotificationsRequest struct {
	BusinessPartnerCodes []string `json:"businessPartnerCodes" validate:"required,min=1"`
	Subject              string   `json:"subject" validate:"required"`
	Message              string   `json:"message" validate:"required"`
	IncludeEmail         *bool    `json:"includeEmail,omitempty"`
	IncludeSMS           *bool    `json:"includeSMS,omitempty"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
