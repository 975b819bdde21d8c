package domain

import "errors"

var (
	// ErrNotFound indicates that a business partner or document does not
	// exist in the backend.
	ErrNotFound = errors.New("resource not found")
	// ErrChannelDisabled indicates the SMS channel was never configured.
	ErrChannelDisabled = errors.New("sms channel not configured")
)
