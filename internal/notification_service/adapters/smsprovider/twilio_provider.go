// Package smsprovider delivers outbound text messages through Twilio.
package smsprovider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/b1connect/notify-gateway/internal/notification_service/domain"
)

// Config carries the Twilio credential triple. SMS stays disabled unless
// all three values are present.
type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// TwilioProvider sends domain.SMSMessage values via the Twilio REST API.
type TwilioProvider struct {
	logger  *slog.Logger
	client  *twilio.RestClient
	from    string
	enabled bool
}

// NewTwilioProvider builds the provider. With an incomplete credential
// triple the provider is created disabled and every Send fails with
// domain.ErrChannelDisabled.
func NewTwilioProvider(cfg Config, logger *slog.Logger) *TwilioProvider {
	p := &TwilioProvider{
		logger: logger.With("provider", "twilio"),
		from:   cfg.FromNumber,
	}

	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		p.logger.Warn("SMS provider not configured; SMS functionality disabled")
		return p
	}

	p.client = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	p.enabled = true
	p.logger.Info("SMS provider initialized")
	return p
}

// IsEnabled reports whether the credential triple was configured.
func (p *TwilioProvider) IsEnabled() bool {
	return p.enabled
}

// Send delivers one SMS and returns the Twilio message SID. The recipient
// number is normalized to E.164 first.
func (p *TwilioProvider) Send(ctx context.Context, msg *domain.SMSMessage) (string, error) {
	if !p.enabled {
		return "", domain.ErrChannelDisabled
	}

	to := NormalizeNumber(msg.To)

	params := &twilioapi.CreateMessageParams{}
	params.SetFrom(p.from)
	params.SetTo(to)
	params.SetBody(msg.Body)

	resp, err := p.client.Api.CreateMessage(params)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to send SMS", "error", err, "to", to)
		return "", fmt.Errorf("twilio send: %w", err)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}

	p.logger.InfoContext(ctx, "SMS sent", "sid", sid, "to", to, "body_length", len(msg.Body))
	return sid, nil
}
