// Package mailer delivers outbound email over SMTP.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"

	"github.com/b1connect/notify-gateway/internal/notification_service/domain"
)

// Config carries the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Secure   bool // implicit TLS (port 465 style) instead of STARTTLS
	User     string
	Password string
	From     string
}

// SMTPSender sends domain.EmailMessage values through an SMTP relay.
type SMTPSender struct {
	logger *slog.Logger
	client *mail.Client
	from   string
}

// NewSMTPSender builds the sender. The connection itself is made per send;
// use Verify at startup to check reachability.
func NewSMTPSender(cfg Config, logger *slog.Logger) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		// Relays in the field often present certificates that do not match
		// their hostname.
		mail.WithTLSConfig(&tls.Config{InsecureSkipVerify: true}),
	}
	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create SMTP client: %w", err)
	}

	logger.Info("email sender initialized", "host", cfg.Host, "port", cfg.Port)
	return &SMTPSender{
		logger: logger.With("adapter", "mailer"),
		client: client,
		from:   cfg.From,
	}, nil
}

// Verify dials the relay once to confirm host, port and credentials.
func (s *SMTPSender) Verify(ctx context.Context) error {
	if err := s.client.DialWithContext(ctx); err != nil {
		return err
	}
	return s.client.Close()
}

// Send delivers one email and returns the generated Message-ID.
func (s *SMTPSender) Send(ctx context.Context, msg *domain.EmailMessage) (string, error) {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return "", fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return "", fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)

	messageID := uuid.NewString()
	m.SetMessageIDWithValue(messageID)

	// Plain text as the primary body with HTML as the alternative; an
	// HTML-only message gets the HTML body directly.
	switch {
	case msg.Text != "" && msg.HTML != "":
		m.SetBodyString(mail.TypeTextPlain, msg.Text)
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	case msg.HTML != "":
		m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	default:
		m.SetBodyString(mail.TypeTextPlain, msg.Text)
	}

	for _, att := range msg.Attachments {
		if err := m.AttachReader(att.Filename, bytes.NewReader(att.Content)); err != nil {
			return "", fmt.Errorf("attach %s: %w", att.Filename, err)
		}
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.ErrorContext(ctx, "failed to send email", "error", err, "to", msg.To)
		return "", err
	}

	s.logger.InfoContext(ctx, "email sent", "message_id", messageID, "to", msg.To, "subject", msg.Subject)
	return messageID, nil
}
