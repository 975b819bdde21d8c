package app

import (
	"context"

	"github.com/b1connect/notify-gateway/internal/notification_service/domain"
)

// DirectoryClient resolves business partners and marketing documents from
// the ERP backend. Lookups return domain.ErrNotFound for missing records.
type DirectoryClient interface {
	GetBusinessPartner(ctx context.Context, cardCode string) (*domain.BusinessPartner, error)
	GetDocument(ctx context.Context, docType domain.DocumentType, docEntry int) (*domain.Document, error)
	ListBusinessPartnersWithEmail(ctx context.Context) ([]domain.BusinessPartner, error)
}

// MailSender delivers one email and returns a delivery identifier.
type MailSender interface {
	Send(ctx context.Context, msg *domain.EmailMessage) (string, error)
}

// SMSSender delivers one text message and returns the provider's message
// identifier. IsEnabled reports whether the channel was configured at all.
type SMSSender interface {
	IsEnabled() bool
	Send(ctx context.Context, msg *domain.SMSMessage) (string, error)
}
