package sapb1

import (
	"context"
	"fmt"

	"github.com/b1connect/notify-gateway/internal/notification_service/domain"
)

// GetBusinessPartner fetches a partner snapshot by CardCode.
// Returns domain.ErrNotFound when the code does not exist.
func (c *Client) GetBusinessPartner(ctx context.Context, cardCode string) (*domain.BusinessPartner, error) {
	var bp domain.BusinessPartner
	path := fmt.Sprintf("/BusinessPartners('%s')", cardCode)
	if err := c.get(ctx, path, nil, &bp); err != nil {
		return nil, err
	}
	c.logger.DebugContext(ctx, "fetched business partner", "card_code", bp.CardCode)
	return &bp, nil
}

type partnerListResponse struct {
	Value []domain.BusinessPartner `json:"value"`
}

// ListBusinessPartnersWithEmail returns every partner that has an email
// address on file.
func (c *Client) ListBusinessPartnersWithEmail(ctx context.Context) ([]domain.BusinessPartner, error) {
	query := map[string]string{
		"$select": "CardCode,CardName,Phone1,Cellular,EmailAddress",
		"$filter": "EmailAddress ne null and EmailAddress ne ''",
	}
	var out partnerListResponse
	if err := c.get(ctx, "/BusinessPartners", query, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}

// Service Layer collection for each document kind.
var documentResources = map[domain.DocumentType]string{
	domain.DocumentTypeInvoice:      "Invoices",
	domain.DocumentTypeOrder:        "Orders",
	domain.DocumentTypeQuotation:    "Quotations",
	domain.DocumentTypeDeliveryNote: "DeliveryNotes",
}

// GetDocument fetches a marketing document summary by type and entry.
// Returns domain.ErrNotFound when the entry does not exist.
func (c *Client) GetDocument(ctx context.Context, docType domain.DocumentType, docEntry int) (*domain.Document, error) {
	resource, ok := documentResources[docType]
	if !ok {
		return nil, fmt.Errorf("unknown document type: %s", docType)
	}

	var doc domain.Document
	path := fmt.Sprintf("/%s(%d)", resource, docEntry)
	if err := c.get(ctx, path, nil, &doc); err != nil {
		return nil, err
	}
	c.logger.DebugContext(ctx, "fetched document", "type", docType, "doc_num", doc.DocNum)
	return &doc, nil
}
