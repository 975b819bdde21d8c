package domain

import (
	"fmt"
	"strings"
)

// BusinessPartner is the contact record resolved from the SAP Business One
// directory. It is an immutable per-request snapshot; nothing caches it.
type BusinessPartner struct {
	CardCode     string `json:"cardCode"`
	CardName     string `json:"cardName"`
	Phone1       string `json:"phone1,omitempty"`
	Cellular     string `json:"cellular,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// Phone returns the partner's preferred SMS number: mobile first, then the
// primary phone. Empty when the partner has neither.
func (bp *BusinessPartner) Phone() string {
	if bp.Cellular != "" {
		return bp.Cellular
	}
	return bp.Phone1
}

// DocumentType enumerates the SAP marketing document kinds the gateway
// understands.
type DocumentType string

const (
	DocumentTypeInvoice      DocumentType = "Invoice"
	DocumentTypeOrder        DocumentType = "Order"
	DocumentTypeQuotation    DocumentType = "Quotation"
	DocumentTypeDeliveryNote DocumentType = "DeliveryNote"
)

// ParseDocumentType resolves a caller-supplied document type string,
// case-insensitively.
func ParseDocumentType(s string) (DocumentType, error) {
	switch strings.ToLower(s) {
	case "invoice":
		return DocumentTypeInvoice, nil
	case "order":
		return DocumentTypeOrder, nil
	case "quotation":
		return DocumentTypeQuotation, nil
	case "deliverynote":
		return DocumentTypeDeliveryNote, nil
	default:
		return "", fmt.Errorf("unknown document type: %s", s)
	}
}

// Document is a summary of a SAP marketing document, fetched per request.
type Document struct {
	DocEntry       int     `json:"docEntry"`
	DocNum         int     `json:"docNum"`
	CardCode       string  `json:"cardCode"`
	CardName       string  `json:"cardName"`
	DocDate        string  `json:"docDate"`
	DocTotal       float64 `json:"docTotal"`
	DocumentStatus string  `json:"documentStatus,omitempty"`
}

// Attachment is a file carried by an outbound email.
type Attachment struct {
	Filename string
	Content  []byte
}

// EmailMessage is a fully formed outbound email. Built fresh per send and
// never mutated afterwards.
type EmailMessage struct {
	To          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// SMSMessage is a fully formed outbound text message to a single number.
type SMSMessage struct {
	To   string
	Body string
}
