// Package format renders the outbound message bodies for document
// notifications: HTML/plain-text email pairs and SMS one-liners.
package format

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/b1connect/notify-gateway/internal/notification_service/domain"
)

var invoiceEmailTmpl = template.Must(template.New("invoice_email").Parse(`
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #0066cc; color: white; padding: 20px; text-align: center; }
      .content { padding: 20px; background-color: #f9f9f9; }
      .invoice-details { background-color: white; padding: 15px; margin: 20px 0; border-left: 4px solid #0066cc; }
      .footer { text-align: center; padding: 20px; font-size: 12px; color: #666; }
      .amount { font-size: 24px; font-weight: bold; color: #0066cc; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>Invoice</h1>
      </div>
      <div class="content">
        <p>Dear {{.CustomerName}},</p>
        <p>Thank you for your business. Please find the details of your invoice below:</p>

        <div class="invoice-details">
          <p><strong>Invoice Number:</strong> {{.DocNum}}</p>
          <p><strong>Due Date:</strong> {{.DocDate}}</p>
          <p><strong>Total Amount:</strong> <span class="amount">${{.Total}}</span></p>
        </div>

        <p>Please ensure payment is made by the due date. If you have any questions regarding this invoice, please don't hesitate to contact us.</p>

        <p>Best regards,<br>Your Company Name</p>
      </div>
      <div class="footer">
        <p>This is an automated message. Please do not reply directly to this email.</p>
      </div>
    </div>
  </body>
</html>
`))

var orderEmailTmpl = template.Must(template.New("order_email").Parse(`
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #28a745; color: white; padding: 20px; text-align: center; }
      .content { padding: 20px; background-color: #f9f9f9; }
      .order-details { background-color: white; padding: 15px; margin: 20px 0; border-left: 4px solid #28a745; }
      .footer { text-align: center; padding: 20px; font-size: 12px; color: #666; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>Order Confirmed!</h1>
      </div>
      <div class="content">
        <p>Dear {{.CustomerName}},</p>
        <p>Thank you for your order. Your order has been confirmed and is being processed.</p>

        <div class="order-details">
          <p><strong>Order Number:</strong> {{.DocNum}}</p>
          <p><strong>Order Date:</strong> {{.DocDate}}</p>
          <p><strong>Total Amount:</strong> ${{.Total}}</p>
        </div>

        <p>We will notify you once your order has been shipped.</p>

        <p>Best regards,<br>Your Company Name</p>
      </div>
      <div class="footer">
        <p>This is an automated message. Please do not reply directly to this email.</p>
      </div>
    </div>
  </body>
</html>
`))

type emailData struct {
	CustomerName string
	DocNum       int
	DocDate      string
	Total        string
}

// InvoiceEmail builds the templated invoice email for a document.
// Recipients are filled in by the dispatcher.
func InvoiceEmail(doc *domain.Document) (*domain.EmailMessage, error) {
	data := emailData{
		CustomerName: doc.CardName,
		DocNum:       doc.DocNum,
		DocDate:      doc.DocDate,
		Total:        fmt.Sprintf("%.2f", doc.DocTotal),
	}

	var buf bytes.Buffer
	if err := invoiceEmailTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render invoice email: %w", err)
	}

	text := fmt.Sprintf(`Dear %s,

Thank you for your business. Please find the details of your invoice below:

Invoice Number: %d
Due Date: %s
Total Amount: $%.2f

Please ensure payment is made by the due date. If you have any questions regarding this invoice, please don't hesitate to contact us.

Best regards,
Your Company Name
`, doc.CardName, doc.DocNum, doc.DocDate, doc.DocTotal)

	return &domain.EmailMessage{
		Subject: fmt.Sprintf("Invoice #%d - %s", doc.DocNum, doc.CardName),
		Text:    text,
		HTML:    buf.String(),
	}, nil
}

// OrderConfirmationEmail builds the templated order confirmation email.
// It carries an HTML body only.
func OrderConfirmationEmail(doc *domain.Document) (*domain.EmailMessage, error) {
	data := emailData{
		CustomerName: doc.CardName,
		DocNum:       doc.DocNum,
		DocDate:      doc.DocDate,
		Total:        fmt.Sprintf("%.2f", doc.DocTotal),
	}

	var buf bytes.Buffer
	if err := orderEmailTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render order email: %w", err)
	}

	return &domain.EmailMessage{
		Subject: fmt.Sprintf("Order Confirmation #%d", doc.DocNum),
		HTML:    buf.String(),
	}, nil
}
