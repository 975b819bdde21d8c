package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/b1connect/notify-gateway/internal/notification_service/domain"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) GetBusinessPartner(ctx context.Context, cardCode string) (*domain.BusinessPartner, error) {
	args := m.Called(ctx, cardCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessPartner), args.Error(1)
}

func (m *mockDirectory) GetDocument(ctx context.Context, docType domain.DocumentType, docEntry int) (*domain.Document, error) {
	args := m.Called(ctx, docType, docEntry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *mockDirectory) ListBusinessPartnersWithEmail(ctx context.Context) ([]domain.BusinessPartner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusinessPartner), args.Error(1)
}

type mockMailSender struct {
	mock.Mock
}

func (m *mockMailSender) Send(ctx context.Context, msg *domain.EmailMessage) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

type mockSMSSender struct {
	mock.Mock
}

func (m *mockSMSSender) IsEnabled() bool {
	return m.Called().Bool(0)
}

func (m *mockSMSSender) Send(ctx context.Context, msg *domain.SMSMessage) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func newTestDispatcher(dir *mockDirectory, mail *mockMailSender, sms *mockSMSSender) *Dispatcher {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := NewDispatcher(dir, mail, sms, logger)
	d.smsPause = 0 // no pacing in tests
	return d
}

func testPartner() *domain.BusinessPartner {
	return &domain.BusinessPartner{
		CardCode:     "C100",
		CardName:     "Acme Corp",
		EmailAddress: "billing@acme.example",
		Cellular:     "+15551230001",
		Phone1:       "+15551230002",
	}
}

func testInvoice() *domain.Document {
	return &domain.Document{
		DocEntry: 7,
		DocNum:   1001,
		CardCode: "C100",
		CardName: "Acme Corp",
		DocDate:  "2024-05-01",
		DocTotal: 1234.5,
	}
}

func TestDispatcher_SendEmail_DirectAddressOnly_NoLookup(t *testing.T) {
	dir := new(mockDirectory)
	mail := new(mockMailSender)
	sms := new(mockSMSSender)
	d := newTestDispatcher(dir, mail, sms)

	mail.On("Send", mock.Anything, mock.Anything).Return("mid-1", nil)

	outcome := d.SendEmail(context.Background(), EmailRequest{
		To:      []string{"direct@example.com"},
		Subject: "Hello",
		Text:    "Hi there",
	})

	require.True(t, outcome.Success)
	receipt, ok := outcome.Data.(domain.EmailReceipt)
	require.True(t, ok)
	assert.Equal(t, "mid-1", receipt.MessageID)
	assert.Equal(t, []string{"direct@example.com"}, receipt.Recipients)

	dir.AssertNotCalled(t, "GetBusinessPartner", mock.Anything, mock.Anything)
}

func TestDispatcher_SendEmail_PartnerOnly_SingleLookup(t *testing.T) {
	dir := new(mockDirectory)
	mail := new(mockMailSender)
	sms := new(mockSMSSender)
	d := newTestDispatcher(dir, mail, sms)

	dir.On("GetBusinessPartner", mock.Anything, "C100").Return(testPartner(), nil)
	mail.On("Send", mock.Anything, mock.Anything).Return("mid-2", nil)

	outcome := d.SendEmail(context.Background(), EmailRequest{
		BusinessPartnerCode: "C100",
		Subject:             "Hello",
		Text:                "Hi there",
	})

	require.True(t, outcome.Success)
	dir.AssertNumberOfCalls(t, "GetBusinessPartner", 1)
}

// Both an identifier and direct addresses resolve and all receive the
// message, partner-resolved address first. The union is deliberate;
// do not "fix" it.
func TestDispatcher_SendEmail_PartnerAndDirectAddressesUnion(t *testing.T) {
	dir := new(mockDirectory)
	mail := new(mockMailSender)
	sms := new(mockSMSSender)
	d := newTestDispatcher(dir, mail, sms)

	dir.On("GetBusinessPartner", mock.Anything, "C100").Return(testPartner(), nil)

	var sent *domain.EmailMessage
	mail.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(*domain.EmailMessage)
	}).Return("mid-3", nil)

	outcome := d.SendEmail(context.Background(), EmailRequest{
		BusinessPartnerCode: "C100",
		To:                  []string{"extra@example.com"},
		Subject:             "Hello",
		Text:                "Hi there",
	})

	require.True(t, outcome.Success)
	require.NotNil(t, sent)
	assert.Equal(t, []string{"billing@acme.example", "extra@example.com"}, sent.To)

	receipt := outcome.Data.(domain.EmailReceipt)
	assert.Equal(t, []string{"billing@acme.example", "extra@example.com"}, receipt.Recipients)
}

func TestDispatcher_SendEmail_PartnerNotFound(t *testing.T) {
	dir := new(mockDirectory)
	mail := new(mockMailSender)
	sms := new(mockSMSSender)
	d := newTestDispatcher(dir, mail, sms)

	dir.On("GetBusinessPartner", mock.Anything, "C404").Return(nil, domain.ErrNotFound)

	outcome := d.SendEmail(context.Background(), EmailRequest{
		BusinessPartnerCode: "C404",
		Subject:             "Hello",
		Text:                "Hi",
	})

	require.False(t, outcome.Success)
	assert.Equal(t, "Business Partner C404 not found", outcome.Error)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatcher_SendEmail_PartnerMissingEmail(t *testing.T) {
	dir := new(mockDirectory)
	mail := new(mockMailSender)
	sms := new(mockSMSSender)
	d := newTestDispatcher(dir, mail, sms)

	bp := testPartner()
	bp.EmailAddress = ""
	dir.On("GetBusinessPartner", mock.Anything, "C100").Return(bp, nil)

	outcome := d.SendEmail(context.Background(), EmailRequest{
		BusinessPartnerCode: "C100",
		Subject:             "Hello",
		Text:                "Hi",
	})

	require.False(t, outcome.Success)
	assert.Equal(t, "Business Partner C100 does not have an email address", outcome.Error)
}

func TestDispatcher_SendEmail_InvoiceTemplateOverridesCallerContent(t *testing.T) {
	dir := new(mockDirectory)
	mail := new(mockMailSender)
	sms := new(mockSMSSender)
	d := newTestDispatcher(dir, mail, sms)

	dir.On("GetBusinessPartner", mock.Anything, "C100").Return(testPartner(), nil)
	dir.On("GetDocument", mock.Anything, domain.DocumentTypeInvoice, 7).Return(testInvoice(), nil)

	var sent *domain.EmailMessage
	mail.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(*domain.EmailMessage)
	}).Return("mid-4", nil)

	outcome := d.SendEmail(context.Background(), EmailRequest{
		BusinessPartnerCode: "C100",
		Subject:             "caller subject",
		Text:                "caller body",
		DocumentType:        domain.DocumentTypeInvoice,
		DocumentNumber:      7,
	})

	require.True(t, outcome.Success)
	require.NotNil(t, sent)
	assert.Equal(t, "Invoice #1001 - Acme Corp", sent.Subject)
	assert.Contains(t, sent.HTML, "Invoice Number")
	assert.Contains(t, sent.Text, "1234.50")
	assert.Equal(t, []string{"billing@acme.example"}, sent.To)
}

func TestDispatcher_SendEmail_UnrecognizedKindKeepsCallerContent(t *testing.T) {
	dir := new(mockDirectory)
	mail := new(mockMailSender)
	sms := new(mockSMSSender)
	d := newTestDispatcher(dir, mail, sms)

	doc := testInvoice()
	dir.On("GetBusinessPartner", mock.Anything, "C100").Return(testPartner(), nil)
	dir.On("GetDocument", mock.Anything, domain.DocumentTypeQuotation, 7).Return(doc, nil)

	var sent *domain.EmailMessage
	mail.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(*domain.EmailMessage)
	}).Return("mid-5", nil)

	outcome := d.SendEmail(context.Background(), EmailRequest{
		BusinessPartnerCode: "C100",
		Subject:             "caller subject",
		Text:                "caller body",
		DocumentType:        domain.DocumentTypeQuotation,
		DocumentNumber:      7,
	})

	require.True(t, outcome.Success)
	require.NotNil(t, sent)
	assert.Equal(t, "caller subject", sent.Subject)
	assert.Equal(t, "caller body", sent.Text)
}

func TestDispatcher_SendEmail_DocumentLookupFailureFallsBack(t *testing.T) {
	dir := new(mockDirectory)
	mail := new(mockMailSender)
	sms := new(mockSMSSender)
	d := newTestDispatcher(dir, mail, sms)

	dir.On("GetDocument", mock.Anything, domain.DocumentTypeInvoice, 7).Return(nil, errors.New("connection refused"))
	mail.On("Send", mock.Anything, mock.Anything).Return("mid-6", nil)

	outcome := d.SendEmail(context.Background(), EmailRequest{
		To:             []string{"a@example.com"},
		Subject:        "caller subject",
		Text:           "caller body",
		DocumentType:   domain.DocumentTypeInvoice,
		DocumentNumber: 7,
	})

	require.True(t, outcome.Success)
}

func TestDispatcher_SendSMS_ChannelDisabledBeforeLookup(t *testing.T) {
	dir := new(mockDirectory)
	mail := new(mockMailSender)
	sms := new(mockSMSSender)
	d := newTestDispatcher(dir, mail, sms)

	sms.On("IsEnabled").Return(false)

	outcome := d.SendSMS(context.Background(), SMSRequest{
		BusinessPartnerCode: "C100",
		Message:             "hello",
	})

	require.False(t, outcome.Success)
	assert.Equal(t, "SMS service is not configured", outcome.Error)
	// The enabled check precedes any directory call.
	dir.AssertNotCalled(t, "GetBusinessPartner", mock.Anything, mock.Anything)
}

func TestDispatcher_SendSMS_MobilePreferredOverPrimaryPhone(t *testing.T) {
	dir := new(mockDirectory)
	mail := new(mockMailSender)
	sms := new(mockSMSSender)
	d := newTestDispatcher(dir, mail, sms)

	sms.On("IsEnabled").Return(true)
	dir.On("GetBusinessPartner", mock.Anything, "C100").Return(testPartner(), nil)

	var sent *domain.SMSMessage
	sms.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(*domain.SMSMessage)
	}).Return("SM1", nil)

	outcome := d.SendSMS(context.Background(), SMSRequest{
		BusinessPartnerCode: "C100",
		Message:             "hello",
	})

	require.True(t, outcome.Success)
	require.NotNil(t, sent)
	assert.Equal(t, "+15551230001", sent.To)
	assert.Equal(t, "hello", sent.Body)
}

func TestDispatcher_SendSMS_PrimaryPhoneFallback(t *testing.T) {
	dir := new(mockDirectory)
	mail := new(mockMailSender)
	sms := new(mockSMSSender)
	d := newTestDispatcher(dir, mail, sms)

	bp := testPartner()
	bp.Cellular = ""
	sms.On("IsEnabled").Return(true)
	dir.On("GetBusinessPartner", mock.Anything, "C100").Return(bp, nil)

	var sent *domain.SMSMessage
	sms.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(*domain.SMSMessage)
	}).Return("SM2", nil)

	outcome := d.SendSMS(context.Background(), SMSRequest{
		BusinessPartnerCode: "C100",
		Message:             "hello",
	})

	require.True(t, outcome.Success)
	assert.Equal(t, "+15551230002", sent.To)
}

func TestDispatcher_SendSMS_PartnerMissingPhone(t *testing.T) {
	dir := new(mockDirectory)
	mail := new(mockMailSender)
	sms := new(mockSMSSender)
	d := newTestDispatcher(dir, mail, sms)

	bp := testPartner()
	bp.Cellular = ""
	bp.Phone1 = ""
	sms.On("IsEnabled").Return(true)
	dir.On("GetBusinessPartner", mock.Anything, "C100").Return(bp, nil)

	outcome := d.SendSMS(context.Background(), SMSRequest{
		BusinessPartnerCode: "C100",
		Message:             "hello",
	})

	require.False(t, outcome.Success)
	assert.Equal(t, "Business Partner C100 does not have a phone number", outcome.Error)
	sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatcher_SendSMS_DirectNumberOverridesPartner(t *testing.T) {
	dir := new(mockDirectory)
	mail := new(mockMailSender)
	sms := new(mockSMSSender)
	d := newTestDispatcher(dir, mail, sms)

	sms.On("IsEnabled").Return(true)
	dir.On("GetBusinessPartner", mock.Anything, "C100").Return(testPartner(), nil)

	var sent *domain.SMSMessage
	sms.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(*domain.SMSMessage)
	}).Return("SM3", nil)

	outcome := d.SendSMS(context.Background(), SMSRequest{
		BusinessPartnerCode: "C100",
		To:                  "+15559990000",
		Message:             "hello",
	})

	require.True(t, outcome.Success)
	assert.Equal(t, "+15559990000", sent.To)
}
