package smsprovider

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b1connect/notify-gateway/internal/notification_service/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewTwilioProvider_IncompleteCredentialsDisable(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
	}{
		{name: "all empty", cfg: Config{}},
		{name: "missing auth token", cfg: Config{AccountSID: "AC123", FromNumber: "+15550001111"}},
		{name: "missing from number", cfg: Config{AccountSID: "AC123", AuthToken: "token"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewTwilioProvider(tc.cfg, discardLogger())
			assert.False(t, p.IsEnabled())
		})
	}
}

func TestNewTwilioProvider_FullCredentialsEnable(t *testing.T) {
	p := NewTwilioProvider(Config{
		AccountSID: "AC123",
		AuthToken:  "token",
		FromNumber: "+15550001111",
	}, discardLogger())
	assert.True(t, p.IsEnabled())
}

func TestTwilioProvider_SendDisabled(t *testing.T) {
	p := NewTwilioProvider(Config{}, discardLogger())

	_, err := p.Send(context.Background(), &domain.SMSMessage{To: "+15551234567", Body: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrChannelDisabled)
}
