package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SAP_SERVICE_LAYER_URL", "https://sap.example:50000/b1s/v1")
	t.Setenv("SAP_COMPANY_DB", "SBODEMOUS")
	t.Setenv("SAP_USERNAME", "manager")
	t.Setenv("SAP_PASSWORD", "secret")
	t.Setenv("EMAIL_USER", "notify@example.com")
	t.Setenv("EMAIL_PASSWORD", "mailsecret")
	t.Setenv("EMAIL_FROM", "notify@example.com")
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EMAIL_HOST", "smtp.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "smtp.example.com", cfg.EmailHost)
	assert.Equal(t, "https://sap.example:50000/b1s/v1", cfg.SAPServiceLayerURL)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "smtp.gmail.com", cfg.EmailHost)
	assert.Equal(t, 587, cfg.EmailPort)
	assert.False(t, cfg.EmailSecure)
}

func TestValidate_ReportsEveryMissingSetting(t *testing.T) {
	cfg := &Config{}

	errs := cfg.Validate()

	assert.Contains(t, errs, "SAP_SERVICE_LAYER_URL is required")
	assert.Contains(t, errs, "SAP_COMPANY_DB is required")
	assert.Contains(t, errs, "SAP_USERNAME is required")
	assert.Contains(t, errs, "SAP_PASSWORD is required")
	assert.Contains(t, errs, "EMAIL_HOST is required")
	assert.Contains(t, errs, "EMAIL_USER is required")
	assert.Contains(t, errs, "EMAIL_PASSWORD is required")
	assert.Contains(t, errs, "EMAIL_FROM is required")
	assert.Len(t, errs, 8)
}

func TestValidate_CompleteConfigPasses(t *testing.T) {
	cfg := &Config{
		SAPServiceLayerURL: "https://sap.example:50000/b1s/v1",
		SAPCompanyDB:       "SBODEMOUS",
		SAPUsername:        "manager",
		SAPPassword:        "secret",
		EmailHost:          "smtp.example.com",
		EmailUser:          "notify@example.com",
		EmailPassword:      "mailsecret",
		EmailFrom:          "notify@example.com",
	}

	assert.Empty(t, cfg.Validate())
}

// SMS is opt-in: the triple must be complete, but its absence is never a
// validation error.
func TestSMSEnabled(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.SMSEnabled())

	cfg.TwilioAccountSID = "AC123"
	cfg.TwilioAuthToken = "token"
	assert.False(t, cfg.SMSEnabled())

	cfg.TwilioPhoneNumber = "+15550001111"
	assert.True(t, cfg.SMSEnabled())
}
