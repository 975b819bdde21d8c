package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the gateway. Values come from
// environment variables, with an optional config.defaults.yaml underneath.
type Config struct {
	ServerPort int    `mapstructure:"PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	// SAP Business One Service Layer
	SAPServiceLayerURL string `mapstructure:"SAP_SERVICE_LAYER_URL"`
	SAPCompanyDB       string `mapstructure:"SAP_COMPANY_DB"`
	SAPUsername        string `mapstructure:"SAP_USERNAME"`
	SAPPassword        string `mapstructure:"SAP_PASSWORD"`
	// Service Layer installs commonly run with self-signed certificates.
	SAPSkipTLSVerify bool `mapstructure:"SAP_SKIP_TLS_VERIFY"`

	// SMTP relay
	EmailHost     string `mapstructure:"EMAIL_HOST"`
	EmailPort     int    `mapstructure:"EMAIL_PORT"`
	EmailSecure   bool   `mapstructure:"EMAIL_SECURE"`
	EmailUser     string `mapstructure:"EMAIL_USER"`
	EmailPassword string `mapstructure:"EMAIL_PASSWORD"`
	EmailFrom     string `mapstructure:"EMAIL_FROM"`

	// Twilio. All three must be present for SMS to be enabled.
	TwilioAccountSID  string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `mapstructure:"TWILIO_PHONE_NUMBER"`
}

// SMSEnabled reports whether the Twilio credential triple is complete.
func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

// Validate checks that all required settings are present and returns the
// full list of problems rather than stopping at the first one.
// An incomplete Twilio triple is not an error; SMS is simply disabled.
func (c *Config) Validate() []string {
	var errs []string

	if c.SAPServiceLayerURL == "" {
		errs = append(errs, "SAP_SERVICE_LAYER_URL is required")
	}
	if c.SAPCompanyDB == "" {
		errs = append(errs, "SAP_COMPANY_DB is required")
	}
	if c.SAPUsername == "" {
		errs = append(errs, "SAP_USERNAME is required")
	}
	if c.SAPPassword == "" {
		errs = append(errs, "SAP_PASSWORD is required")
	}

	if c.EmailHost == "" {
		errs = append(errs, "EMAIL_HOST is required")
	}
	if c.EmailUser == "" {
		errs = append(errs, "EMAIL_USER is required")
	}
	if c.EmailPassword == "" {
		errs = append(errs, "EMAIL_PASSWORD is required")
	}
	if c.EmailFrom == "" {
		errs = append(errs, "EMAIL_FROM is required")
	}

	return errs
}

// Load reads configuration from the environment, layered over an optional
// config.defaults.yaml file. Every known key gets a default so that
// viper's AutomaticEnv picks the environment value up during Unmarshal.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("PORT", 3000)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("SAP_SERVICE_LAYER_URL", "")
	v.SetDefault("SAP_COMPANY_DB", "")
	v.SetDefault("SAP_USERNAME", "")
	v.SetDefault("SAP_PASSWORD", "")
	v.SetDefault("SAP_SKIP_TLS_VERIFY", false)

	v.SetDefault("EMAIL_HOST", "smtp.gmail.com")
	v.SetDefault("EMAIL_PORT", 587)
	v.SetDefault("EMAIL_SECURE", false)
	v.SetDefault("EMAIL_USER", "")
	v.SetDefault("EMAIL_PASSWORD", "")
	v.SetDefault("EMAIL_FROM", "")

	v.SetDefault("TWILIO_ACCOUNT_SID", "")
	v.SetDefault("TWILIO_AUTH_TOKEN", "")
	v.SetDefault("TWILIO_PHONE_NUMBER", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("config.defaults.yaml not found; using defaults and environment variables")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
