// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/inajphotography/visionboard/internal/notify"
)

const (
	DefaultPort              = "3000"
	DefaultBoardLayout       = "classic"
	DefaultImageFetchTimeout = 15 * time.Second
)

type Config struct {
	Port              string
	EmailProvider     string
	SendGridAPIKey    string
	BrevoAPIKey       string
	FromEmail         string
	BusinessEmail     string
	BoardLayout       string
	ImageFetchTimeout time.Duration
}

// Load reads the environment. EMAIL_PROVIDER may be left empty, in which case
// SendGrid is used when its key is set and Brevo otherwise.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", DefaultPort),
		EmailProvider:  strings.ToLower(strings.TrimSpace(os.Getenv("EMAIL_PROVIDER"))),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		BrevoAPIKey:    os.Getenv("BREVO_API_KEY"),
		FromEmail:      getEnv("FROM_EMAIL", notify.DefaultFromEmail),
		BusinessEmail:  getEnv("BUSINESS_EMAIL", notify.DefaultBusinessEmail),
		BoardLayout:    getEnv("BOARD_LAYOUT", DefaultBoardLayout),
	}

	switch cfg.EmailProvider {
	case "":
		cfg.EmailProvider = notify.ProviderSendGrid
		if cfg.SendGridAPIKey == "" && cfg.BrevoAPIKey != "" {
			cfg.EmailProvider = notify.ProviderBrevo
		}
	case notify.ProviderSendGrid, notify.ProviderBrevo:
	default:
		return Config{}, fmt.Errorf("invalid EMAIL_PROVIDER %q (expected sendgrid or brevo)", cfg.EmailProvider)
	}

	cfg.ImageFetchTimeout = DefaultImageFetchTimeout
	if raw := os.Getenv("IMAGE_FETCH_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid IMAGE_FETCH_TIMEOUT %q: expected a positive duration like 15s", raw)
		}
		cfg.ImageFetchTimeout = d
	}

	return cfg, nil
}

// EmailAPIKey is the credential for the selected email provider
func (c Config) EmailAPIKey() string {
	if c.EmailProvider == notify.ProviderBrevo {
		return c.BrevoAPIKey
	}
	return c.SendGridAPIKey
}

// Notifier builds the dispatch layer. Channels without a credential are left
// disabled; the CRM only needs the Brevo key.
func (c Config) Notifier() (*notify.Notifier, error) {
	mailer, err := notify.NewMailer(c.EmailProvider, c.EmailAPIKey())
	if err != nil {
		return nil, err
	}

	var crm notify.ContactUpserter
	if c.BrevoAPIKey != "" {
		crm = notify.NewBrevoCRM(c.BrevoAPIKey)
	}

	return notify.NewNotifier(mailer, crm, c.FromEmail, c.BusinessEmail), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
