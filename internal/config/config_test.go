package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "EMAIL_PROVIDER", "SENDGRID_API_KEY", "BREVO_API_KEY",
		"FROM_EMAIL", "BUSINESS_EMAIL", "BOARD_LAYOUT", "IMAGE_FETCH_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "sendgrid", cfg.EmailProvider)
	assert.Equal(t, "noreply@inajphotography.com", cfg.FromEmail)
	assert.Equal(t, "ina@inajphotography.com", cfg.BusinessEmail)
	assert.Equal(t, "classic", cfg.BoardLayout)
	assert.Equal(t, 15*time.Second, cfg.ImageFetchTimeout)
	assert.Empty(t, cfg.EmailAPIKey())
}

func TestLoadPicksBrevoWhenOnlyBrevoKeySet(t *testing.T) {
	clearEnv(t)
	t.Setenv("BREVO_API_KEY", "xkeysib")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "brevo", cfg.EmailProvider)
	assert.Equal(t, "xkeysib", cfg.EmailAPIKey())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("EMAIL_PROVIDER", " SendGrid ")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("BREVO_API_KEY", "xkeysib")
	t.Setenv("IMAGE_FETCH_TIMEOUT", "3s")
	t.Setenv("BOARD_LAYOUT", "landscape")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sendgrid", cfg.EmailProvider)
	assert.Equal(t, "SG.key", cfg.EmailAPIKey())
	assert.Equal(t, 3*time.Second, cfg.ImageFetchTimeout)
	assert.Equal(t, "landscape", cfg.BoardLayout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMAIL_PROVIDER", "mailgun")
	_, err := Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("IMAGE_FETCH_TIMEOUT", "soon")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("IMAGE_FETCH_TIMEOUT", "-1s")
	_, err = Load()
	assert.Error(t, err)
}

func TestNotifierWithoutKeys(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	n, err := cfg.Notifier()
	require.NoError(t, err)
	assert.NotNil(t, n)
}
