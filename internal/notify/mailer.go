package notify

import (
	"context"
	"fmt"
)

// Attachment is a file sent with a message; Content is raw bytes, providers encode it.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Message struct {
	To         string
	FromEmail  string
	FromName   string
	Subject    string
	HTML       string
	Attachment *Attachment
}

// Mailer delivers a single message through an email provider
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ContactUpserter creates or updates a CRM contact keyed by email
type ContactUpserter interface {
	UpsertContact(ctx context.Context, payload ContactPayload) error
}

// Provider names accepted by NewMailer
const (
	ProviderSendGrid = "sendgrid"
	ProviderBrevo    = "brevo"
)

// NewMailer returns the mailer for provider, or nil when apiKey is empty so
// callers treat email as disabled.
func NewMailer(provider, apiKey string) (Mailer, error) {
	if apiKey == "" {
		return nil, nil
	}
	switch provider {
	case "", ProviderSendGrid:
		return NewSendGridMailer(apiKey), nil
	case ProviderBrevo:
		return NewBrevoMailer(apiKey), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q (expected sendgrid or brevo)", provider)
	}
}
