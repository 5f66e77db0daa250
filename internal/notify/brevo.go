package notify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sendgrid/rest"
)

const brevoBaseURL = "https://api.brevo.com/v3"

// brevoClient issues JSON requests against the Brevo REST API
type brevoClient struct {
	apiKey  string
	baseURL string
}

func (c brevoClient) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal brevo payload: %w", err)
	}

	request := rest.Request{
		Method:  rest.Post,
		BaseURL: c.baseURL + path,
		Headers: map[string]string{
			"api-key":      c.apiKey,
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		Body: payload,
	}

	response, err := rest.SendWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("brevo request to %s failed: %w", path, err)
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("brevo %s returned status %d: %s", path, response.StatusCode, response.Body)
	}

	slog.Debug("Brevo request accepted", "path", path, "status", response.StatusCode)
	return nil
}

// BrevoMailer sends through Brevo transactional email
type BrevoMailer struct {
	client brevoClient
}

func NewBrevoMailer(apiKey string) *BrevoMailer {
	return &BrevoMailer{client: brevoClient{apiKey: apiKey, baseURL: brevoBaseURL}}
}

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoAttachment struct {
	Content string `json:"content"`
	Name    string `json:"name"`
}

type brevoEmail struct {
	Sender      brevoAddress      `json:"sender"`
	To          []brevoAddress    `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

func (b *BrevoMailer) Send(ctx context.Context, msg Message) error {
	email := brevoEmail{
		Sender:      brevoAddress{Email: msg.FromEmail, Name: msg.FromName},
		To:          []brevoAddress{{Email: msg.To}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	}
	if msg.Attachment != nil {
		email.Attachment = []brevoAttachment{{
			Content: base64.StdEncoding.EncodeToString(msg.Attachment.Content),
			Name:    msg.Attachment.Filename,
		}}
	}
	return b.client.post(ctx, "/smtp/email", email)
}

// ContactPayload is the Brevo upsert-by-email contact body
type ContactPayload struct {
	Email         string            `json:"email"`
	Attributes    ContactAttributes `json:"attributes"`
	UpdateEnabled bool              `json:"updateEnabled"`
}

type ContactAttributes struct {
	FirstName            string `json:"FIRSTNAME"`
	LastName             string `json:"LASTNAME"`
	VisionBoardSubmitted bool   `json:"VISION_BOARD_SUBMITTED"`
	SubmissionDate       string `json:"SUBMISSION_DATE"`
	Moods                string `json:"MOODS"`
	Settings             string `json:"SETTINGS"`
	Styles               string `json:"STYLES"`
}

// BrevoCRM upserts contacts into Brevo
type BrevoCRM struct {
	client brevoClient
}

func NewBrevoCRM(apiKey string) *BrevoCRM {
	return &BrevoCRM{client: brevoClient{apiKey: apiKey, baseURL: brevoBaseURL}}
}

func (b *BrevoCRM) UpsertContact(ctx context.Context, payload ContactPayload) error {
	return b.client.post(ctx, "/contacts", payload)
}
