package submission

import (
	"regexp"
	"strings"
	"time"

	"github.com/inajphotography/visionboard/internal/models"
)

// Client-facing validation messages
const (
	MsgMissingFields  = "Please provide name, email, and at least 4 image selections."
	MsgTooManyImages  = "Please select no more than 8 images."
	MsgInvalidEmail   = "Invalid email address."
	MsgInvalidPayload = "Invalid request body."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email has the shape local@domain.tld
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidationError is a request problem the visitor can fix; Message is safe to show.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Request is the submit body. Intentions are positional: index i answers
// models.IntentionPrompts[i], and empty strings keep their slot.
type Request struct {
	Name       string             `json:"name" yaml:"name"`
	Email      string             `json:"email" yaml:"email"`
	Selections []models.Selection `json:"selections" yaml:"selections"`
	Intentions []string           `json:"intentions" yaml:"intentions"`
}

// Validate checks the request in order and returns the first violation
func (r Request) Validate() error {
	name := strings.TrimSpace(r.Name)
	email := strings.TrimSpace(r.Email)

	if name == "" || email == "" || r.Selections == nil {
		return &ValidationError{Message: MsgMissingFields}
	}
	if len(r.Selections) < models.MinSelections {
		return &ValidationError{Message: MsgMissingFields}
	}
	if len(r.Selections) > models.MaxSelections {
		return &ValidationError{Message: MsgTooManyImages}
	}
	if !ValidEmail(email) {
		return &ValidationError{Message: MsgInvalidEmail}
	}
	return nil
}

// Submission builds the aggregate from a validated request. Free text is
// truncated to its limit and intentions past the last slot are dropped.
func (r Request) Submission(id string, at time.Time) models.Submission {
	sub := models.Submission{
		ID: id,
		Contact: models.Contact{
			Name:  strings.TrimSpace(r.Name),
			Email: strings.TrimSpace(r.Email),
		},
		Selections:  make([]models.Selection, len(r.Selections)),
		SubmittedAt: at.UTC(),
	}

	for i, s := range r.Selections {
		s.Annotation = models.Truncate(strings.TrimSpace(s.Annotation), models.MaxAnnotationLength)
		sub.Selections[i] = s
	}
	for i := 0; i < len(r.Intentions) && i < models.IntentionSlots; i++ {
		sub.Intentions[i] = models.Truncate(strings.TrimSpace(r.Intentions[i]), models.MaxIntentionLength)
	}
	return sub
}
