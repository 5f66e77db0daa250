package wizard

import (
	"context"
	"errors"
	"strings"

	"github.com/inajphotography/visionboard/internal/models"
	"github.com/inajphotography/visionboard/internal/submission"
)

var (
	ErrTooFewSelections = errors.New("select at least 4 images to continue")
	ErrNoIntentions     = errors.New("answer at least one question to continue")
	ErrInvalidContact   = errors.New("enter your name and a valid email address")
	ErrSubmitRequired   = errors.New("submit your details to see your vision board")
	ErrNotReady         = errors.New("the vision board can only be submitted from the contact step")
	ErrAtStart          = errors.New("already at the first step")
	ErrSubmitted        = errors.New("the vision board has already been submitted")
	ErrFinished         = errors.New("the wizard is finished")
)

// Submitter delivers a finished request, typically to the submit endpoint
type Submitter interface {
	Submit(ctx context.Context, req submission.Request) error
}

// Next moves forward one step when the current step's guard allows it.
func Next(s State) (State, error) {
	switch s.Step {
	case StepBrowse:
		if len(s.Selections) < models.MinSelections {
			return s, ErrTooFewSelections
		}
	case StepIntentions:
		if !s.Intentions.Filled() {
			return s, ErrNoIntentions
		}
	case StepContact:
		return s, ErrSubmitRequired
	case StepThankYou:
		return s, ErrFinished
	}
	return Advance(s), nil
}

// Back moves to the previous step. Once submitted there is no going back.
func Back(s State) (State, error) {
	switch s.Step {
	case StepWelcome:
		return s, ErrAtStart
	case StepPreview:
		return s, ErrSubmitted
	case StepThankYou:
		return s, ErrFinished
	}
	return Retreat(s), nil
}

// Submit sends the board and moves to the preview on success. On failure the
// state stays on the contact step with SubmitError set.
func Submit(ctx context.Context, s State, submitter Submitter) (State, error) {
	if s.Step != StepContact {
		return s, ErrNotReady
	}
	if !contactValid(s.Contact) {
		return s, ErrInvalidContact
	}

	if err := submitter.Submit(ctx, Request(s)); err != nil {
		s.SubmitError = err.Error()
		return s, err
	}

	s.SubmitError = ""
	s.Step = StepPreview
	return s, nil
}

// Request is the submit body for s. All intention slots are sent so each
// answer stays paired with its prompt.
func Request(s State) submission.Request {
	intentions := make([]string, models.IntentionSlots)
	for i, text := range s.Intentions {
		intentions[i] = strings.TrimSpace(text)
	}
	return submission.Request{
		Name:       strings.TrimSpace(s.Contact.Name),
		Email:      strings.TrimSpace(s.Contact.Email),
		Selections: append([]models.Selection{}, s.Selections...),
		Intentions: intentions,
	}
}
