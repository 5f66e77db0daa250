// Package submission validates a vision board request, renders the board and
// hands it to notification dispatch.
package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/inajphotography/visionboard/internal/board"
	"github.com/inajphotography/visionboard/internal/models"
	"github.com/inajphotography/visionboard/internal/notify"
)

type Renderer interface {
	Render(ctx context.Context, sub models.Submission) ([]byte, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, sub models.Submission, doc []byte) []notify.Outcome
}

// Result is what happened to an accepted submission. Document is nil when
// rendering failed.
type Result struct {
	Submission models.Submission
	Document   []byte
	Outcomes   []notify.Outcome
}

type Service struct {
	renderer   Renderer
	dispatcher Dispatcher
	now        func() time.Time
	newID      func() string
}

func NewService(renderer Renderer, dispatcher Dispatcher) *Service {
	return &Service{
		renderer:   renderer,
		dispatcher: dispatcher,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Submit validates req, renders the board and waits for every notification
// task to settle. Only a *ValidationError or an unexpected fault is returned;
// render and dispatch failures are logged and absorbed.
func (s *Service) Submit(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub := req.Submission(s.newID(), s.now())
	slog.Info("Processing vision board submission",
		"submission_id", sub.ID,
		"email", sub.Contact.Email,
		"selections", len(sub.Selections))

	doc, err := s.renderer.Render(ctx, sub)
	if err != nil {
		var renderErr *board.RenderError
		if !errors.As(err, &renderErr) {
			return nil, fmt.Errorf("unexpected render failure: %w", err)
		}
		slog.Error("PDF generation failed, continuing without attachment", "submission_id", sub.ID, "err", err)
		doc = nil
	}

	outcomes := s.dispatcher.Dispatch(ctx, sub, doc)

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	slog.Info("Vision board submission complete",
		"submission_id", sub.ID,
		"document", doc != nil,
		"failed_tasks", failed)

	return &Result{Submission: sub, Document: doc, Outcomes: outcomes}, nil
}
