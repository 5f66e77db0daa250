package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/inajphotography/visionboard/internal/brand"
	"github.com/inajphotography/visionboard/internal/metrics"
	"github.com/inajphotography/visionboard/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultFromEmail     = "noreply@inajphotography.com"
	DefaultBusinessEmail = "ina@inajphotography.com"

	visitorSubject  = "Your Emotional Vision Board is Ready!"
	visitorFilename = "Vision-Board.pdf"
	appSenderName   = "Vision Board App"
	pdfContentType  = "application/pdf"
)

// Dispatch task names, also used as metric labels
const (
	TaskVisitorEmail  = "visitor_email"
	TaskBusinessEmail = "business_email"
	TaskCRMUpsert     = "crm_upsert"
)

// DispatchError records a notification task that failed
type DispatchError struct {
	Task string
	Err  error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s: %v", e.Task, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Outcome is the settled result of one dispatch task. Err is a *DispatchError when set.
type Outcome struct {
	Task    string
	Skipped bool
	Err     error
}

// Notifier sends the two emails and the CRM upsert for a submission.
// A nil mailer or CRM disables that channel.
type Notifier struct {
	mailer        Mailer
	crm           ContactUpserter
	fromEmail     string
	businessEmail string
}

func NewNotifier(mailer Mailer, crm ContactUpserter, fromEmail, businessEmail string) *Notifier {
	if fromEmail == "" {
		fromEmail = DefaultFromEmail
	}
	if businessEmail == "" {
		businessEmail = DefaultBusinessEmail
	}
	return &Notifier{
		mailer:        mailer,
		crm:           crm,
		fromEmail:     fromEmail,
		businessEmail: businessEmail,
	}
}

// SendVisitorNotice emails the visitor their board. doc may be nil, in which
// case the message goes out without an attachment.
func (n *Notifier) SendVisitorNotice(ctx context.Context, sub models.Submission, doc []byte) error {
	if n.mailer == nil {
		slog.Info("Email not configured, skipping visitor notice", "email", sub.Contact.Email)
		return nil
	}

	html, err := VisitorHTML(sub)
	if err != nil {
		return err
	}

	msg := Message{
		To:        sub.Contact.Email,
		FromEmail: n.fromEmail,
		FromName:  brand.Name,
		Subject:   visitorSubject,
		HTML:      html,
	}
	if doc != nil {
		msg.Attachment = &Attachment{Filename: visitorFilename, ContentType: pdfContentType, Content: doc}
	}

	if err := n.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send visitor notice: %w", err)
	}
	slog.Info("Vision board sent", "submission_id", sub.ID, "email", sub.Contact.Email)
	return nil
}

// SendBusinessNotice emails the business a summary of the submission
func (n *Notifier) SendBusinessNotice(ctx context.Context, sub models.Submission, doc []byte) error {
	if n.mailer == nil {
		slog.Info("Email not configured, skipping business notice", "name", sub.Contact.Name)
		return nil
	}

	html, err := BusinessHTML(sub, doc != nil)
	if err != nil {
		return err
	}

	msg := Message{
		To:        n.businessEmail,
		FromEmail: n.fromEmail,
		FromName:  appSenderName,
		Subject:   "New Vision Board Submission from " + sub.Contact.Name,
		HTML:      html,
	}
	if doc != nil {
		msg.Attachment = &Attachment{Filename: BusinessFilename(sub.Contact.Name), ContentType: pdfContentType, Content: doc}
	}

	if err := n.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send business notice: %w", err)
	}
	slog.Info("Business notified", "submission_id", sub.ID, "to", n.businessEmail)
	return nil
}

// UpsertContact creates or updates the visitor in the CRM
func (n *Notifier) UpsertContact(ctx context.Context, sub models.Submission) error {
	if n.crm == nil {
		slog.Info("CRM not configured, skipping contact upsert", "email", sub.Contact.Email)
		return nil
	}

	if err := n.crm.UpsertContact(ctx, BuildContactPayload(sub)); err != nil {
		return fmt.Errorf("failed to upsert contact: %w", err)
	}
	slog.Info("Contact created or updated", "submission_id", sub.ID, "email", sub.Contact.Email)
	return nil
}

// Dispatch runs all three notification tasks concurrently and waits for every
// one to settle. A failure never cancels the others.
func (n *Notifier) Dispatch(ctx context.Context, sub models.Submission, doc []byte) []Outcome {
	tasks := []struct {
		name    string
		enabled bool
		run     func(context.Context) error
	}{
		{TaskVisitorEmail, n.mailer != nil, func(ctx context.Context) error { return n.SendVisitorNotice(ctx, sub, doc) }},
		{TaskBusinessEmail, n.mailer != nil, func(ctx context.Context) error { return n.SendBusinessNotice(ctx, sub, doc) }},
		{TaskCRMUpsert, n.crm != nil, func(ctx context.Context) error { return n.UpsertContact(ctx, sub) }},
	}

	outcomes := make([]Outcome, len(tasks))
	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			outcome := Outcome{Task: task.name, Skipped: !task.enabled}
			if err := task.run(ctx); err != nil {
				outcome.Err = &DispatchError{Task: task.name, Err: err}
			}
			outcomes[i] = outcome
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		result := "sent"
		switch {
		case o.Err != nil:
			result = "failed"
			var dispatchErr *DispatchError
			if errors.As(o.Err, &dispatchErr) {
				slog.Error("Notification task failed", "submission_id", sub.ID, "task", dispatchErr.Task, "err", dispatchErr.Err)
			}
		case o.Skipped:
			result = "skipped"
		}
		metrics.DispatchTotal.WithLabelValues(o.Task, result).Inc()
	}
	return outcomes
}

var whitespace = regexp.MustCompile(`\s+`)

// BusinessFilename is the attachment name for the business copy, with
// whitespace runs in name replaced by dashes.
func BusinessFilename(name string) string {
	return "Vision-Board-" + whitespace.ReplaceAllString(name, "-") + ".pdf"
}

// BuildContactPayload maps a submission to the CRM contact body
func BuildContactPayload(sub models.Submission) ContactPayload {
	first, last := SplitName(sub.Contact.Name)

	var moods, settings, styles []string
	for _, s := range sub.Selections {
		moods = append(moods, s.Mood)
		settings = append(settings, s.Setting)
		styles = append(styles, s.Style)
	}

	return ContactPayload{
		Email: sub.Contact.Email,
		Attributes: ContactAttributes{
			FirstName:            first,
			LastName:             last,
			VisionBoardSubmitted: true,
			SubmissionDate:       sub.Timestamp(),
			Moods:                joinUnique(moods),
			Settings:             joinUnique(settings),
			Styles:               joinUnique(styles),
		},
		UpdateEnabled: true,
	}
}

// SplitName returns the first word and the rest of name
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func joinUnique(values []string) string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return strings.Join(out, ",")
}
