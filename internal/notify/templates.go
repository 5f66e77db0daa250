package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
	_ "time/tzdata"

	"github.com/inajphotography/visionboard/internal/brand"
	"github.com/inajphotography/visionboard/internal/brief"
	"github.com/inajphotography/visionboard/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// BusinessTimeZone is where the business reads submission times
const BusinessTimeZone = "Australia/Sydney"

type visitorView struct {
	Brand        string
	Name         string
	Brief        string
	Location     string
	BookingURL   string
	InstagramURL string
	WebsiteURL   string
	WebsiteLabel string
}

type businessView struct {
	Name          string
	Email         string
	Selections    []models.Selection
	Intentions    []models.IntentionAnswer
	Brief         string
	HasAttachment bool
	Submitted     string
}

// VisitorHTML renders the email sent to the visitor with their board
func VisitorHTML(sub models.Submission) (string, error) {
	return execute("visitor.html", visitorView{
		Brand:        brand.Name,
		Name:         sub.Contact.Name,
		Brief:        brief.Compute(sub.Selections).Sentence(),
		Location:     brand.Location,
		BookingURL:   brand.BookingURL,
		InstagramURL: brand.InstagramURL,
		WebsiteURL:   brand.Website,
		WebsiteLabel: brand.WebsiteLabel,
	})
}

// BusinessHTML renders the internal notification. hasAttachment controls
// whether the body says the PDF is attached.
func BusinessHTML(sub models.Submission, hasAttachment bool) (string, error) {
	return execute("business.html", businessView{
		Name:          sub.Contact.Name,
		Email:         sub.Contact.Email,
		Selections:    sub.Selections,
		Intentions:    sub.Intentions.Answers(),
		Brief:         brief.Compute(sub.Selections).Sentence(),
		HasAttachment: hasAttachment,
		Submitted:     FormatBusinessTime(sub.SubmittedAt),
	})
}

// FormatBusinessTime formats t in Australian style in the business time zone,
// e.g. "18/10/2026, 12:02:03 pm".
func FormatBusinessTime(t time.Time) string {
	loc, err := time.LoadLocation(BusinessTimeZone)
	if err != nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2/1/2006, 3:04:05 pm")
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
