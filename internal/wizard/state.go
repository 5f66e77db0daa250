// Package wizard models the visitor's walk through the vision board funnel.
// State is a plain value and every action returns a new State, leaving its
// input untouched.
package wizard

import (
	"strings"

	"github.com/inajphotography/visionboard/internal/gallery"
	"github.com/inajphotography/visionboard/internal/models"
	"github.com/inajphotography/visionboard/internal/submission"
)

type Step int

const (
	StepWelcome Step = iota + 1
	StepBrowse
	StepIntentions
	StepContact
	StepPreview
	StepThankYou
)

// StepCount is the number of steps; steps are numbered 1..StepCount
const StepCount = int(StepThankYou)

func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepBrowse:
		return "browse"
	case StepIntentions:
		return "intentions"
	case StepContact:
		return "contact"
	case StepPreview:
		return "preview"
	case StepThankYou:
		return "thank-you"
	}
	return "unknown"
}

type State struct {
	Step       Step
	Selections []models.Selection
	Intentions models.Intentions
	Contact    models.Contact
	Filters    gallery.Filters
	// SubmitError is the last failure message shown on the contact step
	SubmitError string
}

func New() State {
	return State{Step: StepWelcome}
}

// Finished reports whether the wizard reached its terminal step
func (s State) Finished() bool {
	return s.Step == StepThankYou
}

func (s State) IsSelected(imageID string) bool {
	return s.indexOf(imageID) >= 0
}

func (s State) indexOf(imageID string) int {
	for i, sel := range s.Selections {
		if sel.ImageID == imageID {
			return i
		}
	}
	return -1
}

// clone copies the selection slice so the result can be changed freely
func (s State) clone() State {
	if s.Selections != nil {
		s.Selections = append([]models.Selection(nil), s.Selections...)
	}
	return s
}

func Advance(s State) State {
	if s.Finished() {
		return s
	}
	if int(s.Step) < StepCount {
		s.Step++
	}
	return s
}

func Retreat(s State) State {
	if s.Finished() {
		return s
	}
	if s.Step > StepWelcome {
		s.Step--
	}
	return s
}

// ToggleSelection removes img when selected, otherwise adds it unless the
// board is already full.
func ToggleSelection(s State, img models.Image) State {
	if s.Finished() {
		return s
	}
	if i := s.indexOf(img.ID); i >= 0 {
		out := s.clone()
		out.Selections = append(out.Selections[:i], out.Selections[i+1:]...)
		return out
	}
	if len(s.Selections) >= models.MaxSelections {
		return s
	}
	out := s.clone()
	out.Selections = append(out.Selections, models.NewSelection(img))
	return out
}

// SetAnnotation sets the caption of a selected image; unknown IDs are ignored.
func SetAnnotation(s State, imageID, text string) State {
	if s.Finished() {
		return s
	}
	i := s.indexOf(imageID)
	if i < 0 {
		return s
	}
	out := s.clone()
	out.Selections[i].Annotation = models.Truncate(text, models.MaxAnnotationLength)
	return out
}

func SetIntention(s State, slot int, text string) State {
	if s.Finished() || slot < 0 || slot >= models.IntentionSlots {
		return s
	}
	s.Intentions[slot] = models.Truncate(text, models.MaxIntentionLength)
	return s
}

// SetFilter toggles value on dimension d; choosing the active value clears it.
func SetFilter(s State, d gallery.Dimension, value string) State {
	if s.Finished() {
		return s
	}
	if s.Filters.Get(d) == value {
		value = ""
	}
	s.Filters = s.Filters.With(d, value)
	return s
}

func ClearFilters(s State) State {
	if s.Finished() {
		return s
	}
	s.Filters = gallery.Filters{}
	return s
}

func SetContact(s State, name, email string) State {
	if s.Finished() {
		return s
	}
	s.Contact = models.Contact{Name: name, Email: email}
	return s
}

// Visible is the catalog narrowed by the active filters
func Visible(s State, catalog *gallery.Catalog) []models.Image {
	return catalog.Filter(s.Filters)
}

func contactValid(c models.Contact) bool {
	return strings.TrimSpace(c.Name) != "" && submission.ValidEmail(strings.TrimSpace(c.Email))
}
