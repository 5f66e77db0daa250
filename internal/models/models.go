package models

import (
	"strings"
	"time"
)

const (
	MinSelections       = 4
	MaxSelections       = 8
	MaxAnnotationLength = 250
	MaxIntentionLength  = 100
	IntentionSlots      = 3
)

// IntentionPrompts are the fixed questions answered by the intention slots, in slot order.
var IntentionPrompts = [IntentionSlots]string{
	"What emotion or personality trait do you want to preserve?",
	"What feeling do you want to experience when you look at these photos?",
	"What special moment or connection matters most to you?",
}

// Image is a gallery catalog entry
type Image struct {
	ID       string `json:"id" yaml:"id"`
	Filename string `json:"filename" yaml:"filename"`
	ImageURL string `json:"imageUrl" yaml:"image_url"`
	Mood     string `json:"mood" yaml:"mood"`
	Setting  string `json:"setting" yaml:"setting"`
	Style    string `json:"style" yaml:"style"`
}

// Selection is a chosen image plus the visitor's annotation.
// Tags are copied from the Image so a submission is self-contained.
type Selection struct {
	ImageID    string `json:"imageId" yaml:"image_id"`
	Filename   string `json:"filename" yaml:"filename"`
	ImageURL   string `json:"imageUrl" yaml:"image_url"`
	Annotation string `json:"annotation" yaml:"annotation"`
	Mood       string `json:"mood" yaml:"mood"`
	Setting    string `json:"setting" yaml:"setting"`
	Style      string `json:"style" yaml:"style"`
}

// NewSelection builds an unannotated selection for img
func NewSelection(img Image) Selection {
	return Selection{
		ImageID:  img.ID,
		Filename: img.Filename,
		ImageURL: img.ImageURL,
		Mood:     img.Mood,
		Setting:  img.Setting,
		Style:    img.Style,
	}
}

type Contact struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Intentions holds the answers to IntentionPrompts; any slot may be empty.
type Intentions [IntentionSlots]string

// Filled reports whether at least one slot has non-blank text
func (in Intentions) Filled() bool {
	for _, text := range in {
		if strings.TrimSpace(text) != "" {
			return true
		}
	}
	return false
}

// IntentionAnswer pairs a prompt with its non-empty answer
type IntentionAnswer struct {
	Prompt string
	Answer string
}

// Answers returns the non-empty slots paired with their prompts, in prompt order.
func (in Intentions) Answers() []IntentionAnswer {
	var answers []IntentionAnswer
	for i, text := range in {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		answers = append(answers, IntentionAnswer{Prompt: IntentionPrompts[i], Answer: text})
	}
	return answers
}

// Submission is the finalized aggregate sent for processing. It is never persisted.
type Submission struct {
	ID          string      `json:"id" yaml:"id"`
	Contact     Contact     `json:"contact" yaml:"contact"`
	Selections  []Selection `json:"selections" yaml:"selections"`
	Intentions  Intentions  `json:"intentions" yaml:"intentions"`
	SubmittedAt time.Time   `json:"submittedAt" yaml:"submitted_at"`
}

// Timestamp is the submission time as an ISO-8601 instant
func (s Submission) Timestamp() string {
	return s.SubmittedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// Truncate cuts s to at most limit runes
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
