package submission

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/inajphotography/visionboard/internal/board"
	"github.com/inajphotography/visionboard/internal/models"
	"github.com/inajphotography/visionboard/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	doc   []byte
	err   error
	calls int
	got   models.Submission
}

func (f *fakeRenderer) Render(_ context.Context, sub models.Submission) ([]byte, error) {
	f.calls++
	f.got = sub
	return f.doc, f.err
}

type fakeDispatcher struct {
	mu    sync.Mutex
	calls int
	doc   []byte
	sub   models.Submission
}

func (f *fakeDispatcher) Dispatch(_ context.Context, sub models.Submission, doc []byte) []notify.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.sub = sub
	f.doc = doc
	return []notify.Outcome{
		{Task: notify.TaskVisitorEmail},
		{Task: notify.TaskBusinessEmail, Err: &notify.DispatchError{Task: notify.TaskBusinessEmail, Err: errors.New("down")}},
		{Task: notify.TaskCRMUpsert, Skipped: true},
	}
}

func selections(n int) []models.Selection {
	out := make([]models.Selection, n)
	for i := range out {
		out[i] = models.Selection{
			ImageID:  string(rune('a' + i)),
			ImageURL: "https://example.com/" + string(rune('a'+i)) + ".jpg",
			Mood:     "Happy",
			Setting:  "Beach",
			Style:    "Candid",
		}
	}
	return out
}

func newTestService(r Renderer, d Dispatcher) *Service {
	s := NewService(r, d)
	s.now = func() time.Time { return time.Date(2026, 10, 18, 1, 2, 3, 0, time.UTC) }
	s.newID = func() string { return "fixed-id" }
	return s
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{"valid", Request{Name: "Jane", Email: "jane@example.com", Selections: selections(4)}, ""},
		{"eight is allowed", Request{Name: "Jane", Email: "jane@example.com", Selections: selections(8)}, ""},
		{"missing name", Request{Email: "jane@example.com", Selections: selections(4)}, MsgMissingFields},
		{"blank name", Request{Name: "   ", Email: "jane@example.com", Selections: selections(4)}, MsgMissingFields},
		{"missing email", Request{Name: "Jane", Selections: selections(4)}, MsgMissingFields},
		{"missing selections", Request{Name: "Jane", Email: "jane@example.com"}, MsgMissingFields},
		{"three selections", Request{Name: "Jane", Email: "jane@example.com", Selections: selections(3)}, MsgMissingFields},
		{"nine selections", Request{Name: "Jane", Email: "jane@example.com", Selections: selections(9)}, MsgTooManyImages},
		{"bad email", Request{Name: "Jane", Email: "not-an-email", Selections: selections(4)}, MsgInvalidEmail},
		{"count checked before email", Request{Name: "Jane", Email: "nope", Selections: selections(2)}, MsgMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.want, vErr.Message)
		})
	}
}

func TestValidEmail(t *testing.T) {
	for email, want := range map[string]bool{
		"jane@example.com":     true,
		"a.b+c@sub.domain.org": true,
		"jane@example":         false,
		"jane example@x.com":   false,
		"@example.com":         false,
		"jane@@example.com":    false,
		"":                     false,
	} {
		assert.Equal(t, want, ValidEmail(email), email)
	}
}

func TestRequestSubmissionTruncatesAndKeepsSlots(t *testing.T) {
	sels := selections(4)
	sels[0].Annotation = strings.Repeat("é", 300)
	req := Request{
		Name:       "  Jane Doe ",
		Email:      " jane@example.com ",
		Selections: sels,
		Intentions: []string{"", strings.Repeat("x", 150), "  third  ", "ignored"},
	}

	sub := req.Submission("id-1", time.Date(2026, 10, 18, 12, 0, 0, 0, time.FixedZone("AEDT", 11*3600)))

	assert.Equal(t, "Jane Doe", sub.Contact.Name)
	assert.Equal(t, "jane@example.com", sub.Contact.Email)
	assert.Equal(t, time.UTC, sub.SubmittedAt.Location())
	assert.Equal(t, models.MaxAnnotationLength, len([]rune(sub.Selections[0].Annotation)))
	assert.Equal(t, "", sub.Intentions[0])
	assert.Len(t, sub.Intentions[1], models.MaxIntentionLength)
	assert.Equal(t, "third", sub.Intentions[2])

	// the caller's slice is not modified
	assert.Len(t, []rune(sels[0].Annotation), 300)
}

func TestSubmitHappyPath(t *testing.T) {
	r := &fakeRenderer{doc: []byte("%PDF-1.3")}
	d := &fakeDispatcher{}
	svc := newTestService(r, d)

	res, err := svc.Submit(context.Background(), Request{
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Selections: selections(4),
		Intentions: []string{"want her spirit"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, r.calls)
	assert.Equal(t, 1, d.calls)
	assert.Equal(t, []byte("%PDF-1.3"), d.doc)
	assert.Equal(t, "fixed-id", res.Submission.ID)
	assert.Equal(t, "2026-10-18T01:02:03.000Z", res.Submission.Timestamp())
	assert.Equal(t, "want her spirit", res.Submission.Intentions[0])
	assert.Len(t, res.Outcomes, 3)
}

func TestSubmitInvalidNeverRenders(t *testing.T) {
	r := &fakeRenderer{}
	d := &fakeDispatcher{}
	svc := newTestService(r, d)

	_, err := svc.Submit(context.Background(), Request{Name: "Jane", Email: "jane@example.com", Selections: selections(3)})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, MsgMissingFields, vErr.Message)

	_, err = svc.Submit(context.Background(), Request{Name: "Jane", Email: "bad", Selections: selections(4)})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, MsgInvalidEmail, vErr.Message)

	assert.Zero(t, r.calls)
	assert.Zero(t, d.calls)
}

func TestSubmitContinuesWithoutDocumentOnRenderError(t *testing.T) {
	r := &fakeRenderer{doc: []byte("partial"), err: &board.RenderError{Err: board.ErrNoImages}}
	d := &fakeDispatcher{}
	svc := newTestService(r, d)

	res, err := svc.Submit(context.Background(), Request{Name: "Jane", Email: "jane@example.com", Selections: selections(4)})
	require.NoError(t, err)
	assert.Nil(t, res.Document)
	assert.Equal(t, 1, d.calls)
	assert.Nil(t, d.doc)
}

func TestSubmitUnexpectedRenderFault(t *testing.T) {
	r := &fakeRenderer{err: errors.New("disk on fire")}
	d := &fakeDispatcher{}
	svc := newTestService(r, d)

	_, err := svc.Submit(context.Background(), Request{Name: "Jane", Email: "jane@example.com", Selections: selections(4)})
	require.Error(t, err)
	var vErr *ValidationError
	assert.False(t, errors.As(err, &vErr))
	assert.Zero(t, d.calls)
}
