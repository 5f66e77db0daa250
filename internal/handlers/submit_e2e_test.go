package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/inajphotography/visionboard/internal/board"
	"github.com/inajphotography/visionboard/internal/brief"
	"github.com/inajphotography/visionboard/internal/gallery"
	"github.com/inajphotography/visionboard/internal/images"
	"github.com/inajphotography/visionboard/internal/notify"
	"github.com/inajphotography/visionboard/internal/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMailer struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (m *countingMailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

type countingCRM struct {
	calls atomic.Int32
}

func (c *countingCRM) UpsertContact(context.Context, notify.ContactPayload) error {
	c.calls.Add(1)
	return nil
}

func imageServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 60, 40))
	for x := 0; x < 60; x++ {
		for y := 0; y < 40; y++ {
			img.Set(x, y, color.RGBA{R: 202, G: 94, B: 60, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if strings.HasSuffix(r.URL.Path, "/missing.png") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
}

func janeDoeBody(baseURL, email string) string {
	moods := []string{"Happy", "Happy", "Love", "Connection"}
	var sels []string
	for i, mood := range moods {
		path := fmt.Sprintf("/%d.png", i)
		if i == 3 {
			path = "/missing.png"
		}
		sels = append(sels, fmt.Sprintf(
			`{"imageId":"%d","filename":"%d.jpg","imageUrl":"%s%s","mood":"%s","setting":"Outdoor Gardens","style":"Candid","annotation":"moment %d"}`,
			i, i, baseURL, path, mood, i))
	}
	return fmt.Sprintf(`{"name":"Jane Doe","email":%q,"selections":[%s],"intentions":["want her spirit","",""]}`,
		email, strings.Join(sels, ","))
}

func TestSubmitEndToEnd(t *testing.T) {
	var hits atomic.Int32
	imgSrv := imageServer(t, &hits)
	defer imgSrv.Close()

	mailer := &countingMailer{}
	crm := &countingCRM{}
	renderer := board.NewRenderer(images.NewFetcher(0), board.Classic)
	svc := submission.NewService(renderer, notify.NewNotifier(mailer, crm, "", ""))

	catalog, err := gallery.Default()
	require.NoError(t, err)
	h := New(svc, catalog).Routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(janeDoeBody(imgSrv.URL, "jane@example.com"))))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp submitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	assert.EqualValues(t, 4, hits.Load())
	assert.EqualValues(t, 1, crm.calls.Load())
	require.Len(t, mailer.sent, 2)
	for _, msg := range mailer.sent {
		require.NotNil(t, msg.Attachment, msg.Subject)
		assert.True(t, bytes.HasPrefix(msg.Attachment.Content, []byte("%PDF-")))
	}
	assert.Contains(t, mailer.sent[0].HTML+mailer.sent[1].HTML, "happy and love mood")
}

func TestSubmitEndToEndWithoutCredentials(t *testing.T) {
	var hits atomic.Int32
	imgSrv := imageServer(t, &hits)
	defer imgSrv.Close()

	renderer := board.NewRenderer(images.NewFetcher(0), board.Landscape)
	svc := submission.NewService(renderer, notify.NewNotifier(nil, nil, "", ""))
	catalog, err := gallery.Default()
	require.NoError(t, err)
	h := New(svc, catalog).Routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/vision-board/submit", strings.NewReader(janeDoeBody(imgSrv.URL, "jane@example.com"))))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitMalformedEmailNeverRenders(t *testing.T) {
	var hits atomic.Int32
	imgSrv := imageServer(t, &hits)
	defer imgSrv.Close()

	mailer := &countingMailer{}
	renderer := board.NewRenderer(images.NewFetcher(0), board.Classic)
	svc := submission.NewService(renderer, notify.NewNotifier(mailer, nil, "", ""))
	catalog, err := gallery.Default()
	require.NoError(t, err)
	h := New(svc, catalog).Routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(janeDoeBody(imgSrv.URL, "janeexample.com"))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email address.", decodeBody(t, rec)["error"])
	assert.Zero(t, hits.Load())
	assert.Empty(t, mailer.sent)
}

func TestJaneDoeBrief(t *testing.T) {
	var req submission.Request
	require.NoError(t, json.Unmarshal([]byte(janeDoeBody("https://example.com", "jane@example.com")), &req))

	b := brief.Compute(req.Selections)
	assert.Equal(t, []string{"happy", "love"}, b.Moods)
	assert.Equal(t, []string{"outdoor gardens"}, b.Settings)
	assert.Equal(t, "candid", b.Style)
}
