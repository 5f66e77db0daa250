package board

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"regexp"
	"testing"
	"time"

	"github.com/inajphotography/visionboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	data  [][]byte
	calls int
}

func (s *stubSource) FetchAll(_ context.Context, urls []string) [][]byte {
	s.calls++
	out := make([][]byte, len(urls))
	copy(out, s.data)
	return out
}

type panicSource struct{}

func (panicSource) FetchAll(context.Context, []string) [][]byte {
	panic("boom")
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{R: 35, G: 40, B: 23, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testSubmission(n int) models.Submission {
	moods := []string{"Happy", "Happy", "Love", "Connection"}
	sub := models.Submission{
		ID:          "test",
		Contact:     models.Contact{Name: "Jane Doe", Email: "jane@example.com"},
		Intentions:  models.Intentions{"want her spirit", "", ""},
		SubmittedAt: time.Date(2026, 10, 18, 1, 2, 3, 0, time.UTC),
	}
	for i := 0; i < n; i++ {
		sub.Selections = append(sub.Selections, models.Selection{
			ImageID:    "img",
			ImageURL:   "https://example.com/img.jpg",
			Annotation: "her ears in the wind",
			Mood:       moods[i%len(moods)],
			Setting:    "Outdoor Gardens",
			Style:      "Candid",
		})
	}
	return sub
}

var pageObject = regexp.MustCompile(`/Type /Page\b[^s]`)

func TestScaledColumns(t *testing.T) {
	for n, want := range map[int]int{1: 2, 4: 2, 5: 3, 6: 3, 7: 4, 8: 4} {
		assert.Equal(t, want, ScaledColumns(n), "n=%d", n)
	}
}

func TestGridOddCountLeavesColumnEmpty(t *testing.T) {
	cells := Classic.Grid(5)
	require.Len(t, cells, 5)

	// 3 columns: second row holds two cells at columns 0 and 1, not stretched
	last := cells[4]
	assert.Equal(t, 1, last.Row)
	assert.Equal(t, 1, last.Col)
	assert.InDelta(t, cells[0].W, last.W, 0.001)
	assert.InDelta(t, cells[1].X, last.X, 0.001)
}

func TestGridNeverSplitsRows(t *testing.T) {
	tall := Classic
	tall.Columns = FixedColumns(2)
	tall.AspectRatio = 1.0 // rows of ~282pt: two fit below the header, the third does not

	cells := tall.Grid(6)
	require.Len(t, cells, 6)

	for _, c := range cells {
		assert.LessOrEqual(t, c.Y+c.H+tall.CaptionHeight, PageHeight-tall.Margin, "cell %d overflows", c.Index)
	}

	rowPage := map[int]int{}
	for _, c := range cells {
		if p, ok := rowPage[c.Row]; ok {
			assert.Equal(t, p, c.Page, "row %d split across pages", c.Row)
		}
		rowPage[c.Row] = c.Page
	}

	assert.Equal(t, 0, cells[0].Page)
	assert.Equal(t, 0, cells[3].Page)
	assert.Equal(t, 1, cells[4].Page)
	assert.Equal(t, 1, cells[5].Page)
	assert.InDelta(t, tall.Margin, cells[4].Y, 0.001)
}

func TestGridLandscapePaginatesEightImages(t *testing.T) {
	cells := Landscape.Grid(8)
	require.Len(t, cells, 8)
	assert.Equal(t, 0, cells[5].Page)
	assert.Equal(t, 1, cells[6].Page)
	assert.Equal(t, 1, cells[7].Page)
}

func TestLayoutByName(t *testing.T) {
	l, err := LayoutByName("")
	require.NoError(t, err)
	assert.Equal(t, "classic", l.Name)

	l, err = LayoutByName("landscape")
	require.NoError(t, err)
	assert.Equal(t, 0.67, l.AspectRatio)

	_, err = LayoutByName("collage")
	assert.Error(t, err)
}

func TestPlanUsesPlaceholderForFailedFetch(t *testing.T) {
	img := testPNG(t)
	r := NewRenderer(nil, Classic)
	sub := testSubmission(4)

	placements, err := r.plan(sub, [][]byte{img, nil, img, []byte("corrupt")})
	require.NoError(t, err)
	require.Len(t, placements, 4)

	assert.NotNil(t, placements[0].Image)
	assert.Nil(t, placements[1].Image)
	assert.NotNil(t, placements[2].Image)
	assert.Nil(t, placements[3].Image)
	assert.Equal(t, "her ears in the wind", placements[1].Caption)
}

func TestRenderWithOneUnreachableImage(t *testing.T) {
	img := testPNG(t)
	src := &stubSource{data: [][]byte{img, img, nil, img}}
	r := NewRenderer(src, Classic)

	doc, err := r.Render(context.Background(), testSubmission(4))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
	assert.Equal(t, 1, src.calls)
	assert.Len(t, pageObject.FindAll(doc, -1), 2)
}

func TestRenderIsDeterministic(t *testing.T) {
	img := testPNG(t)
	sub := testSubmission(6)

	first, err := NewRenderer(&stubSource{data: [][]byte{img, img, img, nil, img, img}}, Landscape).Render(context.Background(), sub)
	require.NoError(t, err)
	second, err := NewRenderer(&stubSource{data: [][]byte{img, img, img, nil, img, img}}, Landscape).Render(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderFailsWhenNoImageLoads(t *testing.T) {
	r := NewRenderer(&stubSource{}, Classic)

	_, err := r.Render(context.Background(), testSubmission(4))
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.True(t, errors.Is(err, ErrNoImages))
}

func TestRenderRecoversFromPanic(t *testing.T) {
	r := NewRenderer(panicSource{}, Classic)

	doc, err := r.Render(context.Background(), testSubmission(4))
	assert.Nil(t, doc)
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}
