package board

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/inajphotography/visionboard/internal/brand"
	"github.com/inajphotography/visionboard/internal/brief"
	"github.com/inajphotography/visionboard/internal/images"
	"github.com/inajphotography/visionboard/internal/metrics"
	"github.com/inajphotography/visionboard/internal/models"
)

// ErrNoImages is returned when every selection image failed to load
var ErrNoImages = errors.New("no selection images could be fetched")

// RenderError wraps any failure while producing the document
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return "render vision board: " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// ImageSource fetches image bytes; a nil entry marks a failed fetch.
type ImageSource interface {
	FetchAll(ctx context.Context, urls []string) [][]byte
}

// Renderer produces the vision board PDF for a submission
type Renderer struct {
	images ImageSource
	layout Layout
}

func NewRenderer(source ImageSource, layout Layout) *Renderer {
	return &Renderer{images: source, layout: layout}
}

// placement is a grid cell and the prepared JPEG for it; nil image means placeholder
type placement struct {
	Cell
	Image   []byte
	Caption string
}

// Render fetches the selection images and lays out the board. Output is
// deterministic for identical submissions and image bytes.
func (r *Renderer) Render(ctx context.Context, sub models.Submission) (doc []byte, err error) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			err = &RenderError{Err: fmt.Errorf("panic during layout: %v", p)}
			doc = nil
		}
		result := "ok"
		if err != nil {
			result = "failed"
		}
		metrics.RenderDurationSeconds.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}()

	urls := make([]string, len(sub.Selections))
	for i, s := range sub.Selections {
		urls[i] = s.ImageURL
	}
	raw := r.images.FetchAll(ctx, urls)

	placements, err := r.plan(sub, raw)
	if err != nil {
		return nil, err
	}

	pdf := r.draw(sub, placements)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Err: err}
	}

	slog.Info("Vision board rendered", "submission_id", sub.ID, "bytes", buf.Len(), "pages", pdf.PageCount())
	return buf.Bytes(), nil
}

func (r *Renderer) plan(sub models.Submission, raw [][]byte) ([]placement, error) {
	if len(raw) != len(sub.Selections) {
		return nil, &RenderError{Err: fmt.Errorf("got %d images for %d selections", len(raw), len(sub.Selections))}
	}

	fetched := 0
	for _, data := range raw {
		if data != nil {
			fetched++
		}
	}
	if len(raw) > 0 && fetched == 0 {
		return nil, &RenderError{Err: ErrNoImages}
	}

	cells := r.layout.Grid(len(sub.Selections))
	out := make([]placement, len(cells))
	for i, cell := range cells {
		sel := sub.Selections[cell.Index]
		out[i] = placement{Cell: cell, Caption: sel.Annotation}
		if raw[cell.Index] == nil {
			continue
		}

		// 2px per point keeps photos sharp in print without bloating the attachment
		prepared, err := images.Prepare(raw[cell.Index],
			int(math.Round(cell.W*2)), int(math.Round(cell.H*2)), r.layout.CornerRadius*2)
		if err != nil {
			slog.Warn("Unusable selection image, drawing placeholder", "image_id", sel.ImageID, "err", err)
			continue
		}
		out[i].Image = prepared
	}
	return out, nil
}

func (r *Renderer) draw(sub models.Submission, placements []placement) *fpdf.Fpdf {
	l := r.layout
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(l.Margin, l.Margin, l.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(sub.SubmittedAt)
	pdf.SetTitle("Vision Board - "+sub.Contact.Name, true)
	pdf.SetAuthor(brand.Name, true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	contentW := PageWidth - 2*l.Margin

	pdf.AddPage()
	drawHeader(pdf, tr, l, sub.Contact.Name)

	page := 0
	for _, p := range placements {
		for page < p.Page {
			pdf.AddPage()
			page++
		}
		drawCell(pdf, tr, l, p)
	}

	pdf.AddPage()
	y := l.Margin
	y = drawIntentions(pdf, tr, l, contentW, y, sub.Intentions.Answers())
	y = drawBrief(pdf, tr, l, contentW, y, brief.Compute(sub.Selections))
	drawCallToAction(pdf, tr, l, contentW, y)

	return pdf
}

func setFill(pdf *fpdf.Fpdf, c brand.RGB) { pdf.SetFillColor(c.R, c.G, c.B) }
func setText(pdf *fpdf.Fpdf, c brand.RGB) { pdf.SetTextColor(c.R, c.G, c.B) }
func setDraw(pdf *fpdf.Fpdf, c brand.RGB) { pdf.SetDrawColor(c.R, c.G, c.B) }

func centered(pdf *fpdf.Fpdf, tr func(string) string, x, y, w, h float64, text, link string) {
	pdf.SetXY(x, y)
	pdf.CellFormat(w, h, tr(text), "", 0, "C", false, 0, link)
}

func drawHeader(pdf *fpdf.Fpdf, tr func(string) string, l Layout, name string) {
	contentW := PageWidth - 2*l.Margin

	setFill(pdf, brand.Ivory)
	pdf.Rect(0, 0, PageWidth, l.HeaderHeight, "F")

	pdf.SetFont("Helvetica", "", 10)
	setText(pdf, brand.Grey)
	centered(pdf, tr, l.Margin, l.HeaderHeight*0.25, contentW, 12, "INA J PHOTOGRAPHY", "")

	pdf.SetFont("Helvetica", "B", 24)
	setText(pdf, brand.DarkGreen)
	centered(pdf, tr, l.Margin, l.HeaderHeight*0.42, contentW, 28, "Your Emotional Vision Board", "")

	pdf.SetFont("Helvetica", "", 11)
	setText(pdf, brand.Grey)
	centered(pdf, tr, l.Margin, l.HeaderHeight*0.74, contentW, 14, "Created for "+name, "")

	setDraw(pdf, brand.Coral)
	pdf.SetLineWidth(1.5)
	lineY := l.HeaderHeight + 5
	pdf.Line(l.Margin, lineY, PageWidth-l.Margin, lineY)
}

func drawCell(pdf *fpdf.Fpdf, tr func(string) string, l Layout, p placement) {
	if p.Image != nil {
		name := fmt.Sprintf("selection-%d", p.Index)
		opts := fpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(p.Image))
		pdf.ImageOptions(name, p.X, p.Y, p.W, p.H, false, opts, 0, "")
	} else {
		drawPlaceholder(pdf, tr, p.Cell)
	}

	if p.Caption == "" {
		return
	}

	// captions are clipped to their band so they never push the grid
	top := p.Y + p.H + 3
	pdf.ClipRect(p.X, top, p.W, l.CaptionHeight-3, false)
	pdf.SetFont("Helvetica", "I", 8)
	setText(pdf, brand.DarkGreen)
	pdf.SetXY(p.X, top)
	pdf.MultiCell(p.W, 9.5, tr("“"+p.Caption+"”"), "", "L", false)
	pdf.ClipEnd()
}

func drawPlaceholder(pdf *fpdf.Fpdf, tr func(string) string, c Cell) {
	setFill(pdf, brand.Light)
	pdf.Rect(c.X, c.Y, c.W, c.H, "F")
	pdf.SetFont("Helvetica", "", 8)
	setText(pdf, brand.Grey)
	centered(pdf, tr, c.X, c.Y+c.H/2-5, c.W, 10, "Image unavailable", "")
}

func drawIntentions(pdf *fpdf.Fpdf, tr func(string) string, l Layout, w, y float64, answers []models.IntentionAnswer) float64 {
	if len(answers) == 0 {
		return y
	}

	pdf.SetFont("Helvetica", "B", 20)
	setText(pdf, brand.DarkGreen)
	pdf.SetXY(l.Margin, y)
	pdf.CellFormat(w, 24, tr("Your Core Desires"), "", 0, "L", false, 0, "")
	y += 30

	setDraw(pdf, brand.Coral)
	pdf.SetLineWidth(1)
	pdf.Line(l.Margin, y, l.Margin+w, y)
	y += 16

	for _, a := range answers {
		pdf.SetFont("Helvetica", "", 9)
		setText(pdf, brand.Grey)
		pdf.SetXY(l.Margin, y)
		pdf.MultiCell(w, 11, tr(a.Prompt), "", "L", false)
		y = pdf.GetY() + 3

		setFill(pdf, brand.Coral)
		pdf.Circle(l.Margin+4, y+7, 2.5, "F")

		pdf.SetFont("Helvetica", "", 12)
		setText(pdf, brand.DarkGreen)
		pdf.SetXY(l.Margin+14, y)
		pdf.MultiCell(w-14, 14, tr(a.Answer), "", "L", false)
		y = pdf.GetY() + 8
	}

	return y + 10
}

func drawBrief(pdf *fpdf.Fpdf, tr func(string) string, l Layout, w, y float64, b brief.Brief) float64 {
	pdf.SetFont("Helvetica", "B", 20)
	setText(pdf, brand.DarkGreen)
	pdf.SetXY(l.Margin, y)
	pdf.CellFormat(w, 24, tr("Session Brief"), "", 0, "L", false, 0, "")
	y += 28

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(l.Margin, y)
	pdf.MultiCell(w, 15, tr(b.Sentence()), "", "L", false)
	return pdf.GetY() + 20
}

func drawCallToAction(pdf *fpdf.Fpdf, tr func(string) string, l Layout, w, y float64) {
	setDraw(pdf, brand.Rule)
	pdf.SetLineWidth(0.5)
	pdf.Line(l.Margin, y, l.Margin+w, y)
	y += 24

	pdf.SetFont("Helvetica", "B", 14)
	setText(pdf, brand.DarkGreen)
	centered(pdf, tr, l.Margin, y, w, 16, "Ready to bring this vision to life?", "")
	y += 24

	pdf.SetFont("Helvetica", "B", 11)
	setText(pdf, brand.Coral)
	centered(pdf, tr, l.Margin, y, w, 14, "Schedule Your Complimentary Consultation", brand.BookingURL)
	y += 20

	pdf.SetFont("Helvetica", "", 10)
	setText(pdf, brand.DarkGreen)
	centered(pdf, tr, l.Margin, y, w, 12, brand.BookingLabel, brand.BookingURL)
	y += 28

	setText(pdf, brand.Grey)
	centered(pdf, tr, l.Margin, y, w, 12, "Follow "+brand.InstagramLabel+" on Instagram", brand.InstagramURL)
	y += 18
	centered(pdf, tr, l.Margin, y, w, 12, "Find out more about the experience", brand.SessionInfoURL)
	y += 32

	pdf.SetFont("Helvetica", "", 9)
	centered(pdf, tr, l.Margin, y, w, 11, brand.Name+" | "+brand.Location, "")
}
