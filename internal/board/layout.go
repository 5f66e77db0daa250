package board

import "fmt"

// A4 in points
const (
	PageWidth  = 595.28
	PageHeight = 841.89
)

// ColumnRule picks the grid column count for a number of images
type ColumnRule func(n int) int

// ScaledColumns uses 2 columns up to 4 images, 3 up to 6, and 4 beyond.
func ScaledColumns(n int) int {
	switch {
	case n <= 4:
		return 2
	case n <= 6:
		return 3
	default:
		return 4
	}
}

// FixedColumns always uses cols columns
func FixedColumns(cols int) ColumnRule {
	return func(int) int { return cols }
}

// Layout parameterises the board geometry. All lengths are in points.
type Layout struct {
	Name          string
	Margin        float64
	Gap           float64
	RowGap        float64
	AspectRatio   float64 // image height / width
	CaptionHeight float64
	HeaderHeight  float64
	GridTop       float64
	CornerRadius  float64
	Columns       ColumnRule
}

var (
	Classic = Layout{
		Name:          "classic",
		Margin:        40,
		Gap:           10,
		RowGap:        10,
		AspectRatio:   1.2,
		CaptionHeight: 30,
		HeaderHeight:  100,
		GridTop:       120,
		Columns:       ScaledColumns,
	}

	Landscape = Layout{
		Name:          "landscape",
		Margin:        50,
		Gap:           14,
		RowGap:        8,
		AspectRatio:   0.67,
		CaptionHeight: 16,
		HeaderHeight:  110,
		GridTop:       130,
		CornerRadius:  4,
		Columns:       FixedColumns(2),
	}
)

// LayoutByName resolves a configured layout preset
func LayoutByName(name string) (Layout, error) {
	switch name {
	case "", Classic.Name:
		return Classic, nil
	case Landscape.Name:
		return Landscape, nil
	default:
		return Layout{}, fmt.Errorf("unknown board layout %q (expected classic or landscape)", name)
	}
}

// Cell is one image slot. Y is the top of the image; the caption sits below it.
type Cell struct {
	Index int
	Page  int
	Row   int
	Col   int
	X     float64
	Y     float64
	W     float64
	H     float64
}

// Grid places n images row by row. A row that would cross the bottom margin
// moves to the next page as a whole; a short last row keeps its cells in
// their columns and leaves the rest empty.
func (l Layout) Grid(n int) []Cell {
	if n <= 0 {
		return nil
	}

	cols := l.Columns(n)
	if cols < 1 {
		cols = 1
	}

	usable := PageWidth - 2*l.Margin
	w := (usable - float64(cols-1)*l.Gap) / float64(cols)
	h := w * l.AspectRatio
	rowHeight := h + l.CaptionHeight
	bottom := PageHeight - l.Margin

	cells := make([]Cell, 0, n)
	page := 0
	y := l.GridTop
	rowsOnPage := 0

	for row := 0; row*cols < n; row++ {
		if rowsOnPage > 0 && y+rowHeight > bottom {
			page++
			y = l.Margin
			rowsOnPage = 0
		}

		for col := 0; col < cols; col++ {
			idx := row*cols + col
			if idx >= n {
				break
			}
			cells = append(cells, Cell{
				Index: idx,
				Page:  page,
				Row:   row,
				Col:   col,
				X:     l.Margin + float64(col)*(w+l.Gap),
				Y:     y,
				W:     w,
				H:     h,
			})
		}

		y += rowHeight + l.RowGap
		rowsOnPage++
	}

	return cells
}
