package zone

import (
	"fmt"
	"math"

	"github.com/quintrel/balloontool/internal/geometry"
)

// NoZone is returned when no boundary is known for the page or a grid
// lookup cannot be resolved.
const NoZone = "N/A"

// Options controls the labeling convention applied to a grid.
//
// Engineering sheets letter one axis and number the other. The default
// (LettersOnCols false) letters rows top-to-bottom and numbers columns
// left-to-right, giving labels like "B3". Both choices must be applied
// consistently for a given page.
type Options struct {
	// LettersOnCols letters the columns and numbers the rows instead.
	LettersOnCols bool `json:"letters_on_cols"`

	// ReverseRows letters rows bottom-to-top, as on sheets whose zone
	// scale starts at the lower border.
	ReverseRows bool `json:"reverse_rows"`
}

// Grid is a page subdivision derived from the detected content boundary.
// It is rebuilt whenever the boundary changes and read-only afterward.
type Grid struct {
	Boundary geometry.Rect `json:"boundary"`
	Rows     int           `json:"rows"`
	Cols     int           `json:"cols"`
	Opts     Options       `json:"opts"`
}

// BuildGrid subdivides the boundary rectangle into a zone grid.
//
// Cell counts follow drawing-sheet convention rather than a fixed size:
// wide landscape sheets get more columns than rows, portrait sheets the
// reverse. Returns nil when the boundary is degenerate, which downstream
// lookups treat as "no constrained region known".
func BuildGrid(boundary geometry.Rect, opts Options) *Grid {
	boundary = boundary.Normalize()
	if boundary.Area() == 0 {
		return nil
	}

	aspect := boundary.Width() / boundary.Height()
	var rows, cols int
	switch {
	case aspect >= 1.8:
		rows, cols = 4, 8
	case aspect >= 1.2:
		rows, cols = 4, 6
	case aspect >= 0.8:
		rows, cols = 4, 4
	case aspect >= 0.55:
		rows, cols = 6, 4
	default:
		rows, cols = 8, 4
	}

	return &Grid{Boundary: boundary, Rows: rows, Cols: cols, Opts: opts}
}

// ZoneForPoint resolves the zone label of the cell containing p.
//
// Points slightly outside the boundary clamp to the nearest edge cell, so
// detection-box midpoints that land a few pixels past the border still
// resolve. A nil grid yields NoZone.
func (g *Grid) ZoneForPoint(p geometry.Point) string {
	if g == nil || g.Rows == 0 || g.Cols == 0 {
		return NoZone
	}

	fx := (p.X - g.Boundary.X1) / g.Boundary.Width()
	fy := (p.Y - g.Boundary.Y1) / g.Boundary.Height()

	col := clampIndex(int(math.Floor(fx*float64(g.Cols))), g.Cols)
	row := clampIndex(int(math.Floor(fy*float64(g.Rows))), g.Rows)

	return g.Label(row, col)
}

// Label returns the zone label for a (row, col) cell index pair under the
// grid's convention. Indices are 0-based, row 0 at the top, col 0 at the
// left.
func (g *Grid) Label(row, col int) string {
	if g == nil || row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return NoZone
	}
	if g.Opts.ReverseRows {
		row = g.Rows - 1 - row
	}
	if g.Opts.LettersOnCols {
		return fmt.Sprintf("%c%d", 'A'+col, row+1)
	}
	return fmt.Sprintf("%c%d", 'A'+row, col+1)
}

// CellLabels returns every cell label in row-major order (top-left
// first).
func (g *Grid) CellLabels() []string {
	if g == nil {
		return nil
	}
	labels := make([]string, 0, g.Rows*g.Cols)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			labels = append(labels, g.Label(row, col))
		}
	}
	return labels
}

// CellRect returns the page-pixel rectangle of a cell. Used by the
// overlay renderer; the lookup path never needs it.
func (g *Grid) CellRect(row, col int) geometry.Rect {
	cw := g.Boundary.Width() / float64(g.Cols)
	ch := g.Boundary.Height() / float64(g.Rows)
	return geometry.Rect{
		X1: g.Boundary.X1 + float64(col)*cw,
		Y1: g.Boundary.Y1 + float64(row)*ch,
		X2: g.Boundary.X1 + float64(col+1)*cw,
		Y2: g.Boundary.Y1 + float64(row+1)*ch,
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
