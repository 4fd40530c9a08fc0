package zone

import (
	"testing"
	"time"

	"github.com/quintrel/balloontool/internal/geometry"
)

func landscapeGrid() *Grid {
	// 1600x800 boundary, aspect 2.0 -> 4 rows x 8 cols.
	return BuildGrid(geometry.Rect{X1: 100, Y1: 100, X2: 1700, Y2: 900}, Options{})
}

func TestBuildGrid_AspectDerivedDims(t *testing.T) {
	tests := []struct {
		name       string
		boundary   geometry.Rect
		rows, cols int
	}{
		{"wide landscape", geometry.Rect{X2: 2000, Y2: 1000}, 4, 8},
		{"mild landscape", geometry.Rect{X2: 1400, Y2: 1000}, 4, 6},
		{"square", geometry.Rect{X2: 1000, Y2: 1000}, 4, 4},
		{"mild portrait", geometry.Rect{X2: 700, Y2: 1000}, 6, 4},
		{"tall portrait", geometry.Rect{X2: 500, Y2: 1000}, 8, 4},
	}
	for _, tt := range tests {
		g := BuildGrid(tt.boundary, Options{})
		if g == nil {
			t.Fatalf("%s: nil grid", tt.name)
		}
		if g.Rows != tt.rows || g.Cols != tt.cols {
			t.Errorf("%s: got %dx%d, want %dx%d", tt.name, g.Rows, g.Cols, tt.rows, tt.cols)
		}
	}
}

func TestBuildGrid_DegenerateBoundary(t *testing.T) {
	if g := BuildGrid(geometry.Rect{X1: 10, Y1: 10, X2: 10, Y2: 50}, Options{}); g != nil {
		t.Error("zero-area boundary should yield nil grid")
	}
}

func TestZoneForPoint_NilGrid(t *testing.T) {
	var g *Grid
	if got := g.ZoneForPoint(geometry.Point{X: 50, Y: 50}); got != NoZone {
		t.Errorf("nil grid lookup = %q, want %q", got, NoZone)
	}
}

func TestZoneForPoint_Corners(t *testing.T) {
	g := landscapeGrid()

	// Top-left cell.
	if got := g.ZoneForPoint(geometry.Point{X: 101, Y: 101}); got != "A1" {
		t.Errorf("top-left = %q, want A1", got)
	}
	// Bottom-right cell: row D (4th), col 8.
	if got := g.ZoneForPoint(geometry.Point{X: 1699, Y: 899}); got != "D8" {
		t.Errorf("bottom-right = %q, want D8", got)
	}
}

func TestZoneForPoint_ClampsOutside(t *testing.T) {
	g := landscapeGrid()

	// A few pixels past the border should clamp, not fail.
	if got := g.ZoneForPoint(geometry.Point{X: 95, Y: 95}); got != "A1" {
		t.Errorf("outside top-left = %q, want A1", got)
	}
	if got := g.ZoneForPoint(geometry.Point{X: 1705, Y: 905}); got != "D8" {
		t.Errorf("outside bottom-right = %q, want D8", got)
	}
}

func TestLabel_Conventions(t *testing.T) {
	boundary := geometry.Rect{X2: 2000, Y2: 1000}

	g := BuildGrid(boundary, Options{})
	if got := g.Label(1, 2); got != "B3" {
		t.Errorf("default convention: %q, want B3", got)
	}

	flipped := BuildGrid(boundary, Options{LettersOnCols: true})
	if got := flipped.Label(1, 2); got != "C2" {
		t.Errorf("letters-on-cols: %q, want C2", got)
	}

	reversed := BuildGrid(boundary, Options{ReverseRows: true})
	// 4 rows; top row letters as D when reversed.
	if got := reversed.Label(0, 0); got != "D1" {
		t.Errorf("reversed rows: %q, want D1", got)
	}
}

func TestLabel_OutOfRange(t *testing.T) {
	g := landscapeGrid()
	if got := g.Label(-1, 0); got != NoZone {
		t.Errorf("negative row = %q, want %q", got, NoZone)
	}
	if got := g.Label(0, 99); got != NoZone {
		t.Errorf("col overflow = %q, want %q", got, NoZone)
	}
}

func TestCellLabels(t *testing.T) {
	g := landscapeGrid()
	labels := g.CellLabels()
	if len(labels) != g.Rows*g.Cols {
		t.Fatalf("got %d labels, want %d", len(labels), g.Rows*g.Cols)
	}
	if labels[0] != "A1" || labels[len(labels)-1] != "D8" {
		t.Errorf("label order: first=%q last=%q", labels[0], labels[len(labels)-1])
	}
}

func TestCellRect_TilesBoundary(t *testing.T) {
	g := landscapeGrid()
	first := g.CellRect(0, 0)
	last := g.CellRect(g.Rows-1, g.Cols-1)

	if first.X1 != g.Boundary.X1 || first.Y1 != g.Boundary.Y1 {
		t.Errorf("first cell origin %+v, want boundary origin", first)
	}
	if last.X2 != g.Boundary.X2 || last.Y2 != g.Boundary.Y2 {
		t.Errorf("last cell corner %+v, want boundary corner", last)
	}
}

func TestCache_RoundTrip(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	boundary := geometry.Rect{X2: 2000, Y2: 1000}
	g := BuildGrid(boundary, Options{})

	if _, found := c.Get(boundary, 0); found {
		t.Fatal("cache should start empty")
	}
	c.Put(boundary, 0, g)
	got, found := c.Get(boundary, 0)
	if !found || got != g {
		t.Error("cached grid should round-trip")
	}

	// A different rotation is a different page frame.
	if _, found := c.Get(boundary, 90); found {
		t.Error("rotation must be part of the key")
	}

	c.Clear()
	if _, found := c.Get(boundary, 0); found {
		t.Error("Clear should drop entries")
	}
}
