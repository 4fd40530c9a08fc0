package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/quintrel/balloontool/internal/geometry"
	"github.com/quintrel/balloontool/internal/zone"
)

func whitePage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func testGrid(t *testing.T) *zone.Grid {
	t.Helper()
	g := zone.BuildGrid(geometry.Rect{X1: 100, Y1: 100, X2: 900, Y2: 500}, zone.Options{})
	if g == nil {
		t.Fatal("BuildGrid returned nil")
	}
	return g
}

func TestRenderDrawsGridLines(t *testing.T) {
	page := whitePage(1000, 600)
	grid := testGrid(t)

	out, err := Render(page, grid, DefaultStyle())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	red := color.RGBA{R: 255, A: 255}
	// Boundary edges are grid lines.
	if out.RGBAAt(100, 300) != red {
		t.Errorf("left boundary edge not drawn, got %v", out.RGBAAt(100, 300))
	}
	if out.RGBAAt(900, 300) != red {
		t.Errorf("right boundary edge not drawn, got %v", out.RGBAAt(900, 300))
	}
	if out.RGBAAt(500, 100) != red {
		t.Errorf("top boundary edge not drawn, got %v", out.RGBAAt(500, 100))
	}
	// The page outside the boundary stays untouched.
	if out.RGBAAt(50, 50) != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("pixel outside boundary changed, got %v", out.RGBAAt(50, 50))
	}
}

func TestRenderLeavesInputUnmodified(t *testing.T) {
	page := whitePage(1000, 600)
	grid := testGrid(t)

	if _, err := Render(page, grid, DefaultStyle()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if page.RGBAAt(100, 300) != (color.RGBA{255, 255, 255, 255}) {
		t.Error("input image was modified")
	}
}

func TestRenderDrawsLabels(t *testing.T) {
	page := whitePage(1000, 600)
	grid := testGrid(t)

	out, err := Render(page, grid, DefaultStyle())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Each cell carries a label block near its top-left corner; the
	// block background is black, so some non-white pixel must appear
	// there.
	cell := grid.CellRect(0, 0)
	found := false
	for dy := 0; dy < 30 && !found; dy++ {
		for dx := 0; dx < 30 && !found; dx++ {
			px := out.RGBAAt(int(cell.X1)+dx, int(cell.Y1)+dy)
			if px != (color.RGBA{255, 255, 255, 255}) && px != (color.RGBA{255, 0, 0, 255}) {
				found = true
			}
		}
	}
	if !found {
		t.Error("no label pixels near first cell corner")
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	grid := testGrid(t)
	if _, err := Render(nil, grid, DefaultStyle()); err == nil {
		t.Error("expected error for nil image")
	}
	if _, err := Render(whitePage(10, 10), nil, DefaultStyle()); err == nil {
		t.Error("expected error for nil grid")
	}

	style := DefaultStyle()
	style.LineColor = "not-a-color"
	if _, err := Render(whitePage(10, 10), grid, style); err == nil {
		t.Error("expected error for invalid color")
	}
}

func TestParseHex(t *testing.T) {
	c, err := parseHex("#00FF00")
	if err != nil {
		t.Fatalf("parseHex: %v", err)
	}
	if c != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("parseHex = %v, want opaque green", c)
	}
}
