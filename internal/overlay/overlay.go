// Package overlay renders zone grids onto page images for visual
// verification of zone assignment.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/quintrel/balloontool/internal/zone"
)

// Style controls grid rendering. Colors are hex strings like "#FF0000".
type Style struct {
	LineColor  string `mapstructure:"line_color" yaml:"line_color"`
	LabelColor string `mapstructure:"label_color" yaml:"label_color"`
	LabelBG    string `mapstructure:"label_bg" yaml:"label_bg"`

	// LabelScale magnifies the built-in 3x5 glyph font. Scale 1 is
	// legible on thumbnails; page-resolution scans want 3 or more.
	LabelScale int `mapstructure:"label_scale" yaml:"label_scale"`
}

// DefaultStyle returns red grid lines with white-on-black labels.
func DefaultStyle() Style {
	return Style{
		LineColor:  "#FF0000",
		LabelColor: "#FFFFFF",
		LabelBG:    "#000000",
		LabelScale: 3,
	}
}

// Render draws the zone grid over a copy of the page image. The input
// image is never modified.
func Render(img image.Image, grid *zone.Grid, style Style) (*image.RGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("image is nil")
	}
	if grid == nil {
		return nil, fmt.Errorf("grid is nil")
	}

	lineColor, err := parseHex(style.LineColor)
	if err != nil {
		return nil, fmt.Errorf("invalid line color: %w", err)
	}
	labelColor, err := parseHex(style.LabelColor)
	if err != nil {
		return nil, fmt.Errorf("invalid label color: %w", err)
	}
	bgColor, err := parseHex(style.LabelBG)
	if err != nil {
		return nil, fmt.Errorf("invalid label background: %w", err)
	}
	scale := style.LabelScale
	if scale < 1 {
		scale = 1
	}

	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	b := grid.Boundary.Normalize()
	x1, y1 := int(b.X1), int(b.Y1)
	x2, y2 := int(b.X2), int(b.Y2)

	// Vertical lines, boundary edges included.
	for c := 0; c <= grid.Cols; c++ {
		x := x1 + int(float64(c)*b.Width()/float64(grid.Cols))
		drawVLine(result, x, y1, y2, lineColor)
	}
	// Horizontal lines.
	for r := 0; r <= grid.Rows; r++ {
		y := y1 + int(float64(r)*b.Height()/float64(grid.Rows))
		drawHLine(result, x1, x2, y, lineColor)
	}

	// Label each cell at its top-left corner.
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			cell := grid.CellRect(r, c)
			drawLabel(result, int(cell.X1)+2*scale, int(cell.Y1)+2*scale, grid.Label(r, c), scale, labelColor, bgColor)
		}
	}

	return result, nil
}

func drawVLine(img *image.RGBA, x, y1, y2 int, c color.RGBA) {
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X {
		return
	}
	for y := max(y1, bounds.Min.Y); y <= min(y2, bounds.Max.Y-1); y++ {
		img.Set(x, y, c)
	}
}

func drawHLine(img *image.RGBA, x1, x2, y int, c color.RGBA) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	bounds := img.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	for x := max(x1, bounds.Min.X); x <= min(x2, bounds.Max.X-1); x++ {
		img.Set(x, y, c)
	}
}

// parseHex parses a hex color via go-colorful and returns it opaque.
func parseHex(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// glyphs is a 3x5 pixel font covering zone label characters.
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'A': {"010", "101", "111", "101", "101"},
	'B': {"110", "101", "110", "101", "110"},
	'C': {"011", "100", "100", "100", "011"},
	'D': {"110", "101", "101", "101", "110"},
	'E': {"111", "100", "110", "100", "111"},
	'F': {"111", "100", "110", "100", "100"},
	'G': {"011", "100", "101", "101", "011"},
	'H': {"101", "101", "111", "101", "101"},
	'N': {"101", "111", "111", "111", "101"},
	'/': {"001", "001", "010", "100", "100"},
}

// drawLabel draws a label in the built-in font at the given position,
// magnified by scale.
func drawLabel(img *image.RGBA, x, y int, text string, scale int, fg, bg color.RGBA) {
	bounds := img.Bounds()
	charWidth := 4 * scale
	labelWidth := len(text) * charWidth
	labelHeight := 6 * scale

	for dy := -scale; dy < labelHeight; dy++ {
		for dx := -scale; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.Set(px, py, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				for sy := 0; sy < scale; sy++ {
					for sx := 0; sx < scale; sx++ {
						px := cx + col*scale + sx
						py := y + row*scale + sy
						if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
							img.Set(px, py, fg)
						}
					}
				}
			}
		}
		cx += charWidth
	}
}
