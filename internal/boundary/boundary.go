package boundary

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/quintrel/balloontool/internal/geometry"
)

// Params tunes the boundary search.
type Params struct {
	// EdgeThreshold is the grayscale gradient magnitude above which a
	// pixel counts as an edge. Typical: 30.
	EdgeThreshold float64

	// BlurRadius is the Gaussian blur radius applied before edge
	// detection to suppress scan noise.
	BlurRadius float64

	// MinAreaFraction and MaxAreaFraction bracket the acceptable contour
	// bounding-box area relative to the page. The lower bound rejects
	// table cells and title-block compartments; the upper bound rejects
	// the page edge itself.
	MinAreaFraction float64
	MaxAreaFraction float64

	// MinRectangularity is the minimum fraction of the contour's
	// bounding-box perimeter that contour pixels must cover for the
	// contour to qualify as a border frame. Rejects diagonals, circles
	// and open polylines whose bounding boxes are mostly empty at the
	// border.
	MinRectangularity float64
}

// DefaultParams returns the values that work for 300dpi drawing scans.
func DefaultParams() Params {
	return Params{
		EdgeThreshold:     30,
		BlurRadius:        1.4,
		MinAreaFraction:   0.30,
		MaxAreaFraction:   0.98,
		MinRectangularity: 0.5,
	}
}

// FindInnermost locates the innermost closed rectangular contour that
// plausibly represents the drawing's border frame, as opposed to the page
// edge or outer trim border.
//
// Returns the content mask (white inside the boundary), the boundary
// rectangle, and whether a qualifying contour was found. When ok is
// false the caller must fall back to full-page behavior: an unknown
// boundary is not an error.
//
// The search runs edge detection over a blurred grayscale render, groups
// edge pixels into contours, scores how much of each contour hugs its own
// bounding-box border, and keeps the smallest bounding box whose area
// sits inside the configured page-area fraction window. Smallest wins
// because nested border frames are drawn outermost-first; the innermost
// frame is the one that scopes the zone grid.
func FindInnermost(img image.Image, p Params) (*image.Gray, geometry.Rect, bool) {
	if img == nil {
		return nil, geometry.Rect{}, false
	}

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil, geometry.Rect{}, false
	}

	prepared := blur.Gaussian(imaging.Grayscale(img), p.BlurRadius)
	edges := detectEdges(prepared, width, height, p.EdgeThreshold)
	contours := findContours(edges, width, height)

	pageArea := float64(width * height)
	best := geometry.Rect{}
	bestArea := math.Inf(1)
	found := false

	for _, contour := range contours {
		minX, minY := width, height
		maxX, maxY := 0, 0
		for _, pt := range contour {
			if pt.X < minX {
				minX = pt.X
			}
			if pt.X > maxX {
				maxX = pt.X
			}
			if pt.Y < minY {
				minY = pt.Y
			}
			if pt.Y > maxY {
				maxY = pt.Y
			}
		}

		rw := maxX - minX
		rh := maxY - minY
		area := float64(rw * rh)
		if area < p.MinAreaFraction*pageArea || area > p.MaxAreaFraction*pageArea {
			continue
		}

		expectedPerimeter := 2 * (rw + rh)
		if expectedPerimeter == 0 {
			continue
		}

		// Count contour pixels within a few pixels of the bounding-box
		// border. A closed frame covers the full perimeter regardless of
		// line thickness or blur spread.
		const borderMargin = 3
		near := 0
		for _, pt := range contour {
			if pt.X-minX <= borderMargin || maxX-pt.X <= borderMargin ||
				pt.Y-minY <= borderMargin || maxY-pt.Y <= borderMargin {
				near++
			}
		}
		coverage := math.Min(1, float64(near)/float64(expectedPerimeter))
		if coverage < p.MinRectangularity {
			continue
		}

		if area < bestArea {
			bestArea = area
			best = geometry.Rect{
				X1: float64(minX), Y1: float64(minY),
				X2: float64(maxX), Y2: float64(maxY),
			}
			found = true
		}
	}

	if !found {
		return nil, geometry.Rect{}, false
	}
	return rectMask(b, best), best, true
}

// rectMask renders the boundary as a binary mask: white inside, black
// outside. Consumers use it to scope OCR and object-detector input to the
// drawing area.
func rectMask(bounds image.Rectangle, r geometry.Rect) *image.Gray {
	mask := image.NewGray(bounds)
	x1, y1 := int(r.X1), int(r.Y1)
	x2, y2 := int(r.X2), int(r.Y2)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			mask.SetGray(x+bounds.Min.X, y+bounds.Min.Y, color.Gray{Y: 255})
		}
	}
	return mask
}

// detectEdges performs simple gradient-based edge detection.
//
// Pixels where the grayscale difference to the right or lower neighbor
// exceeds the threshold are marked as edges. Border pixels are never
// edges.
func detectEdges(img image.Image, width, height int, threshold float64) [][]bool {
	bounds := img.Bounds()
	edges := make([][]bool, height)

	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				continue
			}

			c := grayValue(img, x+bounds.Min.X, y+bounds.Min.Y)
			cx := grayValue(img, x+1+bounds.Min.X, y+bounds.Min.Y)
			cy := grayValue(img, x+bounds.Min.X, y+1+bounds.Min.Y)

			dx := math.Abs(float64(c) - float64(cx))
			dy := math.Abs(float64(c) - float64(cy))

			if dx > threshold || dy > threshold {
				edges[y][x] = true
			}
		}
	}

	return edges
}

type pixel struct{ X, Y int }

// findContours groups connected edge pixels (8-connected) into contours.
// Contours smaller than 10 pixels are discarded as noise.
func findContours(edges [][]bool, width, height int) [][]pixel {
	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	contours := make([][]pixel, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges[y][x] && !visited[y][x] {
				contour := make([]pixel, 0)
				floodFill(edges, visited, x, y, width, height, &contour)
				if len(contour) >= 10 {
					contours = append(contours, contour)
				}
			}
		}
	}
	return contours
}

// floodFill performs iterative stack-based flood fill from a starting
// point, marking visited pixels and collecting them into the contour.
func floodFill(edges, visited [][]bool, startX, startY, width, height int, contour *[]pixel) {
	stack := []pixel{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		*contour = append(*contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, pixel{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}

// grayValue converts a pixel to grayscale using ITU-R BT.601 luminance
// weights.
func grayValue(img image.Image, x, y int) uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114)
}
