package geometry

import "math"

// Point represents a 2D coordinate in page-pixel space.
type Point struct {
	X float64 `json:"x"` // Horizontal position (0 = leftmost)
	Y float64 `json:"y"` // Vertical position (0 = topmost)
}

// Rect represents an axis-aligned rectangle in page-pixel coordinates.
//
// The coordinate convention follows standard image bounds:
//   - (X1, Y1) is the top-left corner
//   - (X2, Y2) is the bottom-right corner
//
// A Rect produced by Normalize always satisfies X1 <= X2 and Y1 <= Y2.
type Rect struct {
	X1 float64 `json:"x1"` // Left edge
	Y1 float64 `json:"y1"` // Top edge
	X2 float64 `json:"x2"` // Right edge
	Y2 float64 `json:"y2"` // Bottom edge
}

// Polygon is a 4-corner polygon in page-pixel coordinates, ordered
// top-left, top-right, bottom-right, bottom-left for axis-aligned boxes.
// Rotated detections may carry corners in any consistent winding; all
// reconciliation math operates on the axis-aligned bounding rectangle.
type Polygon [4]Point

// Normalize returns the rectangle with corners swapped so that
// X1 <= X2 and Y1 <= Y2.
func (r Rect) Normalize() Rect {
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.X2 - r.X1 }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }

// Area returns the rectangle's area, or 0 for degenerate rectangles.
func (r Rect) Area() float64 {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Contains reports whether every corner of inner lies within r,
// boundary inclusive. Both rectangles are normalized first.
func (r Rect) Contains(inner Rect) bool {
	r = r.Normalize()
	inner = inner.Normalize()
	return inner.X1 >= r.X1 && inner.Y1 >= r.Y1 &&
		inner.X2 <= r.X2 && inner.Y2 <= r.Y2
}

// Union returns the minimal rectangle enclosing both a and b.
func Union(a, b Rect) Rect {
	a = a.Normalize()
	b = b.Normalize()
	return Rect{
		X1: math.Min(a.X1, b.X1),
		Y1: math.Min(a.Y1, b.Y1),
		X2: math.Max(a.X2, b.X2),
		Y2: math.Max(a.Y2, b.Y2),
	}
}

// IoU computes the intersection-over-union of the two rectangles.
//
// Returns a value in [0, 1]: 1.0 for identical rectangles, 0 when the
// rectangles do not overlap or when either has zero area.
func IoU(a, b Rect) float64 {
	a = a.Normalize()
	b = b.Normalize()

	areaA := a.Area()
	areaB := b.Area()
	if areaA == 0 || areaB == 0 {
		return 0
	}

	ix1 := math.Max(a.X1, b.X1)
	iy1 := math.Max(a.Y1, b.Y1)
	ix2 := math.Min(a.X2, b.X2)
	iy2 := math.Min(a.Y2, b.Y2)

	if ix2 <= ix1 || iy2 <= iy1 {
		return 0
	}

	inter := (ix2 - ix1) * (iy2 - iy1)
	return inter / (areaA + areaB - inter)
}

// MinBoxSize is the default minimum side length, in pixels, below which a
// detection box is considered degenerate.
const MinBoxSize = 5.0

// Valid reports whether the rectangle describes a usable detection box:
// both sides strictly larger than minSize and the top-left corner at
// non-negative coordinates. Used to reject degenerate detections before
// they reach clustering.
func (r Rect) Valid(minSize float64) bool {
	r = r.Normalize()
	if r.Width() <= minSize || r.Height() <= minSize {
		return false
	}
	return r.X1 >= 0 && r.Y1 >= 0
}

// Bounding returns the axis-aligned bounding rectangle of the polygon.
func (p Polygon) Bounding() Rect {
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := p[0].X, p[0].Y
	for _, pt := range p[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return Rect{X1: minX, Y1: minY, X2: maxX, Y2: maxY}
}

// Midpoint returns the arithmetic mean of the polygon's four corners.
// For axis-aligned boxes this coincides with the rectangle center.
func (p Polygon) Midpoint() Point {
	var sx, sy float64
	for _, pt := range p {
		sx += pt.X
		sy += pt.Y
	}
	return Point{X: sx / 4, Y: sy / 4}
}

// ToPolygon converts an axis-aligned rectangle into its 4-corner polygon
// (top-left, top-right, bottom-right, bottom-left). The conversion is
// lossless for axis-aligned boxes: p.Bounding() recovers the rectangle.
func (r Rect) ToPolygon() Polygon {
	r = r.Normalize()
	return Polygon{
		{X: r.X1, Y: r.Y1},
		{X: r.X2, Y: r.Y1},
		{X: r.X2, Y: r.Y2},
		{X: r.X1, Y: r.Y2},
	}
}

// Flatten returns the polygon's corners as 8 floats in
// x1,y1,x2,y2,x3,y3,x4,y4 order, the shape used by backend records.
func (p Polygon) Flatten() []float64 {
	out := make([]float64, 0, 8)
	for _, pt := range p {
		out = append(out, pt.X, pt.Y)
	}
	return out
}

// PolygonFromFlat builds a polygon from a flat coordinate list.
//
// Accepts either 8 values (four corners) or 4 values (an axis-aligned
// x1,y1,x2,y2 box, expanded to its corner polygon). Returns false for any
// other length.
func PolygonFromFlat(coords []float64) (Polygon, bool) {
	switch len(coords) {
	case 8:
		var p Polygon
		for i := 0; i < 4; i++ {
			p[i] = Point{X: coords[2*i], Y: coords[2*i+1]}
		}
		return p, true
	case 4:
		r := Rect{X1: coords[0], Y1: coords[1], X2: coords[2], Y2: coords[3]}
		return r.ToPolygon(), true
	default:
		return Polygon{}, false
	}
}
