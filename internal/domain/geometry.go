package domain

import "math"

// Point is a position in page space (origin at the bottom-left corner).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rectangle is an axis-aligned box in page coordinate units.
type Rectangle struct {
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectangleFromCorners builds a normalized rectangle from two opposite corners.
func RectangleFromCorners(a, b Point) Rectangle {
	return Rectangle{
		Left:   math.Min(a.X, b.X),
		Bottom: math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// BoundingRectangle returns the smallest rectangle enclosing every point.
func BoundingRectangle(points ...Point) Rectangle {
	if len(points) == 0 {
		return Rectangle{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rectangle{Left: minX, Bottom: minY, Width: maxX - minX, Height: maxY - minY}
}

// Right returns the x coordinate of the right edge.
func (r Rectangle) Right() float64 { return r.Left + r.Width }

// Top returns the y coordinate of the top edge.
func (r Rectangle) Top() float64 { return r.Bottom + r.Height }

// Shift returns r moved horizontally by dx.
func (r Rectangle) Shift(dx float64) Rectangle {
	r.Left += dx
	return r
}

// Matrix is a 2D affine transform stored as [a b c d e f], mapping
// (x, y) to (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

// IdentityMatrix leaves every point unchanged.
var IdentityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// TranslationMatrix moves points by (tx, ty).
func TranslationMatrix(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Apply transforms a point.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Mul returns the transform that applies m first and then n.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}
