package graphics

import "math"

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Polar returns the point at distance radius and angle radians from o.
// Angles follow screen coordinates: 0 points right, π/2 points down.
func (o Offset) Polar(radius, angle float64) Offset {
	return Offset{
		X: o.X + radius*math.Cos(angle),
		Y: o.Y + radius*math.Sin(angle),
	}
}

// Distance returns the euclidean distance between o and other.
func (o Offset) Distance(other Offset) float64 {
	return math.Hypot(other.X-o.X, other.Y-o.Y)
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Center returns the midpoint of a box of this size anchored at the origin.
func (s Size) Center() Offset {
	return Offset{X: s.Width / 2, Y: s.Height / 2}
}

// ShortestSide returns min(Width, Height).
func (s Size) ShortestSide() float64 {
	return min(s.Width, s.Height)
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}
