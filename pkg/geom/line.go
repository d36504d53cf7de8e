// Package geom provides 2D image-plane geometry: implicit lines and
// convex hulls.
package geom

import (
	"errors"

	"github.com/yangshun/cs4243-project/pkg/math"
)

// ErrCoincidentPoints is returned when a line is built from two equal points.
var ErrCoincidentPoints = errors.New("line needs two distinct points")

// Line is the implicit line A*x + B*y + C = 0, normalized so that B >= 0
// (and A > 0 when the line is vertical).
type Line struct {
	A, B, C float64
}

// NewLine returns the line through p and q.
func NewLine(p, q math.Vec2) (Line, error) {
	if p == q {
		return Line{}, ErrCoincidentPoints
	}
	l := Line{
		A: q.Y - p.Y,
		B: p.X - q.X,
		C: q.X*p.Y - p.X*q.Y,
	}
	if l.B < 0 || (l.B == 0 && l.A < 0) {
		l = Line{-l.A, -l.B, -l.C}
	}
	return l, nil
}

// Eval returns A*x + B*y + C for p. Its sign tells which side of the line p is on.
func (l Line) Eval(p math.Vec2) float64 {
	return l.A*p.X + l.B*p.Y + l.C
}

// Side returns +1, -1 or 0 depending on which side of the line p lies.
// With B >= 0, +1 means p has a larger y than the line at the same x.
func (l Line) Side(p math.Vec2) int {
	v := l.Eval(p)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// YAt solves the line for y at x. ok is false for vertical lines.
func (l Line) YAt(x float64) (y float64, ok bool) {
	if l.B == 0 {
		return 0, false
	}
	return -(l.A*x + l.C) / l.B, true
}

// XAt solves the line for x at y. ok is false for horizontal lines.
func (l Line) XAt(y float64) (x float64, ok bool) {
	if l.A == 0 {
		return 0, false
	}
	return -(l.B*y + l.C) / l.A, true
}
