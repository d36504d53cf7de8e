package math

import "math"

// Heading is a ground-plane facing angle in degrees, kept in [0, 360).
// 0 faces +X and 90 faces +Y.
type Heading float64

// NewHeading wraps deg into [0, 360).
func NewHeading(deg float64) Heading {
	h := math.Mod(deg, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return Heading(h)
}

// HeadingFromDirection returns the heading of the ground-plane direction (dx, dy).
func HeadingFromDirection(dx, dy float64) Heading {
	return NewHeading(math.Atan2(dy, dx) * 180 / math.Pi)
}

// Degrees returns the heading in degrees.
func (h Heading) Degrees() float64 {
	return float64(h)
}

// Radians returns the heading in radians.
func (h Heading) Radians() float64 {
	return float64(h) * math.Pi / 180
}

// Direction returns the unit ground-plane vector the heading faces.
func (h Heading) Direction() Vec3 {
	r := h.Radians()
	return Vec3{math.Cos(r), math.Sin(r), 0}
}

// Delta returns the signed shortest rotation from h to other, in (-180, 180].
func (h Heading) Delta(other Heading) float64 {
	d := float64(other) - float64(h)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// Lerp interpolates along the shorter arc; t=0 gives h and t=1 gives other.
func (h Heading) Lerp(other Heading, t float64) Heading {
	return NewHeading(float64(h) + t*h.Delta(other))
}

// Steps walks from h towards other one whole degree at a time along the
// shorter arc. The result starts at h and excludes other; it always holds
// at least h itself.
func (h Heading) Steps(other Heading) []Heading {
	d := h.Delta(other)
	n := int(math.Abs(d))
	if n == 0 {
		return []Heading{h}
	}
	sign := 1.0
	if d < 0 {
		sign = -1
	}
	steps := make([]Heading, n)
	for i := range steps {
		steps[i] = NewHeading(float64(h) + sign*float64(i))
	}
	return steps
}
