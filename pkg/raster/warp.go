package raster

import (
	"errors"
	"image/color"
	gomath "math"

	"github.com/yangshun/cs4243-project/pkg/math"
)

// Rect is an axis-aligned region of a texture in pixel coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Corners returns top-left, top-right, bottom-right, bottom-left.
func (r Rect) Corners() [4]math.Vec2 {
	return [4]math.Vec2{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}

// edgeTolerance absorbs round-off when a preimage lands on the region border.
const edgeTolerance = 1e-6

// Quad returns the rectangle as a quadrilateral with the same corner order.
func (r Rect) Quad() Quad {
	return Quad(r.Corners())
}

// Quad is a convex quadrilateral in texture pixels, in either winding.
type Quad [4]math.Vec2

// Area returns the unsigned area.
func (q Quad) Area() float64 {
	return gomath.Abs(q.signedArea())
}

func (q Quad) signedArea() float64 {
	a := 0.0
	for i := range q {
		j := (i + 1) % len(q)
		a += q[i].X*q[j].Y - q[j].X*q[i].Y
	}
	return a / 2
}

// Centroid returns the mean of the corners.
func (q Quad) Centroid() math.Vec2 {
	var c math.Vec2
	for _, p := range q {
		c = c.Add(p)
	}
	return c.Scale(0.25)
}

// Contains reports whether p lies inside the closed quadrilateral.
func (q Quad) Contains(p math.Vec2) bool {
	sign := 1.0
	if q.signedArea() < 0 {
		sign = -1
	}
	for i := range q {
		a, b := q[i], q[(i+1)%len(q)]
		edge := b.Sub(a)
		// Divided by the edge length so the tolerance is a distance.
		if l := edge.Length(); l > 0 && sign*edge.Cross(p.Sub(a))/l < -edgeTolerance {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned bounding rectangle.
func (q Quad) Bounds() Rect {
	minX, minY := q[0].X, q[0].Y
	maxX, maxY := minX, minY
	for _, p := range q[1:] {
		minX = gomath.Min(minX, p.X)
		minY = gomath.Min(minY, p.Y)
		maxX = gomath.Max(maxX, p.X)
		maxY = gomath.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// ErrEmptyRegion is returned when asked to warp an empty source region.
var ErrEmptyRegion = errors.New("empty source region")

// PerspectiveWarper computes homographies and resamples textures through
// them with bilinear filtering.
type PerspectiveWarper struct{}

// Homography returns the transform mapping src[i] to dst[i].
func (PerspectiveWarper) Homography(src, dst [4]math.Vec2) (Homography, error) {
	return ComputeHomography(src, dst)
}

// Warp resamples the region of src through h into a black width x height
// image. Only destination pixels whose preimage lies inside region, on the
// same side of the horizon as the region itself, are written, and those
// pixels are marked in the result's Mask even when the texel is black.
func (PerspectiveWarper) Warp(src *Image, region Quad, h Homography, width, height int) (*Image, error) {
	dst := New(width, height)
	if region.Area() <= 0 || src.Width == 0 || src.Height == 0 {
		return dst, ErrEmptyRegion
	}
	inv, ok := h.Inverse()
	if !ok {
		return dst, ErrSingularHomography
	}

	side := h.denominator(region.Centroid())
	if side == 0 {
		return dst, ErrSingularHomography
	}

	dst.Mask = make([]bool, width*height)
	x0, y0, x1, y1 := destinationBounds(h, region, width, height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p, ok := inv.Apply(math.Vec2{X: float64(x), Y: float64(y)})
			if !ok || !region.Contains(p) {
				continue
			}
			if h.denominator(p)*side <= 0 {
				continue
			}
			r, g, b := src.sample(p.X, p.Y)
			dst.Set(x, y, color.RGBA{R: r, G: g, B: b})
			dst.Mask[y*width+x] = true
		}
	}
	return dst, nil
}

// destinationBounds returns the pixel box covered by the warped region,
// clipped to the output. When the region straddles the horizon the whole
// output is scanned.
func destinationBounds(h Homography, region Quad, width, height int) (x0, y0, x1, y1 int) {
	minX, minY := gomath.Inf(1), gomath.Inf(1)
	maxX, maxY := gomath.Inf(-1), gomath.Inf(-1)
	sign := 0.0
	for _, c := range region {
		w := h.denominator(c)
		if w == 0 || (sign != 0 && w*sign < 0) {
			return 0, 0, width, height
		}
		sign = w
		p, _ := h.Apply(c)
		minX = gomath.Min(minX, p.X)
		minY = gomath.Min(minY, p.Y)
		maxX = gomath.Max(maxX, p.X)
		maxY = gomath.Max(maxY, p.Y)
	}

	clampInt := func(v float64, hi int) int {
		if v < 0 {
			return 0
		}
		if v > float64(hi) {
			return hi
		}
		return int(v)
	}
	return clampInt(gomath.Floor(minX), width), clampInt(gomath.Floor(minY), height),
		clampInt(gomath.Ceil(maxX)+1, width), clampInt(gomath.Ceil(maxY)+1, height)
}
