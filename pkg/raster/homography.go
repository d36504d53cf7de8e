package raster

import (
	"errors"
	"fmt"
	gomath "math"

	"gonum.org/v1/gonum/mat"

	"github.com/yangshun/cs4243-project/pkg/math"
)

// ErrSingularHomography is returned when four point pairs do not define a
// projective transform (three or more collinear points on either side).
var ErrSingularHomography = errors.New("singular homography")

// Homography is a 3x3 projective transform in row-major order with H[8] == 1
// after solving.
type Homography math.Mat3

// ComputeHomography returns the transform mapping src[i] to dst[i].
func ComputeHomography(src, dst [4]math.Vec2) (Homography, error) {
	// Eight unknowns h0..h7 with h8 fixed to 1:
	//   x' = (h0 X + h1 Y + h2) / (h6 X + h7 Y + 1)
	//   y' = (h3 X + h4 Y + h5) / (h6 X + h7 Y + 1)
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		X, Y := src[i].X, src[i].Y
		x, y := dst[i].X, dst[i].Y
		r := 2 * i
		a.SetRow(r, []float64{X, Y, 1, 0, 0, 0, -X * x, -Y * x})
		b.SetVec(r, x)
		a.SetRow(r+1, []float64{0, 0, 0, X, Y, 1, -X * y, -Y * y})
		b.SetVec(r+1, y)
	}

	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		// A finite condition number still yields a usable solution.
		var cond mat.Condition
		if !errors.As(err, &cond) || gomath.IsInf(float64(cond), 0) {
			return Homography{}, fmt.Errorf("%w: %v", ErrSingularHomography, err)
		}
	}

	var out Homography
	for i := 0; i < 8; i++ {
		v := h.AtVec(i)
		if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
			return Homography{}, ErrSingularHomography
		}
		out[i] = v
	}
	out[8] = 1
	return out, nil
}

// Apply maps p through the homography. ok is false when p maps to infinity.
func (h Homography) Apply(p math.Vec2) (q math.Vec2, ok bool) {
	w := h.denominator(p)
	if w == 0 {
		return math.Vec2{}, false
	}
	return math.Vec2{
		X: (h[0]*p.X + h[1]*p.Y + h[2]) / w,
		Y: (h[3]*p.X + h[4]*p.Y + h[5]) / w,
	}, true
}

func (h Homography) denominator(p math.Vec2) float64 {
	return h[6]*p.X + h[7]*p.Y + h[8]
}

// Inverse returns the transform mapping dst back to src.
func (h Homography) Inverse() (Homography, bool) {
	inv, ok := math.Mat3(h).Inverse()
	return Homography(inv), ok
}
