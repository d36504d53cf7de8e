package texture

import (
	"errors"
	"fmt"

	"github.com/yangshun/cs4243-project/pkg/math"
)

// ErrCalibration is returned for a non-positive resolution or focal length.
var ErrCalibration = errors.New("resolution and focal length must be positive")

// Reconstructor recovers world positions of image pixels from an assumed
// depth, by inverting the pinhole projection of the camera that took the
// photo. The camera sits at the origin looking along +Z.
type Reconstructor struct {
	Width, Height float64
	// Resolution is in pixels per world unit.
	Resolution float64
	// Focal is the distance to the image plane in world units.
	Focal float64
}

// NewReconstructor validates the calibration of a width x height image.
func NewReconstructor(width, height int, resolution, focal float64) (*Reconstructor, error) {
	if !(resolution > 0) || !(focal > 0) {
		return nil, fmt.Errorf("%w: resolution %v, focal %v", ErrCalibration, resolution, focal)
	}
	return &Reconstructor{
		Width:      float64(width),
		Height:     float64(height),
		Resolution: resolution,
		Focal:      focal,
	}, nil
}

// ToVirtualPlane maps an image pixel to image-plane coordinates with the
// origin at the center, x to the right and y up.
func (r *Reconstructor) ToVirtualPlane(row, col float64) math.Vec2 {
	return math.Vec2{
		X: col - r.Width/2,
		Y: r.Height/2 - row,
	}
}

// Coordinate3D returns the world point seen at (row, col) at depth z.
func (r *Reconstructor) Coordinate3D(row, col, z float64) math.Vec3 {
	p := r.ToVirtualPlane(row, col).Scale(1 / r.Resolution)
	ratio := z / r.Focal
	return math.Vec3{X: p.X * ratio, Y: p.Y * ratio, Z: z}
}
