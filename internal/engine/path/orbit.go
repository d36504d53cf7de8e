package path

import (
	"fmt"
	gomath "math"

	"github.com/yangshun/cs4243-project/internal/engine/camera"
	"github.com/yangshun/cs4243-project/pkg/math"
)

// OrbitParams describes a circular path around the world origin.
type OrbitParams struct {
	Axis        math.Vec3
	StepDegrees float64
	Start       math.Vec3
	// Orientation at Start. The zero matrix means the default camera pose.
	Orientation math.Mat3
}

// DefaultOrbit circles the vertical axis in 10 degree steps from 200 units
// in front of the origin.
func DefaultOrbit() OrbitParams {
	return OrbitParams{
		Axis:        math.Vec3{Z: 1},
		StepDegrees: 10,
		Start:       math.Vec3{Y: -200},
		Orientation: camera.DefaultPose().Orientation,
	}
}

// Frames returns the number of samples the orbit produces.
func (p OrbitParams) Frames() int {
	return int(360 / p.StepDegrees)
}

// Orbit rotates the start position and orientation by the same fixed step
// until a full turn is covered, so a camera that starts facing the origin
// keeps facing it.
func Orbit(p OrbitParams) ([]Sample, error) {
	if !(p.StepDegrees > 0 && p.StepDegrees <= 360) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStep, p.StepDegrees)
	}
	if p.Axis.Length() == 0 {
		return nil, ErrZeroAxis
	}
	orientation := p.Orientation
	if orientation == (math.Mat3{}) {
		orientation = camera.DefaultPose().Orientation
	}

	q := math.QuatFromAxisAngle(p.Axis, p.StepDegrees*gomath.Pi/180)
	qc := q.Conjugate()
	r := q.ToMat3()

	n := p.Frames()
	samples := make([]Sample, 0, n)
	pos := math.QuatFromVector(p.Start)
	for i := 0; i < n; i++ {
		if i > 0 {
			pos = q.Mul(pos).Mul(qc)
			orientation = r.Mul(orientation)
		}
		v, err := pos.ToVector()
		if err != nil {
			return nil, fmt.Errorf("orbit step %d: %w", i, err)
		}
		samples = append(samples, Sample{Position: v, Orientation: orientation})
	}
	return samples, nil
}
