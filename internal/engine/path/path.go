// Package path generates camera trajectories: quaternion orbits around an
// object, Bézier flythroughs through waypoints, and straight sweeps.
// Every generator returns an ordered list of poses, one per frame.
package path

import (
	"errors"

	"github.com/yangshun/cs4243-project/internal/engine/camera"
	"github.com/yangshun/cs4243-project/pkg/math"
)

var (
	// ErrInvalidStep is returned for an orbit step outside (0, 360].
	ErrInvalidStep = errors.New("orbit step must be in (0, 360] degrees")
	// ErrZeroAxis is returned for an orbit around a zero-length axis.
	ErrZeroAxis = errors.New("orbit axis has zero length")
	// ErrControlPoints is returned when Bézier control points are not 3k+1.
	ErrControlPoints = errors.New("bezier path needs 3k+1 control points (k >= 1)")
	// ErrLengthMismatch is returned when positions and headings differ in length.
	ErrLengthMismatch = errors.New("positions and headings differ in length")
	// ErrSampleCount is returned for a non-positive sample count.
	ErrSampleCount = errors.New("sample count must be positive")
)

// Sample is one camera pose along a path.
type Sample struct {
	Position    math.Vec3
	Orientation math.Mat3
}

// Pose converts the sample to a camera pose.
func (s Sample) Pose() camera.Pose {
	return camera.Pose{Position: s.Position, Orientation: s.Orientation}
}

// Poses converts samples to camera poses, preserving order.
func Poses(samples []Sample) []camera.Pose {
	poses := make([]camera.Pose, len(samples))
	for i, s := range samples {
		poses[i] = s.Pose()
	}
	return poses
}

// OrientationFromHeading returns a level camera facing h: the optical axis
// is (cos h, sin h, 0), the vertical axis points world-down and the
// horizontal axis completes a right-handed frame.
func OrientationFromHeading(h math.Heading) math.Mat3 {
	optical := h.Direction()
	vertical := math.Vec3{Z: -1}
	horizontal := vertical.Cross(optical)
	return math.FromColumns(horizontal, vertical, optical)
}

// Sweep walks n samples in a straight line from one point to another while
// turning linearly between two headings along the shorter arc.
func Sweep(from, to math.Vec3, fromHeading, toHeading math.Heading, n int) ([]Sample, error) {
	if n < 1 {
		return nil, ErrSampleCount
	}
	samples := make([]Sample, n)
	for i := range samples {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		samples[i] = Sample{
			Position:    from.Lerp(to, t),
			Orientation: OrientationFromHeading(fromHeading.Lerp(toHeading, t)),
		}
	}
	return samples, nil
}

// FlyParams describes a Bézier flythrough.
type FlyParams struct {
	// Points are the control points, 3k+1 of them.
	Points []math.Vec3
	// Segments is the number of samples per Bézier segment; zero means NumSegments.
	Segments int
	// FollowHeading turns the camera along the path tangent. Otherwise every
	// sample faces Heading.
	FollowHeading bool
	Heading       math.Heading
}

// Flythrough samples a Bézier path and orients the camera along it.
func Flythrough(p FlyParams) ([]Sample, error) {
	positions, headings, err := Bezier(p.Points, p.Segments)
	if err != nil {
		return nil, err
	}
	if p.FollowHeading {
		return Smooth(positions, headings)
	}
	orientation := OrientationFromHeading(p.Heading)
	samples := make([]Sample, len(positions))
	for i, pos := range positions {
		samples[i] = Sample{Position: pos, Orientation: orientation}
	}
	return samples, nil
}
