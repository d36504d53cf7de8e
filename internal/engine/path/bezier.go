package path

import (
	"fmt"

	"github.com/yangshun/cs4243-project/pkg/math"
)

// NumSegments is the default number of samples per Bézier segment.
const NumSegments = 20

// Bezier samples a chain of cubic Bézier segments. points holds 3k+1
// control points; segment i uses points[3i:3i+4], so neighbours share an
// endpoint. The second control point of every segment after the first is
// moved onto the line through the previous third control point and the
// shared endpoint, keeping its distance from the endpoint, which makes the
// ground track C¹ continuous.
//
// X and Y follow the cubic blend. Z is linear within each third of a
// segment (p0 to p1, p1 to p2, p2 to p3). Each sample's heading is the
// direction of the ground-plane tangent.
//
// Every segment contributes segments samples starting at its first
// endpoint; the final endpoint is appended last.
func Bezier(points []math.Vec3, segments int) ([]math.Vec3, []math.Heading, error) {
	if len(points) < 4 || (len(points)-1)%3 != 0 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrControlPoints, len(points))
	}
	if segments <= 0 {
		segments = NumSegments
	}

	ctrl := append([]math.Vec3(nil), points...)
	for i := 3; i+1 < len(ctrl); i += 3 {
		ctrl[i+1] = alignControl(ctrl[i-1], ctrl[i], ctrl[i+1])
	}

	n := (len(ctrl) - 1) / 3
	positions := make([]math.Vec3, 0, n*segments+1)
	headings := make([]math.Heading, 0, n*segments+1)
	for s := 0; s < n; s++ {
		p := ctrl[3*s : 3*s+4]
		for j := 0; j < segments; j++ {
			t := float64(j) / float64(segments)
			positions = append(positions, bezierPoint(p, t))
			headings = append(headings, bezierHeading(p, t))
		}
	}
	last := ctrl[len(ctrl)-4:]
	positions = append(positions, bezierPoint(last, 1))
	headings = append(headings, bezierHeading(last, 1))
	return positions, headings, nil
}

// alignControl places next on the ray from prev through joint, at its
// current ground distance from joint.
func alignControl(prev, joint, next math.Vec3) math.Vec3 {
	dir := joint.XY().Sub(prev.XY()).Normalize()
	if dir == (math.Vec2{}) {
		return next
	}
	d := next.XY().Distance(joint.XY())
	return math.Vec3{
		X: joint.X + dir.X*d,
		Y: joint.Y + dir.Y*d,
		Z: next.Z,
	}
}

func bezierPoint(p []math.Vec3, t float64) math.Vec3 {
	mt := 1 - t
	b0 := mt * mt * mt
	b1 := 3 * mt * mt * t
	b2 := 3 * mt * t * t
	b3 := t * t * t
	return math.Vec3{
		X: b0*p[0].X + b1*p[1].X + b2*p[2].X + b3*p[3].X,
		Y: b0*p[0].Y + b1*p[1].Y + b2*p[2].Y + b3*p[3].Y,
		Z: thirdsZ(p, t),
	}
}

// thirdsZ interpolates height linearly across the three control legs.
func thirdsZ(p []math.Vec3, t float64) float64 {
	leg := int(t * 3)
	if leg > 2 {
		leg = 2
	}
	local := t*3 - float64(leg)
	return p[leg].Z + (p[leg+1].Z-p[leg].Z)*local
}

// bezierHeading returns the direction of the tangent at t, falling back to
// the chord when the tangent vanishes.
func bezierHeading(p []math.Vec3, t float64) math.Heading {
	mt := 1 - t
	d := p[1].Sub(p[0]).Scale(3 * mt * mt).
		Add(p[2].Sub(p[1]).Scale(6 * mt * t)).
		Add(p[3].Sub(p[2]).Scale(3 * t * t))
	if d.X == 0 && d.Y == 0 {
		d = p[3].Sub(p[0])
	}
	return math.HeadingFromDirection(d.X, d.Y)
}
