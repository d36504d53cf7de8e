package path

import (
	"fmt"

	"github.com/yangshun/cs4243-project/pkg/math"
)

// Smooth expands a sampled path so the camera never turns more than one
// degree between frames. Between consecutive samples the heading steps a
// whole degree at a time along the shorter arc while the position is held
// at the later sample. The final sample is kept as is.
func Smooth(positions []math.Vec3, headings []math.Heading) ([]Sample, error) {
	if len(positions) != len(headings) {
		return nil, fmt.Errorf("%w: %d positions, %d headings", ErrLengthMismatch, len(positions), len(headings))
	}
	if len(positions) == 0 {
		return nil, nil
	}

	var samples []Sample
	for i := 1; i < len(positions); i++ {
		for _, h := range headings[i-1].Steps(headings[i]) {
			samples = append(samples, Sample{
				Position:    positions[i],
				Orientation: OrientationFromHeading(h),
			})
		}
	}
	last := len(positions) - 1
	samples = append(samples, Sample{
		Position:    positions[last],
		Orientation: OrientationFromHeading(headings[last]),
	})
	return samples, nil
}
