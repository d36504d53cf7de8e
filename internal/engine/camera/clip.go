package camera

import (
	gomath "math"

	"github.com/yangshun/cs4243-project/internal/engine/scene"
	"github.com/yangshun/cs4243-project/pkg/raster"
)

// ClipSurface returns the part of the surface's texture rectangle that lies
// in front of the camera, or nil when nothing does.
//
// A surface crossing the camera plane is cut along each texture axis
// independently, using the corner distances at the ends of that axis's
// first edge. The result is always axis-aligned, which is exact only when
// the crossing runs parallel to one of the axes.
func (c *Camera) ClipSurface(s *scene.Surface) *raster.Rect {
	var d [scene.CornerCount]float64
	front := 0
	for i, p := range s.Corners3D {
		d[i] = c.DistanceToImagePlane(p)
		if d[i] > 0 {
			front++
		}
	}

	tex := s.TextureRect()
	switch front {
	case 0:
		return nil
	case scene.CornerCount:
		if tex.Empty() {
			return nil
		}
		return &tex
	}

	x, w := clipAxis(tex.X, tex.W, d[0], d[1])
	y, h := clipAxis(tex.Y, tex.H, d[0], d[3])
	clip := raster.Rect{X: x, Y: y, W: w, H: h}
	if clip.Empty() {
		return nil
	}
	return &clip
}

// clipAxis cuts the interval [start, start+length] where the distance
// changes sign between its ends, keeping the non-negative side.
func clipAxis(start, length, dl, dr float64) (float64, float64) {
	if dl*dr >= 0 {
		return start, length
	}
	cut := gomath.Abs(dl) / (gomath.Abs(dl) + gomath.Abs(dr)) * length
	if dl >= 0 {
		return start, cut
	}
	return start + cut, length - cut
}
