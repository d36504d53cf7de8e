package room

import (
	"errors"
	"fmt"

	"github.com/yangshun/cs4243-project/internal/engine/scene"
	"github.com/yangshun/cs4243-project/pkg/math"
	"github.com/yangshun/cs4243-project/pkg/raster"
)

// Face identifies a cube face.
type Face int

// Cube faces, in the order they are added to the polyhedron.
const (
	Front Face = iota
	LeftFace
	RightFace
	TopFace
	BottomFace
	Back
)

// ErrUnknownFace is returned for an unrecognized face name.
var ErrUnknownFace = errors.New("unknown cube face")

var faceNames = [...]string{"front", "left", "right", "top", "bottom", "back"}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return fmt.Sprintf("face(%d)", int(f))
	}
	return faceNames[f]
}

// ParseFace returns the face with the given name.
func ParseFace(name string) (Face, error) {
	for i, n := range faceNames {
		if n == name {
			return Face(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFace, name)
}

// Cube builds a cube of the given edge length centred on the origin, with
// outward-facing surfaces for every face that has a texture. The front
// face looks towards -Y.
func Cube(size float64, textures map[Face]*raster.Image) (*scene.Polyhedron, error) {
	if !(size > 0) {
		return nil, fmt.Errorf("%w: cube size %v", ErrDimensions, size)
	}
	s := size / 2
	p1 := math.Vec3{X: -s, Y: -s, Z: -s}
	p2 := math.Vec3{X: s, Y: -s, Z: -s}
	p3 := math.Vec3{X: s, Y: -s, Z: s}
	p4 := math.Vec3{X: -s, Y: -s, Z: s}
	p5 := math.Vec3{X: -s, Y: s, Z: -s}
	p6 := math.Vec3{X: s, Y: s, Z: -s}
	p7 := math.Vec3{X: s, Y: s, Z: s}
	p8 := math.Vec3{X: -s, Y: s, Z: s}

	faces := [...][]math.Vec3{
		Front:      {p4, p3, p2, p1},
		LeftFace:   {p8, p4, p1, p5},
		RightFace:  {p3, p7, p6, p2},
		TopFace:    {p8, p7, p3, p4},
		BottomFace: {p1, p2, p6, p5},
		Back:       {p7, p8, p5, p6},
	}

	poly := scene.NewPolyhedron()
	for f, corners := range faces {
		img := textures[Face(f)]
		if img == nil {
			continue
		}
		surface, err := scene.NewSurface(Face(f).String(), img, corners, imageCorners(img))
		if err != nil {
			return nil, fmt.Errorf("building %s face: %w", Face(f), err)
		}
		poly.Surfaces = append(poly.Surfaces, surface)
	}
	if len(poly.Surfaces) == 0 {
		return nil, fmt.Errorf("%w: cube has no textured faces", ErrMissingTexture)
	}
	return poly, nil
}
