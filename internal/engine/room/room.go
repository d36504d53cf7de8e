// Package room builds scenes from photos: a box-shaped room whose five
// walls come from one perspective photo, and a textured cube.
package room

import (
	"errors"
	"fmt"

	"github.com/yangshun/cs4243-project/internal/engine/scene"
	"github.com/yangshun/cs4243-project/pkg/math"
	"github.com/yangshun/cs4243-project/pkg/raster"
)

// Wall identifies one face of the room box.
type Wall int

// Room walls, in the order they are added to a space.
const (
	Center Wall = iota
	Right
	Left
	Top
	Bottom
)

// Walls lists every wall in build order.
var Walls = []Wall{Center, Right, Left, Top, Bottom}

var wallNames = [...]string{"center", "right", "left", "top", "bottom"}

func (w Wall) String() string {
	if w < 0 || int(w) >= len(wallNames) {
		return fmt.Sprintf("wall(%d)", int(w))
	}
	return wallNames[w]
}

// ParseWall returns the wall with the given name.
func ParseWall(name string) (Wall, error) {
	for i, n := range wallNames {
		if n == name {
			return Wall(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWall, name)
}

var (
	// ErrUnknownWall is returned for an unrecognized wall name.
	ErrUnknownWall = errors.New("unknown wall")
	// ErrMissingTexture is returned when a wall has no texture.
	ErrMissingTexture = errors.New("missing wall texture")
	// ErrDimensions is returned for a non-positive room size.
	ErrDimensions = errors.New("room dimensions must be positive")
)

// Dimensions is the size of the room box in world units.
type Dimensions struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
}

// DefaultDimensions is the corridor the sample photos were taken in.
func DefaultDimensions() Dimensions {
	return Dimensions{Width: 741, Height: 304, Depth: 2095}
}

// Validate checks that every side is positive.
func (d Dimensions) Validate() error {
	if !(d.Width > 0 && d.Height > 0 && d.Depth > 0) {
		return fmt.Errorf("%w: %+v", ErrDimensions, d)
	}
	return nil
}

// Corners3D returns the world corners of a wall, clockwise from the
// top-left as seen from inside the room. The far wall stands in the plane
// y=0, the floor is z=0 and the room extends towards -Y.
func (d Dimensions) Corners3D(w Wall) [4]math.Vec3 {
	hw, h, dp := d.Width/2, d.Height, d.Depth
	switch w {
	case Right:
		return [4]math.Vec3{{X: hw, Z: h}, {X: hw, Y: -dp, Z: h}, {X: hw, Y: -dp}, {X: hw}}
	case Left:
		return [4]math.Vec3{{X: -hw, Y: -dp, Z: h}, {X: -hw, Z: h}, {X: -hw}, {X: -hw, Y: -dp}}
	case Top:
		return [4]math.Vec3{{X: -hw, Y: -dp, Z: h}, {X: hw, Y: -dp, Z: h}, {X: hw, Z: h}, {X: -hw, Z: h}}
	case Bottom:
		return [4]math.Vec3{{X: -hw}, {X: hw}, {X: hw, Y: -dp}, {X: -hw, Y: -dp}}
	default:
		return [4]math.Vec3{{X: -hw, Z: h}, {X: hw, Z: h}, {X: hw}, {X: -hw}}
	}
}

// Box builds a space with one single-surface model per wall. Each texture
// is stretched over its whole wall.
func Box(d Dimensions, textures map[Wall]*raster.Image) (*scene.Space, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	space := scene.NewSpace()
	for _, w := range Walls {
		img := textures[w]
		if img == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingTexture, w)
		}
		c := d.Corners3D(w)
		s, err := scene.NewSurface(w.String(), img, c[:], imageCorners(img))
		if err != nil {
			return nil, fmt.Errorf("building %s wall: %w", w, err)
		}
		if err := space.AddModel(scene.NewPolyhedron(s)); err != nil {
			return nil, err
		}
	}
	return space, nil
}

// imageCorners returns the corners of the whole image, clockwise from the
// top-left.
func imageCorners(img *raster.Image) []math.Vec2 {
	r := raster.Rect{W: float64(img.Width), H: float64(img.Height)}.Corners()
	return r[:]
}
