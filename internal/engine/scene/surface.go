// Package scene holds the scene graph the camera renders: textured planar
// surfaces grouped into polyhedra, grouped into a space.
package scene

import (
	"errors"
	"fmt"

	"github.com/yangshun/cs4243-project/pkg/math"
	"github.com/yangshun/cs4243-project/pkg/raster"
)

// CornerCount is the number of corners every surface has.
const CornerCount = 4

var (
	// ErrCornerCount is returned when a surface is given other than 4 corners.
	ErrCornerCount = errors.New("surface needs exactly 4 3D and 4 2D corners")
	// ErrDegenerateSurface is returned when the corners do not span a plane.
	ErrDegenerateSurface = errors.New("surface corners do not span a plane")
)

// Surface is a textured planar quadrilateral.
//
// Corners3D and Corners2D are ordered consistently (clockwise starting at
// the surface origin, as seen from the front): Corners3D[i] is the world
// position of texture point Corners2D[i]. A surface is immutable once built
// and may be shared by concurrent renders.
type Surface struct {
	Name      string
	Image     *raster.Image
	Corners3D [CornerCount]math.Vec3
	Corners2D [CornerCount]math.Vec2

	// Normal is the unit normal of the front face.
	Normal math.Vec3
}

// NewSurface builds a surface from its texture and corner lists.
func NewSurface(name string, img *raster.Image, corners3d []math.Vec3, corners2d []math.Vec2) (*Surface, error) {
	if len(corners3d) != CornerCount || len(corners2d) != CornerCount {
		return nil, fmt.Errorf("%w: surface %q has %d/%d", ErrCornerCount, name, len(corners3d), len(corners2d))
	}

	s := &Surface{Name: name, Image: img}
	copy(s.Corners3D[:], corners3d)
	copy(s.Corners2D[:], corners2d)

	p0, p1, p3 := s.Corners3D[0], s.Corners3D[1], s.Corners3D[3]
	n := p3.Sub(p0).Cross(p1.Sub(p0))
	if n.Length() == 0 {
		return nil, fmt.Errorf("%w: surface %q", ErrDegenerateSurface, name)
	}
	s.Normal = n.Normalize()
	return s, nil
}

// DistanceToPoint returns the signed distance from the surface's plane to p,
// positive on the front side.
func (s *Surface) DistanceToPoint(p math.Vec3) float64 {
	return s.Normal.Dot(p.Sub(s.Corners3D[0]))
}

// Faces reports whether a viewer at eye sees the front of the surface.
func (s *Surface) Faces(eye math.Vec3) bool {
	return s.Normal.Dot(eye.Sub(s.Corners3D[0])) > 0
}

// TextureRect is the frame clipping works in: it starts at Corners2D[0],
// its width is the first edge and its height the last. Fractions of it map
// onto the actual corners through TexelAt and PointAt.
func (s *Surface) TextureRect() raster.Rect {
	o := s.Corners2D[0]
	return raster.Rect{
		X: o.X,
		Y: o.Y,
		W: s.Corners2D[1].Distance(o),
		H: s.Corners2D[3].Distance(o),
	}
}

// PointAt returns the world point at fraction u along the first edge
// (corner 0 to 1) and v along the last edge (corner 0 to 3).
func (s *Surface) PointAt(u, v float64) math.Vec3 {
	c := s.Corners3D
	top := c[0].Lerp(c[1], u)
	bottom := c[3].Lerp(c[2], u)
	return top.Lerp(bottom, v)
}

// TexelAt returns the texture point at fraction u along the first edge and
// v along the last edge, interpolating the 2D corners the same way PointAt
// interpolates the 3D ones.
func (s *Surface) TexelAt(u, v float64) math.Vec2 {
	c := s.Corners2D
	top := c[0].Add(c[1].Sub(c[0]).Scale(u))
	bottom := c[3].Add(c[2].Sub(c[3]).Scale(u))
	return top.Add(bottom.Sub(top).Scale(v))
}
