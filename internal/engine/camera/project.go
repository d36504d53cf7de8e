package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yangshun/cs4243-project/internal/engine/scene"
	"github.com/yangshun/cs4243-project/pkg/math"
	"github.com/yangshun/cs4243-project/pkg/raster"
)

var (
	// ErrNilSurface is returned when asked to project a nil surface.
	ErrNilSurface = errors.New("nil surface")
	// ErrNoTexture is returned for a surface without an image.
	ErrNoTexture = errors.New("surface has no texture")
)

// clipMargin is the fraction of a texture edge pulled back from a cut before
// projecting, keeping the cut edge off the camera plane.
const clipMargin = 1e-3

// ProjectSurface renders one surface into a black frame of the camera's
// size. ok is false when the surface faces away or lies behind the camera;
// that is not an error.
func (c *Camera) ProjectSurface(s *scene.Surface) (img *raster.Image, ok bool, err error) {
	if s == nil {
		return nil, false, ErrNilSurface
	}
	if s.Image == nil {
		return nil, false, fmt.Errorf("surface %q: %w", s.Name, ErrNoTexture)
	}
	if !s.Faces(c.pose.Position) {
		return nil, false, nil
	}
	clip := c.ClipSurface(s)
	if clip == nil {
		return nil, false, nil
	}

	region, corners := projectionQuad(s, *clip)
	var dst [scene.CornerCount]math.Vec2
	for i, p := range corners {
		dst[i] = c.PixelProjection(p)
	}

	h, err := c.warper.Homography(region, dst)
	if err != nil {
		return nil, false, fmt.Errorf("surface %q: %w", s.Name, err)
	}
	img, err = c.warper.Warp(s.Image, region, h, c.cfg.Width, c.cfg.Height)
	if err != nil {
		return nil, false, fmt.Errorf("surface %q: %w", s.Name, err)
	}
	return img, true, nil
}

// projectionQuad returns the texture quadrilateral to warp and the world
// corners it maps to, both taken at the same fractions of the surface. Cut
// sides are pulled back by clipMargin.
func projectionQuad(s *scene.Surface, clip raster.Rect) (raster.Quad, [scene.CornerCount]math.Vec3) {
	tex := s.TextureRect()
	region := clip

	mx, my := clipMargin*tex.W, clipMargin*tex.H
	if region.X > tex.X {
		region.X += mx
		region.W -= mx
	}
	if region.X+region.W < tex.X+tex.W-mx {
		region.W -= mx
	}
	if region.Y > tex.Y {
		region.Y += my
		region.H -= my
	}
	if region.Y+region.H < tex.Y+tex.H-my {
		region.H -= my
	}
	if region.Empty() {
		region = clip
	}

	u0 := (region.X - tex.X) / tex.W
	u1 := (region.X + region.W - tex.X) / tex.W
	v0 := (region.Y - tex.Y) / tex.H
	v1 := (region.Y + region.H - tex.Y) / tex.H

	texels := raster.Quad{
		s.TexelAt(u0, v0),
		s.TexelAt(u1, v0),
		s.TexelAt(u1, v1),
		s.TexelAt(u0, v1),
	}
	return texels, [scene.CornerCount]math.Vec3{
		s.PointAt(u0, v0),
		s.PointAt(u1, v0),
		s.PointAt(u1, v1),
		s.PointAt(u0, v1),
	}
}

// ProjectSurfaces composites surfaces in order into one frame. A surface
// that fails to project is logged and skipped; the failures are returned
// together alongside the frame.
func (c *Camera) ProjectSurfaces(surfaces []*scene.Surface) (*raster.Image, error) {
	frame := raster.New(c.cfg.Width, c.cfg.Height)

	var depth []float64
	if c.cfg.DepthTest {
		depth = make([]float64, c.cfg.Width*c.cfg.Height)
		for i := range depth {
			depth[i] = gomath.Inf(1)
		}
	}

	var errs error
	for i, s := range surfaces {
		img, ok, err := c.ProjectSurface(s)
		if err != nil {
			c.log.Warn("surface projection failed", zap.Int("index", i), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		if !ok {
			continue
		}
		if depth != nil {
			c.compositeDepth(frame, depth, s, img)
			continue
		}
		if err := frame.Or(img); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("surface %q: %w", s.Name, err))
		}
	}
	return frame, errs
}

// compositeDepth writes every covered pixel of img whose ray hits the
// surface's plane nearer than anything drawn so far.
func (c *Camera) compositeDepth(frame *raster.Image, depth []float64, s *scene.Surface, img *raster.Image) {
	toPlane := s.Corners3D[0].Sub(c.pose.Position)
	num := s.Normal.Dot(toPlane)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if !img.Covered(x, y) {
				continue
			}
			den := s.Normal.Dot(c.rayDirection(float64(x), float64(y)))
			if den == 0 {
				continue
			}
			t := num / den
			i := y*img.Width + x
			if t <= 0 || t >= depth[i] {
				continue
			}
			depth[i] = t
			frame.Set(x, y, img.At(x, y))
		}
	}
}

// ProjectPolyhedron composites a polyhedron's surfaces.
func (c *Camera) ProjectPolyhedron(p *scene.Polyhedron) (*raster.Image, error) {
	if p == nil {
		return raster.New(c.cfg.Width, c.cfg.Height), nil
	}
	return c.ProjectSurfaces(p.Surfaces)
}

// ProjectSpace composites every surface of a space.
func (c *Camera) ProjectSpace(s *scene.Space) (*raster.Image, error) {
	if s == nil {
		return raster.New(c.cfg.Width, c.cfg.Height), nil
	}
	return c.ProjectSurfaces(s.Surfaces())
}
