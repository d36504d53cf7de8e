// Package camera implements the pinhole camera that projects textured
// surfaces of a scene onto its image plane.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/yangshun/cs4243-project/pkg/math"
	"github.com/yangshun/cs4243-project/pkg/raster"
)

// Default image plane size in pixels.
const (
	DefaultWidth  = 741
	DefaultHeight = 304
)

var (
	// ErrInvalidFocal is returned for a zero, negative or non-finite focal length.
	ErrInvalidFocal = errors.New("focal length must be positive")
	// ErrInvalidSize is returned for a non-positive image plane.
	ErrInvalidSize = errors.New("image plane must be at least 1x1")
	// ErrInvalidOrientation is returned when a pose's orientation is not a rotation.
	ErrInvalidOrientation = errors.New("orientation is not orthonormal")
)

// orientationTolerance bounds how far a supplied orientation may drift from
// orthonormal before it is rejected.
const orientationTolerance = 1e-6

// Config holds the intrinsic parameters of a camera.
type Config struct {
	Focal  float64
	Width  int
	Height int

	// U0, V0 offset the principal point from the image center.
	U0, V0 float64
	// BU, BV scale pixels horizontally and vertically.
	BU, BV float64

	// DepthTest composites with a per-pixel depth buffer instead of OR.
	DepthTest bool
}

// DefaultConfig returns the intrinsics used by the photo pipeline.
func DefaultConfig(focal float64) Config {
	return Config{
		Focal:  focal,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		BU:     1,
		BV:     1,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if !(c.Focal > 0) || gomath.IsInf(c.Focal, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFocal, c.Focal)
	}
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	return nil
}

// Pose is the extrinsic state of a camera. Orientation stores the
// horizontal, vertical and optical axes as its columns.
type Pose struct {
	Position    math.Vec3
	Orientation math.Mat3
}

// DefaultPose sits at the origin looking along +Y with image-down pointing
// to world-down.
func DefaultPose() Pose {
	return Pose{
		Orientation: math.FromColumns(
			math.Vec3{X: 1},
			math.Vec3{Z: -1},
			math.Vec3{Y: 1},
		),
	}
}

// Validate checks that the orientation is a proper rotation.
func (p Pose) Validate() error {
	if !p.Orientation.IsOrthonormal(orientationTolerance) {
		return ErrInvalidOrientation
	}
	return nil
}

// Warper computes the homography between two quadrilaterals and resamples a
// texture region through it.
type Warper interface {
	Homography(src, dst [4]math.Vec2) (raster.Homography, error)
	Warp(src *raster.Image, region raster.Quad, h raster.Homography, width, height int) (*raster.Image, error)
}

// Camera is a pinhole camera. It is a small value: WithPose returns a copy,
// so frames rendered in parallel never share mutable state.
type Camera struct {
	cfg    Config
	pose   Pose
	warper Warper
	log    *zap.Logger
}

// Option customizes a camera.
type Option func(*Camera)

// WithWarper replaces the default perspective warper.
func WithWarper(w Warper) Option {
	return func(c *Camera) {
		if w != nil {
			c.warper = w
		}
	}
}

// WithLogger sets the logger used for per-surface diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Camera) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a camera at the default pose.
func New(cfg Config, opts ...Option) (*Camera, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Camera{
		cfg:    cfg,
		pose:   DefaultPose(),
		warper: raster.PerspectiveWarper{},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithPose returns a copy of the camera placed at p.
func (c *Camera) WithPose(p Pose) *Camera {
	cp := *c
	cp.pose = p
	return &cp
}

// Config returns the camera intrinsics.
func (c *Camera) Config() Config { return c.cfg }

// Pose returns the camera extrinsics.
func (c *Camera) Pose() Pose { return c.pose }

// Position returns the optical center in world space.
func (c *Camera) Position() math.Vec3 { return c.pose.Position }

// HorizontalAxis returns the image-right direction.
func (c *Camera) HorizontalAxis() math.Vec3 { return c.pose.Orientation.Col(0) }

// VerticalAxis returns the image-down direction.
func (c *Camera) VerticalAxis() math.Vec3 { return c.pose.Orientation.Col(1) }

// OpticalAxis returns the viewing direction.
func (c *Camera) OpticalAxis() math.Vec3 { return c.pose.Orientation.Col(2) }

// PointProjection projects a world point onto the image plane. The result
// is relative to the image center. A point exactly on the camera plane is
// divided by the smallest positive float instead of zero.
func (c *Camera) PointProjection(p math.Vec3) (u, v float64) {
	d := p.Sub(c.pose.Position)
	depth := d.Dot(c.OpticalAxis())
	if depth == 0 {
		depth = gomath.SmallestNonzeroFloat64
	}
	u = c.cfg.U0 + c.cfg.Focal*d.Dot(c.HorizontalAxis())*c.cfg.BU/depth
	v = c.cfg.V0 + c.cfg.Focal*d.Dot(c.VerticalAxis())*c.cfg.BV/depth
	return u, v
}

// PixelProjection projects a world point to pixel coordinates.
func (c *Camera) PixelProjection(p math.Vec3) math.Vec2 {
	u, v := c.PointProjection(p)
	return math.Vec2{
		X: u + float64(c.cfg.Width)/2,
		Y: v + float64(c.cfg.Height)/2,
	}
}

// DistanceToImagePlane returns the signed distance of p along the optical
// axis: positive in front, negative behind.
func (c *Camera) DistanceToImagePlane(p math.Vec3) float64 {
	return p.Sub(c.pose.Position).Dot(c.OpticalAxis())
}

// rayDirection returns the world direction through pixel (x, y), scaled so
// its optical component is 1.
func (c *Camera) rayDirection(x, y float64) math.Vec3 {
	du := (x - float64(c.cfg.Width)/2 - c.cfg.U0) / (c.cfg.Focal * c.cfg.BU)
	dv := (y - float64(c.cfg.Height)/2 - c.cfg.V0) / (c.cfg.Focal * c.cfg.BV)
	return c.HorizontalAxis().Scale(du).
		Add(c.VerticalAxis().Scale(dv)).
		Add(c.OpticalAxis())
}
