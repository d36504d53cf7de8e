// Package config handles renderer configuration loading and saving.
package config

import (
	"errors"
	"fmt"

	"github.com/yangshun/cs4243-project/internal/engine/camera"
	"github.com/yangshun/cs4243-project/internal/engine/path"
	"github.com/yangshun/cs4243-project/pkg/math"
)

// Path kinds.
const (
	PathOrbit  = "orbit"
	PathBezier = "bezier"
	PathSweep  = "sweep"
)

// ErrUnknownPathKind is returned for a path kind other than orbit, bezier or sweep.
var ErrUnknownPathKind = errors.New("unknown path kind")

// Config holds all renderer configuration.
type Config struct {
	Camera  CameraConfig  `yaml:"camera"`
	Path    PathConfig    `yaml:"path"`
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// CameraConfig holds camera intrinsics.
type CameraConfig struct {
	Focal     float64 `yaml:"focal"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	U0        float64 `yaml:"u0"`
	V0        float64 `yaml:"v0"`
	BU        float64 `yaml:"bu"`
	BV        float64 `yaml:"bv"`
	DepthTest bool    `yaml:"depth_test"`
}

// PathConfig selects and parameterizes the camera trajectory.
type PathConfig struct {
	Kind   string       `yaml:"kind"`
	Orbit  OrbitConfig  `yaml:"orbit"`
	Bezier BezierConfig `yaml:"bezier"`
	Sweep  SweepConfig  `yaml:"sweep"`
}

// OrbitConfig holds orbit settings.
type OrbitConfig struct {
	Axis        math.Vec3 `yaml:"axis"`
	StepDegrees float64   `yaml:"step_degrees"`
	Start       math.Vec3 `yaml:"start"`
}

// BezierConfig holds flythrough settings. Headings are in degrees.
type BezierConfig struct {
	Points        []math.Vec3 `yaml:"points"`
	Segments      int         `yaml:"segments"`
	FollowHeading bool        `yaml:"follow_heading"`
	Heading       float64     `yaml:"heading"`
}

// SweepConfig holds straight-line sweep settings. Headings are in degrees.
type SweepConfig struct {
	From        math.Vec3 `yaml:"from"`
	To          math.Vec3 `yaml:"to"`
	FromHeading float64   `yaml:"from_heading"`
	ToHeading   float64   `yaml:"to_heading"`
	Frames      int       `yaml:"frames"`
}

// RenderConfig holds frame scheduling settings.
type RenderConfig struct {
	Workers int `yaml:"workers"` // 0 = one per CPU
}

// OutputConfig holds where frames are written.
type OutputConfig struct {
	Dir      string  `yaml:"dir"`
	Prefix   string  `yaml:"prefix"`
	PNG      bool    `yaml:"png"`
	GIF      string  `yaml:"gif"` // Empty = no preview
	FPS      int     `yaml:"fps"`
	GIFScale float64 `yaml:"gif_scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`    // debug, info, warn, error
	LogFile string `yaml:"log_file"` // Empty = console only
}

// Default returns configuration with sensible defaults.
func Default() *Config {
	orbit := path.DefaultOrbit()
	return &Config{
		Camera: CameraConfig{
			Focal:  200,
			Width:  camera.DefaultWidth,
			Height: camera.DefaultHeight,
			BU:     1,
			BV:     1,
		},
		Path: PathConfig{
			Kind: PathOrbit,
			Orbit: OrbitConfig{
				Axis:        orbit.Axis,
				StepDegrees: orbit.StepDegrees,
				Start:       orbit.Start,
			},
			Bezier: BezierConfig{
				Segments:      path.NumSegments,
				FollowHeading: true,
			},
			Sweep: SweepConfig{
				Frames: 30,
			},
		},
		Render: RenderConfig{
			Workers: 0,
		},
		Output: OutputConfig{
			Dir:      "frames",
			Prefix:   "frame",
			PNG:      true,
			FPS:      15,
			GIFScale: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Intrinsics converts the intrinsics to a camera configuration.
func (c CameraConfig) Intrinsics() camera.Config {
	return camera.Config{
		Focal:     c.Focal,
		Width:     c.Width,
		Height:    c.Height,
		U0:        c.U0,
		V0:        c.V0,
		BU:        c.BU,
		BV:        c.BV,
		DepthTest: c.DepthTest,
	}
}

// Samples generates the configured trajectory.
func (p PathConfig) Samples() ([]path.Sample, error) {
	switch p.Kind {
	case PathOrbit, "":
		params := path.DefaultOrbit()
		params.Axis = p.Orbit.Axis
		params.StepDegrees = p.Orbit.StepDegrees
		params.Start = p.Orbit.Start
		return path.Orbit(params)
	case PathBezier:
		return path.Flythrough(path.FlyParams{
			Points:        p.Bezier.Points,
			Segments:      p.Bezier.Segments,
			FollowHeading: p.Bezier.FollowHeading,
			Heading:       math.NewHeading(p.Bezier.Heading),
		})
	case PathSweep:
		s := p.Sweep
		return path.Sweep(s.From, s.To, math.NewHeading(s.FromHeading), math.NewHeading(s.ToHeading), s.Frames)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPathKind, p.Kind)
	}
}
