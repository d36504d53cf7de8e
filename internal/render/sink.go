package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	xdraw "golang.org/x/image/draw"

	"github.com/yangshun/cs4243-project/pkg/raster"
)

// FrameSink consumes rendered frames in order.
type FrameSink interface {
	WriteFrame(index int, frame *raster.Image) error
	Close() error
}

// PNGSequence writes each frame to <dir>/<prefix>_<index>.png.
type PNGSequence struct {
	dir    string
	prefix string
}

// NewPNGSequence creates the output directory if needed.
func NewPNGSequence(dir, prefix string) (*PNGSequence, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	return &PNGSequence{dir: dir, prefix: prefix}, nil
}

// Filename returns the path of frame index.
func (s *PNGSequence) Filename(index int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%04d.png", s.prefix, index))
}

// WriteFrame encodes one frame.
func (s *PNGSequence) WriteFrame(index int, frame *raster.Image) (err error) {
	file, err := os.Create(s.Filename(index))
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() { err = multierr.Append(err, file.Close()) }()

	if err := png.Encode(file, frame.RGBA()); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// Close is a no-op; every frame is flushed as it is written.
func (s *PNGSequence) Close() error { return nil }

// GIF collects frames into an animated preview written on Close.
type GIF struct {
	path  string
	delay int
	scale float64
	anim  gif.GIF
}

// NewGIF creates a preview at path playing at fps frames per second, with
// every frame scaled by scale (1 keeps the rendered size).
func NewGIF(path string, fps int, scale float64) *GIF {
	if fps < 1 {
		fps = 1
	}
	if !(scale > 0) {
		scale = 1
	}
	return &GIF{path: path, delay: 100 / fps, scale: scale}
}

// WriteFrame quantizes a frame to the web-safe palette.
func (g *GIF) WriteFrame(_ int, frame *raster.Image) error {
	if g.scale != 1 {
		w := max(1, int(float64(frame.Width)*g.scale))
		h := max(1, int(float64(frame.Height)*g.scale))
		frame = frame.Resize(w, h)
	}
	src := frame.RGBA()
	dst := image.NewPaletted(src.Bounds(), palette.WebSafe)
	xdraw.FloydSteinberg.Draw(dst, dst.Bounds(), src, image.Point{})
	g.anim.Image = append(g.anim.Image, dst)
	g.anim.Delay = append(g.anim.Delay, g.delay)
	return nil
}

// Frames returns the number of frames collected so far.
func (g *GIF) Frames() int { return len(g.anim.Image) }

// Close encodes the animation.
func (g *GIF) Close() (err error) {
	if len(g.anim.Image) == 0 {
		return nil
	}
	if dir := filepath.Dir(g.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	file, err := os.Create(g.path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() { err = multierr.Append(err, file.Close()) }()

	if err := gif.EncodeAll(file, &g.anim); err != nil {
		return fmt.Errorf("encoding GIF: %w", err)
	}
	return nil
}

// MultiSink fans frames out to several sinks.
type MultiSink []FrameSink

// WriteFrame writes to every sink, collecting all failures.
func (m MultiSink) WriteFrame(index int, frame *raster.Image) error {
	var errs error
	for _, s := range m {
		errs = multierr.Append(errs, s.WriteFrame(index, frame))
	}
	return errs
}

// Close closes every sink, collecting all failures.
func (m MultiSink) Close() error {
	var errs error
	for _, s := range m {
		errs = multierr.Append(errs, s.Close())
	}
	return errs
}
