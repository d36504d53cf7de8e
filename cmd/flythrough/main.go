// flythrough renders camera flythroughs of textured planar scenes.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/yangshun/cs4243-project/internal/config"
	"github.com/yangshun/cs4243-project/internal/engine/camera"
	"github.com/yangshun/cs4243-project/internal/engine/path"
	"github.com/yangshun/cs4243-project/internal/engine/room"
	"github.com/yangshun/cs4243-project/internal/engine/scene"
	"github.com/yangshun/cs4243-project/internal/engine/texture"
	"github.com/yangshun/cs4243-project/internal/logger"
	"github.com/yangshun/cs4243-project/internal/render"
	"github.com/yangshun/cs4243-project/pkg/math"
	"github.com/yangshun/cs4243-project/pkg/raster"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "render":
		cmdRender(args)
	case "cube":
		cmdCube(args)
	case "extract", "x":
		cmdExtract(args)
	case "walls":
		cmdWalls(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`flythrough - render camera paths through textured scenes

Usage:
  flythrough <command> [options]

Commands:
  render <scene.yaml>                      Render the configured path through a scene
  cube [-size N] <face=image>...           Orbit a textured cube
  extract [-res R -focal F] <photo> <x,y[,depth]> x4 <out.png>
                                           Straighten one quadrilateral of a photo
  walls -tl x,y -br x,y -vp x,y <photo> <dir>
                                           Cut the five room walls out of a photo
  config [-o file]                         Save the effective configuration

Shared render options:
  -config <file>   Config file (default ./flythrough.yaml)
  -path <kind>     orbit, bezier or sweep
  -out <dir>       PNG frame directory
  -gif <file>      Animated GIF preview
  -depth-test      Composite with a depth buffer
  -debug           Debug logging

Examples:
  flythrough render -gif tour.gif scenes/corridor.yaml
  flythrough cube -size 100 front=f.png back=b.png left=l.png right=r.png top=t.png bottom=u.png
  flythrough extract photo.jpg 10,20 200,15 210,180 5,170 wall.png
  flythrough walls -tl 300,120 -br 440,190 -vp 370,150 corridor.jpg walls/
  flythrough config -width 1280 -height 720 -depth-test`)
}

// setup parses the shared flags, loads configuration and starts the logger.
func setup(fs *flag.FlagSet, args []string) *config.Config {
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)
	return cfg
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	cfg := setup(fs, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: flythrough render [options] <scene.yaml>")
		os.Exit(1)
	}

	space, err := config.LoadScene(fs.Arg(0), logger.Named("scene"))
	if err != nil {
		logger.Fatal("failed to load scene", zap.Error(err))
	}
	if err := run(cfg, space); err != nil {
		logger.Fatal("render failed", zap.Error(err))
	}
}

// cmdConfig writes the merged defaults, config file and flags back out,
// to the user config directory unless -o is given.
func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	out := fs.String("o", "", "Write to this file instead of the user config directory")
	cfg := setup(fs, args)
	defer logger.Sync()

	target := *out
	var err error
	if target == "" {
		target = filepath.Join(config.ConfigDir(), "config.yaml")
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(target)
	}
	if err != nil {
		logger.Fatal("failed to save config", zap.Error(err))
	}
	fmt.Println(target)
}

func cmdCube(args []string) {
	fs := flag.NewFlagSet("cube", flag.ExitOnError)
	size := fs.Float64("size", 100, "Cube edge length")
	cfg := setup(fs, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: flythrough cube [-size N] <face=image>...")
		os.Exit(1)
	}

	textures := make(map[room.Face]*raster.Image)
	for _, arg := range fs.Args() {
		name, file, ok := strings.Cut(arg, "=")
		if !ok {
			logger.Fatal("expected face=image", zap.String("arg", arg))
		}
		face, err := room.ParseFace(name)
		if err != nil {
			logger.Fatal("bad face", zap.Error(err))
		}
		img, err := texture.Load(file)
		if err != nil {
			logger.Fatal("failed to load texture", zap.String("face", name), zap.Error(err))
		}
		textures[face] = img
	}

	cube, err := room.Cube(*size, textures)
	if err != nil {
		logger.Fatal("failed to build cube", zap.Error(err))
	}
	if err := run(cfg, scene.NewSpace(cube)); err != nil {
		logger.Fatal("render failed", zap.Error(err))
	}
}

// run renders the configured path through space into the configured sinks.
func run(cfg *config.Config, space *scene.Space) error {
	cam, err := camera.New(cfg.Camera.Intrinsics(), camera.WithLogger(logger.Named("camera")))
	if err != nil {
		return err
	}
	samples, err := cfg.Path.Samples()
	if err != nil {
		return fmt.Errorf("building %s path: %w", cfg.Path.Kind, err)
	}

	var sinks render.MultiSink
	if cfg.Output.PNG {
		seq, err := render.NewPNGSequence(cfg.Output.Dir, cfg.Output.Prefix)
		if err != nil {
			return err
		}
		sinks = append(sinks, seq)
	}
	if cfg.Output.GIF != "" {
		sinks = append(sinks, render.NewGIF(cfg.Output.GIF, cfg.Output.FPS, cfg.Output.GIFScale))
	}
	if len(sinks) == 0 {
		return fmt.Errorf("no output configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("rendering",
		zap.String("path", cfg.Path.Kind),
		zap.Int("frames", len(samples)),
		zap.Int("surfaces", space.SurfaceCount()))

	r := render.New(cam,
		render.WithWorkers(cfg.Render.Workers),
		render.WithLogger(logger.Named("render")))
	if err := r.RenderTo(ctx, space, path.Poses(samples), sinks); err != nil {
		_ = sinks.Close()
		return err
	}
	return sinks.Close()
}

func cmdExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	res := fs.Float64("res", 0, "Pixels per world unit (0 = size from pixel edges)")
	focal := fs.Float64("focal", 0, "Focal length in pixels, used with -res")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(args)

	if fs.NArg() != 6 {
		fmt.Fprintln(os.Stderr, "Usage: flythrough extract [-res R -focal F] <photo> <x,y[,depth]> x4 <out.png>")
		os.Exit(1)
	}
	initLogger(*debug)
	defer logger.Sync()

	photo, err := texture.Load(fs.Arg(0))
	if err != nil {
		logger.Fatal("failed to load photo", zap.Error(err))
	}

	corners := make([]texture.Corner, 4)
	for i := range corners {
		c, err := parseCorner(fs.Arg(i + 1))
		if err != nil {
			logger.Fatal("bad corner", zap.Error(err))
		}
		corners[i] = c
	}

	extractor := texture.NewExtractor(photo)
	if *res > 0 {
		extractor, err = texture.NewCalibratedExtractor(photo, *res, *focal)
		if err != nil {
			logger.Fatal("bad calibration", zap.Error(err))
		}
	}
	tex, err := extractor.ExtractTexture(corners)
	if err != nil {
		logger.Fatal("extraction failed", zap.Error(err))
	}
	if err := writePNG(fs.Arg(5), tex); err != nil {
		logger.Fatal("failed to write texture", zap.Error(err))
	}
	logger.Info("texture extracted",
		zap.String("out", fs.Arg(5)),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height))
}

func cmdWalls(args []string) {
	fs := flag.NewFlagSet("walls", flag.ExitOnError)
	tl := fs.String("tl", "", "Top-left corner of the far wall (x,y)")
	br := fs.String("br", "", "Bottom-right corner of the far wall (x,y)")
	vp := fs.String("vp", "", "Vanishing point (x,y)")
	d := room.DefaultDimensions()
	fs.Float64Var(&d.Width, "width", d.Width, "Room width")
	fs.Float64Var(&d.Height, "height", d.Height, "Room height")
	fs.Float64Var(&d.Depth, "depth", d.Depth, "Room depth")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(args)

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: flythrough walls -tl x,y -br x,y -vp x,y <photo> <dir>")
		os.Exit(1)
	}
	initLogger(*debug)
	defer logger.Sync()

	var layout room.Layout
	for _, p := range []struct {
		arg string
		dst *math.Vec2
	}{{*tl, &layout.InnerTopLeft}, {*br, &layout.InnerBottomRight}, {*vp, &layout.VanishingPoint}} {
		c, err := parseCorner(p.arg)
		if err != nil {
			logger.Fatal("bad layout point", zap.Error(err))
		}
		*p.dst = c.Pixel
	}

	photo, err := texture.Load(fs.Arg(0))
	if err != nil {
		logger.Fatal("failed to load photo", zap.Error(err))
	}
	_, textures, err := room.BuildFromPhoto(photo, d, layout, logger.Named("room"))
	if err != nil {
		logger.Fatal("failed to cut walls", zap.Error(err))
	}

	dir := fs.Arg(1)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Fatal("failed to create output directory", zap.Error(err))
	}
	for _, w := range room.Walls {
		out := filepath.Join(dir, w.String()+".png")
		if err := writePNG(out, textures[w]); err != nil {
			logger.Fatal("failed to write wall", zap.Stringer("wall", w), zap.Error(err))
		}
		fmt.Println(out)
	}
}

func initLogger(debug bool) {
	level := "info"
	if debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
}

// parseCorner parses "x,y" or "x,y,depth".
func parseCorner(s string) (texture.Corner, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return texture.Corner{}, fmt.Errorf("corner %q: want x,y or x,y,depth", s)
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return texture.Corner{}, fmt.Errorf("corner %q: %w", s, err)
		}
		vals[i] = v
	}
	c := texture.Corner{Pixel: math.Vec2{X: vals[0], Y: vals[1]}}
	if len(vals) == 3 {
		c.Depth = vals[2]
	}
	return c, nil
}

func writePNG(path string, img *raster.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img.RGBA())
}
