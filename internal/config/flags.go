package config

import "flag"

// Flags holds command-line overrides. Zero values leave the loaded
// configuration untouched.
type Flags struct {
	Config    string
	Debug     bool
	Width     int
	Height    int
	Focal     float64
	DepthTest bool
	Workers   int
	Output    string
	GIF       string
	Path      string
}

// RegisterFlags registers the shared flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Frame width")
	fs.IntVar(&f.Height, "height", 0, "Frame height")
	fs.Float64Var(&f.Focal, "focal", 0, "Focal length")
	fs.BoolVar(&f.DepthTest, "depth-test", false, "Composite with a depth buffer")
	fs.IntVar(&f.Workers, "workers", 0, "Concurrent frame workers")
	fs.StringVar(&f.Output, "out", "", "Output directory for PNG frames")
	fs.StringVar(&f.GIF, "gif", "", "Write an animated GIF preview to this path")
	fs.StringVar(&f.Path, "path", "", "Path kind: orbit, bezier or sweep")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Width > 0 {
		cfg.Camera.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Camera.Height = f.Height
	}
	if f.Focal > 0 {
		cfg.Camera.Focal = f.Focal
	}
	if f.DepthTest {
		cfg.Camera.DepthTest = true
	}
	if f.Workers > 0 {
		cfg.Render.Workers = f.Workers
	}
	if f.Output != "" {
		cfg.Output.Dir = f.Output
	}
	if f.GIF != "" {
		cfg.Output.GIF = f.GIF
	}
	if f.Path != "" {
		cfg.Path.Kind = f.Path
	}
}
