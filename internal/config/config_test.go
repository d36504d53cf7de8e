package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/yangshun/cs4243-project/internal/engine/camera"
	"github.com/yangshun/cs4243-project/internal/engine/path"
	"github.com/yangshun/cs4243-project/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test camera defaults
	if cfg.Camera.Width != camera.DefaultWidth {
		t.Errorf("expected width %d, got %d", camera.DefaultWidth, cfg.Camera.Width)
	}
	if cfg.Camera.Height != camera.DefaultHeight {
		t.Errorf("expected height %d, got %d", camera.DefaultHeight, cfg.Camera.Height)
	}
	if cfg.Camera.Focal != 200 {
		t.Errorf("expected focal 200, got %f", cfg.Camera.Focal)
	}
	if cfg.Camera.DepthTest {
		t.Error("expected depth test to be off by default")
	}
	if err := cfg.Camera.Intrinsics().Validate(); err != nil {
		t.Errorf("default intrinsics invalid: %v", err)
	}

	// Test path defaults
	if cfg.Path.Kind != PathOrbit {
		t.Errorf("expected path kind orbit, got %s", cfg.Path.Kind)
	}
	if cfg.Path.Orbit.StepDegrees != 10 {
		t.Errorf("expected orbit step 10, got %f", cfg.Path.Orbit.StepDegrees)
	}
	if cfg.Path.Bezier.Segments != path.NumSegments {
		t.Errorf("expected %d segments, got %d", path.NumSegments, cfg.Path.Bezier.Segments)
	}

	// Test output defaults
	if cfg.Output.Dir != "frames" {
		t.Errorf("expected output dir 'frames', got %s", cfg.Output.Dir)
	}
	if !cfg.Output.PNG {
		t.Error("expected png output to be enabled by default")
	}
	if cfg.Output.GIF != "" {
		t.Errorf("expected no gif by default, got %s", cfg.Output.GIF)
	}
	if cfg.Output.FPS != 15 {
		t.Errorf("expected fps 15, got %d", cfg.Output.FPS)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
camera:
  focal: 500
  width: 320
  height: 240
  u0: 3
  depth_test: true

path:
  kind: bezier
  bezier:
    points:
      - {x: 0, y: 0, z: 10}
      - {x: 10, y: 0, z: 10}
      - {x: 20, y: 10, z: 10}
      - {x: 30, y: 10, z: 10}
    segments: 8
    follow_heading: false
    heading: 90

render:
  workers: 3

output:
  dir: "out"
  gif: "preview.gif"
  fps: 24

logging:
  level: "debug"
  log_file: "render.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Camera.Focal != 500 {
		t.Errorf("expected focal 500, got %f", cfg.Camera.Focal)
	}
	if cfg.Camera.Width != 320 || cfg.Camera.Height != 240 {
		t.Errorf("expected 320x240, got %dx%d", cfg.Camera.Width, cfg.Camera.Height)
	}
	if cfg.Camera.U0 != 3 {
		t.Errorf("expected u0 3, got %f", cfg.Camera.U0)
	}
	// Untouched keys keep their defaults.
	if cfg.Camera.BU != 1 || cfg.Camera.BV != 1 {
		t.Errorf("expected default pixel scale, got %f/%f", cfg.Camera.BU, cfg.Camera.BV)
	}
	if !cfg.Camera.DepthTest {
		t.Error("expected depth test to be true")
	}

	if cfg.Path.Kind != PathBezier {
		t.Errorf("expected path kind bezier, got %s", cfg.Path.Kind)
	}
	if len(cfg.Path.Bezier.Points) != 4 {
		t.Fatalf("expected 4 control points, got %d", len(cfg.Path.Bezier.Points))
	}
	if cfg.Path.Bezier.Points[2].X != 20 || cfg.Path.Bezier.Points[2].Y != 10 {
		t.Errorf("unexpected control point %+v", cfg.Path.Bezier.Points[2])
	}
	if cfg.Path.Bezier.FollowHeading {
		t.Error("expected follow_heading to be false")
	}

	if cfg.Render.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Render.Workers)
	}
	if cfg.Output.Dir != "out" || cfg.Output.GIF != "preview.gif" || cfg.Output.FPS != 24 {
		t.Errorf("unexpected output config %+v", cfg.Output)
	}
	if cfg.Output.Prefix != "frame" {
		t.Errorf("expected default prefix, got %s", cfg.Output.Prefix)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "render.log" {
		t.Errorf("expected log file 'render.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
camera:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "flythrough.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find flythrough.yaml in current directory")
	}
}

func TestFlagsApply(t *testing.T) {
	tests := []struct {
		name   string
		flags  Flags
		verify func(*testing.T, *Config)
	}{
		{
			name:  "debug flag",
			flags: Flags{Debug: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name:  "width and height flags",
			flags: Flags{Width: 1280, Height: 720},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Camera.Width != 1280 {
					t.Errorf("expected width 1280, got %d", cfg.Camera.Width)
				}
				if cfg.Camera.Height != 720 {
					t.Errorf("expected height 720, got %d", cfg.Camera.Height)
				}
			},
		},
		{
			name:  "camera flags",
			flags: Flags{Focal: 350, DepthTest: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Camera.Focal != 350 {
					t.Errorf("expected focal 350, got %f", cfg.Camera.Focal)
				}
				if !cfg.Camera.DepthTest {
					t.Error("expected depth test with depth-test flag")
				}
			},
		},
		{
			name:  "output flags",
			flags: Flags{Output: "shots", GIF: "fly.gif", Workers: 2},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Dir != "shots" {
					t.Errorf("expected output dir 'shots', got %s", cfg.Output.Dir)
				}
				if cfg.Output.GIF != "fly.gif" {
					t.Errorf("expected gif 'fly.gif', got %s", cfg.Output.GIF)
				}
				if cfg.Render.Workers != 2 {
					t.Errorf("expected 2 workers, got %d", cfg.Render.Workers)
				}
			},
		},
		{
			name:  "path flag",
			flags: Flags{Path: PathSweep},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Path.Kind != PathSweep {
					t.Errorf("expected path kind sweep, got %s", cfg.Path.Kind)
				}
			},
		},
		{
			name:  "zero flags",
			flags: Flags{},
			verify: func(t *testing.T, cfg *Config) {
				def := Default()
				if cfg.Camera != def.Camera || cfg.Output != def.Output {
					t.Error("expected zero flags to leave defaults untouched")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.flags.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestRegisterFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	args := []string{"-config", "a.yaml", "-width", "640", "-focal", "120.5", "-depth-test", "-gif", "p.gif", "scene.yaml"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Config != "a.yaml" || f.Width != 640 || f.Focal != 120.5 || !f.DepthTest || f.GIF != "p.gif" {
		t.Errorf("unexpected flags %+v", *f)
	}
	if fs.NArg() != 1 || fs.Arg(0) != "scene.yaml" {
		t.Errorf("expected positional scene.yaml, got %v", fs.Args())
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
camera:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(&Flags{Config: configPath, Width: 1920})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Camera.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Camera.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Camera.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Camera.Height)
	}
}

func TestLoadRejectsInvalidCamera(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  focal: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(&Flags{Config: configPath})
	if !errors.Is(err, camera.ErrInvalidFocal) {
		t.Errorf("expected ErrInvalidFocal, got %v", err)
	}
}

func TestPathSamples(t *testing.T) {
	cfg := Default()

	orbit, err := cfg.Path.Samples()
	if err != nil {
		t.Fatalf("orbit: %v", err)
	}
	if len(orbit) != 36 {
		t.Errorf("expected 36 orbit samples, got %d", len(orbit))
	}

	cfg.Path.Kind = PathSweep
	cfg.Path.Sweep.To.Y = 100
	sweep, err := cfg.Path.Samples()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(sweep) != 30 {
		t.Errorf("expected 30 sweep samples, got %d", len(sweep))
	}
	if sweep[29].Position.Y != 100 {
		t.Errorf("expected sweep to end at y=100, got %v", sweep[29].Position)
	}

	cfg.Path.Kind = PathBezier
	cfg.Path.Bezier.FollowHeading = false
	cfg.Path.Bezier.Segments = 5
	cfg.Path.Bezier.Points = []math.Vec3{{Z: 10}, {X: 10, Z: 10}, {X: 20, Z: 10}, {X: 30, Z: 10}}
	bez, err := cfg.Path.Samples()
	if err != nil {
		t.Fatalf("bezier: %v", err)
	}
	if len(bez) != 6 {
		t.Errorf("expected 6 bezier samples, got %d", len(bez))
	}

	cfg.Path.Kind = "spiral"
	if _, err := cfg.Path.Samples(); !errors.Is(err, ErrUnknownPathKind) {
		t.Errorf("expected ErrUnknownPathKind, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Camera.Focal = 321
	cfg.Path.Kind = PathSweep
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(&Flags{Config: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Camera.Focal != 321 || loaded.Path.Kind != PathSweep {
		t.Errorf("saved values not loaded back: %+v %+v", loaded.Camera, loaded.Path.Kind)
	}
}

func TestSaveUsesConfigDir(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir ignores XDG_CONFIG_HOME on this platform")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Camera.Width = 1280
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	path := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written to %s: %v", path, err)
	}
	if found := findConfigFile(); found != path {
		t.Errorf("findConfigFile() = %q, want %q", found, path)
	}
	loaded, err := Load(&Flags{Config: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Camera.Width != 1280 {
		t.Errorf("Width = %d, want 1280", loaded.Camera.Width)
	}
}
