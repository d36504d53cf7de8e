package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yangshun/cs4243-project/internal/engine/room"
	"github.com/yangshun/cs4243-project/internal/engine/scene"
	"github.com/yangshun/cs4243-project/internal/engine/texture"
	"github.com/yangshun/cs4243-project/pkg/math"
	"github.com/yangshun/cs4243-project/pkg/raster"
)

// ErrEmptyScene is returned for a scene file that describes no geometry.
var ErrEmptyScene = errors.New("scene has no room, photo or models")

// SceneFile describes the geometry to render. Image paths are relative to
// the scene file.
type SceneFile struct {
	Room   *RoomSpec   `yaml:"room"`
	Photo  *PhotoSpec  `yaml:"photo"`
	Models []ModelSpec `yaml:"models"`
}

// RoomSpec is a box room with one texture file per wall.
type RoomSpec struct {
	Dimensions room.Dimensions   `yaml:"dimensions"`
	Textures   map[string]string `yaml:"textures"`
}

// PhotoSpec is a box room whose walls are cut out of one perspective photo.
type PhotoSpec struct {
	Image      string          `yaml:"image"`
	Dimensions room.Dimensions `yaml:"dimensions"`
	Layout     room.Layout     `yaml:"layout"`
}

// ModelSpec is one polyhedron.
type ModelSpec struct {
	Name     string        `yaml:"name"`
	Surfaces []SurfaceSpec `yaml:"surfaces"`
}

// SurfaceSpec is one textured quadrilateral. Corners2D defaults to the
// whole image.
type SurfaceSpec struct {
	Name      string      `yaml:"name"`
	Image     string      `yaml:"image"`
	Corners3D []math.Vec3 `yaml:"corners3d"`
	Corners2D []math.Vec2 `yaml:"corners2d"`
}

// LoadScene reads a scene file and builds its space. Textures shared by
// several surfaces are decoded once.
func LoadScene(path string, logger *zap.Logger) (*scene.Space, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing scene %s: %w", path, err)
	}
	if sf.Room == nil && sf.Photo == nil && len(sf.Models) == 0 {
		return nil, ErrEmptyScene
	}

	l := &sceneLoader{dir: filepath.Dir(path), images: map[string]*raster.Image{}}
	space := scene.NewSpace()

	if sf.Room != nil {
		if err := l.addRoom(space, sf.Room); err != nil {
			return nil, err
		}
	}
	if sf.Photo != nil {
		if err := l.addPhoto(space, sf.Photo, logger); err != nil {
			return nil, err
		}
	}
	for _, m := range sf.Models {
		model, err := l.model(m)
		if err != nil {
			return nil, err
		}
		if err := space.AddModel(model); err != nil {
			return nil, err
		}
	}

	logger.Info("scene loaded",
		zap.String("path", path),
		zap.Int("models", len(space.Models)),
		zap.Int("surfaces", space.SurfaceCount()),
		zap.Int("textures", len(l.images)))
	return space, nil
}

type sceneLoader struct {
	dir    string
	images map[string]*raster.Image
}

func (l *sceneLoader) image(name string) (*raster.Image, error) {
	p := name
	if !filepath.IsAbs(p) {
		p = filepath.Join(l.dir, p)
	}
	if img, ok := l.images[p]; ok {
		return img, nil
	}
	img, err := texture.Load(p)
	if err != nil {
		return nil, err
	}
	l.images[p] = img
	return img, nil
}

func (l *sceneLoader) addRoom(space *scene.Space, spec *RoomSpec) error {
	textures := make(map[room.Wall]*raster.Image, len(spec.Textures))
	for name, file := range spec.Textures {
		w, err := room.ParseWall(name)
		if err != nil {
			return err
		}
		img, err := l.image(file)
		if err != nil {
			return fmt.Errorf("%s wall: %w", w, err)
		}
		textures[w] = img
	}
	box, err := room.Box(spec.Dimensions, textures)
	if err != nil {
		return err
	}
	return appendModels(space, box)
}

func (l *sceneLoader) addPhoto(space *scene.Space, spec *PhotoSpec, logger *zap.Logger) error {
	photo, err := l.image(spec.Image)
	if err != nil {
		return err
	}
	box, _, err := room.BuildFromPhoto(photo, spec.Dimensions, spec.Layout, logger)
	if err != nil {
		return err
	}
	return appendModels(space, box)
}

func (l *sceneLoader) model(spec ModelSpec) (*scene.Polyhedron, error) {
	surfaces := make([]*scene.Surface, 0, len(spec.Surfaces))
	for i, ss := range spec.Surfaces {
		img, err := l.image(ss.Image)
		if err != nil {
			return nil, fmt.Errorf("model %q surface %d: %w", spec.Name, i, err)
		}
		corners2d := ss.Corners2D
		if len(corners2d) == 0 {
			c := raster.Rect{W: float64(img.Width), H: float64(img.Height)}.Corners()
			corners2d = c[:]
		}
		s, err := scene.NewSurface(ss.Name, img, ss.Corners3D, corners2d)
		if err != nil {
			return nil, fmt.Errorf("model %q surface %d: %w", spec.Name, i, err)
		}
		surfaces = append(surfaces, s)
	}
	return scene.NewPolyhedron(surfaces...), nil
}

func appendModels(dst, src *scene.Space) error {
	for _, m := range src.Models {
		if err := dst.AddModel(m); err != nil {
			return err
		}
	}
	return nil
}
