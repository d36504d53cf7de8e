package room

import (
	"errors"
	"testing"

	"github.com/yangshun/cs4243-project/pkg/math"
	"github.com/yangshun/cs4243-project/pkg/raster"
)

func TestCubeFacesOutward(t *testing.T) {
	textures := map[Face]*raster.Image{}
	for f := Front; f <= Back; f++ {
		textures[f] = solid(8, 8)
	}
	cube, err := Cube(100, textures)
	if err != nil {
		t.Fatalf("Cube failed: %v", err)
	}
	if len(cube.Surfaces) != 6 {
		t.Fatalf("expected 6 faces, got %d", len(cube.Surfaces))
	}

	wantNormals := []math.Vec3{{Y: -1}, {X: -1}, {X: 1}, {Z: 1}, {Z: -1}, {Y: 1}}
	for i, s := range cube.Surfaces {
		if !s.Normal.ApproxEqual(wantNormals[i], 1e-12) {
			t.Errorf("%s normal = %v, want %v", s.Name, s.Normal, wantNormals[i])
		}
		if s.DistanceToPoint(math.Vec3{}) >= 0 {
			t.Errorf("%s faces the cube center", s.Name)
		}
	}
}

func TestCubeSubsetOfFaces(t *testing.T) {
	cube, err := Cube(10, map[Face]*raster.Image{
		Front:     solid(4, 4),
		LeftFace:  solid(4, 4),
		RightFace: solid(4, 4),
	})
	if err != nil {
		t.Fatalf("Cube failed: %v", err)
	}
	var names []string
	for _, s := range cube.Surfaces {
		names = append(names, s.Name)
	}
	if len(names) != 3 || names[0] != "front" || names[1] != "left" || names[2] != "right" {
		t.Errorf("faces = %v", names)
	}
}

func TestCubeErrors(t *testing.T) {
	if _, err := Cube(0, map[Face]*raster.Image{Front: solid(1, 1)}); !errors.Is(err, ErrDimensions) {
		t.Errorf("expected ErrDimensions, got %v", err)
	}
	if _, err := Cube(1, nil); !errors.Is(err, ErrMissingTexture) {
		t.Errorf("expected ErrMissingTexture, got %v", err)
	}
	if _, err := ParseFace("side"); !errors.Is(err, ErrUnknownFace) {
		t.Errorf("expected ErrUnknownFace, got %v", err)
	}
}
