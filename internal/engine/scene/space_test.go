package scene

import (
	"errors"
	"testing"
)

func TestSpaceAddModel(t *testing.T) {
	a := &Surface{Name: "a"}
	b := &Surface{Name: "b"}
	c := &Surface{Name: "c"}

	space := NewSpace(NewPolyhedron(a, b))
	if err := space.AddModel(NewPolyhedron(c)); err != nil {
		t.Fatalf("AddModel failed: %v", err)
	}

	surfaces := space.Surfaces()
	if len(surfaces) != 3 || space.SurfaceCount() != 3 {
		t.Fatalf("expected 3 surfaces, got %d", len(surfaces))
	}
	for i, want := range []string{"a", "b", "c"} {
		if surfaces[i].Name != want {
			t.Errorf("surface %d = %s, want %s", i, surfaces[i].Name, want)
		}
	}
}

func TestSpaceAddNilModel(t *testing.T) {
	space := NewSpace()
	if err := space.AddModel(nil); !errors.Is(err, ErrNilModel) {
		t.Errorf("expected ErrNilModel, got %v", err)
	}
	if space.SurfaceCount() != 0 {
		t.Error("nil model must not be added")
	}
}

func TestNewPolyhedronCopiesSlice(t *testing.T) {
	surfaces := []*Surface{{Name: "a"}}
	p := NewPolyhedron(surfaces...)
	surfaces[0] = &Surface{Name: "changed"}
	if p.Surfaces[0].Name != "a" {
		t.Error("polyhedron should not alias the caller's slice")
	}
}
