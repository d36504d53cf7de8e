package scene

import "errors"

// ErrNilModel is returned when a nil polyhedron is added to a space.
var ErrNilModel = errors.New("nil polyhedron")

// Polyhedron is an ordered group of surfaces.
type Polyhedron struct {
	Surfaces []*Surface
}

// NewPolyhedron groups surfaces, preserving their order.
func NewPolyhedron(surfaces ...*Surface) *Polyhedron {
	return &Polyhedron{Surfaces: append([]*Surface(nil), surfaces...)}
}

// Space is an ordered collection of polyhedra. It is read-only while frames
// are being rendered.
type Space struct {
	Models []*Polyhedron
}

// NewSpace creates a space holding the given models.
func NewSpace(models ...*Polyhedron) *Space {
	return &Space{Models: append([]*Polyhedron(nil), models...)}
}

// AddModel appends a polyhedron.
func (s *Space) AddModel(model *Polyhedron) error {
	if model == nil {
		return ErrNilModel
	}
	s.Models = append(s.Models, model)
	return nil
}

// Surfaces flattens every model's surfaces in stored order.
func (s *Space) Surfaces() []*Surface {
	var out []*Surface
	for _, m := range s.Models {
		out = append(out, m.Surfaces...)
	}
	return out
}

// SurfaceCount returns the total number of surfaces.
func (s *Space) SurfaceCount() int {
	n := 0
	for _, m := range s.Models {
		n += len(m.Surfaces)
	}
	return n
}
