package path

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/yangshun/cs4243-project/pkg/math"
)

func TestSmoothWrapsShortWay(t *testing.T) {
	positions := []math.Vec3{{X: 0}, {X: 1}, {X: 2}}
	headings := []math.Heading{357, 2, 0}

	samples, err := Smooth(positions, headings)
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}

	wantHeadings := []float64{357, 358, 359, 0, 1, 2, 1, 0}
	wantX := []float64{1, 1, 1, 1, 1, 2, 2, 2}
	if len(samples) != len(wantHeadings) {
		t.Fatalf("expected %d samples, got %d", len(wantHeadings), len(samples))
	}
	for i, s := range samples {
		got := math.Heading(headingOf(s.Orientation))
		if gomath.Abs(got.Delta(math.Heading(wantHeadings[i]))) > 1e-6 {
			t.Errorf("sample %d heading = %v, want %v", i, got, wantHeadings[i])
		}
		if s.Position.X != wantX[i] {
			t.Errorf("sample %d held at %v, want x=%v", i, s.Position, wantX[i])
		}
	}
}

func TestSmoothEqualHeadings(t *testing.T) {
	samples, err := Smooth([]math.Vec3{{}, {X: 1}}, []math.Heading{45, 45})
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}
	if len(samples) != 2 {
		t.Errorf("expected 2 samples, got %d", len(samples))
	}
}

func TestSmoothEdgeCases(t *testing.T) {
	if _, err := Smooth([]math.Vec3{{}}, nil); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
	samples, err := Smooth(nil, nil)
	if err != nil || len(samples) != 0 {
		t.Errorf("Smooth(nil, nil) = %v, %v", samples, err)
	}
	samples, err = Smooth([]math.Vec3{{X: 5}}, []math.Heading{30})
	if err != nil || len(samples) != 1 || samples[0].Position.X != 5 {
		t.Errorf("single sample = %v, %v", samples, err)
	}
}
