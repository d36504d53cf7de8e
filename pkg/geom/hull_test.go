package geom

import (
	"testing"

	gm "github.com/yangshun/cs4243-project/pkg/math"
)

func pts(xy ...float64) []gm.Vec2 {
	out := make([]gm.Vec2, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, gm.Vec2{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func TestTurn(t *testing.T) {
	tests := []struct {
		name    string
		p, q, r gm.Vec2
		want    int
	}{
		{"collinear", gm.Vec2{X: 1, Y: 2}, gm.Vec2{X: 2, Y: 3}, gm.Vec2{X: 3, Y: 4}, TurnNone},
		{"collinear negative", gm.Vec2{X: -11, Y: 2}, gm.Vec2{X: -22, Y: 3}, gm.Vec2{X: -33, Y: 4}, TurnNone},
		{"same point", gm.Vec2{}, gm.Vec2{}, gm.Vec2{}, TurnNone},
		{"repeated start", gm.Vec2{}, gm.Vec2{}, gm.Vec2{X: 1}, TurnNone},
		{"left", gm.Vec2{X: -1, Y: 2}, gm.Vec2{X: 2, Y: 3}, gm.Vec2{X: 3, Y: 4}, TurnLeft},
		{"left around origin", gm.Vec2{}, gm.Vec2{X: -1}, gm.Vec2{Y: -4}, TurnLeft},
		{"right", gm.Vec2{X: 5, Y: 2}, gm.Vec2{X: 1}, gm.Vec2{X: -1, Y: 3}, TurnRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Turn(tt.p, tt.q, tt.r); got != tt.want {
				t.Errorf("Turn() = %d, want %d", got, tt.want)
			}
		})
	}
}

func assertCounterClockwise(t *testing.T, hull []gm.Vec2) {
	t.Helper()
	n := len(hull)
	for i := 0; i < n; i++ {
		if Turn(hull[i], hull[(i+1)%n], hull[(i+2)%n]) != TurnLeft {
			t.Errorf("hull %v is not strictly counter-clockwise at %d", hull, i)
			return
		}
	}
}

func TestConvexHull(t *testing.T) {
	tests := []struct {
		name   string
		points []gm.Vec2
		want   int
	}{
		{"triangle", pts(1, 2, 5, 2, -1, 4), 3},
		{"interior point dropped", pts(5, 2, -1, 4, 1, 2, 4, -2), 3},
		{"six points", pts(5, 2, -1, 4, 4, -2, 1, 2, 0, 0, -2, -5), 4},
		{"square with centre", pts(0, 0, 10, 0, 10, 10, 0, 10, 5, 5), 4},
		{"collinear edge point", pts(0, 0, 5, 0, 10, 0, 10, 10, 0, 10), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hull := ConvexHull(tt.points)
			if len(hull) != tt.want {
				t.Fatalf("got %d hull points %v, want %d", len(hull), hull, tt.want)
			}
			assertCounterClockwise(t, hull)
		})
	}
}

func TestConvexHullIdempotent(t *testing.T) {
	first := ConvexHull(pts(3, 9, 0, 1, 12, 0, 10, 8))
	second := ConvexHull(first)
	if len(first) != len(second) {
		t.Fatalf("hull changed size: %v -> %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("hull point %d changed: %v -> %v", i, first[i], second[i])
		}
	}
}

func TestConvexHullIndices(t *testing.T) {
	points := pts(10, 10, 0, 0, 5, 5, 10, 0, 0, 10)
	idx := ConvexHullIndices(points)
	if len(idx) != 4 {
		t.Fatalf("got %v, want 4 indices", idx)
	}
	if idx[0] != 1 {
		t.Errorf("hull should start at the lexicographically smallest point, got index %d", idx[0])
	}
	for _, i := range idx {
		if i == 2 {
			t.Error("interior point included in hull")
		}
	}
}

func TestConvexHullDuplicates(t *testing.T) {
	hull := ConvexHull(pts(0, 0, 0, 0, 4, 0, 4, 0, 0, 4))
	if len(hull) != 3 {
		t.Errorf("duplicates should not pad the hull, got %v", hull)
	}
}
