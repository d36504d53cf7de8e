package geom

import (
	"sort"

	"github.com/yangshun/cs4243-project/pkg/math"
)

// Turn directions returned by Turn.
const (
	TurnRight = -1
	TurnNone  = 0
	TurnLeft  = 1
)

// Turn reports whether p -> q -> r turns left (counter-clockwise with y up),
// right, or is collinear.
func Turn(p, q, r math.Vec2) int {
	c := q.Sub(p).Cross(r.Sub(p))
	switch {
	case c > 0:
		return TurnLeft
	case c < 0:
		return TurnRight
	default:
		return TurnNone
	}
}

// ConvexHull returns the convex hull of points in counter-clockwise order
// (y up), starting from the lexicographically smallest point. Collinear and
// interior points are dropped.
func ConvexHull(points []math.Vec2) []math.Vec2 {
	idx := ConvexHullIndices(points)
	hull := make([]math.Vec2, len(idx))
	for i, j := range idx {
		hull[i] = points[j]
	}
	return hull
}

// ConvexHullIndices is ConvexHull returning indices into points, so callers
// can carry per-point data through the scan.
func ConvexHullIndices(points []math.Vec2) []int {
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return points[order[i]].Less(points[order[j]])
	})

	// Drop exact duplicates so they cannot pad the hull.
	uniq := order[:0]
	for _, i := range order {
		if len(uniq) > 0 && points[uniq[len(uniq)-1]] == points[i] {
			continue
		}
		uniq = append(uniq, i)
	}
	if len(uniq) < 3 {
		return append([]int(nil), uniq...)
	}

	keepLeft := func(hull []int, r int) []int {
		for len(hull) > 1 && Turn(points[hull[len(hull)-2]], points[hull[len(hull)-1]], points[r]) != TurnLeft {
			hull = hull[:len(hull)-1]
		}
		return append(hull, r)
	}

	var lower []int
	for _, i := range uniq {
		lower = keepLeft(lower, i)
	}
	var upper []int
	for k := len(uniq) - 1; k >= 0; k-- {
		upper = keepLeft(upper, uniq[k])
	}

	// The ends of each chain are shared with the other chain.
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}
