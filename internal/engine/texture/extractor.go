package texture

import (
	"errors"
	"fmt"
	gomath "math"
	"sort"

	"github.com/yangshun/cs4243-project/pkg/geom"
	"github.com/yangshun/cs4243-project/pkg/math"
	"github.com/yangshun/cs4243-project/pkg/raster"
)

var (
	// ErrNotQuadrilateral is returned when the corners are not the vertices
	// of a convex quadrilateral.
	ErrNotQuadrilateral = errors.New("corners do not form a convex quadrilateral")
	// ErrEmptyTexture is returned when the extracted rectangle has no area.
	ErrEmptyTexture = errors.New("extracted texture is empty")
)

// Corner is a quadrilateral corner in a photo: its pixel position (x right,
// y down) and the distance from the camera to the real-world point.
type Corner struct {
	Pixel math.Vec2
	Depth float64
}

// Extractor cuts quadrilaterals out of a photo and straightens them into
// rectangular textures.
type Extractor struct {
	image  *raster.Image
	rec    *Reconstructor
	warper raster.PerspectiveWarper
}

// NewExtractor binds an extractor to a photo. Texture sizes are measured
// in photo pixels.
func NewExtractor(img *raster.Image) *Extractor {
	return &Extractor{image: img}
}

// NewCalibratedExtractor binds an extractor to a photo taken with a known
// resolution (pixels per world unit) and focal length. Texture sizes follow
// the real-world extent of each quadrilateral, using the corner depths.
func NewCalibratedExtractor(img *raster.Image, resolution, focal float64) (*Extractor, error) {
	rec, err := NewReconstructor(img.Width, img.Height, resolution, focal)
	if err != nil {
		return nil, err
	}
	return &Extractor{image: img, rec: rec}, nil
}

// ExtractTexture straightens the quadrilateral enclosed by corners, given
// in any order. The texture is as wide as the longer of the top and bottom
// edges and as tall as the longer of the left and right edges.
func (e *Extractor) ExtractTexture(corners []Corner) (*raster.Image, error) {
	ordered, err := OrderCorners(corners)
	if err != nil {
		return nil, err
	}

	var pos [4]math.Vec3
	for i, c := range ordered {
		if e.rec != nil {
			pos[i] = e.rec.Coordinate3D(c.Pixel.Y, c.Pixel.X, c.Depth).Scale(e.rec.Resolution)
		} else {
			pos[i] = math.Vec3{X: c.Pixel.X, Y: c.Pixel.Y}
		}
	}
	width := gomath.Round(gomath.Max(pos[0].Distance(pos[1]), pos[2].Distance(pos[3])))
	height := gomath.Round(gomath.Max(pos[0].Distance(pos[3]), pos[1].Distance(pos[2])))
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %vx%v", ErrEmptyTexture, width, height)
	}

	var src [4]math.Vec2
	for i, c := range ordered {
		src[i] = c.Pixel
	}
	dst := raster.Rect{W: width, H: height}.Corners()
	h, err := e.warper.Homography(src, dst)
	if err != nil {
		return nil, fmt.Errorf("extracting texture: %w", err)
	}
	img, err := e.warper.Warp(e.image, raster.Quad(src), h, int(width), int(height))
	if err != nil {
		return nil, fmt.Errorf("extracting texture: %w", err)
	}
	return img, nil
}

// OrderCorners checks that the corners are the 4 vertices of a convex
// quadrilateral and returns them as top-left, top-right, bottom-right,
// bottom-left.
func OrderCorners(corners []Corner) ([4]Corner, error) {
	var out [4]Corner
	pts := make([]math.Vec2, len(corners))
	for i, c := range corners {
		pts[i] = c.Pixel
	}
	hull := geom.ConvexHullIndices(pts)
	if len(hull) != 4 {
		return out, fmt.Errorf("%w: hull has %d of %d points", ErrNotQuadrilateral, len(hull), len(corners))
	}
	for i, j := range hull {
		out[i] = corners[j]
	}
	return SortCorners(out), nil
}

// SortCorners orders 4 corners as top-left, top-right, bottom-right,
// bottom-left. Corners above the centroid (smaller y) are the top pair;
// within each pair the smaller x is left. When the centroid does not split
// the corners two and two, the two smallest y form the top pair.
func SortCorners(c [4]Corner) [4]Corner {
	var cy float64
	for _, p := range c {
		cy += p.Pixel.Y
	}
	cy /= 4

	var top, bottom []Corner
	for _, p := range c {
		if p.Pixel.Y < cy {
			top = append(top, p)
		} else {
			bottom = append(bottom, p)
		}
	}
	if len(top) != 2 {
		byY := c
		sort.SliceStable(byY[:], func(i, j int) bool { return byY[i].Pixel.Y < byY[j].Pixel.Y })
		top, bottom = byY[:2], byY[2:]
	}

	left := func(pair []Corner) (Corner, Corner) {
		if pair[0].Pixel.X > pair[1].Pixel.X {
			return pair[1], pair[0]
		}
		return pair[0], pair[1]
	}
	tl, tr := left(top)
	bl, br := left(bottom)
	return [4]Corner{tl, tr, br, bl}
}
