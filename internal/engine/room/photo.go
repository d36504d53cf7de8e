package room

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/yangshun/cs4243-project/internal/engine/scene"
	"github.com/yangshun/cs4243-project/internal/engine/texture"
	"github.com/yangshun/cs4243-project/pkg/geom"
	"github.com/yangshun/cs4243-project/pkg/math"
	"github.com/yangshun/cs4243-project/pkg/raster"
)

// ErrVanishingPoint is returned when the vanishing point cannot be used to
// extrapolate the wall edges.
var ErrVanishingPoint = errors.New("vanishing point does not define the wall edges")

// WallCorners are the photo corners of one wall, clockwise from the
// top-left, with each corner's depth from the camera.
type WallCorners struct {
	Wall    Wall
	Corners [4]texture.Corner
}

// Layout locates the room in a one-point perspective photo: the far wall is
// the inner box, and the four edges of the room run from its corners
// towards the vanishing point.
type Layout struct {
	InnerTopLeft     math.Vec2 `yaml:"inner_top_left"`
	InnerBottomRight math.Vec2 `yaml:"inner_bottom_right"`
	VanishingPoint   math.Vec2 `yaml:"vanishing_point"`
}

// ExtrapolateCorners derives the photo corners of all five walls. The lines
// from the vanishing point through each inner corner are extended to the
// left and right borders of the image and clamped to its top and bottom.
// Inner corners lie at the given depth, border corners at depth 0.
func ExtrapolateCorners(width, height int, depth float64, l Layout) ([]WallCorners, error) {
	w, h := float64(width), float64(height)
	itl := l.InnerTopLeft
	ibr := l.InnerBottomRight
	itr := math.Vec2{X: ibr.X, Y: itl.Y}
	ibl := math.Vec2{X: itl.X, Y: ibr.Y}

	edge := func(inner math.Vec2, x float64) (float64, error) {
		line, err := geom.NewLine(inner, l.VanishingPoint)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrVanishingPoint, err)
		}
		y, ok := line.YAt(x)
		if !ok {
			return 0, fmt.Errorf("%w: edge through %v is vertical", ErrVanishingPoint, inner)
		}
		return y, nil
	}

	yTL, err := edge(itl, 0)
	if err != nil {
		return nil, err
	}
	yTR, err := edge(itr, w)
	if err != nil {
		return nil, err
	}
	yBR, err := edge(ibr, w)
	if err != nil {
		return nil, err
	}
	yBL, err := edge(ibl, 0)
	if err != nil {
		return nil, err
	}

	otl := math.Vec2{X: 0, Y: gomath.Max(yTL, 0)}
	otr := math.Vec2{X: w, Y: gomath.Max(yTR, 0)}
	obr := math.Vec2{X: w, Y: gomath.Min(yBR, h)}
	obl := math.Vec2{X: 0, Y: gomath.Min(yBL, h)}

	c := func(p math.Vec2, d float64) texture.Corner {
		return texture.Corner{Pixel: p, Depth: d}
	}
	return []WallCorners{
		{Center, [4]texture.Corner{c(itl, depth), c(itr, depth), c(ibr, depth), c(ibl, depth)}},
		{Right, [4]texture.Corner{c(itr, depth), c(otr, 0), c(obr, 0), c(ibr, depth)}},
		{Left, [4]texture.Corner{c(otl, 0), c(itl, depth), c(ibl, depth), c(obl, 0)}},
		{Top, [4]texture.Corner{c(otl, 0), c(otr, 0), c(itr, depth), c(itl, depth)}},
		{Bottom, [4]texture.Corner{c(ibl, depth), c(ibr, depth), c(obr, 0), c(obl, 0)}},
	}, nil
}

// BuildFromPhoto cuts the five walls out of a photo and assembles them
// into a room of the given dimensions.
func BuildFromPhoto(photo *raster.Image, d Dimensions, l Layout, logger *zap.Logger) (*scene.Space, map[Wall]*raster.Image, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}
	walls, err := ExtrapolateCorners(photo.Width, photo.Height, d.Depth, l)
	if err != nil {
		return nil, nil, err
	}

	extractor := texture.NewExtractor(photo)
	textures := make(map[Wall]*raster.Image, len(walls))
	for _, wc := range walls {
		tex, err := extractor.ExtractTexture(wc.Corners[:])
		if err != nil {
			return nil, nil, fmt.Errorf("extracting %s wall: %w", wc.Wall, err)
		}
		logger.Debug("extracted wall",
			zap.Stringer("wall", wc.Wall),
			zap.Int("width", tex.Width),
			zap.Int("height", tex.Height))
		textures[wc.Wall] = tex
	}

	space, err := Box(d, textures)
	if err != nil {
		return nil, nil, err
	}
	return space, textures, nil
}
