// Package raster provides the packed RGB frame buffer used for textures and
// rendered frames, plus the homography and perspective warp that map one
// onto the other.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Channels is the number of bytes per pixel (R, G, B).
const Channels = 3

// ErrSizeMismatch is returned when two images of different size are combined.
var ErrSizeMismatch = errors.New("image size mismatch")

// Image is a packed RGB buffer of Width*Height*3 bytes, row-major,
// with (0,0) at the top-left.
type Image struct {
	Width  int
	Height int
	Pix    []uint8

	// Mask marks the pixels a warp wrote, black texels included. It is nil
	// for images that did not come out of a warp.
	Mask []bool
}

// New returns an all-black image.
func New(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// FromImage converts any decoded image into a packed RGB buffer.
// Transparent pixels become black.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), src, b.Min, xdraw.Src)

	img := New(b.Dx(), b.Dy())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			si := rgba.PixOffset(x, y)
			di := img.PixOffset(x, y)
			copy(img.Pix[di:di+Channels], rgba.Pix[si:si+Channels])
		}
	}
	return img
}

// RGBA converts the buffer into an opaque *image.RGBA for encoding.
func (m *Image) RGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			si := m.PixOffset(x, y)
			di := rgba.PixOffset(x, y)
			copy(rgba.Pix[di:di+Channels], m.Pix[si:si+Channels])
			rgba.Pix[di+3] = 0xff
		}
	}
	return rgba
}

// Bounds returns the pixel rectangle of the image.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (m *Image) PixOffset(x, y int) int {
	return (y*m.Width + x) * Channels
}

// At returns the color of pixel (x, y), or black outside the image.
func (m *Image) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return color.RGBA{A: 0xff}
	}
	i := m.PixOffset(x, y)
	return color.RGBA{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2], A: 0xff}
}

// Set writes pixel (x, y). Writes outside the image are ignored.
func (m *Image) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	i := m.PixOffset(x, y)
	m.Pix[i] = c.R
	m.Pix[i+1] = c.G
	m.Pix[i+2] = c.B
}

// Fill paints every pixel with c.
func (m *Image) Fill(c color.RGBA) {
	for i := 0; i < len(m.Pix); i += Channels {
		m.Pix[i] = c.R
		m.Pix[i+1] = c.G
		m.Pix[i+2] = c.B
	}
}

// Covered reports whether pixel (x, y) is masked in, or without a mask,
// whether it carries any non-zero channel.
func (m *Image) Covered(x, y int) bool {
	if m.Mask != nil {
		return m.Mask[y*m.Width+x]
	}
	i := m.PixOffset(x, y)
	return m.Pix[i]|m.Pix[i+1]|m.Pix[i+2] != 0
}

// CoveredCount returns the number of covered pixels.
func (m *Image) CoveredCount() int {
	n := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Covered(x, y) {
				n++
			}
		}
	}
	return n
}

// Or merges other into m with a per-byte bitwise OR.
func (m *Image) Or(other *Image) error {
	if other.Width != m.Width || other.Height != m.Height {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, m.Width, m.Height, other.Width, other.Height)
	}
	for i := range m.Pix {
		m.Pix[i] |= other.Pix[i]
	}
	return nil
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	c := &Image{Width: m.Width, Height: m.Height, Pix: make([]uint8, len(m.Pix))}
	copy(c.Pix, m.Pix)
	if m.Mask != nil {
		c.Mask = append([]bool(nil), m.Mask...)
	}
	return c
}

// Resize returns a bilinearly scaled copy.
func (m *Image) Resize(width, height int) *Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), m.RGBA(), m.Bounds(), xdraw.Src, nil)
	return FromImage(dst)
}

// sample returns the bilinearly interpolated color at (x, y), where integer
// coordinates are pixel centres. Coordinates are clamped to the image.
func (m *Image) sample(x, y float64) (r, g, b uint8) {
	x = clamp(x, 0, float64(m.Width-1))
	y = clamp(y, 0, float64(m.Height-1))

	x0, y0 := int(x), int(y)
	x1, y1 := x0+1, y0+1
	if x1 >= m.Width {
		x1 = m.Width - 1
	}
	if y1 >= m.Height {
		y1 = m.Height - 1
	}
	fx, fy := x-float64(x0), y-float64(y0)

	i00 := m.PixOffset(x0, y0)
	i10 := m.PixOffset(x1, y0)
	i01 := m.PixOffset(x0, y1)
	i11 := m.PixOffset(x1, y1)

	var out [Channels]uint8
	for c := 0; c < Channels; c++ {
		top := float64(m.Pix[i00+c])*(1-fx) + float64(m.Pix[i10+c])*fx
		bottom := float64(m.Pix[i01+c])*(1-fx) + float64(m.Pix[i11+c])*fx
		out[c] = uint8(top*(1-fy) + bottom*fy + 0.5)
	}
	return out[0], out[1], out[2]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
