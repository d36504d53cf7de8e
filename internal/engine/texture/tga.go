package texture

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/yangshun/cs4243-project/pkg/raster"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// ErrTGA is returned for TGA data that cannot be decoded.
var ErrTGA = errors.New("invalid TGA")

// DecodeTGA decodes a TGA image into an RGB texture. Supports uncompressed
// (type 2) and RLE compressed (type 10) true-color files at 24 or 32 bits
// per pixel. Alpha is dropped.
func DecodeTGA(data []byte) (*raster.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: data too short", ErrTGA)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped images not supported", ErrTGA)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: unsupported type %d", ErrTGA, imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrTGA, bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: truncated header", ErrTGA)
	}

	d := &tgaDecoder{
		img:         raster.New(width, height),
		data:        data[offset:],
		bytesPerPix: bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}
	if imageType == TGATypeUncompressed {
		if len(d.data) < width*height*d.bytesPerPix {
			return nil, fmt.Errorf("%w: pixel data truncated", ErrTGA)
		}
		for d.n < width*height {
			d.put(d.read())
		}
	} else {
		d.decodeRLE()
	}
	return d.img, nil
}

// tgaDecoder writes pixels in file order, flipping rows for bottom-up files.
type tgaDecoder struct {
	img         *raster.Image
	data        []byte
	pos         int
	n           int
	bytesPerPix int
	topToBottom bool
}

func (d *tgaDecoder) available() bool {
	return d.pos+d.bytesPerPix <= len(d.data)
}

// read consumes one BGR(A) pixel.
func (d *tgaDecoder) read() color.RGBA {
	p := d.data[d.pos:]
	d.pos += d.bytesPerPix
	return color.RGBA{R: p[2], G: p[1], B: p[0], A: 0xff}
}

func (d *tgaDecoder) put(c color.RGBA) {
	x, y := d.n%d.img.Width, d.n/d.img.Width
	if !d.topToBottom {
		y = d.img.Height - 1 - y
	}
	d.img.Set(x, y, c)
	d.n++
}

// decodeRLE expands run-length packets. Truncated data leaves the rest of
// the image black.
func (d *tgaDecoder) decodeRLE() {
	total := d.img.Width * d.img.Height
	for d.n < total && d.pos < len(d.data) {
		packet := d.data[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if !d.available() {
				return
			}
			c := d.read()
			for i := 0; i < count && d.n < total; i++ {
				d.put(c)
			}
			continue
		}
		for i := 0; i < count && d.n < total; i++ {
			if !d.available() {
				return
			}
			d.put(d.read())
		}
	}
}
