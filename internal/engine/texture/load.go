// Package texture turns photographs into the rectangular textures surfaces
// are built from: image loading, quadrilateral extraction and inverse
// pinhole reconstruction.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // register BMP decoder

	"github.com/yangshun/cs4243-project/pkg/raster"
)

// ErrUnsupportedFormat is returned for files no registered decoder accepts.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Load reads an image file into an RGB texture. TGA files are recognized by
// extension; PNG, JPEG and BMP by content.
func Load(path string) (*raster.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	img, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes image data. ext is the file extension used to spot TGA,
// which has no magic number.
func Decode(data []byte, ext string) (*raster.Image, error) {
	if strings.EqualFold(ext, ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, err
	}
	return raster.FromImage(img), nil
}
