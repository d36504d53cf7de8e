package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewIsBlack(t *testing.T) {
	img := New(4, 3)
	if len(img.Pix) != 4*3*Channels {
		t.Fatalf("expected %d bytes, got %d", 4*3*Channels, len(img.Pix))
	}
	if img.CoveredCount() != 0 {
		t.Error("new image should be black")
	}
}

func TestSetAt(t *testing.T) {
	img := New(2, 2)
	img.Set(1, 0, color.RGBA{R: 10, G: 20, B: 30})
	img.Set(5, 5, color.RGBA{R: 1}) // ignored

	got := img.At(1, 0)
	if got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("At(1,0) = %v", got)
	}
	if img.CoveredCount() != 1 {
		t.Errorf("expected 1 covered pixel, got %d", img.CoveredCount())
	}
}

func TestOr(t *testing.T) {
	a := New(1, 1)
	b := New(1, 1)
	a.Set(0, 0, color.RGBA{R: 0x0f, G: 0x01})
	b.Set(0, 0, color.RGBA{R: 0xf0, B: 0x02})

	if err := a.Or(b); err != nil {
		t.Fatalf("Or failed: %v", err)
	}
	got := a.At(0, 0)
	if got.R != 0xff || got.G != 0x01 || got.B != 0x02 {
		t.Errorf("Or result = %v", got)
	}
}

func TestOrSizeMismatch(t *testing.T) {
	err := New(2, 2).Or(New(3, 2))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestFromImageRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	src.SetRGBA(2, 1, color.RGBA{G: 128, B: 64, A: 255})

	img := FromImage(src)
	if img.Width != 3 || img.Height != 2 {
		t.Fatalf("size = %dx%d", img.Width, img.Height)
	}

	back := img.RGBA()
	if back.RGBAAt(0, 0) != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel (0,0) = %v", back.RGBAAt(0, 0))
	}
	if back.RGBAAt(2, 1) != (color.RGBA{G: 128, B: 64, A: 255}) {
		t.Errorf("pixel (2,1) = %v", back.RGBAAt(2, 1))
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 12, 12))
	src.SetRGBA(10, 10, color.RGBA{B: 200, A: 255})

	img := FromImage(src)
	if img.At(0, 0).B != 200 {
		t.Errorf("expected the image origin to move to (0,0), got %v", img.At(0, 0))
	}
}

func TestResize(t *testing.T) {
	img := New(8, 4)
	img.Fill(color.RGBA{R: 100, G: 100, B: 100})

	small := img.Resize(4, 2)
	if small.Width != 4 || small.Height != 2 {
		t.Fatalf("size = %dx%d", small.Width, small.Height)
	}
	if small.At(1, 1).R != 100 {
		t.Errorf("uniform image should stay uniform, got %v", small.At(1, 1))
	}
}

func TestSampleBilinear(t *testing.T) {
	img := New(2, 1)
	img.Set(0, 0, color.RGBA{R: 0})
	img.Set(1, 0, color.RGBA{R: 200})

	r, _, _ := img.sample(0.5, 0)
	if r != 100 {
		t.Errorf("midpoint sample = %d, want 100", r)
	}
	r, _, _ = img.sample(-3, 0)
	if r != 0 {
		t.Errorf("clamped sample = %d, want 0", r)
	}
}
