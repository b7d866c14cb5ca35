package ocr

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestBinarize(t *testing.T) {
	src := imaging.New(2, 1, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 200, B: 200, A: 255})

	got := binarize(src, 128)
	if got.GrayAt(0, 0).Y != 0 {
		t.Errorf("dark pixel = %d, want 0", got.GrayAt(0, 0).Y)
	}
	if got.GrayAt(1, 0).Y != 255 {
		t.Errorf("light pixel = %d, want 255", got.GrayAt(1, 0).Y)
	}
}

func TestPreprocessUpscalesSmallImages(t *testing.T) {
	src := imaging.New(100, 200, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	out := PreprocessForOCR(src)

	b := out.Bounds()
	short := b.Dx()
	if b.Dy() < short {
		short = b.Dy()
	}
	if short < minOCRDimension {
		t.Errorf("short side = %d, want >= %d", short, minOCRDimension)
	}
	// aspect ratio preserved
	if b.Dy() != 2*b.Dx() {
		t.Errorf("aspect ratio lost: %dx%d", b.Dx(), b.Dy())
	}
}

func TestPreprocessKeepsLargeImages(t *testing.T) {
	src := imaging.New(1000, 1500, color.NRGBA{A: 255})
	out := PreprocessForOCR(src)
	b := out.Bounds()
	if b.Dx() != 1000 || b.Dy() != 1500 {
		t.Errorf("size changed to %dx%d, want 1000x1500", b.Dx(), b.Dy())
	}
}

func TestPreprocessOutputIsBlackAndWhite(t *testing.T) {
	src := imaging.New(900, 900, color.NRGBA{R: 90, G: 90, B: 90, A: 255})
	out := PreprocessForOCR(src)
	gray, ok := out.(*image.Gray)
	if !ok {
		t.Fatalf("output type = %T, want *image.Gray", out)
	}
	for _, y := range []int{0, 450, 899} {
		v := gray.GrayAt(450, y).Y
		if v != 0 && v != 255 {
			t.Errorf("pixel (450,%d) = %d, want 0 or 255", y, v)
		}
	}
}
