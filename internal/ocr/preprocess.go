package ocr

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// minOCRDimension is the minimum short-side size in pixels. Tesseract
// accuracy drops off sharply below roughly 300 DPI scans, so smaller
// images are upscaled before recognition.
const minOCRDimension = 800

const binarizeThreshold = 128

// PreprocessForOCR prepares a decoded image for Tesseract: grayscale,
// upscale if too small, contrast stretch, sharpen, then threshold
// binarization to separate text from background.
func PreprocessForOCR(img image.Image) image.Image {
	g := imaging.Grayscale(img)

	b := g.Bounds()
	short := b.Dx()
	if b.Dy() < short {
		short = b.Dy()
	}
	if short > 0 && short < minOCRDimension {
		scale := float64(minOCRDimension) / float64(short)
		g = imaging.Resize(g, int(float64(b.Dx())*scale), int(float64(b.Dy())*scale), imaging.Lanczos)
	}

	g = imaging.AdjustContrast(g, 50)
	g = imaging.Sharpen(g, 1.0)
	return binarize(g, binarizeThreshold)
}

// binarize maps every pixel to pure black or white around the threshold.
func binarize(src *image.NRGBA, threshold uint8) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// source is already grayscale, any channel works
			v := src.NRGBAAt(x, y).R
			if v > threshold {
				dst.SetGray(x, y, color.Gray{Y: 255})
			} else {
				dst.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return dst
}

// preprocessToFile decodes path (honoring EXIF orientation), runs
// PreprocessForOCR and writes a temporary PNG Tesseract can consume.
// Returns (outPath, cleanup, err).
func preprocessToFile(path string) (string, func(), error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", nil, fmt.Errorf("decode image: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "rs-prep-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	out := filepath.Join(tmpDir, "prep.png")
	if err := imaging.Save(PreprocessForOCR(img), out); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("write preprocessed image: %w", err)
	}
	return out, cleanup, nil
}
