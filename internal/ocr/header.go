package ocr

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/dmarceau/receiptscan/constants"
)

// HeaderText OCRs only the top region of the first page/image, where the
// business name or logo usually sits. Returns (nil, nil) when the region
// yields no usable text; the caller treats absence as non-fatal and the
// extraction engine falls back to full-text vendor detection.
func (e *Extractor) HeaderText(ctx context.Context, path string) ([]string, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))

	var src string
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		pages, cleanup, _, err := e.rasterizePDF(ctx, path, 1, 1)
		if cleanup != nil {
			defer cleanup()
		}
		if err != nil {
			return nil, fmt.Errorf("rasterize first page: %w", err)
		}
		src = pages[0]
		return e.headerFromImage(ctx, src)
	case constants.IMAGE:
		if constants.IsHEICExt(ext) {
			out, _, cleanup, err := convertHEICtoPNG(ctx, e.runner, e.cfg.HeicConverter, path)
			if cleanup != nil {
				defer cleanup()
			}
			if err != nil {
				return nil, err
			}
			path = out
		}
		return e.headerFromImage(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported extension: %q", ext)
	}
}

func (e *Extractor) headerFromImage(ctx context.Context, path string) ([]string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	headerHeight := int(float64(b.Dy()) * e.cfg.HeaderHeightPercent)
	if headerHeight < 1 {
		return nil, nil
	}
	crop := imaging.Crop(img, image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+headerHeight))

	tmpDir, err := os.MkdirTemp("", "rs-hdr-*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	out := filepath.Join(tmpDir, "header.png")
	if err := imaging.Save(PreprocessForOCR(crop), out); err != nil {
		return nil, fmt.Errorf("write header crop: %w", err)
	}

	// psm 6: assume a single uniform block of text, which suits
	// logos and title lines better than full page segmentation
	txt, _, err := e.tesseractOCR(ctx, out, 6)
	if err != nil {
		return nil, err
	}

	lines := splitNonEmpty(txt)
	if len(lines) == 0 {
		return nil, nil
	}
	e.logger.Debug("header region ocr", "path", path, "lines", len(lines))
	return lines, nil
}

func splitNonEmpty(txt string) []string {
	var out []string
	for _, ln := range strings.Split(txt, "\n") {
		if strings.TrimSpace(ln) != "" {
			out = append(out, ln)
		}
	}
	return out
}
