package ocr

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmarceau/receiptscan/constants"
)

// minTextLayerBytes decides whether a pdftotext result is a usable text
// layer or just scanner noise worth re-OCRing.
const minTextLayerBytes = 32

func (e *Extractor) extractPDF(ctx context.Context, path string) (TextResult, error) {
	// Try the embedded text layer first; born-digital PDFs skip
	// rasterization entirely.
	text, pages, warns, err := e.pdfToText(ctx, path)
	if err == nil && len(strings.TrimSpace(text)) >= minTextLayerBytes {
		return TextResult{
			Text:       text,
			Pages:      pages,
			SourceType: constants.PDF,
			Method:     "pdf-text",
			Language:   e.cfg.TesseractLang,
			Warnings:   warns,
			Confidence: 0.95,
		}, nil
	}
	if err != nil {
		warns = append(warns, err.Error())
	}

	text, pages, ocrWarns, err := e.pdfToOCR(ctx, path)
	warns = append(warns, ocrWarns...)
	if err != nil {
		return TextResult{SourceType: constants.PDF, Warnings: warns}, err
	}
	return TextResult{
		Text:       text,
		Pages:      pages,
		SourceType: constants.PDF,
		Method:     "pdf-ocr",
		Language:   e.cfg.TesseractLang,
		Warnings:   warns,
		Confidence: heuristicConfidence(text),
	}, nil
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}
	text = string(out)
	// A form-feed \f is used as page separator by default
	pages = 1 + strings.Count(text, "\f")
	return text, pages, nil, nil
}

func (e *Extractor) pdfToOCR(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	matches, cleanup, warns, err := e.rasterizePDF(ctx, path, 0, 0)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return "", 0, warns, err
	}
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}

	var b strings.Builder
	for _, img := range matches {
		input := img
		if !e.cfg.DisablePreprocess {
			if prepped, c, perr := preprocessToFile(img); perr == nil {
				defer c()
				input = prepped
			}
		}
		txt, w, err := e.tesseractOCR(ctx, input, 0)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n") // keep a clear page break marker
		}
		b.WriteString(txt)
		warns = append(warns, w...)
	}
	return b.String(), len(matches), warns, nil
}

// renderPages invokes pdftoppm to render a page range into dir and
// returns the sorted PNG paths. firstPage/lastPage of 0 mean "all pages".
func (e *Extractor) renderPages(ctx context.Context, path, dir string, firstPage, lastPage int) ([]string, []string, error) {
	prefix := filepath.Join(dir, "page")
	args := []string{"-r", fmt.Sprintf("%d", e.cfg.DPI), "-png"}
	if firstPage > 0 {
		args = append(args, "-f", fmt.Sprintf("%d", firstPage))
	}
	if lastPage > 0 {
		args = append(args, "-l", fmt.Sprintf("%d", lastPage))
	}
	args = append(args, path, prefix)

	// pdftoppm -r 300 -png <in.pdf> <dir/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, args...)
	if err != nil {
		return nil, []string{string(errb)}, err
	}

	matches := globPages(dir)
	if len(matches) == 0 {
		return nil, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}
	return matches, nil, nil
}
