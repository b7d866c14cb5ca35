package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmarceau/receiptscan/constants"
	"github.com/dmarceau/receiptscan/internal/common"
	"github.com/dmarceau/receiptscan/internal/extract"
	"github.com/dmarceau/receiptscan/internal/ocr"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		vendor = flag.String("vendor", "", "vendor name to use instead of extracting one")
		debug  = flag.Bool("debug", false, "dump raw OCR text and enable debug logging")
	)
	flag.Usage = func() {
		printError("Usage: extract-receipt [flags] <file>\n\n")
		printError("Extracts vendor, date, amount, and receipt/invoice number from a receipt file.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if _, err := os.Stat(path); err != nil {
		printError("Error: file not found: %s\n", path)
		os.Exit(1)
	}
	if !constants.IsSupportedFile(path) {
		printError("Error: unsupported file format: %s (supported: pdf and common image formats)\n", path)
		os.Exit(1)
	}

	cfg := common.LoadConfig()

	rules, err := extract.LoadRules(cfg.Extract.RulesPath)
	if err != nil {
		printError("Error: could not load extraction rules: %v\n", err)
		os.Exit(1)
	}
	rules.DayFirst = cfg.Extract.DayFirst

	extractor := ocr.NewExtractor(ocr.Config{
		Pdftotext:        cfg.OCR.Pdftotext,
		Pdftoppm:         cfg.OCR.Pdftoppm,
		Tesseract:        cfg.OCR.Tesseract,
		TesseractLang:    cfg.OCR.Language,
		DPI:              cfg.OCR.DPI,
		MaxPages:         cfg.OCR.MaxPages,
		TessdataDir:      cfg.OCR.TessdataDir,
		HeicConverter:    cfg.OCR.HeicConverter,
		ArtifactCacheDir: cfg.OCR.ArtifactCacheDir,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OCR.Timeout)
	defer cancel()

	text, err := extractor.FullText(ctx, path)
	if err != nil {
		var appErr *common.AppError
		switch {
		case errors.Is(err, common.ErrToolingMissing):
			printError("Error: %v\n", err)
			printError("Install tesseract (and poppler's pdftotext/pdftoppm for PDFs) and ensure they are on PATH.\n")
		case errors.As(err, &appErr):
			printError("Error: %s (%s)\n", appErr.Message, appErr.Code)
		default:
			printError("Error: OCR failed for %s: %v\n", path, err)
		}
		os.Exit(1)
	}
	if *debug {
		printError("--- raw OCR text (%s, %d pages) ---\n%s\n--- end ---\n",
			text.Method, text.Pages, text.Text)
	}

	doc := extract.Document{FullText: extract.SplitLines(text.Text)}
	if *vendor == "" {
		// header pass is best-effort; vendor falls back to full text
		if header, herr := extractor.HeaderText(ctx, path); herr != nil {
			logger.Warn("header region ocr failed", "path", path, "error", herr)
		} else if header != nil {
			doc.HeaderText = header
			doc.HasHeader = true
		}
	}

	engine := extract.NewEngine(rules, logger)
	result := engine.Extract(doc)

	printField := func(label, value string, found bool) {
		if !found {
			value = "Not found"
		}
		fmt.Printf("%s: %s\n", label, value)
	}

	if *vendor != "" {
		printField("Vendor", *vendor, true)
	} else {
		printField("Vendor", result.Vendor.Value, result.Vendor.Found)
	}
	printField("Transaction Date", result.Date.String(), result.Date.Found)
	amount := result.Amount.String()
	if result.Amount.Found {
		amount = "$" + amount
	}
	printField("Transaction Amount", amount, result.Amount.Found)
	printField("Receipt/Invoice Number", result.Identifier.Value, result.Identifier.Found)
}
