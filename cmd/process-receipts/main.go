package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dmarceau/receiptscan/constants"
	"github.com/dmarceau/receiptscan/internal/common"
	"github.com/dmarceau/receiptscan/internal/export"
	"github.com/dmarceau/receiptscan/internal/extract"
	"github.com/dmarceau/receiptscan/internal/history"
	"github.com/dmarceau/receiptscan/internal/ingest"
	"github.com/dmarceau/receiptscan/internal/ocr"
	"github.com/dmarceau/receiptscan/internal/rename"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

type processor struct {
	cfg       *common.Config
	logger    *slog.Logger
	extractor *ocr.Extractor
	engine    *extract.Engine
	store     *history.Store // nil when no history db configured
	vendor    string         // overrides extraction when non-empty
	dryRun    bool

	entries   []history.Entry
	succeeded int
	failed    int
	skipped   int
}

func main() {
	var (
		dir        = flag.String("dir", "", "directory containing receipt files (required)")
		vendor     = flag.String("vendor", "", "vendor name to use for all files (extracted per file when empty)")
		dryRun     = flag.Bool("dry-run", false, "preview renames without touching files")
		watch      = flag.Bool("watch", false, "keep running and process files as they appear")
		exportPath = flag.String("export", "", "write an XLSX summary of the run to this path")
		historyDB  = flag.String("history", "", "SQLite journal path; already-processed files are skipped (HISTORY_DB)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if *dir == "" {
		printError("Error: -dir is required\n")
		printError("Usage: process-receipts -dir <folder> [-vendor <name>] [-dry-run] [-watch] [-export <xlsx>] [-history <db>]\n")
		os.Exit(1)
	}
	info, err := os.Stat(*dir)
	if err != nil {
		printError("Error: folder not found: %s\n", *dir)
		os.Exit(1)
	}
	if !info.IsDir() {
		printError("Error: path is not a directory: %s\n", *dir)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	if *historyDB == "" {
		*historyDB = cfg.Batch.HistoryDB
	}

	rules, err := extract.LoadRules(cfg.Extract.RulesPath)
	if err != nil {
		printError("Error: could not load extraction rules: %v\n", err)
		os.Exit(1)
	}
	rules.DayFirst = cfg.Extract.DayFirst

	p := &processor{
		cfg:    cfg,
		logger: logger,
		extractor: ocr.NewExtractor(ocr.Config{
			Pdftotext:        cfg.OCR.Pdftotext,
			Pdftoppm:         cfg.OCR.Pdftoppm,
			Tesseract:        cfg.OCR.Tesseract,
			TesseractLang:    cfg.OCR.Language,
			DPI:              cfg.OCR.DPI,
			MaxPages:         cfg.OCR.MaxPages,
			TessdataDir:      cfg.OCR.TessdataDir,
			HeicConverter:    cfg.OCR.HeicConverter,
			ArtifactCacheDir: cfg.OCR.ArtifactCacheDir,
		}, logger),
		engine: extract.NewEngine(rules, logger),
		vendor: *vendor,
		dryRun: *dryRun,
	}

	if *historyDB != "" {
		store, err := history.Open(*historyDB, logger)
		if err != nil {
			printError("Error: could not open history database %s: %v\n", *historyDB, err)
			os.Exit(1)
		}
		defer func() { _ = store.Close() }()
		p.store = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, stats, err := ingest.DiscoverFiles(*dir, nil, true)
	if err != nil {
		printError("Error: could not scan %s: %v\n", *dir, err)
		os.Exit(1)
	}
	logger.Info("discovery complete",
		"dir", *dir, "scanned", stats.Scanned, "matched", stats.Matched, "skipped", stats.Skipped)

	if len(paths) == 0 && !*watch {
		printError("No supported receipt files found in %s\n", *dir)
		os.Exit(0)
	}
	if *dryRun {
		logger.Info("dry-run mode: no files will be renamed")
	}

	for _, path := range paths {
		p.processFile(ctx, path)
	}

	if *watch {
		logger.Info("watching for new files", "dir", *dir)
		// give slow writers time to finish before the file is OCR'd
		evCh, errCh, werr := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:    []string{*dir},
			Debounce: 2 * time.Second,
			Logger:   logger,
		})
		if werr != nil {
			printError("Error: could not start watcher: %v\n", werr)
			os.Exit(1)
		}
		for evCh != nil || errCh != nil {
			select {
			case path, ok := <-evCh:
				if !ok {
					evCh = nil
					continue
				}
				p.processFile(ctx, path)
			case werr, ok := <-errCh:
				if !ok {
					errCh = nil
					continue
				}
				logger.Error("watcher error", "error", werr)
			}
		}
	}

	if *exportPath != "" {
		// with a journal configured the export covers every recorded
		// run, not just this one
		entries := p.entries
		if p.store != nil {
			if all, err := p.store.Recent(context.WithoutCancel(ctx), 0); err != nil {
				logger.Warn("could not read journal for export, using this run only", "error", err)
			} else {
				entries = all
			}
		}
		if err := export.NewService(logger).WriteBatchXLSX(entries, *exportPath); err != nil {
			printError("Error: could not write export %s: %v\n", *exportPath, err)
			os.Exit(1)
		}
	}

	fmt.Printf("--- Summary ---\n")
	fmt.Printf("Successfully processed: %d\n", p.succeeded)
	fmt.Printf("Skipped (already processed): %d\n", p.skipped)
	fmt.Printf("Errors: %d\n", p.failed)
	if p.failed > 0 {
		os.Exit(1)
	}
}

// processFile runs extraction and rename for one file. Failures are
// recorded and logged; they never abort the batch.
func (p *processor) processFile(ctx context.Context, path string) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.OCR.Timeout)
	defer cancel()

	entry := history.Entry{OriginalPath: path}
	defer func() { p.record(ctx, entry) }()

	hash, err := history.HashFile(path)
	if err != nil {
		p.fail(&entry, fmt.Errorf("read file: %w", err))
		return
	}
	entry.ContentHash = hash

	if p.store != nil {
		seen, err := p.store.Seen(ctx, hash)
		if err != nil {
			p.logger.Warn("history lookup failed", "path", path, "error", err)
		} else if seen {
			p.logger.Info("skipping already-processed file", "path", path)
			entry.Status = constants.FileStatusSkipped
			p.skipped++
			return
		}
	}

	p.logger.Info("processing file", "path", filepath.Base(path))

	text, err := p.extractor.FullText(ctx, path)
	if err != nil {
		p.fail(&entry, fmt.Errorf("ocr: %w", err))
		return
	}

	doc := extract.Document{FullText: extract.SplitLines(text.Text)}
	if p.vendor == "" {
		if header, herr := p.extractor.HeaderText(ctx, path); herr != nil {
			p.logger.Warn("header region ocr failed", "path", path, "error", herr)
		} else if header != nil {
			doc.HeaderText = header
			doc.HasHeader = true
		}
	}

	result := p.engine.Extract(doc)

	entry.Vendor = p.vendor
	if entry.Vendor == "" && result.Vendor.Found {
		entry.Vendor = result.Vendor.Value
	}
	entry.Date = result.Date.String()
	if result.Amount.Found {
		entry.Amount = "$" + result.Amount.String()
	}
	if result.Identifier.Found {
		entry.Identifier = result.Identifier.Value
	}

	plan := rename.PlanRename(path, entry.Vendor, entry.Date, entry.Amount)
	entry.RenamedPath = plan.Target

	if p.dryRun {
		p.logger.Info("would rename",
			"from", filepath.Base(plan.Source), "to", filepath.Base(plan.Target))
		entry.Status = constants.FileStatusPlanned
		p.succeeded++
		return
	}

	if err := plan.Apply(); err != nil {
		p.fail(&entry, err)
		return
	}
	p.logger.Info("renamed",
		"from", filepath.Base(plan.Source), "to", filepath.Base(plan.Target))
	entry.Status = constants.FileStatusRenamed
	p.succeeded++
}

func (p *processor) fail(entry *history.Entry, err error) {
	p.logger.Error("file processing failed", "path", entry.OriginalPath, "error", err)
	entry.Status = constants.FileStatusFailed
	entry.ErrorMessage = err.Error()
	p.failed++
}

// record appends the outcome to the in-memory run log (for -export) and
// to the journal when one is configured.
func (p *processor) record(ctx context.Context, entry history.Entry) {
	if entry.Status == "" {
		return
	}
	p.entries = append(p.entries, entry)
	if p.store == nil || entry.ContentHash == "" {
		return
	}
	// journal the outcome even when the file's own deadline has expired
	ctx = context.WithoutCancel(ctx)
	if _, err := p.store.Record(ctx, entry); err != nil {
		p.logger.Warn("could not record history entry", "path", entry.OriginalPath, "error", err)
	}
}
