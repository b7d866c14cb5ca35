package ocr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// rasterizePDF renders pages to PNGs. firstPage/lastPage of 0 mean "all
// pages". Without an artifact cache the render goes to a temp dir that
// cleanup removes. With ArtifactCacheDir set, renders are kept on disk
// keyed by the source file's identity, a full render satisfies any later
// range request (the header pass reuses page one), and cleanup is a
// no-op. Caller must invoke cleanup when non-nil.
func (e *Extractor) rasterizePDF(ctx context.Context, path string, firstPage, lastPage int) ([]string, func(), []string, error) {
	if e.cfg.ArtifactCacheDir == "" {
		tmpDir, err := os.MkdirTemp("", "rs-pp-*")
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup := func() { _ = os.RemoveAll(tmpDir) }
		pages, warns, err := e.renderPages(ctx, path, tmpDir, firstPage, lastPage)
		return pages, cleanup, warns, err
	}

	keep := func() {}

	// a full render covers any requested range
	if full, err := e.cachedDir(path, "all"); err == nil {
		if pages := globPages(full); len(pages) > 0 {
			e.logger.Debug("raster cache hit", "path", path, "pages", len(pages))
			return slicePages(pages, firstPage, lastPage), keep, nil, nil
		}
	}

	sub := "all"
	if firstPage > 0 || lastPage > 0 {
		sub = fmt.Sprintf("p%d-%d", firstPage, lastPage)
	}
	dir, err := e.cachedDir(path, sub)
	if err != nil {
		return nil, nil, nil, err
	}
	if pages := globPages(dir); len(pages) > 0 {
		e.logger.Debug("raster cache hit", "path", path, "pages", len(pages))
		return pages, keep, nil, nil
	}

	pages, warns, err := e.renderPages(ctx, path, dir, firstPage, lastPage)
	return pages, keep, warns, err
}

// cachedDir returns the cache slot for one render of path, creating it
// if needed. The key covers absolute path, size, and mtime so an edited
// file re-renders instead of hitting a stale slot.
func (e *Extractor) cachedDir(path, sub string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%d", abs, info.Size(), info.ModTime().UnixNano()))
	dir := filepath.Join(e.cfg.ArtifactCacheDir, hex.EncodeToString(sum[:8]), sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// globPages collects rendered pages (page-1.png, page-2.png, ...) in
// page order.
func globPages(dir string) []string {
	matches, _ := filepath.Glob(filepath.Join(dir, "page-*.png"))
	sort.Strings(matches)
	return matches
}

// slicePages narrows a full render to a 1-based page range.
func slicePages(pages []string, firstPage, lastPage int) []string {
	if firstPage <= 0 {
		firstPage = 1
	}
	if lastPage <= 0 || lastPage > len(pages) {
		lastPage = len(pages)
	}
	if firstPage > lastPage {
		return nil
	}
	return pages[firstPage-1 : lastPage]
}
