package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmarceau/receiptscan/internal/common"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(root, n)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscoverFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"a.pdf",
		"b.jpg",
		"notes.txt",
		"sub/c.png",
		".hidden/d.pdf",
		".DS_Store",
	)

	paths, stats, err := DiscoverFiles(root, nil, true)
	if err != nil {
		t.Fatalf("DiscoverFiles: %v", err)
	}
	if stats.Matched != 3 {
		t.Errorf("matched = %d, want 3 (%v)", stats.Matched, paths)
	}
	got := map[string]bool{}
	for _, p := range paths {
		rel, _ := filepath.Rel(root, p)
		got[filepath.ToSlash(rel)] = true
	}
	for _, want := range []string{"a.pdf", "b.jpg", "sub/c.png"} {
		if !got[want] {
			t.Errorf("missing %s in %v", want, paths)
		}
	}
	if got[".hidden/d.pdf"] {
		t.Error("hidden directory was not skipped")
	}
}

func TestDiscoverFilesIncludesHiddenWhenAsked(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, ".hidden/d.pdf")

	paths, _, err := DiscoverFiles(root, nil, false)
	if err != nil {
		t.Fatalf("DiscoverFiles: %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("paths = %v, want the hidden pdf", paths)
	}
}

func TestDiscoverFilesCustomExts(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.pdf", "b.jpg")

	paths, stats, err := DiscoverFiles(root, []string{".PDF"}, false)
	if err != nil {
		t.Fatalf("DiscoverFiles: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "a.pdf" {
		t.Errorf("paths = %v, want only a.pdf", paths)
	}
	if stats.Skipped == 0 {
		t.Error("expected b.jpg to be counted as skipped")
	}
}

func TestDiscoverFilesEmptyRoot(t *testing.T) {
	_, _, err := DiscoverFiles("  ", nil, false)
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestIsHidden(t *testing.T) {
	if !IsHidden("/x/.git") || IsHidden("/x/receipts") {
		t.Error("IsHidden misclassified paths")
	}
}
