package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherRequiresRoots(t *testing.T) {
	if _, _, err := StartWatcher(context.Background(), WatchConfig{}); err == nil {
		t.Error("expected error when no roots are configured")
	}
}

func TestWatcherInitialScan(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "old.pdf")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}, InitialScan: true})
	if err != nil {
		t.Fatalf("StartWatcher: %v", err)
	}

	select {
	case got := <-evCh:
		if got != existing {
			t.Errorf("event = %s, want %s", got, existing)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for initial-scan event")
	}
}

func TestWatcherDebouncesRapidWrites(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{dir},
		Debounce: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("StartWatcher: %v", err)
	}

	// a burst of writes to the same file must surface it exactly once
	path := filepath.Join(dir, "incoming.pdf")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("chunk"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case got := <-evCh:
		if got != path {
			t.Errorf("event = %s, want %s", got, path)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for debounced event")
	}

	// the burst was coalesced: no second event follows
	select {
	case got, ok := <-evCh:
		if ok {
			t.Errorf("unexpected extra event %s", got)
		}
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherIgnoresUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}})
	if err != nil {
		t.Fatalf("StartWatcher: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got, ok := <-evCh:
		if ok {
			t.Errorf("unexpected event for unsupported file: %s", got)
		}
	case <-time.After(300 * time.Millisecond):
	}
}
