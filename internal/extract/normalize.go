package extract

import (
	"regexp"
	"strings"
)

var (
	reCRLF  = regexp.MustCompile(`\r\n?`)
	reSpace = regexp.MustCompile(`[ \t]+`)
)

// SplitLines splits raw OCR text into normalized lines. Empty input
// yields an empty slice, never an error.
func SplitLines(raw string) []string {
	if raw == "" {
		return nil
	}
	raw = reCRLF.ReplaceAllString(raw, "\n")
	return NormalizeLines(strings.Split(raw, "\n"))
}

// NormalizeLines trims surrounding whitespace, collapses internal runs
// of whitespace to a single space, and drops lines that are empty after
// trimming. Original line order is preserved; case is preserved
// (downstream matchers compare case-insensitively).
func NormalizeLines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		ln = strings.TrimSpace(reSpace.ReplaceAllString(ln, " "))
		if ln == "" {
			continue
		}
		out = append(out, ln)
	}
	return out
}
