package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const maxComponentLength = 50

var (
	reInvalidChars = regexp.MustCompile(`[/\\:*?"<>|]`)
	reSqueeze      = regexp.MustCompile(`[_\s]+`)
	reAmountValue  = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// SanitizeFilename makes a value safe for use as a filename component:
// invalid characters become underscores, runs of whitespace and
// underscores collapse, and the result is truncated to 50 characters
// (runes, not bytes). Empty input comes back as "unknown".
func SanitizeFilename(text string) string {
	if text == "" {
		return "unknown"
	}
	s := reInvalidChars.ReplaceAllString(text, "_")
	s = reSqueeze.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_.")
	// truncate by rune so a multibyte vendor name stays valid UTF-8
	if runes := []rune(s); len(runes) > maxComponentLength {
		s = string(runes[:maxComponentLength])
	}
	if s == "" {
		return "unknown"
	}
	return s
}

// FormatAmount normalizes an amount string to "$XX.XX" for filenames.
// Commas and a leading dollar sign are stripped before validation;
// anything non-numeric yields "unknown_amount".
func FormatAmount(amount string) string {
	if amount == "" {
		return "unknown_amount"
	}
	v := strings.TrimSpace(strings.ReplaceAll(amount, "$", ""))
	v = strings.ReplaceAll(v, ",", "")
	if !reAmountValue.MatchString(v) {
		return "unknown_amount"
	}
	return "$" + v
}

// NewFilename builds the target basename for a processed receipt:
// {vendor}_{date}_{amount}{ext}. Missing fields fall back to labeled
// placeholders so partial extractions still produce usable names.
func NewFilename(originalPath, vendor, date, amount string) string {
	ext := filepath.Ext(originalPath)

	vendorPart := "unknown_vendor"
	if vendor != "" {
		vendorPart = SanitizeFilename(vendor)
	}
	datePart := "unknown_date"
	if date != "" {
		datePart = SanitizeFilename(date)
	}
	amountPart := FormatAmount(amount)

	return fmt.Sprintf("%s_%s_%s%s", vendorPart, datePart, amountPart, ext)
}

// Plan is a computed rename, resolved against what is on disk.
type Plan struct {
	Source string
	Target string
	NoOp   bool // target equals source, nothing to do
}

// PlanRename computes the collision-free target path for a file. When
// the preferred name is taken, a numeric counter is appended before the
// extension until a free name is found.
func PlanRename(path, vendor, date, amount string) Plan {
	dir := filepath.Dir(path)
	name := NewFilename(path, vendor, date, amount)
	target := filepath.Join(dir, name)

	if target == path {
		return Plan{Source: path, Target: target, NoOp: true}
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	counter := 1
	for {
		if _, err := os.Stat(target); os.IsNotExist(err) {
			break
		}
		target = filepath.Join(dir, base+"_"+strconv.Itoa(counter)+ext)
		counter++
	}
	return Plan{Source: path, Target: target}
}

// Apply performs the rename described by the plan. No-op plans return nil
// without touching the filesystem.
func (p Plan) Apply() error {
	if p.NoOp {
		return nil
	}
	if err := os.Rename(p.Source, p.Target); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(p.Source), err)
	}
	return nil
}
