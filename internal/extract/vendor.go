package extract

import (
	"regexp"
	"strings"
)

// vendorFilter rejects lines that cannot be a business name and picks
// the first survivor. Exclusion-by-pattern is used because vendor names
// share no reliable shape, but boilerplate/address/contact lines do.
type vendorFilter struct {
	scanLines   int
	minLen      int
	maxLen      int
	boilerplate *regexp.Regexp
	street      *regexp.Regexp
	streetNum   *regexp.Regexp
	urlOrEmail  *regexp.Regexp
	zip         *regexp.Regexp
	timeOfDay   *regexp.Regexp
	alphaToken  *regexp.Regexp
	digitsPunct *regexp.Regexp
}

func newVendorFilter(cfg Config) *vendorFilter {
	return &vendorFilter{
		scanLines:   cfg.VendorScanLines,
		minLen:      cfg.MinVendorLen,
		maxLen:      cfg.MaxVendorLen,
		boilerplate: wordSetPattern(cfg.VendorBoilerplate),
		street:      wordSetPattern(cfg.StreetTokens),
		streetNum:   regexp.MustCompile(`^\d{1,6}\s+\pL`),
		urlOrEmail:  regexp.MustCompile(`(?i)https?://|www\.|@|\.(com|net|org|co|io|gov|edu)\b`),
		zip:         regexp.MustCompile(`\b\d{5}(-\d{4})?\b`),
		timeOfDay:   regexp.MustCompile(`\b\d{1,2}:\d{2}(:\d{2})?\s*([AaPp][Mm])?\b`),
		alphaToken:  regexp.MustCompile(`[A-Za-z]{2,}`),
		digitsPunct: regexp.MustCompile(`^[\d\s\-/.:#*]+$`),
	}
}

// wordSetPattern compiles a case-insensitive whole-word alternation.
func wordSetPattern(words []string) *regexp.Regexp {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	if len(quoted) == 0 {
		// matches nothing
		return regexp.MustCompile(`\b\z[^\s\S]`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// selectVendor runs the header lines first, then falls back to the top
// of the full text. Returns ("", false) when nothing survives.
func (f *vendorFilter) selectVendor(header []string, hasHeader bool, full []string) (string, bool) {
	if hasHeader {
		if v, ok := f.firstSurvivor(header, len(header)); ok {
			return v, true
		}
	}
	return f.firstSurvivor(full, f.scanLines)
}

func (f *vendorFilter) firstSurvivor(lines []string, limit int) (string, bool) {
	if limit > len(lines) {
		limit = len(lines)
	}
	for _, ln := range lines[:limit] {
		if f.excluded(ln) {
			continue
		}
		if f.plausible(ln) {
			return ln, true
		}
	}
	return "", false
}

func (f *vendorFilter) excluded(line string) bool {
	switch {
	case phoneLike(line):
		return true
	case f.urlOrEmail.MatchString(line):
		return true
	case f.zip.MatchString(line):
		return true
	case f.street.MatchString(line) || f.streetNum.MatchString(line):
		return true
	case f.boilerplate.MatchString(line):
		return true
	case matchesDate(line) || f.timeOfDay.MatchString(line):
		return true
	}
	return false
}

func (f *vendorFilter) plausible(line string) bool {
	if len(line) < f.minLen || len(line) > f.maxLen {
		return false
	}
	if f.digitsPunct.MatchString(line) {
		return false
	}
	return f.alphaToken.MatchString(line)
}

var rePhoneRun = regexp.MustCompile(`[\d()+\-. ]{7,}`)

// phoneLike reports whether the line contains a run of 7-15 digits with
// optional separators, the shape of a phone number.
func phoneLike(line string) bool {
	for _, run := range rePhoneRun.FindAllString(line, -1) {
		digits := 0
		for _, r := range run {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 7 && digits <= 15 {
			return true
		}
	}
	return false
}
