package extract

import (
	"regexp"
	"strings"
)

// identifierScanner finds labeled receipt/invoice/order numbers and
// filters out shapes that are really something else (dates, phone
// numbers, ZIP codes, bare years).
type identifierScanner struct {
	labeled  *regexp.Regexp
	prefixed *regexp.Regexp
	hash     *regexp.Regexp
	phone    *regexp.Regexp
	zip      *regexp.Regexp
	year     *regexp.Regexp
	digit    *regexp.Regexp
}

func newIdentifierScanner(cfg Config) *identifierScanner {
	labels := make([]string, 0, len(cfg.IdentifierLabels))
	for _, l := range cfg.IdentifierLabels {
		labels = append(labels, regexp.QuoteMeta(l))
	}
	prefixes := make([]string, 0, len(cfg.IdentifierPrefixes))
	for _, p := range cfg.IdentifierPrefixes {
		prefixes = append(prefixes, regexp.QuoteMeta(p))
	}
	return &identifierScanner{
		// "Receipt #12345", "Invoice No: 12345", "Receipt Number 12345"
		labeled: regexp.MustCompile(`(?i)\b(?:` + strings.Join(labels, "|") +
			`)\b\s*(?:no\.?|num(?:ber)?|id)?\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`),
		// "RCPT-12345" standalone; the whole token is the identifier
		prefixed: regexp.MustCompile(`(?i)\b((?:` + strings.Join(prefixes, "|") + `)-[A-Za-z0-9-]+)\b`),
		// bare "#12345" marker
		hash:  regexp.MustCompile(`#\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`),
		phone: regexp.MustCompile(`\(?\d{3}\)?[-.\s]\d{3}[-.\s]?\d{4}`),
		zip:   regexp.MustCompile(`^\d{5}(-\d{4})?$`),
		year:  regexp.MustCompile(`^(19|20)\d{2}$`),
		digit: regexp.MustCompile(`\d`),
	}
}

// scan returns the first surviving candidate in document order: the
// earliest labeled identifier is assumed most authoritative, later
// numbers are often line-item SKUs.
func (s *identifierScanner) scan(lines []string) (string, bool) {
	type rule struct {
		re *regexp.Regexp
		// a bare # marker is weak context: ZIP-shaped codes are
		// rejected there but kept after an explicit label word
		// ("Receipt #12345" is the canonical receipt number)
		weak bool
	}
	rules := []rule{{s.labeled, false}, {s.prefixed, false}, {s.hash, true}}
	for _, ln := range lines {
		for _, r := range rules {
			for _, m := range r.re.FindAllStringSubmatch(ln, -1) {
				if code, ok := s.accept(m[1], r.weak); ok {
					return code, true
				}
			}
		}
	}
	return "", false
}

// accept applies the shape requirements and false-positive rejections.
func (s *identifierScanner) accept(code string, weak bool) (string, bool) {
	code = strings.Trim(code, "-")
	if len(code) < 3 || !s.digit.MatchString(code) {
		return "", false
	}
	switch {
	case matchesDate(code):
		return "", false
	case s.phone.MatchString(code):
		return "", false
	case weak && s.zip.MatchString(code):
		return "", false
	case s.year.MatchString(code):
		return "", false
	}
	return code, true
}
