package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// reCurrency matches an optional dollar sign, digit groups with optional
// thousands separators, and exactly two fractional digits.
var reCurrency = regexp.MustCompile(`(\$)?\s*(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})\b`)

// amountCandidate is one currency-shaped match with its ranking signal.
type amountCandidate struct {
	value    decimal.Decimal
	rawMatch string
	score    float64
}

// amountScanner scores currency-shaped substrings by keyword proximity
// and magnitude, then picks one winner.
type amountScanner struct {
	keywords      *regexp.Regexp
	keywordWeight float64
}

func newAmountScanner(cfg Config) *amountScanner {
	return &amountScanner{
		keywords:      wordSetPattern(cfg.AmountKeywords),
		keywordWeight: cfg.KeywordWeight,
	}
}

// scan selects the highest-scoring candidate: any candidate on (or just
// below) a keyword line beats every plain candidate; within a tier the
// largest magnitude wins; on equal score the earliest match is kept.
// Receipts list subtotal, tax, and total -- the total is typically both
// keyworded and the maximum.
func (s *amountScanner) scan(lines []string) (decimal.Decimal, bool) {
	var best amountCandidate
	found := false

	for i, ln := range lines {
		keyworded := s.keywords.MatchString(ln) ||
			(i > 0 && s.keywords.MatchString(lines[i-1]))

		for _, m := range reCurrency.FindAllStringSubmatch(ln, -1) {
			hasSymbol := m[1] == "$"
			// symbol-less numbers only qualify near a keyword,
			// otherwise quantities and weights leak in
			if !hasSymbol && !keyworded {
				continue
			}
			v, err := decimal.NewFromString(strings.ReplaceAll(m[2], ",", ""))
			if err != nil || !v.IsPositive() {
				continue
			}
			mag, _ := v.Float64()
			score := mag
			if keyworded {
				score += s.keywordWeight
			}
			if !found || score > best.score {
				best = amountCandidate{value: v, rawMatch: m[0], score: score}
				found = true
			}
		}
	}
	if !found {
		return decimal.Decimal{}, false
	}
	return best.value, true
}
