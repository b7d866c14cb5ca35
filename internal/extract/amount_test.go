package extract

import (
	"testing"
)

func scanAmount(lines ...string) (string, bool) {
	v, ok := newAmountScanner(DefaultConfig()).scan(lines)
	if !ok {
		return "", false
	}
	return v.StringFixed(2), true
}

func TestAmountScan(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
		found bool
	}{
		{"keyworded total wins over larger subtotal", []string{"Subtotal $50.00", "Total $4.75"}, "4.75", true},
		{"largest wins without keywords", []string{"$12.00", "$3.00"}, "12.00", true},
		{"keyword on same line", []string{"Total: 4.75"}, "4.75", true},
		{"keyword on preceding line", []string{"Amount Due", "18.40"}, "18.40", true},
		{"bare number without keyword ignored", []string{"4.75"}, "", false},
		{"thousands separators", []string{"Total $1,234.56"}, "1234.56", true},
		{"zero rejected", []string{"Total $0.00"}, "", false},
		{"receipt flow", []string{"Latte $4.25", "Tax $0.50", "Total $4.75"}, "4.75", true},
		{"no candidates", []string{"Thank you", "Come again"}, "", false},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := scanAmount(tt.lines...)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if got != tt.want && tt.found {
				t.Errorf("amount = %s, want %s", got, tt.want)
			}
		})
	}
}

// Keyword weighting is monotonic: with or without the keyword, a sole
// (or largest) candidate still wins.
func TestAmountKeywordMonotonic(t *testing.T) {
	withKeyword, ok1 := scanAmount("Total: $50.00")
	plain, ok2 := scanAmount("$50.00")
	if !ok1 || !ok2 {
		t.Fatalf("expected both variants found, got %v %v", ok1, ok2)
	}
	if withKeyword != plain || withKeyword != "50.00" {
		t.Errorf("got %s and %s, want 50.00 for both", withKeyword, plain)
	}
}

// Documented heuristic limitation: with no keyword anywhere, a large
// distractor beats the true total.
func TestAmountLargestDistractor(t *testing.T) {
	got, ok := scanAmount("$99.99", "$4.75")
	if !ok || got != "99.99" {
		t.Errorf("amount = %s %v, want 99.99 (largest-wins fallback)", got, ok)
	}
}
