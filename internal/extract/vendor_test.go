package extract

import (
	"testing"
)

func selectVendor(header []string, hasHeader bool, full []string) (string, bool) {
	return newVendorFilter(DefaultConfig()).selectVendor(header, hasHeader, full)
}

func TestVendorFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   string
		found  bool
	}{
		{"clean name", []string{"Starbucks Coffee"}, "Starbucks Coffee", true},
		{"skips address line", []string{"123 Main St", "Starbucks Coffee"}, "Starbucks Coffee", true},
		{"skips phone line", []string{"(555) 867-5309", "Trader Joe's"}, "Trader Joe's", true},
		{"skips url line", []string{"www.starbucks.com", "Starbucks Coffee"}, "Starbucks Coffee", true},
		{"skips email line", []string{"help@example.com", "Blue Bottle"}, "Blue Bottle", true},
		{"skips boilerplate", []string{"RECEIPT", "Thank you", "Blue Bottle"}, "Blue Bottle", true},
		{"skips single char line", []string{"S", "Starbucks"}, "Starbucks", true},
		{"skips pure punctuation", []string{"----", "#123", "Walgreens"}, "Walgreens", true},
		{"nothing survives", []string{"123 Main St", "(555) 867-5309", "90210"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := selectVendor(tt.header, true, nil)
			if found != tt.found || got != tt.want {
				t.Errorf("selectVendor = %q %v, want %q %v", got, found, tt.want, tt.found)
			}
		})
	}
}

func TestVendorFullTextFallback(t *testing.T) {
	full := []string{"Starbucks Coffee", "123 Main St", "Total $4.75"}

	// header present but all lines excluded -> fall back to full text
	header := []string{"123 Main St", "(555) 867-5309", "90210"}
	got, found := selectVendor(header, true, full)
	if !found || got != "Starbucks Coffee" {
		t.Errorf("fallback = %q %v, want Starbucks Coffee", got, found)
	}

	// header never attempted -> same path
	got, found = selectVendor(nil, false, full)
	if !found || got != "Starbucks Coffee" {
		t.Errorf("no-header = %q %v, want Starbucks Coffee", got, found)
	}
}

func TestVendorScanLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VendorScanLines = 2
	f := newVendorFilter(cfg)
	full := []string{"123 Main St", "90210", "Starbucks Coffee"}
	if got, found := f.selectVendor(nil, false, full); found {
		t.Errorf("expected not found beyond scan limit, got %q", got)
	}
}

func TestVendorNotFoundOnEmpty(t *testing.T) {
	if got, found := selectVendor(nil, false, nil); found {
		t.Errorf("expected not found on empty input, got %q", got)
	}
}

func TestPhoneLike(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"555-867-5309", true},
		{"(555) 867-5309", true},
		{"+44 20 7946 0958", true},
		{"Starbucks Coffee", false},
		{"Tel 5551234", true},
		{"$1,234.56", false},
	}
	for _, tt := range tests {
		if got := phoneLike(tt.in); got != tt.want {
			t.Errorf("phoneLike(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
