package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the keyword lists and scoring knobs for the four
// extractors. Lists are plain data so tests (and deployments with odd
// receipt vocabularies) can substitute their own.
type Config struct {
	// VendorBoilerplate are whole words that disqualify a line from
	// being a vendor name.
	VendorBoilerplate []string `yaml:"vendor_boilerplate"`

	// StreetTokens are whole words that mark a line as an address.
	StreetTokens []string `yaml:"street_tokens"`

	// VendorScanLines caps how far into the full text the vendor
	// fallback scan reaches.
	VendorScanLines int `yaml:"vendor_scan_lines"`

	// MinVendorLen / MaxVendorLen bound the plausible business-name length.
	MinVendorLen int `yaml:"min_vendor_len"`
	MaxVendorLen int `yaml:"max_vendor_len"`

	// AmountKeywords mark a line (or the line above a candidate) as
	// total-like.
	AmountKeywords []string `yaml:"amount_keywords"`

	// KeywordWeight is added to a candidate's score when a keyword is
	// nearby. It is large enough that any keyworded candidate outranks
	// any plain one; magnitude only breaks ties within a tier.
	KeywordWeight float64 `yaml:"keyword_weight"`

	// IdentifierLabels introduce a receipt/invoice number on a line.
	IdentifierLabels []string `yaml:"identifier_labels"`

	// IdentifierPrefixes are abbreviations accepted when hyphen-joined
	// to the code itself (e.g. RCPT-12345).
	IdentifierPrefixes []string `yaml:"identifier_prefixes"`

	// DayFirst switches ambiguous numeric dates (both groups <= 12)
	// from the month-first default to day-first.
	DayFirst bool `yaml:"day_first"`
}

// DefaultConfig returns the stock rule set for US-style English receipts.
func DefaultConfig() Config {
	return Config{
		VendorBoilerplate: []string{
			"receipt", "invoice", "transaction", "date", "time",
			"total", "subtotal", "tax", "amount", "due", "balance",
			"charge", "change", "cashier", "register", "thank you",
			"welcome", "store", "location", "tel", "phone", "fax",
			"email", "web", "customer", "copy",
		},
		StreetTokens: []string{
			"street", "st", "avenue", "ave", "road", "rd",
			"boulevard", "blvd", "drive", "dr", "lane", "ln", "way",
			"court", "ct", "plaza", "plz", "suite", "ste", "unit",
			"apt", "apartment", "highway", "hwy", "floor", "fl",
		},
		VendorScanLines: 10,
		MinVendorLen:    3,
		MaxVendorLen:    64,
		AmountKeywords:  []string{"total", "amount", "due", "balance", "charge"},
		KeywordWeight:   1e9,
		IdentifierLabels: []string{
			"receipt", "invoice", "order", "transaction", "ref", "reference",
		},
		IdentifierPrefixes: []string{"RCPT", "INV", "ORD"},
	}
}

// LoadRules reads a YAML rules file over the defaults. Unset fields keep
// their default values.
func LoadRules(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read rules: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse rules: %w", err)
	}
	if cfg.VendorScanLines <= 0 {
		cfg.VendorScanLines = 10
	}
	if cfg.KeywordWeight <= 0 {
		cfg.KeywordWeight = 1e9
	}
	return cfg, nil
}
