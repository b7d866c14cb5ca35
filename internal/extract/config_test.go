package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRulesDefaults(t *testing.T) {
	cfg, err := LoadRules("")
	if err != nil {
		t.Fatalf("LoadRules(\"\"): %v", err)
	}
	if len(cfg.AmountKeywords) == 0 || len(cfg.VendorBoilerplate) == 0 {
		t.Errorf("defaults missing keyword lists: %+v", cfg)
	}
	if cfg.VendorScanLines != 10 {
		t.Errorf("VendorScanLines = %d, want 10", cfg.VendorScanLines)
	}
}

func TestLoadRulesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := []byte("amount_keywords: [summe]\nday_first: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(cfg.AmountKeywords) != 1 || cfg.AmountKeywords[0] != "summe" {
		t.Errorf("AmountKeywords = %v, want [summe]", cfg.AmountKeywords)
	}
	if !cfg.DayFirst {
		t.Error("DayFirst = false, want true")
	}
	// untouched fields keep defaults
	if len(cfg.IdentifierLabels) == 0 {
		t.Error("IdentifierLabels lost its default")
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing rules file")
	}
}

// Substituted lists flow through to the extractors.
func TestCustomKeywordList(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AmountKeywords = []string{"summe"}
	s := newAmountScanner(cfg)
	v, ok := s.scan([]string{"Summe 12.50", "Total $99.00"})
	if !ok || v.StringFixed(2) != "12.50" {
		t.Errorf("amount = %v %v, want 12.50 under custom keyword list", v, ok)
	}
}
