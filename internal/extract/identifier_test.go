package extract

import (
	"testing"
)

func scanIdentifier(lines ...string) (string, bool) {
	return newIdentifierScanner(DefaultConfig()).scan(lines)
}

func TestIdentifierScan(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
		found bool
	}{
		{"labeled hash", []string{"Receipt #12345"}, "12345", true},
		{"invoice with prefix code", []string{"Invoice #INV-98231"}, "INV-98231", true},
		{"invoice no colon", []string{"Invoice No: 12345"}, "12345", true},
		{"receipt number word", []string{"Receipt Number 12345"}, "12345", true},
		{"order id", []string{"Order ID 7781-A"}, "7781-A", true},
		{"standalone prefixed", []string{"RCPT-12345"}, "RCPT-12345", true},
		{"reference label", []string{"Reference 4521X"}, "4521X", true},
		{"transaction label", []string{"Transaction: T100234"}, "T100234", true},
		{"first labeled wins", []string{"Invoice #A100", "Receipt #B200"}, "A100", true},
		{"date shaped rejected", []string{"12/15/2023"}, "", false},
		{"labeled date rejected", []string{"Receipt date 12/15/2023"}, "", false},
		{"zip alone never a candidate", []string{"90210"}, "", false},
		{"bare hash zip rejected", []string{"#90210"}, "", false},
		{"labeled five digits kept", []string{"Receipt #90210"}, "90210", true},
		{"bare year rejected", []string{"Order 2023"}, "", false},
		{"phone shaped rejected", []string{"Ref 555-867-5309"}, "", false},
		{"too short rejected", []string{"Receipt #A1"}, "", false},
		{"no digit rejected", []string{"Invoice ABC"}, "", false},
		{"nothing labeled", []string{"Latte $4.25", "Total $4.75"}, "", false},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := scanIdentifier(tt.lines...)
			if found != tt.found || got != tt.want {
				t.Errorf("scan(%v) = %q %v, want %q %v", tt.lines, got, found, tt.want, tt.found)
			}
		})
	}
}
