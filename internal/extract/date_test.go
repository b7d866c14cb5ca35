package extract

import (
	"testing"
	"time"
)

func scanDate(t *testing.T, dayFirst bool, lines ...string) (time.Time, bool) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DayFirst = dayFirst
	return newDateScanner(cfg).scan(lines)
}

func TestDateScan(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
		found bool
	}{
		{"numeric month first", []string{"12/15/2023"}, "2023-12-15", true},
		{"first group over 12 is day", []string{"15/03/2024"}, "2024-03-15", true},
		{"ambiguous defaults month first", []string{"03/04/2024"}, "2024-03-04", true},
		{"year first", []string{"2023-12-15"}, "2023-12-15", true},
		{"dot separators", []string{"15.03.2024"}, "2024-03-15", true},
		{"two digit year", []string{"12/15/23"}, "2023-12-15", true},
		{"two digit year pivot", []string{"12/15/99"}, "1999-12-15", true},
		{"textual month day year", []string{"December 15, 2023"}, "2023-12-15", true},
		{"textual abbreviated", []string{"Dec 15 2023"}, "2023-12-15", true},
		{"textual day month year", []string{"15 December 2023"}, "2023-12-15", true},
		{"first match in document order wins", []string{"12/15/2023", "01/01/2024"}, "2023-12-15", true},
		{"invalid month discarded", []string{"13/13/2023", "12/15/2023"}, "2023-12-15", true},
		{"invalid day discarded", []string{"02/30/2023"}, "", false},
		{"leap year accepted", []string{"02/29/2024"}, "2024-02-29", true},
		{"non leap february rejected", []string{"02/29/2023"}, "", false},
		{"no date", []string{"Latte $4.25", "Thank you"}, "", false},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := scanDate(t, false, tt.lines...)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if found && got.Format("2006-01-02") != tt.want {
				t.Errorf("date = %s, want %s", got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestDateScanDayFirst(t *testing.T) {
	got, found := scanDate(t, true, "03/04/2024")
	if !found || got.Format("2006-01-02") != "2024-04-03" {
		t.Errorf("day-first 03/04/2024 = %v %v, want 2024-04-03", got, found)
	}
}

func TestDateRoundTrip(t *testing.T) {
	// any extracted date, re-parsed as YYYY-MM-DD, yields the same day
	inputs := []string{"7/4/2021", "15 March 1998", "Feb 29, 2020", "2019/1/2"}
	for _, in := range inputs {
		got, found := scanDate(t, false, in)
		if !found {
			t.Fatalf("no date found in %q", in)
		}
		rendered := got.Format("2006-01-02")
		back, err := time.ParseInLocation("2006-01-02", rendered, time.UTC)
		if err != nil {
			t.Fatalf("re-parse %q: %v", rendered, err)
		}
		if !back.Equal(got) {
			t.Errorf("round trip %q: %v != %v", in, back, got)
		}
	}
}

func TestMatchesDate(t *testing.T) {
	for _, s := range []string{"12/15/2023", "2023-12-15", "Dec 15, 2023", "15 December 2023"} {
		if !matchesDate(s) {
			t.Errorf("matchesDate(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"INV-98231", "90210", "total $4.75"} {
		if matchesDate(s) {
			t.Errorf("matchesDate(%q) = true, want false", s)
		}
	}
}
