package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monthsByName maps English month names and 3-letter abbreviations to
// their calendar number.
var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "jun": time.June, "jul": time.July,
	"aug": time.August, "sep": time.September, "sept": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

const monthAlt = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

var (
	// Numeric A/B/C with 1-2 digit groups and a 2- or 4-digit year in
	// any position; separators / - .
	reNumericDate = regexp.MustCompile(`\b(\d{1,4})[/\-.](\d{1,2})[/\-.](\d{2,4})\b`)

	// "December 15, 2023" / "Dec 15 2023"
	reMonthDayYear = regexp.MustCompile(`(?i)\b(` + monthAlt + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)

	// "15 December 2023"
	reDayMonthYear = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthAlt + `),?\s+(\d{4})\b`)
)

// dateScanner finds date-shaped substrings and converts the first
// calendar-valid one, in document order, to a canonical date.
type dateScanner struct {
	dayFirst bool
}

func newDateScanner(cfg Config) *dateScanner {
	return &dateScanner{dayFirst: cfg.DayFirst}
}

// scan returns the first valid date in document order. Within a line the
// numeric family has priority over the textual families.
func (s *dateScanner) scan(lines []string) (time.Time, bool) {
	for _, ln := range lines {
		for _, m := range reNumericDate.FindAllStringSubmatch(ln, -1) {
			if t, ok := s.parseNumeric(m[1], m[2], m[3]); ok {
				return t, true
			}
		}
		for _, m := range reMonthDayYear.FindAllStringSubmatch(ln, -1) {
			if t, ok := parseTextual(m[1], m[2], m[3]); ok {
				return t, true
			}
		}
		for _, m := range reDayMonthYear.FindAllStringSubmatch(ln, -1) {
			if t, ok := parseTextual(m[2], m[1], m[3]); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// parseNumeric resolves the group layout:
//   - a 4-digit first group is the year (YYYY/MM/DD);
//   - a 4-digit last group is the year regardless of position;
//   - a first group > 12 must be the day (day-first for that match);
//   - otherwise month-first unless configured day-first.
//
// Calendar-invalid combinations are discarded as non-matches.
func (s *dateScanner) parseNumeric(a, b, c string) (time.Time, bool) {
	av, _ := strconv.Atoi(a)
	bv, _ := strconv.Atoi(b)
	cv, _ := strconv.Atoi(c)

	var year, month, day int
	switch {
	case len(a) == 4:
		year, month, day = av, bv, cv
	case len(a) == 3 || len(c) == 3:
		return time.Time{}, false
	default:
		year = expandYear(cv, len(c))
		switch {
		case av > 12:
			day, month = av, bv
		case bv > 12:
			month, day = av, bv
		case s.dayFirst:
			day, month = av, bv
		default:
			month, day = av, bv
		}
	}
	return makeDate(year, month, day)
}

func parseTextual(monthName, dayStr, yearStr string) (time.Time, bool) {
	m, ok := monthsByName[strings.ToLower(monthName)]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(dayStr)
	year, _ := strconv.Atoi(yearStr)
	t, valid := makeDate(year, int(m), day)
	if !valid {
		return time.Time{}, false
	}
	return t, true
}

// expandYear widens a 2-digit year with the strptime pivot:
// 00-68 -> 2000s, 69-99 -> 1900s.
func expandYear(y, width int) int {
	if width == 4 {
		return y
	}
	if y <= 68 {
		return 2000 + y
	}
	return 1900 + y
}

// makeDate validates against calendar rules (month range, days in month,
// leap-year February) and returns midnight UTC.
func makeDate(year, month, day int) (time.Time, bool) {
	if year < 1000 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	if day > daysInMonth(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

func daysInMonth(year, month int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC).Day()
}

// matchesDate reports whether s contains a date-shaped substring in any
// supported layout. Used for vendor-line and identifier rejection.
func matchesDate(s string) bool {
	return reNumericDate.MatchString(s) ||
		reMonthDayYear.MatchString(s) ||
		reDayMonthYear.MatchString(s)
}
