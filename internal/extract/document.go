package extract

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is the text input for one receipt. Both text blocks are
// untrusted, lossy OCR output; no assumption is made about casing,
// punctuation, or line segmentation.
type Document struct {
	// FullText is the entire document's OCR output, one entry per line,
	// pages concatenated in page order.
	FullText []string

	// HeaderText is the output of a secondary OCR pass over the top
	// region of the first page. HasHeader distinguishes "header OCR was
	// never attempted" from "header OCR ran and found nothing".
	HeaderText []string
	HasHeader  bool
}

// StringField is a string-valued extraction outcome.
type StringField struct {
	Value string
	Found bool
}

// DateField is a calendar-date outcome. Value is midnight UTC.
type DateField struct {
	Value time.Time
	Found bool
}

// String renders the canonical YYYY-MM-DD form.
func (f DateField) String() string {
	if !f.Found {
		return ""
	}
	return f.Value.Format("2006-01-02")
}

// AmountField is a non-negative currency outcome with two fractional digits.
type AmountField struct {
	Value decimal.Decimal
	Found bool
}

// String renders the amount with exactly two fractional digits.
func (f AmountField) String() string {
	if !f.Found {
		return ""
	}
	return f.Value.StringFixed(2)
}

// Result holds the four extracted fields. Each field is resolved
// independently; a missing field never blocks the others.
type Result struct {
	Vendor     StringField
	Date       DateField
	Amount     AmountField
	Identifier StringField
}
