package extract

import (
	"log/slog"
)

// Engine orchestrates the four field extractors over one document's
// text. It is stateless between calls: Extract is a pure, total
// function of its input and never fails, however malformed the text.
type Engine struct {
	cfg    Config
	logger *slog.Logger

	vendor      *vendorFilter
	dates       *dateScanner
	amounts     *amountScanner
	identifiers *identifierScanner
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.VendorScanLines <= 0 {
		cfg.VendorScanLines = 10
	}
	if cfg.KeywordWeight <= 0 {
		cfg.KeywordWeight = 1e9
	}
	return &Engine{
		cfg:         cfg,
		logger:      logger,
		vendor:      newVendorFilter(cfg),
		dates:       newDateScanner(cfg),
		amounts:     newAmountScanner(cfg),
		identifiers: newIdentifierScanner(cfg),
	}
}

// Extract resolves each field independently over the same normalized
// line set; no field's outcome depends on another's. Every field is
// either a valid typed value or not-found.
func (e *Engine) Extract(doc Document) Result {
	lines := NormalizeLines(doc.FullText)
	header := NormalizeLines(doc.HeaderText)

	var res Result
	res.Vendor.Value, res.Vendor.Found = e.vendor.selectVendor(header, doc.HasHeader, lines)
	res.Date.Value, res.Date.Found = e.dates.scan(lines)
	res.Amount.Value, res.Amount.Found = e.amounts.scan(lines)
	res.Identifier.Value, res.Identifier.Found = e.identifiers.scan(lines)

	e.logger.Debug("extraction complete",
		"lines", len(lines),
		"header_lines", len(header),
		"vendor_found", res.Vendor.Found,
		"date_found", res.Date.Found,
		"amount_found", res.Amount.Found,
		"identifier_found", res.Identifier.Found,
	)
	return res
}
