package export

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dmarceau/receiptscan/internal/history"
)

// Service produces XLSX workbooks summarizing a batch run.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BatchXLSX returns an XLSX workbook (as bytes) with one row per
// processed file: the extracted fields plus the rename outcome.
func (s *Service) BatchXLSX(entries []history.Entry) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Receipts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// drop the default sheet excelize creates
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 && sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Original File",
		"Vendor",
		"Transaction Date",
		"Transaction Amount",
		"Receipt/Invoice Number",
		"Status",
		"Renamed To",
		"Error",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, e.OriginalPath)
		write(2, e.Vendor)
		write(3, e.Date)
		write(4, e.Amount)
		write(5, e.Identifier)
		write(6, string(e.Status))
		write(7, e.RenamedPath)
		write(8, e.ErrorMessage)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Debug("batch export built", "rows", len(entries), "duration", time.Since(start))
	return buf.Bytes(), nil
}

// WriteBatchXLSX builds the workbook and writes it to path.
func (s *Service) WriteBatchXLSX(entries []history.Entry, path string) error {
	b, err := s.BatchXLSX(entries)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	s.logger.Info("batch export written", "path", path, "rows", len(entries))
	return nil
}
