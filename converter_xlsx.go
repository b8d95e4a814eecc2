package convctl

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// XLSXCSVConverter extracts the first non-empty worksheet of an XLSX
// workbook as CSV. CSV carries a single table, so additional sheets are
// ignored.
type XLSXCSVConverter struct{}

func NewXLSXCSVConverter() *XLSXCSVConverter { return &XLSXCSVConverter{} }

func (c *XLSXCSVConverter) Available() bool { return true }

func (c *XLSXCSVConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	f, err := excelize.OpenFile(inputPath)
	if err != nil {
		return fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		return writeCSV(outputPath, rows)
	}

	return fmt.Errorf("%s: workbook has no data", filepath.Base(inputPath))
}

// writeCSV writes records to path with standard CSV quoting.
func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	for _, row := range records {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	return f.Close()
}
