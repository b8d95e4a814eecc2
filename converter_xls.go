package convctl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/extrame/xls"
)

// XLSCSVConverter handles legacy XLS workbooks, emitting the first
// non-empty sheet as CSV.
type XLSCSVConverter struct{}

func NewXLSCSVConverter() *XLSCSVConverter { return &XLSCSVConverter{} }

func (c *XLSCSVConverter) Available() bool { return true }

func (c *XLSCSVConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	wb, err := xls.Open(inputPath, "utf-8")
	if err != nil {
		return fmt.Errorf("open xls: %w", err)
	}

	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}

		var rows [][]string
		maxRow := int(sheet.MaxRow)
		for rowIdx := 0; rowIdx <= maxRow; rowIdx++ {
			row := sheet.Row(rowIdx)
			if row == nil {
				continue
			}
			var cells []string
			lastCol := row.LastCol()
			for colIdx := 0; colIdx < lastCol; colIdx++ {
				cells = append(cells, row.Col(colIdx))
			}
			rows = append(rows, cells)
		}

		if len(rows) == 0 {
			continue
		}
		return writeCSV(outputPath, rows)
	}

	return fmt.Errorf("%s: workbook has no data", filepath.Base(inputPath))
}
