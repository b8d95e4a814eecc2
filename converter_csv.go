package convctl

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVMarkdownConverter renders a CSV file as a Markdown table, decoding
// the bytes to UTF-8 first. The first record is treated as the header and
// fixes the column count.
type CSVMarkdownConverter struct{}

func NewCSVMarkdownConverter() *CSVMarkdownConverter { return &CSVMarkdownConverter{} }

func (c *CSVMarkdownConverter) Available() bool { return true }

func (c *CSVMarkdownConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	r := csv.NewReader(strings.NewReader(decodeText(data)))
	r.FieldsPerRecord = -1 // allow ragged rows
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("parse csv: %w", err)
	}

	return writeMarkdown(outputPath, normalizeMarkdown(renderMarkdownTable(records)))
}

// renderMarkdownTable renders records as a markdown table. The header row
// determines the number of columns; short rows pad with empty cells.
func renderMarkdownTable(records [][]string) string {
	if len(records) == 0 {
		return ""
	}

	numCols := len(records[0])

	var b strings.Builder

	b.WriteString("| ")
	for i := 0; i < numCols; i++ {
		b.WriteString(records[0][i])
		b.WriteString(" | ")
	}
	b.WriteString("\n")

	b.WriteString("| ")
	for i := 0; i < numCols; i++ {
		b.WriteString("--- | ")
	}
	b.WriteString("\n")

	for _, row := range records[1:] {
		b.WriteString("| ")
		for i := 0; i < numCols; i++ {
			if i < len(row) {
				b.WriteString(row[i])
			}
			b.WriteString(" | ")
		}
		b.WriteString("\n")
	}

	return b.String()
}
