// Copyright 2026 Mayberyzen
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package convctl

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFTextConverter extracts the text content of a PDF into a plain-text
// file. Extraction is layout-aware: row extraction with word-boundary
// detection first, then a position-based fallback that groups glyphs into
// lines by Y proximity and inserts spaces on X gaps.
type PDFTextConverter struct{}

func NewPDFTextConverter() *PDFTextConverter { return &PDFTextConverter{} }

func (c *PDFTextConverter) Available() bool { return true }

func (c *PDFTextConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	f, r, err := pdf.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var text strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText := strings.TrimSpace(c.pageText(page))
		if pageText == "" {
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n\n")
	}

	body := strings.TrimSpace(text.String())
	if body == "" {
		return fmt.Errorf("%s: no extractable text (image-only pdf?)", filepath.Base(inputPath))
	}

	w, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outputPath, err)
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(body)
	bw.WriteByte('\n')
	if err := bw.Flush(); err != nil {
		w.Close()
		return fmt.Errorf("write text: %w", err)
	}
	return w.Close()
}

// textSpan is a positioned run of text on a PDF page.
type textSpan struct {
	x    float64
	y    float64
	s    string
	size float64
}

// textLine groups spans sharing a baseline.
type textLine struct {
	y     float64
	spans []textSpan
}

// pageText extracts one page, preferring GetTextByRow for its word
// boundary detection and falling back to glyph positions.
func (c *PDFTextConverter) pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		var result strings.Builder
		for _, row := range rows {
			var line strings.Builder
			gap := false
			for _, word := range row.Content {
				if word.S == "" {
					// An empty run between words marks a boundary.
					gap = true
					continue
				}
				if line.Len() > 0 && gap && !strings.HasSuffix(line.String(), " ") {
					line.WriteString(" ")
				}
				line.WriteString(word.S)
				gap = false
			}
			if t := strings.TrimSpace(line.String()); t != "" {
				result.WriteString(t)
				result.WriteString("\n")
			}
		}
		if t := result.String(); strings.TrimSpace(t) != "" {
			return t
		}
	}

	// Fallback: group raw glyph runs into lines by Y proximity.
	content := page.Content()
	if len(content.Text) == 0 {
		return ""
	}

	var spans []textSpan
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		spans = append(spans, textSpan{x: t.X, y: t.Y, s: t.S, size: t.FontSize})
	}
	if len(spans) == 0 {
		return ""
	}

	yTolerance := 3.0
	if spans[0].size > 0 {
		yTolerance = spans[0].size * 0.3
	}

	var lines []textLine
	for _, sp := range spans {
		placed := false
		for i := range lines {
			if absf(lines[i].y-sp.y) < yTolerance {
				lines[i].spans = append(lines[i].spans, sp)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, textLine{y: sp.y, spans: []textSpan{sp}})
		}
	}

	// PDF coordinates grow upward, so higher Y comes first.
	sort.Slice(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	var result strings.Builder
	for _, ln := range lines {
		sort.Slice(ln.spans, func(i, j int) bool { return ln.spans[i].x < ln.spans[j].x })

		var line strings.Builder
		var lastX, lastWidth float64
		for i, sp := range ln.spans {
			if i > 0 {
				threshold := sp.size * 0.2
				if threshold < 1.0 {
					threshold = 1.0
				}
				if sp.x-(lastX+lastWidth) > threshold {
					line.WriteString(" ")
				}
			}
			line.WriteString(sp.s)
			lastX = sp.x
			lastWidth = float64(len([]rune(sp.s))) * sp.size * 0.55
		}

		if t := line.String(); strings.TrimSpace(t) != "" {
			result.WriteString(t)
			result.WriteString("\n")
		}
	}

	return result.String()
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
