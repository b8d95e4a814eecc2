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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/Mayberyzen/convctl/internal/tools"
)

// watermarkDesc is the pdfcpu watermark description applied by
// WatermarkPDF: a large diagonal gray stamp at 30% opacity.
const watermarkDesc = "font:Helvetica, points:48, col: 0.5 0.5 0.5, rot:45, op:.3, sc:1 abs"

// MergePDFs concatenates two or more PDFs into outputPath in the order
// given.
func MergePDFs(inputPaths []string, outputPath string) error {
	if len(inputPaths) < 2 {
		return fmt.Errorf("merge requires at least two inputs, got %d", len(inputPaths))
	}
	if err := api.MergeCreateFile(inputPaths, outputPath, false, nil); err != nil {
		return fmt.Errorf("merge pdfs: %w", err)
	}
	return nil
}

// SplitPDF splits a PDF into chunks of span pages each, written to
// outputDir, and returns the produced files in page order.
func SplitPDF(inputPath, outputDir string, span int) ([]string, error) {
	if span < 1 {
		return nil, fmt.Errorf("split span must be at least 1, got %d", span)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := api.SplitFile(inputPath, outputDir, span, nil); err != nil {
		return nil, fmt.Errorf("split pdf: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	matches, err := filepath.Glob(filepath.Join(outputDir, stem+"_*.pdf"))
	if err != nil {
		return nil, err
	}
	sort.Slice(matches, func(i, j int) bool {
		return splitStartPage(matches[i]) < splitStartPage(matches[j])
	})
	return matches, nil
}

// splitStartPage parses the first page number from split output names
// like report_3.pdf or report_3-4.pdf.
func splitStartPage(path string) int {
	name := strings.TrimSuffix(filepath.Base(path), ".pdf")
	if i := strings.LastIndex(name, "_"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "-"); i >= 0 {
		name = name[:i]
	}
	n, _ := strconv.Atoi(name)
	return n
}

// ExtractPages writes a PDF containing only the selected pages.
// Selectors use pdfcpu syntax, e.g. "3" or "1-3" or "even".
func ExtractPages(inputPath, outputPath string, pages []string) error {
	if len(pages) == 0 {
		return fmt.Errorf("extract requires a page selection")
	}
	if err := api.TrimFile(inputPath, outputPath, pages, nil); err != nil {
		return fmt.Errorf("extract pages: %w", err)
	}
	return nil
}

// CompressPDF rewrites a PDF with pdfcpu's optimizer, dropping unused
// objects and deduplicating resources.
func CompressPDF(inputPath, outputPath string) error {
	if err := api.OptimizeFile(inputPath, outputPath, nil); err != nil {
		return fmt.Errorf("compress pdf: %w", err)
	}
	return nil
}

// RotatePDF rotates every page by the given degrees, wrapped into
// [0, 360) and floored to a right angle. A zero net rotation degenerates
// to a plain copy.
func RotatePDF(inputPath, outputPath string, degrees int) error {
	rotation := (((degrees % 360) + 360) % 360) / 90 * 90
	if rotation == 0 {
		return copyFile(inputPath, outputPath)
	}
	if err := api.RotateFile(inputPath, outputPath, rotation, nil, nil); err != nil {
		return fmt.Errorf("rotate pdf: %w", err)
	}
	return nil
}

// WatermarkPDF stamps text diagonally across every page.
func WatermarkPDF(inputPath, outputPath, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("watermark text must not be empty")
	}
	if err := api.AddTextWatermarksFile(inputPath, outputPath, nil, false, text, watermarkDesc, nil); err != nil {
		return fmt.Errorf("watermark pdf: %w", err)
	}
	return nil
}

// PageCount reports the number of pages in a PDF.
func PageCount(inputPath string) (int, error) {
	n, err := api.PageCountFile(inputPath)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return n, nil
}

// PDFToImages rasterizes every page of a PDF into outputDir, one image
// per page, and returns the produced files in page order. It prefers
// poppler and falls back to mutool.
func (e *Engine) PDFToImages(ctx context.Context, inputPath, outputDir string, target Format) ([]string, error) {
	if target != FormatPNG && target != FormatJPG {
		return nil, fmt.Errorf("pdf rasterization supports png and jpg, got %q", target)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	prefix := filepath.Join(outputDir, stem)

	switch {
	case tools.Pdftoppm.Available():
		flag, err := popplerFormatFlag(target)
		if err != nil {
			return nil, err
		}
		err = tools.Pdftoppm.Run(ctx, flag, "-r", strconv.Itoa(e.dpi), inputPath, prefix)
		if err != nil {
			return nil, err
		}
	case tools.Mutool.Available():
		err := tools.Mutool.Run(ctx,
			"draw",
			"-r", strconv.Itoa(e.dpi),
			"-o", prefix+"-%d."+string(target),
			inputPath,
		)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("pdf rasterization needs pdftoppm or mutool on PATH")
	}

	matches, err := filepath.Glob(prefix + "-*." + string(target))
	if err != nil {
		return nil, err
	}
	// pdftoppm zero-pads page numbers, so a lexical sort is page order.
	// mutool output is sorted numerically by the parsed suffix.
	sort.Slice(matches, func(i, j int) bool {
		pi, pj := pageSuffix(matches[i]), pageSuffix(matches[j])
		if pi != pj {
			return pi < pj
		}
		return matches[i] < matches[j]
	})
	return matches, nil
}

// pageSuffix parses the page number from names like scan-07.png.
func pageSuffix(path string) int {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if i := strings.LastIndex(name, "-"); i >= 0 {
		name = name[i+1:]
	}
	n, _ := strconv.Atoi(name)
	return n
}
