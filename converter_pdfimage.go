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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Mayberyzen/convctl/internal/tools"
)

const defaultDPI = 200

// PDFImageConverter rasterizes the first page of a PDF with poppler's
// pdftoppm. Whole-document rasterization is exposed separately through
// Engine.PDFToImages.
type PDFImageConverter struct {
	DPI int
}

func NewPDFImageConverter(dpi int) *PDFImageConverter {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	return &PDFImageConverter{DPI: dpi}
}

func (c *PDFImageConverter) Available() bool { return tools.Pdftoppm.Available() }

func (c *PDFImageConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	flag, err := popplerFormatFlag(FormatFromPath(outputPath))
	if err != nil {
		return err
	}
	// pdftoppm appends the extension itself, so pass the bare prefix.
	prefix := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	return tools.Pdftoppm.Run(ctx,
		flag,
		"-r", strconv.Itoa(c.DPI),
		"-f", "1", "-l", "1",
		"-singlefile",
		inputPath, prefix,
	)
}

func popplerFormatFlag(f Format) (string, error) {
	switch f {
	case FormatPNG:
		return "-png", nil
	case FormatJPG:
		return "-jpeg", nil
	default:
		return "", fmt.Errorf("pdftoppm: no rasterizer for %q", f)
	}
}

// MutoolImageConverter rasterizes the first page of a PDF with mupdf's
// mutool draw, which picks the image codec from the output extension.
// It registers behind poppler as the fallback rasterizer.
type MutoolImageConverter struct {
	DPI int
}

func NewMutoolImageConverter(dpi int) *MutoolImageConverter {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	return &MutoolImageConverter{DPI: dpi}
}

func (c *MutoolImageConverter) Available() bool { return tools.Mutool.Available() }

func (c *MutoolImageConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	return tools.Mutool.Run(ctx,
		"draw",
		"-r", strconv.Itoa(c.DPI),
		"-o", outputPath,
		inputPath,
		"1",
	)
}
