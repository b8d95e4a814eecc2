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
	"image"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ImagePDFConverter embeds a raster image on a single A4 PDF page, scaled
// to fit the printable area and centered. gofpdf reads PNG, JPEG and GIF
// natively; other rasters reach PDF through a PNG step.
type ImagePDFConverter struct{}

func NewImagePDFConverter() *ImagePDFConverter { return &ImagePDFConverter{} }

func (c *ImagePDFConverter) Available() bool { return true }

func (c *ImagePDFConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	cfg, err := imageSize(inputPath)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	const margin = 20.0
	w, h := fitBox(float64(cfg.Width), float64(cfg.Height), pageW-2*margin, pageH-2*margin)
	x := (pageW - w) / 2
	y := (pageH - h) / 2

	pdf.Image(inputPath, x, y, w, h, false, "", 0, "")
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// ImageImportConverter builds a PDF from an image with pdfcpu's importer,
// which sizes the page to the image. It is the alternate image -> pdf
// route, and the only direct tif -> pdf edge since gofpdf cannot embed
// TIFF.
type ImageImportConverter struct{}

func NewImageImportConverter() *ImageImportConverter { return &ImageImportConverter{} }

func (c *ImageImportConverter) Available() bool { return true }

func (c *ImageImportConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	if err := api.ImportImagesFile([]string{inputPath}, outputPath, nil, nil); err != nil {
		return fmt.Errorf("pdfcpu import: %w", err)
	}
	return nil
}

func imageSize(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, fmt.Errorf("read image size: %w", err)
	}
	return cfg, nil
}

// fitBox scales (w, h) to fit inside (maxW, maxH) preserving aspect ratio.
func fitBox(w, h, maxW, maxH float64) (float64, float64) {
	scale := maxW / w
	if s := maxH / h; s < scale {
		scale = s
	}
	return w * scale, h * scale
}
