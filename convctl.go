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
	"log/slog"
)

// Engine is the file conversion engine: a format graph of registered
// converters plus the executor that runs resolved chains.
type Engine struct {
	graph       *FormatGraph
	executor    *Executor
	dpi         int
	jpegQuality int
	logger      *slog.Logger
}

// New creates an engine with the built-in converter set registered.
// Edges backed by external tools (LibreOffice, pandoc, poppler, mupdf,
// ffmpeg) join the graph only when their tool is installed, so the
// engine never offers a conversion it cannot execute.
func New(opts ...Option) *Engine {
	e := &Engine{
		graph:       NewFormatGraph(),
		executor:    NewExecutor(),
		dpi:         defaultDPI,
		jpegQuality: defaultJPEGQuality,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.registerBuiltins()
	return e
}

// Convert runs one conversion request end to end: derive the formats,
// resolve a path through the graph, execute it step by step.
func (e *Engine) Convert(ctx context.Context, req Request) (*Result, error) {
	return e.executor.Execute(ctx, e.graph, req)
}

// Resolve returns the path the engine would take from source to target
// without running it. Format names are normalized, so "jpeg" and "jpg"
// resolve identically.
func (e *Engine) Resolve(source, target Format) (Path, error) {
	return ResolvePath(e.graph, ParseFormat(string(source)), ParseFormat(string(target)))
}

// RegisterConverter adds a custom conversion edge. Lower priority values
// are tried first during path resolution. A converter reporting itself
// unavailable is skipped, keeping the graph limited to runnable edges.
func (e *Engine) RegisterConverter(source, target Format, name string, c Converter, priority float64) error {
	if !c.Available() {
		e.logger.Debug("converter unavailable, not registered",
			"converter", name, "from", source, "to", target)
		return nil
	}
	return e.graph.RegisterEdge(source, target, name, c, priority)
}

// Graph exposes the engine's format graph for inspection.
func (e *Engine) Graph() *FormatGraph { return e.graph }

// Formats returns every format the engine can currently read or write.
func (e *Engine) Formats() []Format { return e.graph.Formats() }

// registerBuiltins wires the built-in conversion edges. A registration
// failure here is a mistake in the edge table, so it panics.
func (e *Engine) registerBuiltins() {
	// Raster re-encoding across the image mesh (pure Go, always present).
	img := &ImageConverter{JPEGQuality: e.jpegQuality}
	for _, src := range imageSources {
		for _, dst := range imageTargets {
			if src == dst {
				continue
			}
			e.mustRegister(src, dst, "image", img, PriorityPreferred)
		}
	}

	// Images onto PDF pages: gofpdf first, pdfcpu's import as the
	// fallback and as the only TIFF route.
	imgPDF := NewImagePDFConverter()
	for _, src := range []Format{FormatPNG, FormatJPG, FormatGIF} {
		e.mustRegister(src, FormatPDF, "gofpdf", imgPDF, PriorityPreferred)
	}
	imp := NewImageImportConverter()
	for _, src := range []Format{FormatPNG, FormatJPG, FormatTIF} {
		e.mustRegister(src, FormatPDF, "pdfcpu-import", imp, PriorityFallback)
	}

	// Documents and tabular data (pure Go, always present).
	e.mustRegister(FormatPDF, FormatTXT, "pdf-text", NewPDFTextConverter(), PriorityPreferred)
	e.mustRegister(FormatTXT, FormatPDF, "text-pdf", NewTextPDFConverter(), PriorityPreferred)
	e.mustRegister(FormatHTML, FormatMD, "html-md", NewHTMLMarkdownConverter(), PriorityPreferred)
	e.mustRegister(FormatRSS, FormatMD, "rss-md", NewFeedMarkdownConverter(), PriorityPreferred)
	e.mustRegister(FormatCSV, FormatMD, "csv-md", NewCSVMarkdownConverter(), PriorityPreferred)
	e.mustRegister(FormatXLSX, FormatCSV, "xlsx-csv", NewXLSXCSVConverter(), PriorityPreferred)
	e.mustRegister(FormatXLS, FormatCSV, "xls-csv", NewXLSCSVConverter(), PriorityPreferred)

	// Tool-backed edges join only when the tool is on PATH.
	if office := NewOfficeConverter(FormatPDF); office.Available() {
		for _, src := range []Format{FormatDOCX, FormatDOC, FormatODT, FormatPPTX, FormatXLSX} {
			e.mustRegister(src, FormatPDF, "soffice", office, PriorityPreferred)
		}
		e.mustRegister(FormatPDF, FormatDOCX, "soffice", NewOfficeConverter(FormatDOCX), PriorityPreferred)
	}
	if pandoc := NewMarkdownPDFConverter(); pandoc.Available() {
		e.mustRegister(FormatMD, FormatPDF, "pandoc", pandoc, PriorityPreferred)
		e.mustRegister(FormatDOCX, FormatMD, "pandoc", NewDocxMarkdownConverter(), PriorityPreferred)
	}
	if poppler := NewPDFImageConverter(e.dpi); poppler.Available() {
		e.mustRegister(FormatPDF, FormatPNG, "pdftoppm", poppler, PriorityPreferred)
		e.mustRegister(FormatPDF, FormatJPG, "pdftoppm", poppler, PriorityPreferred)
	}
	if mutool := NewMutoolImageConverter(e.dpi); mutool.Available() {
		e.mustRegister(FormatPDF, FormatPNG, "mutool", mutool, PriorityFallback)
		e.mustRegister(FormatPDF, FormatJPG, "mutool", mutool, PriorityFallback)
	}
	if media := NewMediaConverter(); media.Available() {
		e.mustRegister(FormatMP4, FormatMP3, "ffmpeg", media, PriorityPreferred)
		e.mustRegister(FormatMP4, FormatWAV, "ffmpeg", media, PriorityPreferred)
		e.mustRegister(FormatWAV, FormatMP3, "ffmpeg", media, PriorityPreferred)
	}
}

func (e *Engine) mustRegister(source, target Format, name string, c Converter, priority float64) {
	if err := e.graph.RegisterEdge(source, target, name, c, priority); err != nil {
		panic(fmt.Sprintf("convctl: builtin edge %s -> %s via %s: %v", source, target, name, err))
	}
}
