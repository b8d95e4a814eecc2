package convctl

import (
	"context"

	"github.com/Mayberyzen/convctl/internal/tools"
)

// MarkdownPDFConverter renders Markdown to PDF with pandoc. It tries
// xelatex first for Unicode coverage and falls back to pandoc's default
// engine when no TeX installation is present.
type MarkdownPDFConverter struct{}

func NewMarkdownPDFConverter() *MarkdownPDFConverter { return &MarkdownPDFConverter{} }

func (c *MarkdownPDFConverter) Available() bool { return tools.Pandoc.Available() }

func (c *MarkdownPDFConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	err := tools.Pandoc.Run(ctx, inputPath, "-o", outputPath, "--pdf-engine=xelatex")
	if err == nil {
		return nil
	}
	return tools.Pandoc.Run(ctx, inputPath, "-o", outputPath)
}

// DocxMarkdownConverter extracts DOCX content as Markdown with pandoc.
// Besides being useful on its own, it gives office documents a route
// into the text pipeline on machines without LibreOffice: docx -> md
// -> pdf resolves whenever pandoc is present.
type DocxMarkdownConverter struct{}

func NewDocxMarkdownConverter() *DocxMarkdownConverter { return &DocxMarkdownConverter{} }

func (c *DocxMarkdownConverter) Available() bool { return tools.Pandoc.Available() }

func (c *DocxMarkdownConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	return tools.Pandoc.Run(ctx, inputPath, "-o", outputPath, "-t", "gfm")
}
