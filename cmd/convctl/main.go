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

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/Mayberyzen/convctl"
)

var version = "dev"

func main() {
	godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd, args := os.Args[1], os.Args[2:]

	// Ctrl-C cancels the context, which kills any running external tool
	// and lets the executor remove its step files before exiting.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd {
	case "convert":
		err = runConvert(ctx, args)
	case "merge":
		err = runMerge(args)
	case "split":
		err = runSplit(args)
	case "extract":
		err = runExtract(args)
	case "compress":
		err = runCompress(args)
	case "rotate":
		err = runRotate(args)
	case "watermark":
		err = runWatermark(args)
	case "images":
		err = runImages(ctx, args)
	case "formats":
		err = runFormats(args)
	case "doctor":
		err = runDoctor(ctx, args)
	case "version", "-v", "--version":
		fmt.Printf("convctl %s\n", version)
	case "help", "-h", "--help":
		usage()
	default:
		color.Red("unknown command %q", cmd)
		usage()
		os.Exit(1)
	}
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: convctl <command> [flags] [args]\n\n")
	fmt.Fprintf(os.Stderr, "Convert files between formats and manipulate PDFs.\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  convert    Convert a file, chaining conversions when needed\n")
	fmt.Fprintf(os.Stderr, "  merge      Merge PDFs into one\n")
	fmt.Fprintf(os.Stderr, "  split      Split a PDF into page chunks\n")
	fmt.Fprintf(os.Stderr, "  extract    Extract selected pages of a PDF\n")
	fmt.Fprintf(os.Stderr, "  compress   Optimize a PDF\n")
	fmt.Fprintf(os.Stderr, "  rotate     Rotate all pages of a PDF\n")
	fmt.Fprintf(os.Stderr, "  watermark  Stamp text across every page of a PDF\n")
	fmt.Fprintf(os.Stderr, "  images     Rasterize every PDF page to an image\n")
	fmt.Fprintf(os.Stderr, "  formats    List supported formats (or edges with -edges)\n")
	fmt.Fprintf(os.Stderr, "  doctor     Check which external tools are installed\n")
	fmt.Fprintf(os.Stderr, "  version    Print the version\n\n")
	fmt.Fprintf(os.Stderr, "Run 'convctl <command> -h' for command flags.\n")
}

// newFlagSet builds a flag set with the shared -v/-verbose flag.
func newFlagSet(name string) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	verbose := new(bool)
	fs.BoolVar(verbose, "v", false, "Enable debug logging")
	fs.BoolVar(verbose, "verbose", false, "Enable debug logging")
	return fs, verbose
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// stemPlus derives an output path beside the input: report.pdf -> report<suffix>.
func stemPlus(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

func runConvert(ctx context.Context, args []string) error {
	fs, verbose := newFlagSet("convert")
	var (
		from, to, out string
		tempDir       string
		dpi, quality  int
	)
	fs.StringVar(&from, "f", "", "Source format (default: derived from the input file)")
	fs.StringVar(&from, "from", "", "Source format (default: derived from the input file)")
	fs.StringVar(&to, "t", "", "Target format (default: derived from the output file)")
	fs.StringVar(&to, "to", "", "Target format (default: derived from the output file)")
	fs.StringVar(&out, "o", "", "Output file (default: input stem with the target extension)")
	fs.StringVar(&out, "output", "", "Output file (default: input stem with the target extension)")
	fs.StringVar(&tempDir, "tempdir", "", "Directory for intermediate step files")
	fs.IntVar(&dpi, "dpi", 0, "Rasterization DPI for PDF-to-image steps")
	fs.IntVar(&quality, "q", 0, "JPEG quality, 1-100")
	fs.IntVar(&quality, "quality", 0, "JPEG quality, 1-100")
	timeout := fs.Duration("timeout", 0, "Per-step timeout, e.g. 90s (default: none)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: convctl convert [flags] <input> [output]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)
	setupLogging(*verbose)

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("convert needs an input file")
	}
	input := fs.Arg(0)
	output := out
	if output == "" && fs.NArg() > 1 {
		output = fs.Arg(1)
	}
	if output == "" {
		if to == "" {
			return fmt.Errorf("specify an output file or -to format")
		}
		output = stemPlus(input, "."+convctl.ParseFormat(to).String())
	}

	var opts []convctl.Option
	if tempDir != "" {
		opts = append(opts, convctl.WithTempDir(tempDir))
	}
	if dpi > 0 {
		opts = append(opts, convctl.WithDPI(dpi))
	}
	if quality > 0 {
		opts = append(opts, convctl.WithJPEGQuality(quality))
	}
	if *timeout > 0 {
		opts = append(opts, convctl.WithStepTimeout(*timeout))
	}
	eng := convctl.New(opts...)

	res, err := eng.Convert(ctx, convctl.Request{
		InputPath:  input,
		OutputPath: output,
		Source:     convctl.Format(from),
		Target:     convctl.Format(to),
	})
	if err != nil {
		return err
	}
	if len(res.Path) > 1 {
		color.Cyan("via %s", res.Path.String())
	}
	color.Green("wrote %s", res.OutputPath)
	return nil
}

func runMerge(args []string) error {
	fs, verbose := newFlagSet("merge")
	var out string
	fs.StringVar(&out, "o", "merged.pdf", "Output file")
	fs.StringVar(&out, "output", "merged.pdf", "Output file")
	fs.Parse(args)
	setupLogging(*verbose)

	if fs.NArg() < 2 {
		return fmt.Errorf("merge needs at least two input PDFs")
	}
	if err := convctl.MergePDFs(fs.Args(), out); err != nil {
		return err
	}
	color.Green("wrote %s", out)
	return nil
}

func runSplit(args []string) error {
	fs, verbose := newFlagSet("split")
	var (
		span   int
		outDir string
	)
	fs.IntVar(&span, "s", 1, "Pages per output file")
	fs.IntVar(&span, "span", 1, "Pages per output file")
	fs.StringVar(&outDir, "d", "", "Output directory (default: <input stem>_pages)")
	fs.StringVar(&outDir, "outdir", "", "Output directory (default: <input stem>_pages)")
	fs.Parse(args)
	setupLogging(*verbose)

	if fs.NArg() != 1 {
		return fmt.Errorf("split needs one input PDF")
	}
	input := fs.Arg(0)
	dir := outDir
	if dir == "" {
		dir = stemPlus(input, "_pages")
	}
	files, err := convctl.SplitPDF(input, dir, span)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Println(f)
	}
	color.Green("split into %d files in %s", len(files), dir)
	return nil
}

func runExtract(args []string) error {
	fs, verbose := newFlagSet("extract")
	var pages, out string
	fs.StringVar(&pages, "p", "", "Page selection, e.g. 1-3,7 (required)")
	fs.StringVar(&pages, "pages", "", "Page selection, e.g. 1-3,7 (required)")
	fs.StringVar(&out, "o", "", "Output file (default: <input stem>_extracted.pdf)")
	fs.StringVar(&out, "output", "", "Output file (default: <input stem>_extracted.pdf)")
	fs.Parse(args)
	setupLogging(*verbose)

	if fs.NArg() != 1 {
		return fmt.Errorf("extract needs one input PDF")
	}
	if pages == "" {
		return fmt.Errorf("extract needs -pages")
	}
	input := fs.Arg(0)
	output := out
	if output == "" {
		output = stemPlus(input, "_extracted.pdf")
	}

	var selection []string
	for _, p := range strings.Split(pages, ",") {
		if p = strings.TrimSpace(p); p != "" {
			selection = append(selection, p)
		}
	}
	if err := convctl.ExtractPages(input, output, selection); err != nil {
		return err
	}
	color.Green("wrote %s", output)
	return nil
}

func runCompress(args []string) error {
	fs, verbose := newFlagSet("compress")
	var out string
	fs.StringVar(&out, "o", "", "Output file (default: <input stem>_compressed.pdf)")
	fs.StringVar(&out, "output", "", "Output file (default: <input stem>_compressed.pdf)")
	fs.Parse(args)
	setupLogging(*verbose)

	if fs.NArg() != 1 {
		return fmt.Errorf("compress needs one input PDF")
	}
	input := fs.Arg(0)
	output := out
	if output == "" {
		output = stemPlus(input, "_compressed.pdf")
	}
	if err := convctl.CompressPDF(input, output); err != nil {
		return err
	}
	if before, after := fileSize(input), fileSize(output); before > 0 && after > 0 {
		color.Green("wrote %s (%.1f%% of original size)", output, float64(after)/float64(before)*100)
	} else {
		color.Green("wrote %s", output)
	}
	return nil
}

func runRotate(args []string) error {
	fs, verbose := newFlagSet("rotate")
	var (
		degrees int
		out     string
	)
	fs.IntVar(&degrees, "d", 90, "Rotation in degrees, floored to a multiple of 90")
	fs.IntVar(&degrees, "degrees", 90, "Rotation in degrees, floored to a multiple of 90")
	fs.StringVar(&out, "o", "", "Output file (default: <input stem>_rotated.pdf)")
	fs.StringVar(&out, "output", "", "Output file (default: <input stem>_rotated.pdf)")
	fs.Parse(args)
	setupLogging(*verbose)

	if fs.NArg() != 1 {
		return fmt.Errorf("rotate needs one input PDF")
	}
	input := fs.Arg(0)
	output := out
	if output == "" {
		output = stemPlus(input, "_rotated.pdf")
	}
	if err := convctl.RotatePDF(input, output, degrees); err != nil {
		return err
	}
	color.Green("wrote %s", output)
	return nil
}

func runWatermark(args []string) error {
	fs, verbose := newFlagSet("watermark")
	var text, out string
	fs.StringVar(&text, "t", "", "Watermark text (required)")
	fs.StringVar(&text, "text", "", "Watermark text (required)")
	fs.StringVar(&out, "o", "", "Output file (default: <input stem>_watermarked.pdf)")
	fs.StringVar(&out, "output", "", "Output file (default: <input stem>_watermarked.pdf)")
	fs.Parse(args)
	setupLogging(*verbose)

	if fs.NArg() != 1 {
		return fmt.Errorf("watermark needs one input PDF")
	}
	if text == "" {
		return fmt.Errorf("watermark needs -text")
	}
	input := fs.Arg(0)
	output := out
	if output == "" {
		output = stemPlus(input, "_watermarked.pdf")
	}
	if err := convctl.WatermarkPDF(input, output, text); err != nil {
		return err
	}
	color.Green("wrote %s", output)
	return nil
}

func runImages(ctx context.Context, args []string) error {
	fs, verbose := newFlagSet("images")
	var (
		format, outDir string
		dpi            int
	)
	fs.StringVar(&format, "f", "png", "Image format: png or jpg")
	fs.StringVar(&format, "format", "png", "Image format: png or jpg")
	fs.StringVar(&outDir, "d", "", "Output directory (default: <input stem>_images)")
	fs.StringVar(&outDir, "outdir", "", "Output directory (default: <input stem>_images)")
	fs.IntVar(&dpi, "dpi", 0, "Rasterization DPI")
	fs.Parse(args)
	setupLogging(*verbose)

	if fs.NArg() != 1 {
		return fmt.Errorf("images needs one input PDF")
	}
	input := fs.Arg(0)
	dir := outDir
	if dir == "" {
		dir = stemPlus(input, "_images")
	}

	var opts []convctl.Option
	if dpi > 0 {
		opts = append(opts, convctl.WithDPI(dpi))
	}
	eng := convctl.New(opts...)

	files, err := eng.PDFToImages(ctx, input, dir, convctl.ParseFormat(format))
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Println(f)
	}
	color.Green("rasterized %d pages into %s", len(files), dir)
	return nil
}

func runFormats(args []string) error {
	fs, verbose := newFlagSet("formats")
	var showEdges bool
	fs.BoolVar(&showEdges, "e", false, "List every conversion edge")
	fs.BoolVar(&showEdges, "edges", false, "List every conversion edge")
	fs.Parse(args)
	setupLogging(*verbose)

	eng := convctl.New()
	if showEdges {
		for _, e := range eng.Graph().Edges() {
			fmt.Printf("%-5s -> %-5s  %s\n", e.Source, e.Target, e.Name)
		}
		return nil
	}
	for _, f := range eng.Formats() {
		fmt.Println(f)
	}
	return nil
}

func runDoctor(ctx context.Context, args []string) error {
	fs, verbose := newFlagSet("doctor")
	fs.Parse(args)
	setupLogging(*verbose)

	eng := convctl.New()
	missing := 0
	for _, st := range eng.Doctor(ctx) {
		if st.Available {
			line := st.Path
			if st.Version != "" {
				line += "  (" + st.Version + ")"
			}
			color.Green("ok       %-9s %s", st.Name, line)
		} else {
			missing++
			color.Yellow("missing  %-9s %s", st.Name, st.Hint)
		}
	}
	if missing > 0 {
		color.Cyan("%d tools missing; run 'convctl formats -edges' to see what is still available", missing)
	}
	color.Cyan("conversion graph: %d formats, %d edges", len(eng.Formats()), eng.Graph().EdgeCount())
	return nil
}

func fileSize(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}
