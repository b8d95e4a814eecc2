package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/jung-kurt/gofpdf"

	"github.com/Mayberyzen/convctl"
)

// makePDF writes a PDF with the given number of pages.
func makePDF(t *testing.T, path string, pages int) {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.Cell(40, 10, fmt.Sprintf("Page %d", i))
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatal(err)
	}
}

// captureOutput routes the CLI's color output into a buffer for the
// duration of one test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := color.Output
	color.Output = &buf
	t.Cleanup(func() { color.Output = prev })
	return &buf
}

func TestConvertFlagSpellings(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(in, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "note.pdf")
	if err := runConvert(context.Background(), []string{"-f", "txt", "-t", "pdf", "-output", out, in}); err != nil {
		t.Fatalf("runConvert error: %v", err)
	}
	n, err := convctl.PageCount(out)
	if err != nil {
		t.Fatalf("PageCount(%s) error: %v", filepath.Base(out), err)
	}
	if n != 1 {
		t.Errorf("PageCount = %d, want 1", n)
	}
}

func TestConvertRefusesSameFile(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "note.txt")
	const content = "do not lose me\n"
	if err := os.WriteFile(in, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// Without -o the default output is the input stem plus the target
	// extension, which for a txt input and txt target is the input itself.
	if err := runConvert(context.Background(), []string{"-to", "txt", in}); err == nil {
		t.Fatal("converting a file onto itself should fail")
	}
	data, err := os.ReadFile(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != content {
		t.Errorf("input content changed to %q", data)
	}
}

func TestRotateFlagSpellings(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.pdf")
	makePDF(t, in, 1)

	out := filepath.Join(dir, "turned.pdf")
	if err := runRotate([]string{"-v", "-d", "180", "-output", out, in}); err != nil {
		t.Fatalf("runRotate error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestDoctorReportsGraphCounts(t *testing.T) {
	buf := captureOutput(t)
	if err := runDoctor(context.Background(), nil); err != nil {
		t.Fatalf("runDoctor error: %v", err)
	}

	eng := convctl.New()
	want := fmt.Sprintf("%d formats, %d edges", len(eng.Formats()), eng.Graph().EdgeCount())
	if !strings.Contains(buf.String(), want) {
		t.Errorf("doctor output missing graph summary %q:\n%s", want, buf.String())
	}
}
