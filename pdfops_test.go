package convctl

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/Mayberyzen/convctl/internal/tools"
)

// makePDF writes a PDF with the given number of pages, each carrying a
// "Page N" line.
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

func mustPageCount(t *testing.T, path string, want int) {
	t.Helper()
	n, err := PageCount(path)
	if err != nil {
		t.Fatalf("PageCount(%s) error: %v", filepath.Base(path), err)
	}
	if n != want {
		t.Errorf("PageCount(%s) = %d, want %d", filepath.Base(path), n, want)
	}
}

func TestPageCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "three.pdf")
	makePDF(t, path, 3)
	mustPageCount(t, path, 3)

	if _, err := PageCount(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("PageCount succeeded on a missing file")
	}
}

func TestMergePDFs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	b := filepath.Join(dir, "b.pdf")
	makePDF(t, a, 2)
	makePDF(t, b, 3)

	out := filepath.Join(dir, "merged.pdf")
	if err := MergePDFs([]string{a, b}, out); err != nil {
		t.Fatalf("MergePDFs error: %v", err)
	}
	mustPageCount(t, out, 5)

	if err := MergePDFs([]string{a}, out); err == nil {
		t.Error("MergePDFs accepted a single input")
	}
}

func TestSplitPDF(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "report.pdf")
	makePDF(t, in, 5)

	t.Run("span 1", func(t *testing.T) {
		outDir := filepath.Join(dir, "pages")
		files, err := SplitPDF(in, outDir, 1)
		if err != nil {
			t.Fatalf("SplitPDF error: %v", err)
		}
		if len(files) != 5 {
			t.Fatalf("SplitPDF produced %d files, want 5", len(files))
		}
		for i, f := range files {
			mustPageCount(t, f, 1)
			if got := splitStartPage(f); got != i+1 {
				t.Errorf("files[%d] = %s (page %d), want page %d", i, filepath.Base(f), got, i+1)
			}
		}
	})

	t.Run("span 2", func(t *testing.T) {
		outDir := filepath.Join(dir, "chunks")
		files, err := SplitPDF(in, outDir, 2)
		if err != nil {
			t.Fatalf("SplitPDF error: %v", err)
		}
		if len(files) != 3 {
			t.Fatalf("SplitPDF produced %d files, want 3", len(files))
		}
		wantPages := []int{2, 2, 1}
		for i, f := range files {
			mustPageCount(t, f, wantPages[i])
		}
	})

	t.Run("invalid span", func(t *testing.T) {
		if _, err := SplitPDF(in, dir, 0); err == nil {
			t.Error("SplitPDF accepted span 0")
		}
	})
}

func TestSplitStartPage(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"report_3.pdf", 3},
		{"report_3-4.pdf", 3},
		{"my_report_12.pdf", 12},
		{"nopagenumber.pdf", 0},
	}
	for _, tt := range tests {
		if got := splitStartPage(tt.path); got != tt.want {
			t.Errorf("splitStartPage(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}

func TestExtractPages(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "report.pdf")
	makePDF(t, in, 5)

	t.Run("range", func(t *testing.T) {
		out := filepath.Join(dir, "middle.pdf")
		if err := ExtractPages(in, out, []string{"2-3"}); err != nil {
			t.Fatalf("ExtractPages error: %v", err)
		}
		mustPageCount(t, out, 2)
	})

	t.Run("list", func(t *testing.T) {
		out := filepath.Join(dir, "ends.pdf")
		if err := ExtractPages(in, out, []string{"1", "5"}); err != nil {
			t.Fatalf("ExtractPages error: %v", err)
		}
		mustPageCount(t, out, 2)
	})

	t.Run("empty selection", func(t *testing.T) {
		if err := ExtractPages(in, filepath.Join(dir, "none.pdf"), nil); err == nil {
			t.Error("ExtractPages accepted an empty selection")
		}
	})
}

func TestRotatePDF(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.pdf")
	makePDF(t, in, 2)

	t.Run("quarter turn", func(t *testing.T) {
		out := filepath.Join(dir, "rot90.pdf")
		if err := RotatePDF(in, out, 90); err != nil {
			t.Fatalf("RotatePDF error: %v", err)
		}
		mustPageCount(t, out, 2)
	})

	t.Run("negative normalizes", func(t *testing.T) {
		out := filepath.Join(dir, "rotneg.pdf")
		if err := RotatePDF(in, out, -90); err != nil {
			t.Fatalf("RotatePDF(-90) error: %v", err)
		}
		mustPageCount(t, out, 2)
	})

	t.Run("full turn copies", func(t *testing.T) {
		out := filepath.Join(dir, "rot360.pdf")
		if err := RotatePDF(in, out, 360); err != nil {
			t.Fatalf("RotatePDF(360) error: %v", err)
		}
		orig, _ := os.ReadFile(in)
		rotated, _ := os.ReadFile(out)
		if !bytes.Equal(orig, rotated) {
			t.Error("full-turn rotation rewrote the file, want a plain copy")
		}
	})

	t.Run("floors to a right angle", func(t *testing.T) {
		out := filepath.Join(dir, "rot45.pdf")
		if err := RotatePDF(in, out, 45); err != nil {
			t.Fatalf("RotatePDF(45) error: %v", err)
		}
		orig, _ := os.ReadFile(in)
		rotated, _ := os.ReadFile(out)
		if !bytes.Equal(orig, rotated) {
			t.Error("45 degrees floors to zero, want a plain copy")
		}

		out = filepath.Join(dir, "rot100.pdf")
		if err := RotatePDF(in, out, 100); err != nil {
			t.Fatalf("RotatePDF(100) error: %v", err)
		}
		mustPageCount(t, out, 2)
	})

	t.Run("same input and output errors", func(t *testing.T) {
		before, err := os.ReadFile(in)
		if err != nil {
			t.Fatal(err)
		}
		if err := RotatePDF(in, in, 360); err == nil {
			t.Fatal("RotatePDF onto its own input should fail")
		}
		after, err := os.ReadFile(in)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(before, after) {
			t.Error("failed in-place rotation modified the input")
		}
	})
}

func TestCompressPDF(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.pdf")
	makePDF(t, in, 3)

	out := filepath.Join(dir, "small.pdf")
	if err := CompressPDF(in, out); err != nil {
		t.Fatalf("CompressPDF error: %v", err)
	}
	mustPageCount(t, out, 3)
}

func TestWatermarkPDF(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.pdf")
	makePDF(t, in, 2)

	out := filepath.Join(dir, "stamped.pdf")
	if err := WatermarkPDF(in, out, "DRAFT"); err != nil {
		t.Fatalf("WatermarkPDF error: %v", err)
	}
	mustPageCount(t, out, 2)

	if err := WatermarkPDF(in, filepath.Join(dir, "blank.pdf"), "   "); err == nil {
		t.Error("WatermarkPDF accepted blank text")
	}
}

func TestPDFToImages(t *testing.T) {
	if !tools.Pdftoppm.Available() && !tools.Mutool.Available() {
		t.Skipf("neither pdftoppm nor mutool installed")
	}

	dir := t.TempDir()
	in := filepath.Join(dir, "deck.pdf")
	makePDF(t, in, 3)

	outDir := filepath.Join(dir, "images")
	files, err := New().PDFToImages(context.Background(), in, outDir, FormatPNG)
	if err != nil {
		t.Fatalf("PDFToImages error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("PDFToImages produced %d files, want 3", len(files))
	}
	for i, path := range files {
		if got := pageSuffix(path); got != i+1 {
			t.Errorf("files[%d] = %s (page %d), want page %d", i, filepath.Base(path), got, i+1)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := png.Decode(f); err != nil {
			t.Errorf("%s does not decode as png: %v", filepath.Base(path), err)
		}
		f.Close()
	}

	t.Run("rejects unsupported format", func(t *testing.T) {
		if _, err := New().PDFToImages(context.Background(), in, outDir, FormatGIF); err == nil {
			t.Error("PDFToImages accepted gif")
		}
	})
}

func TestPageSuffix(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"scan-07.png", 7},
		{"scan-10.jpg", 10},
		{"multi-part-name-2.png", 2},
		{"plain.png", 0},
	}
	for _, tt := range tests {
		if got := pageSuffix(tt.path); got != tt.want {
			t.Errorf("pageSuffix(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}
