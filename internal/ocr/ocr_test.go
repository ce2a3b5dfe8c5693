package ocr_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/pdfingest/internal/ocr"
	"github.com/hyperifyio/pdfingest/internal/render"
)

func requireEnglish(t *testing.T) {
	t.Helper()
	langs, err := ocr.AvailableLanguages()
	if err != nil {
		t.Skipf("tesseract unavailable: %v", err)
	}
	for _, l := range langs {
		if l == ocr.DefaultLanguage {
			return
		}
	}
	t.Skip("tesseract eng language pack not installed")
}

func TestImageFile_ReadsRenderedPage(t *testing.T) {
	requireEnglish(t)

	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "ocr.pdf")
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "B", 32)
	doc.AddPage()
	doc.MultiCell(0, 20, "HELLO WORLD", "", "L", false)
	if err := doc.OutputFileAndClose(pdfPath); err != nil {
		t.Fatalf("write fixture pdf: %v", err)
	}

	rendered, err := render.Open(pdfPath, render.DefaultDPI)
	if err != nil {
		t.Fatalf("open for render: %v", err)
	}
	defer rendered.Close()
	data, err := rendered.PNG(0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	imgPath := filepath.Join(dir, "page.png")
	if err := os.WriteFile(imgPath, data, 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	text, err := ocr.Engine{}.ImageFile(imgPath)
	if err != nil {
		t.Fatalf("ocr: %v", err)
	}
	if !strings.Contains(strings.ToUpper(text), "HELLO") {
		t.Fatalf("expected transcript to contain the page text, got %q", text)
	}
}

func TestImageFile_MissingImageFails(t *testing.T) {
	requireEnglish(t)

	if _, err := (ocr.Engine{}).ImageFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected an error for a missing image")
	}
}
