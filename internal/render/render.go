// Package render rasterizes single PDF pages to PNG via MuPDF. Rendering is
// fallible per page: the caller substitutes a placeholder for a page that
// fails and keeps going, so one bad page never aborts a document.
package render

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI matches the original per-page render resolution.
const DefaultDPI = 220

// Document wraps an open PDF for repeated page rendering. Not safe for
// concurrent use; pages are rendered one at a time, in order.
type Document struct {
	doc *fitz.Document
	dpi float64
}

// Open loads the PDF at path for rendering at the given DPI. Values below
// the PDF-native 72 DPI are clamped up so pages never downscale.
func Open(path string, dpi int) (*Document, error) {
	if dpi < 72 {
		dpi = 72
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &Document{doc: doc, dpi: float64(dpi)}, nil
}

// NumPages reports the page count the renderer sees.
func (d *Document) NumPages() int {
	return d.doc.NumPage()
}

// PNG renders the page at the given zero-based index and returns the
// encoded image bytes.
func (d *Document) PNG(index int) ([]byte, error) {
	if index < 0 || index >= d.doc.NumPage() {
		return nil, fmt.Errorf("page index %d out of range (0..%d)", index, d.doc.NumPage()-1)
	}
	img, err := d.doc.ImageDPI(index, d.dpi)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", index+1, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode page %d: %w", index+1, err)
	}
	return buf.Bytes(), nil
}

func (d *Document) Close() error {
	return d.doc.Close()
}
