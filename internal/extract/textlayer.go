package extract

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// TextLayer extracts the embedded text layer page by page. It is the fast
// primary backend: pure Go, no subprocess, usually sufficient for PDFs that
// were born digital rather than scanned.
type TextLayer struct{}

func (TextLayer) Name() string { return "textlayer" }

func (TextLayer) Extract(ctx context.Context, path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages = append(pages, pageText(r, i, fonts))
	}
	return pages, nil
}

// pageText reads one page, mapping any per-page failure to an empty string
// so a single malformed page object cannot abort the document. The parser
// panics on some malformed pages, hence the recover.
func pageText(r *pdf.Reader, num int, fonts map[string]*pdf.Font) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
		}
	}()

	p := r.Page(num)
	if p.V.IsNull() {
		return ""
	}
	for _, name := range p.Fonts() {
		if _, ok := fonts[name]; !ok {
			f := p.Font(name)
			fonts[name] = &f
		}
	}
	t, err := p.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return t
}
