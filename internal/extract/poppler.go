package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"unicode"
)

// Poppler extracts text by shelling out to the pdftotext CLI. It is the
// slower fallback backend, markedly more robust than the text layer for
// PDFs the primary cannot parse. pdftotext emits all pages as one stream
// separated by form feeds, so the output is re-split per page here.
type Poppler struct {
	// BinPath overrides the pdftotext binary; empty means PATH lookup.
	BinPath string
}

func (Poppler) Name() string { return "pdftotext" }

// Bin returns the effective binary name or path.
func (p Poppler) Bin() string {
	if p.BinPath == "" {
		return "pdftotext"
	}
	return p.BinPath
}

func (p Poppler) Extract(ctx context.Context, path string) ([]string, error) {
	cmd := exec.CommandContext(ctx, p.Bin(), "-layout", path, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftotext %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}
	return splitFormFeed(stdout.String()), nil
}

// splitFormFeed re-splits a pdftotext stream into pages on the form-feed
// separator, trimming trailing whitespace per page and dropping the
// wholly-empty tail pages a separator after the last real page leaves
// behind. Interior blank pages are preserved so page numbering stays
// aligned with the source document.
func splitFormFeed(text string) []string {
	pages := strings.Split(text, "\f")
	for i, p := range pages {
		pages[i] = strings.TrimRightFunc(p, unicode.IsSpace)
	}
	for len(pages) > 0 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}
