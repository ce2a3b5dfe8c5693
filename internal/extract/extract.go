package extract

import (
	"context"
	"fmt"
)

// MinContentChars is the total character count below which the text-layer
// result is considered too thin and the fallback backend is consulted.
const MinContentChars = 100

// Extractor defines a minimal interface for per-page text extraction
// backends. Implementations can swap parsing tactics without changing
// callers.
type Extractor interface {
	// Name identifies the backend in manifests and logs.
	Name() string
	// Extract returns one text entry per page, in page order. An empty
	// string is a valid entry for a page with no extractable text.
	Extract(ctx context.Context, path string) ([]string, error)
}

// Result is the chosen per-page extraction for one document.
type Result struct {
	Pages     []string
	Extractor string
}

// TotalChars sums the lengths of all page texts.
func (r Result) TotalChars() int {
	return totalChars(r.Pages)
}

// Selector picks between a cheap primary backend and a slower fallback.
// The fallback only runs when the primary result is below MinChars, and
// its result is only kept when it is strictly larger; a fallback that ties
// or loses never replaces the primary output.
type Selector struct {
	Primary  Extractor
	Fallback Extractor
	MinChars int // 0 means MinContentChars
}

// Choose runs the selection policy for one document. A document-level
// failure of either backend is fatal; a content shortfall is the only
// condition that triggers the fallback.
func (s Selector) Choose(ctx context.Context, path string) (Result, error) {
	minChars := s.MinChars
	if minChars <= 0 {
		minChars = MinContentChars
	}

	pages, err := s.Primary.Extract(ctx, path)
	if err != nil {
		return Result{}, fmt.Errorf("%s extract: %w", s.Primary.Name(), err)
	}
	total := totalChars(pages)
	if total >= minChars {
		return Result{Pages: pages, Extractor: s.Primary.Name()}, nil
	}

	fbPages, err := s.Fallback.Extract(ctx, path)
	if err != nil {
		return Result{}, fmt.Errorf("%s extract: %w", s.Fallback.Name(), err)
	}
	if totalChars(fbPages) > total {
		return Result{Pages: fbPages, Extractor: s.Fallback.Name()}, nil
	}
	return Result{Pages: pages, Extractor: s.Primary.Name()}, nil
}

func totalChars(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(p)
	}
	return n
}
