package extract

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// fakeExtractor is a scripted backend that counts invocations so tests can
// verify the fallback is only paid for when the policy demands it.
type fakeExtractor struct {
	name  string
	pages []string
	err   error
	calls int
}

func (f *fakeExtractor) Name() string { return f.name }

func (f *fakeExtractor) Extract(ctx context.Context, path string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

func TestChoose_PrimaryAboveThresholdSkipsFallback(t *testing.T) {
	// Page 1 alone clears the threshold; pages 2 and 3 are blank.
	first := strings.Repeat("hello world ", 20)
	primary := &fakeExtractor{name: "textlayer", pages: []string{first, "", ""}}
	fallback := &fakeExtractor{name: "pdftotext", pages: []string{"a", "b", "c"}}

	res, err := Selector{Primary: primary, Fallback: fallback}.Choose(context.Background(), "doc.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Extractor != "textlayer" {
		t.Fatalf("expected textlayer to win, got %q", res.Extractor)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback must not run when primary clears the threshold; ran %d times", fallback.calls)
	}
	if got := res.TotalChars(); got != len(first) {
		t.Fatalf("expected total chars %d (page 1 only), got %d", len(first), got)
	}
	if len(res.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(res.Pages))
	}
}

func TestChoose_FallbackStrictlyBetterWins(t *testing.T) {
	// A scanned document: empty text layer, real pdftotext output.
	primary := &fakeExtractor{name: "textlayer", pages: []string{"", ""}}
	fallback := &fakeExtractor{name: "pdftotext", pages: []string{"Page one text", "Page two text"}}

	res, err := Selector{Primary: primary, Fallback: fallback}.Choose(context.Background(), "scan.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Extractor != "pdftotext" {
		t.Fatalf("expected pdftotext to win, got %q", res.Extractor)
	}
	if len(res.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(res.Pages))
	}
	if res.Pages[0] != "Page one text" || res.Pages[1] != "Page two text" {
		t.Fatalf("fallback pages not returned verbatim: %q", res.Pages)
	}
}

func TestChoose_TieKeepsPrimary(t *testing.T) {
	primary := &fakeExtractor{name: "textlayer", pages: []string{"abc"}}
	fallback := &fakeExtractor{name: "pdftotext", pages: []string{"xyz"}}

	res, err := Selector{Primary: primary, Fallback: fallback}.Choose(context.Background(), "thin.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Extractor != "textlayer" {
		t.Fatalf("equal volume must keep the primary result, got %q", res.Extractor)
	}
	if fallback.calls != 1 {
		t.Fatalf("fallback should have been consulted once, ran %d times", fallback.calls)
	}
}

func TestChoose_FallbackWorseKeepsPrimary(t *testing.T) {
	primary := &fakeExtractor{name: "textlayer", pages: []string{"some short text"}}
	fallback := &fakeExtractor{name: "pdftotext", pages: []string{""}}

	res, err := Selector{Primary: primary, Fallback: fallback}.Choose(context.Background(), "thin.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Extractor != "textlayer" {
		t.Fatalf("worse fallback must not replace the primary result, got %q", res.Extractor)
	}
	if res.Pages[0] != "some short text" {
		t.Fatalf("primary pages not preserved: %q", res.Pages)
	}
}

func TestChoose_Idempotent(t *testing.T) {
	sel := Selector{
		Primary:  &fakeExtractor{name: "textlayer", pages: []string{"", ""}},
		Fallback: &fakeExtractor{name: "pdftotext", pages: []string{"one", "two"}},
	}
	a, err := sel.Choose(context.Background(), "doc.pdf")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := sel.Choose(context.Background(), "doc.pdf")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same input must yield identical results: %+v vs %+v", a, b)
	}
}

func TestChoose_PrimaryDocumentErrorIsFatal(t *testing.T) {
	boom := errors.New("unreadable file")
	primary := &fakeExtractor{name: "textlayer", err: boom}
	fallback := &fakeExtractor{name: "pdftotext", pages: []string{"would win"}}

	_, err := Selector{Primary: primary, Fallback: fallback}.Choose(context.Background(), "bad.pdf")
	if err == nil {
		t.Fatal("expected a document-level failure to propagate")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
	if fallback.calls != 0 {
		t.Fatal("document-level failure must not trigger the fallback")
	}
}

func TestChoose_FallbackDocumentErrorIsFatal(t *testing.T) {
	boom := errors.New("pdftotext crashed")
	primary := &fakeExtractor{name: "textlayer", pages: []string{""}}
	fallback := &fakeExtractor{name: "pdftotext", err: boom}

	_, err := Selector{Primary: primary, Fallback: fallback}.Choose(context.Background(), "bad.pdf")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fallback error, got %v", err)
	}
}

func TestChoose_BlankPagesKeepPageCount(t *testing.T) {
	pages := []string{strings.Repeat("x", 150), "", "", "tail", ""}
	primary := &fakeExtractor{name: "textlayer", pages: pages}
	fallback := &fakeExtractor{name: "pdftotext"}

	res, err := Selector{Primary: primary, Fallback: fallback}.Choose(context.Background(), "doc.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Pages) != len(pages) {
		t.Fatalf("blank pages must not be dropped: expected %d pages, got %d", len(pages), len(res.Pages))
	}
}

func TestChoose_CustomThreshold(t *testing.T) {
	primary := &fakeExtractor{name: "textlayer", pages: []string{"1234567890"}}
	fallback := &fakeExtractor{name: "pdftotext", pages: []string{"longer than ten chars"}}

	res, err := Selector{Primary: primary, Fallback: fallback, MinChars: 10}.Choose(context.Background(), "doc.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Extractor != "textlayer" || fallback.calls != 0 {
		t.Fatalf("10 chars meets a threshold of 10; fallback must not run (extractor=%q calls=%d)", res.Extractor, fallback.calls)
	}
}
