// Package preflight validates the input document and the availability of
// every extraction backend before any work starts. Backends must be
// pre-provisioned: a missing one fails fast with a diagnostic naming it,
// the process never installs anything at run time.
package preflight

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/hyperifyio/pdfingest/internal/ocr"
)

// ErrNotFound reports that the input path does not resolve to an existing
// regular file.
var ErrNotFound = errors.New("input file not found")

// ErrBackendUnavailable reports that a required extraction backend is not
// installed on this machine.
var ErrBackendUnavailable = errors.New("extraction backend unavailable")

// Input checks that path is an existing, readable PDF and returns its page
// count as seen by pdfcpu.
func Input(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("not a readable PDF %s: %w", path, err)
	}
	return count, nil
}

// Pdftotext verifies the poppler CLI the fallback extractor shells out to.
func Pdftotext(binPath string) error {
	if binPath == "" {
		binPath = "pdftotext"
	}
	if _, err := exec.LookPath(binPath); err != nil {
		return fmt.Errorf("%w: %s not found in PATH (install poppler-utils)", ErrBackendUnavailable, binPath)
	}
	return nil
}

// Tesseract verifies that the requested OCR language pack is installed.
func Tesseract(language string) error {
	if language == "" {
		language = ocr.DefaultLanguage
	}
	langs, err := ocr.AvailableLanguages()
	if err != nil {
		return fmt.Errorf("%w: tesseract: %v (install tesseract-ocr)", ErrBackendUnavailable, err)
	}
	for _, l := range langs {
		if l == language {
			return nil
		}
	}
	return fmt.Errorf("%w: tesseract language %q not installed (install tesseract-ocr-%s)", ErrBackendUnavailable, language, language)
}
