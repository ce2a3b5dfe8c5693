// Package ocr transcribes rendered page images with tesseract.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Engine runs tesseract over page images. The zero value OCRs in English.
type Engine struct {
	Language string
}

func (e Engine) language() string {
	if e.Language == "" {
		return DefaultLanguage
	}
	return e.Language
}

// ImageFile transcribes one image on disk. Failures are returned to the
// caller, whose policy is to substitute an empty transcript and continue.
func (e Engine) ImageFile(path string) (string, error) {
	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := client.SetLanguage(e.language()); err != nil {
		return "", fmt.Errorf("ocr language %s: %w", e.language(), err)
	}
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("ocr load %s: %w", path, err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr %s: %w", path, err)
	}
	return strings.TrimSpace(text), nil
}

// AvailableLanguages lists the tesseract language packs installed on this
// machine. Used by preflight to fail fast before any page is rendered.
func AvailableLanguages() ([]string, error) {
	return gosseract.GetAvailableLanguages()
}
