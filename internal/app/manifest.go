package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hyperifyio/pdfingest/internal/extract"
)

// Manifest is the machine-readable summary of one ingestion run: input
// provenance (size, digest), the winning extractor, and where every output
// artifact landed. It is written last, so it always describes artifacts
// that actually exist.
type Manifest struct {
	FileName             string    `json:"file_name"`
	FilePath             string    `json:"file_path"`
	SizeBytes            int64     `json:"size_bytes"`
	SHA256               string    `json:"sha256"`
	NumPages             int       `json:"num_pages"`
	TotalCharacters      int       `json:"total_characters"`
	Extractor            string    `json:"extractor"`
	OutputTextPath       string    `json:"output_text_path"`
	OutputPagesJSONLPath string    `json:"output_pages_jsonl_path"`
	PerPageDir           string    `json:"per_page_dir,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// buildManifest fingerprints the input file and records the run outcome.
// perPageDir is empty when per-page rendering was disabled; the manifest
// then omits the field instead of naming a directory that was never made.
func buildManifest(inputPath string, res extract.Result, textPath, jsonlPath, perPageDir string) (Manifest, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return Manifest{}, fmt.Errorf("stat %s: %w", inputPath, err)
	}
	sum, err := sha256File(inputPath)
	if err != nil {
		return Manifest{}, err
	}
	if perPageDir != "" {
		perPageDir = absPath(perPageDir)
	}
	return Manifest{
		FileName:             info.Name(),
		FilePath:             absPath(inputPath),
		SizeBytes:            info.Size(),
		SHA256:               sum,
		NumPages:             len(res.Pages),
		TotalCharacters:      res.TotalChars(),
		Extractor:            res.Extractor,
		OutputTextPath:       absPath(textPath),
		OutputPagesJSONLPath: absPath(jsonlPath),
		PerPageDir:           perPageDir,
		CreatedAt:            time.Now().UTC(),
	}, nil
}

// sha256File returns the lowercase hex SHA-256 of the whole file.
func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
