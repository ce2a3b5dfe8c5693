package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pdfingest/internal/extract"
	"github.com/hyperifyio/pdfingest/internal/ocr"
	"github.com/hyperifyio/pdfingest/internal/render"
)

// pageRecord is one line of the <stem>.pages.jsonl artifact.
type pageRecord struct {
	FileName   string `json:"file_name"`
	FilePath   string `json:"file_path"`
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
}

// writeArtifacts serializes the chosen extraction into the output
// directory: full text with page markers, per-page JSONL, optional
// per-page image/OCR folders, and the manifest last.
func writeArtifacts(cfg Config, res extract.Result) (Manifest, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("mkdir output dir: %w", err)
	}

	stem := stemOf(cfg.InputPath)
	textPath := filepath.Join(cfg.OutputDir, stem+".txt")
	jsonlPath := filepath.Join(cfg.OutputDir, stem+".pages.jsonl")
	manifestPath := filepath.Join(cfg.OutputDir, stem+".manifest.json")
	perPageRoot := filepath.Join(cfg.OutputDir, stem)

	if err := os.WriteFile(textPath, []byte(renderFullText(res.Pages)), 0o644); err != nil {
		return Manifest{}, fmt.Errorf("write text: %w", err)
	}
	if err := writePagesJSONL(jsonlPath, cfg.InputPath, res.Pages); err != nil {
		return Manifest{}, err
	}
	if cfg.RenderPages {
		if err := writePageFolders(cfg, perPageRoot, len(res.Pages)); err != nil {
			return Manifest{}, err
		}
	}

	manifestPerPage := ""
	if cfg.RenderPages {
		manifestPerPage = perPageRoot
	}
	manifest, err := buildManifest(cfg.InputPath, res, textPath, jsonlPath, manifestPerPage)
	if err != nil {
		return Manifest{}, err
	}
	if err := writeJSON(manifestPath, manifest); err != nil {
		return Manifest{}, fmt.Errorf("write manifest: %w", err)
	}
	return manifest, nil
}

// renderFullText wraps every page in literal START/END markers so page
// boundaries survive concatenation. Page numbers are 1-based.
func renderFullText(pages []string) string {
	blocks := make([]string, 0, len(pages))
	for i, text := range pages {
		n := i + 1
		blocks = append(blocks, fmt.Sprintf("----- PAGE %d START -----\n%s\n----- PAGE %d END -----", n, text, n))
	}
	return strings.Join(blocks, "\n\n")
}

// writePagesJSONL emits one JSON object per page, in page order.
func writePagesJSONL(path, inputPath string, pages []string) error {
	var b strings.Builder
	fileName := filepath.Base(inputPath)
	filePath := absPath(inputPath)
	for i, text := range pages {
		line, err := json.Marshal(pageRecord{
			FileName:   fileName,
			FilePath:   filePath,
			PageNumber: i + 1,
			Text:       text,
		})
		if err != nil {
			return fmt.Errorf("marshal page %d: %w", i+1, err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write pages jsonl: %w", err)
	}
	return nil
}

// writePageFolders renders and OCRs every page into its own zero-padded
// folder. Page faults are isolated: a page that fails to render gets an
// empty placeholder image and an empty transcript, and processing
// continues with the next page.
func writePageFolders(cfg Config, perPageRoot string, numPages int) error {
	doc, err := render.Open(cfg.InputPath, cfg.RenderDPI)
	if err != nil {
		// Document-level render failure degrades to placeholders for every
		// page; the text artifacts are already on disk and stay useful.
		log.Warn().Err(err).Msg("page rendering unavailable; writing placeholders")
		doc = nil
	}
	if doc != nil {
		defer doc.Close()
	}

	engine := ocr.Engine{Language: cfg.OCRLanguage}
	pad := zeroPadWidth(numPages)

	for i := 0; i < numPages; i++ {
		pageNum := i + 1
		dir := filepath.Join(perPageRoot, fmt.Sprintf("%0*d", pad, pageNum))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir page dir %d: %w", pageNum, err)
		}
		imagePath := filepath.Join(dir, "image.png")
		transcriptPath := filepath.Join(dir, "ocr.txt")

		var imageBytes []byte
		if doc != nil {
			data, err := doc.PNG(i)
			if err != nil {
				log.Warn().Err(err).Int("page", pageNum).Msg("render failed; writing placeholder")
			} else {
				imageBytes = data
			}
		}
		if err := os.WriteFile(imagePath, imageBytes, 0o644); err != nil {
			return fmt.Errorf("write page image %d: %w", pageNum, err)
		}

		transcript := ""
		if len(imageBytes) > 0 {
			text, err := engine.ImageFile(imagePath)
			if err != nil {
				log.Warn().Err(err).Int("page", pageNum).Msg("ocr failed; writing empty transcript")
			} else {
				transcript = text
			}
		}
		if err := os.WriteFile(transcriptPath, []byte(transcript), 0o644); err != nil {
			return fmt.Errorf("write page transcript %d: %w", pageNum, err)
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
