package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pdfingest/internal/extract"
	"github.com/hyperifyio/pdfingest/internal/preflight"
)

// App runs one ingestion: select the best extraction for the input PDF,
// then serialize the artifact set.
type App struct {
	cfg      Config
	numPages int
	selector extract.Selector
}

// Summary is the one-line JSON status printed on stdout after a
// successful run.
type Summary struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	ArtifactDir     string `json:"artifact_dir"`
	File            string `json:"file"`
	NumPages        int    `json:"num_pages"`
	TotalCharacters int    `json:"total_characters"`
	Extractor       string `json:"extractor"`
	TextPath        string `json:"text_path"`
	PagesJSONLPath  string `json:"pages_jsonl_path"`
}

// New validates the input document and the required backends up front.
// Construction fails with preflight.ErrNotFound for a missing input and
// preflight.ErrBackendUnavailable for a backend that is not provisioned;
// nothing is extracted or written until every check passes.
func New(ctx context.Context, cfg Config) (*App, error) {
	numPages, err := preflight.Input(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	if err := preflight.Pdftotext(cfg.PdftotextPath); err != nil {
		return nil, err
	}
	if cfg.RenderPages {
		if err := preflight.Tesseract(cfg.OCRLanguage); err != nil {
			return nil, err
		}
	}
	log.Debug().Str("input", cfg.InputPath).Int("pages", numPages).Msg("input validated")

	return &App{
		cfg:      cfg,
		numPages: numPages,
		selector: extract.Selector{
			Primary:  extract.TextLayer{},
			Fallback: extract.Poppler{BinPath: cfg.PdftotextPath},
			MinChars: cfg.MinContentChars,
		},
	}, nil
}

// Run executes the pipeline and returns the status summary for stdout.
func (a *App) Run(ctx context.Context) (Summary, error) {
	res, err := a.selector.Choose(ctx, a.cfg.InputPath)
	if err != nil {
		return Summary{}, err
	}
	log.Info().
		Str("extractor", res.Extractor).
		Int("pages", len(res.Pages)).
		Int("chars", res.TotalChars()).
		Msg("extraction selected")
	if len(res.Pages) != a.numPages {
		log.Warn().
			Int("extracted", len(res.Pages)).
			Int("document", a.numPages).
			Msg("extractor page count differs from document page count")
	}

	manifest, err := writeArtifacts(a.cfg, res)
	if err != nil {
		return Summary{}, err
	}
	log.Info().Str("dir", a.cfg.OutputDir).Msg("artifacts written")

	return Summary{
		Status:          "ok",
		Message:         "Ingestion complete",
		ArtifactDir:     absPath(a.cfg.OutputDir),
		File:            manifest.FileName,
		NumPages:        manifest.NumPages,
		TotalCharacters: manifest.TotalCharacters,
		Extractor:       manifest.Extractor,
		TextPath:        manifest.OutputTextPath,
		PagesJSONLPath:  manifest.OutputPagesJSONLPath,
	}, nil
}
