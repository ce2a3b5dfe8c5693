package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pdfingest/internal/app"
	"github.com/hyperifyio/pdfingest/internal/extract"
	"github.com/hyperifyio/pdfingest/internal/render"
)

// options collects every CLI flag. Flags default to their PDFINGEST_* env
// counterparts so the tool can be driven without arguments.
type options struct {
	inputPath     string
	outputDir     string
	configPath    string
	minChars      int
	pdftotextPath string
	renderPages   bool
	renderDPI     int
	ocrLang       string
	verbose       bool
}

func registerFlags(fs *flag.FlagSet) *options {
	o := &options{}
	fs.StringVar(&o.inputPath, "input", os.Getenv("PDFINGEST_INPUT"), "Path to the PDF file to ingest")
	fs.StringVar(&o.outputDir, "out", os.Getenv("PDFINGEST_OUT"), "Directory to write ingestion artifacts into")
	fs.StringVar(&o.configPath, "config", os.Getenv("PDFINGEST_CONFIG"), "Optional YAML or JSON config file")
	fs.IntVar(&o.minChars, "extract.minChars", extract.MinContentChars, "Minimum text-layer characters before the pdftotext fallback is consulted")
	fs.StringVar(&o.pdftotextPath, "extract.pdftotext", os.Getenv("PDFINGEST_PDFTOTEXT"), "Path to the pdftotext binary (default: PATH lookup)")
	fs.BoolVar(&o.renderPages, "pages", true, "Write per-page folders with a rendered image and OCR transcript")
	fs.IntVar(&o.renderDPI, "pages.dpi", render.DefaultDPI, "Render resolution for page images")
	fs.StringVar(&o.ocrLang, "pages.lang", os.Getenv("PDFINGEST_LANG"), "Tesseract language for page OCR (default: eng)")
	fs.BoolVar(&o.verbose, "v", false, "Verbose logging")
	return o
}

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	opts := registerFlags(flag.CommandLine)
	flag.Parse()

	// Positional form: pdfingest <file.pdf> <output-dir>
	if flag.NArg() == 2 {
		opts.inputPath = flag.Arg(0)
		opts.outputDir = flag.Arg(1)
	}

	if opts.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		InputPath:       opts.inputPath,
		OutputDir:       opts.outputDir,
		MinContentChars: opts.minChars,
		PdftotextPath:   opts.pdftotextPath,
		RenderPages:     opts.renderPages,
		RenderDPI:       opts.renderDPI,
		OCRLanguage:     opts.ocrLang,
		Verbose:         opts.verbose,
	}
	if opts.configPath != "" {
		fc, err := app.LoadConfigFile(opts.configPath)
		if err != nil {
			log.Error().Err(err).Str("path", opts.configPath).Msg("config file unreadable")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if cfg.InputPath == "" || cfg.OutputDir == "" {
		fmt.Fprintln(os.Stderr, "usage: pdfingest -input file.pdf -out dir  (or: pdfingest file.pdf dir)")
		os.Exit(2)
	}

	summary, err := run(cfg)
	if err != nil {
		log.Error().Err(err).Msg("ingestion failed")
		os.Exit(1)
	}

	// Machine-readable summary for the caller
	out, _ := json.Marshal(summary)
	fmt.Println(string(out))
}

func run(cfg app.Config) (app.Summary, error) {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return app.Summary{}, fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}
