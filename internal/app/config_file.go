package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/pdfingest/internal/extract"
	"github.com/hyperifyio/pdfingest/internal/render"
)

// FileConfig represents the single-file configuration schema. Nested
// sections improve readability and map naturally to flags.
type FileConfig struct {
	Input  string `yaml:"input" json:"input"`
	Output string `yaml:"output" json:"output"`

	Extract struct {
		MinChars  int    `yaml:"minChars" json:"minChars"`
		Pdftotext string `yaml:"pdftotext" json:"pdftotext"`
	} `yaml:"extract" json:"extract"`

	Pages struct {
		Enable *bool  `yaml:"enable" json:"enable"`
		DPI    int    `yaml:"dpi" json:"dpi"`
		Lang   string `yaml:"lang" json:"lang"`
	} `yaml:"pages" json:"pages"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are currently unset/zero in cfg. Flags should already have been
// parsed; this lets file config supply defaults while explicit flags win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.InputPath == "" && fc.Input != "" {
		cfg.InputPath = fc.Input
	}
	if cfg.OutputDir == "" && fc.Output != "" {
		cfg.OutputDir = fc.Output
	}
	// Numeric flags carry non-zero defaults, so the file value also applies
	// when cfg still holds the flag default.
	if (cfg.MinContentChars == 0 || cfg.MinContentChars == extract.MinContentChars) && fc.Extract.MinChars > 0 {
		cfg.MinContentChars = fc.Extract.MinChars
	}
	if cfg.PdftotextPath == "" && fc.Extract.Pdftotext != "" {
		cfg.PdftotextPath = fc.Extract.Pdftotext
	}
	// Per-page rendering defaults on; the file can switch it off only when
	// the flag did not already decide.
	if fc.Pages.Enable != nil && cfg.RenderPages {
		cfg.RenderPages = *fc.Pages.Enable
	}
	if (cfg.RenderDPI == 0 || cfg.RenderDPI == render.DefaultDPI) && fc.Pages.DPI > 0 {
		cfg.RenderDPI = fc.Pages.DPI
	}
	if cfg.OCRLanguage == "" && fc.Pages.Lang != "" {
		cfg.OCRLanguage = fc.Pages.Lang
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
