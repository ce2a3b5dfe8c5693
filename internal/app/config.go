package app

// Config holds runtime configuration for one ingestion run.
type Config struct {
	InputPath string
	OutputDir string

	// Extraction
	MinContentChars int    // threshold before the fallback is consulted; 0 means the default
	PdftotextPath   string // override for the pdftotext binary; empty means PATH lookup

	// Per-page artifacts
	RenderPages bool
	RenderDPI   int
	OCRLanguage string

	Verbose bool
}
