// Package ocr shells out to tesseract and adapts its output to the single
// word shape the schedule parser consumes. Engine-specific variance (plain
// text, TSV positional output, externally supplied word-list JSON) is
// normalized here so the core never sees it.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/turnoapp/turnos-importer/constants"
	"github.com/turnoapp/turnos-importer/internal/schedule"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Lang      string // default "spa"; schedules in the wild are Spanish

	TessdataDir string
	PSM         int // e.g. 6 for a uniform block of text
	OEM         int // 1 = LSTM; leave 0 to use default
}

type Result struct {
	Text       string
	Words      []schedule.Word
	Method     string // "image-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32 // mean TSV word confidence, 0..1; 0 if unavailable
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "spa"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// NewExtractorWithRunner injects a Runner; used by tests to stub tesseract.
func NewExtractorWithRunner(cfg Config, r Runner, logger *slog.Logger) *Extractor {
	e := NewExtractor(cfg, logger)
	if r != nil {
		e.runner = r
	}
	return e
}

// Extract OCRs one schedule image: a plain-text pass for the fallback parser
// plus a TSV pass for positioned words and confidence. A failed TSV pass is
// a warning, not an error: the caller can still parse the text.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting ocr extraction", "path", path, "ext", ext)

	if !constants.IsImageExt(ext) {
		e.logger.Error("unsupported ocr extension", "extension", ext)
		return Result{}, fmt.Errorf("unsupported extension: %q", ext)
	}

	res := Result{Method: "image-ocr", Language: e.cfg.Lang}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, e.args(path, false)...)
	if err != nil {
		res.Warnings = append(res.Warnings, string(errb))
		return res, fmt.Errorf("tesseract: %w", err)
	}
	res.Text = Normalize(string(out))

	tsvOut, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, e.args(path, true)...)
	if err != nil {
		// words unavailable; the text fallback still applies
		res.Warnings = append(res.Warnings, string(errb))
	} else {
		res.Words = ParseTSVWords(string(tsvOut))
		res.Confidence = meanTSVConfidence(string(tsvOut))
	}

	res.Duration = time.Since(start)
	return res, nil
}

func (e *Extractor) args(path string, tsv bool) []string {
	args := []string{path, "stdout", "-l", e.cfg.Lang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	if tsv {
		args = append(args, "tsv")
	}
	return args
}
