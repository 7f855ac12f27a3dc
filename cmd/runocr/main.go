// runocr OCRs one schedule photo and prints the extracted text plus the
// positioned words as JSON. Useful for inspecting what the parser will see.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/turnoapp/turnos-importer/internal/ocr"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	lang := flag.String("lang", "spa", "tesseract language")
	psm := flag.Int("psm", 0, "tesseract page segmentation mode (0 = default)")
	wordsOnly := flag.Bool("words", false, "print only the positioned-words JSON")
	flag.Parse()

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "runocr [-lang spa] [-psm N] [-words] <image>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	extractor := ocr.NewExtractor(ocr.Config{Lang: *lang, PSM: *psm}, logger)

	start := time.Now()
	res, err := extractor.Extract(ctx, path)
	if err != nil {
		logger.Error("ocr failed", "path", path, "error", err,
			"duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	logger.Info("ocr OK",
		"method", res.Method,
		"language", res.Language,
		"words", len(res.Words),
		"confidence", res.Confidence,
		"warnings", len(res.Warnings),
		"duration_ms", res.Duration.Milliseconds(),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if *wordsOnly {
		if err := enc.Encode(res.Words); err != nil {
			logger.Error("encode words", "error", err)
			os.Exit(1)
		}
		return
	}
	if err := enc.Encode(res); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}
