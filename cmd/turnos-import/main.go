// turnos-import parses one schedule (a photo, a plain-text OCR dump, or a
// positioned-words JSON dump from runocr) and prints the recovered turns.
// With -db it also stores them.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/turnoapp/turnos-importer/constants"
	"github.com/turnoapp/turnos-importer/internal/ingest"
	"github.com/turnoapp/turnos-importer/internal/ocr"
	"github.com/turnoapp/turnos-importer/internal/repository"
	"github.com/turnoapp/turnos-importer/internal/schedule"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	aliasesFlag := flag.String("aliases", "", "comma-separated name aliases to match (required)")
	refFlag := flag.String("ref", "", "reference date YYYY-MM-DD (default today)")
	wordsFlag := flag.String("words", "", "positioned-words JSON file instead of an image")
	dbFlag := flag.String("db", "", "store turns in this database (sqlite path or postgres:// URL)")
	workerFlag := flag.String("worker", "", "worker name for storage (required with -db)")
	langFlag := flag.String("lang", "spa", "tesseract language")
	flag.Parse()

	aliases := splitList(*aliasesFlag)
	if len(aliases) == 0 {
		logger.Error("usage", "cmd", "turnos-import -aliases MIGUEL,\"MIGUEL ANGEL\" [-ref YYYY-MM-DD] [-db DSN -worker NAME] (<image|txt> | -words words.json)")
		os.Exit(2)
	}
	if *dbFlag != "" && *workerFlag == "" {
		logger.Error("-worker is required with -db")
		os.Exit(2)
	}

	ref := time.Now()
	if *refFlag != "" {
		parsed, err := time.Parse("2006-01-02", *refFlag)
		if err != nil {
			logger.Error("invalid -ref date", "ref", *refFlag, "error", err)
			os.Exit(2)
		}
		ref = parsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var (
		turns      []schedule.Turn
		sourcePath string
		format     string
	)

	switch {
	case *wordsFlag != "":
		words, err := ocr.LoadWordsJSON(*wordsFlag)
		if err != nil {
			logger.Error("loading words", "path", *wordsFlag, "error", err)
			os.Exit(1)
		}
		turns = schedule.ParseWords(words, aliases, schedule.Options{ReferenceDate: ref})
		sourcePath, format = *wordsFlag, constants.FormatWords

	case flag.NArg() == 1 && constants.NormalizeExt(filepath.Ext(flag.Arg(0))) == "txt":
		path := flag.Arg(0)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("reading text dump", "path", path, "error", err)
			os.Exit(1)
		}
		text := ocr.Normalize(string(data))
		turns = schedule.BuildTurns(schedule.ParseText(text, aliases), ref)
		sourcePath, format = path, constants.FormatText

	case flag.NArg() == 1:
		path := flag.Arg(0)
		extractor := ocr.NewExtractor(ocr.Config{Lang: *langFlag}, logger)
		res, err := extractor.Extract(ctx, path)
		if err != nil {
			logger.Error("ocr failed", "path", path, "error", err)
			os.Exit(1)
		}
		turns = schedule.ParseWords(res.Words, aliases, schedule.Options{ReferenceDate: ref})
		if len(turns) == 0 && res.Text != "" {
			days := schedule.ParseText(res.Text, aliases)
			turns = schedule.BuildTurns(days, ref)
		}
		sourcePath, format = path, constants.FormatImage

	default:
		logger.Error("exactly one image path or -words is required")
		os.Exit(2)
	}

	logger.Info("parse complete", "turns_found", len(turns))

	if *dbFlag != "" {
		if err := store(ctx, logger, *dbFlag, *workerFlag, aliases, sourcePath, format, turns); err != nil {
			logger.Error("storing turns", "error", err)
			os.Exit(1)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(turns); err != nil {
		logger.Error("encode turns", "error", err)
		os.Exit(1)
	}
}

func store(ctx context.Context, logger *slog.Logger, dsn, workerName string, aliases []string, sourcePath, format string, turns []schedule.Turn) error {
	db, err := repository.Open(ctx, repository.Config{DSN: dsn, DialTimeout: 3 * time.Second}, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		return err
	}

	worker, err := repository.NewWorkerRepository(db, logger).Upsert(ctx, workerName, aliases)
	if err != nil {
		return err
	}

	hash := ""
	if format != constants.FormatWords {
		if h, err := ingest.HashFile(sourcePath); err == nil {
			hash = h
		}
	}

	jobs := repository.NewImportJobRepository(db, logger)
	job, err := jobs.Start(ctx, worker.ID, absPath(sourcePath), hash, format)
	if err != nil {
		return err
	}
	if err := jobs.MarkRunning(ctx, job.ID); err != nil {
		return err
	}

	inserted, err := repository.NewTurnRepository(db, logger).
		UpsertTurns(ctx, worker.ID, job.ID, absPath(sourcePath), turns)
	if err != nil {
		_ = jobs.FinishFailure(ctx, job.ID, err.Error())
		return err
	}
	if err := jobs.FinishSuccess(ctx, job.ID, len(turns)); err != nil {
		return err
	}

	logger.Info("turns stored", "worker", worker.Name, "turns_new", inserted)
	return nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
