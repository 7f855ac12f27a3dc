// Package pipeline wires one schedule photo through OCR, parsing and storage.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/turnoapp/turnos-importer/constants"
	"github.com/turnoapp/turnos-importer/internal/entity"
	"github.com/turnoapp/turnos-importer/internal/ingest"
	"github.com/turnoapp/turnos-importer/internal/ocr"
	"github.com/turnoapp/turnos-importer/internal/repository"
	"github.com/turnoapp/turnos-importer/internal/schedule"
)

// Extractor is the OCR stage; satisfied by *ocr.Extractor.
type Extractor interface {
	Extract(ctx context.Context, path string) (ocr.Result, error)
}

type Pipeline struct {
	worker    *entity.Worker
	extractor Extractor
	jobs      repository.ImportJobRepository
	turns     repository.TurnRepository
	logger    *slog.Logger

	// now is swappable for deterministic date resolution in tests.
	now func() time.Time
}

func New(worker *entity.Worker, extractor Extractor, jobs repository.ImportJobRepository, turns repository.TurnRepository, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		worker:    worker,
		extractor: extractor,
		jobs:      jobs,
		turns:     turns,
		logger:    logger,
		now:       time.Now,
	}
}

// WithReferenceDate pins the date used to resolve day numbers to months.
// Zero restores wall-clock behavior.
func (p *Pipeline) WithReferenceDate(ref time.Time) *Pipeline {
	if ref.IsZero() {
		p.now = time.Now
		return p
	}
	p.now = func() time.Time { return ref }
	return p
}

// Run imports one schedule end to end: hash the file, OCR it (photos) or
// read it directly (.txt dumps), recover the worker's turns and store them.
// The import job row records every stage transition.
func (p *Pipeline) Run(ctx context.Context, path string) (uuid.UUID, []schedule.Turn, error) {
	hash, err := ingest.HashFile(path)
	if err != nil {
		p.logger.Error("failed to hash schedule file", "path", path, "error", err)
		return uuid.Nil, nil, err
	}

	format := constants.FormatImage
	if constants.NormalizeExt(filepath.Ext(path)) == "txt" {
		format = constants.FormatText
	}

	job, err := p.jobs.Start(ctx, p.worker.ID, path, hash, format)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if err := p.jobs.MarkRunning(ctx, job.ID); err != nil {
		return job.ID, nil, err
	}
	log := p.logger.With("job_id", job.ID, "path", path)

	res, err := p.extract(ctx, path, format)
	if err != nil {
		log.Error("extraction failed", "error", err)
		_ = p.jobs.FinishFailure(ctx, job.ID, err.Error())
		return job.ID, nil, err
	}
	if err := p.jobs.FinishOCR(ctx, job.ID, res.Text, res.Confidence, res.Method); err != nil {
		return job.ID, nil, err
	}
	log.Info("extraction completed", "method", res.Method,
		"words", len(res.Words), "confidence", res.Confidence, "duration", res.Duration)

	ref := p.now()
	turns := schedule.ParseWords(res.Words, p.worker.Aliases, schedule.Options{ReferenceDate: ref})
	if len(turns) == 0 && res.Text != "" {
		if len(res.Words) > 0 {
			log.Info("word geometry yielded nothing, trying text fallback")
		}
		days := schedule.ParseText(res.Text, p.worker.Aliases)
		turns = schedule.BuildTurns(days, ref)
	}

	inserted, err := p.turns.UpsertTurns(ctx, p.worker.ID, job.ID, path, turns)
	if err != nil {
		_ = p.jobs.FinishFailure(ctx, job.ID, err.Error())
		return job.ID, nil, err
	}
	if err := p.jobs.FinishSuccess(ctx, job.ID, len(turns)); err != nil {
		return job.ID, turns, err
	}

	log.Info("schedule imported", "turns_found", len(turns), "turns_new", inserted)
	return job.ID, turns, nil
}

// extract runs OCR for photos; .txt dumps skip tesseract entirely.
func (p *Pipeline) extract(ctx context.Context, path, format string) (ocr.Result, error) {
	if format != constants.FormatText {
		return p.extractor.Extract(ctx, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ocr.Result{}, err
	}
	return ocr.Result{Text: ocr.Normalize(string(data)), Method: "text-file"}, nil
}
