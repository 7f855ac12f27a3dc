package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/turnoapp/turnos-importer/constants"
	"github.com/turnoapp/turnos-importer/internal/common"
	"github.com/turnoapp/turnos-importer/internal/entity"
)

type ImportJobRepository interface {
	// Start records a QUEUED job for one source file.
	Start(ctx context.Context, workerID uuid.UUID, sourcePath, contentHash, format string) (*entity.ImportJob, error)
	// MarkRunning flips a queued job to RUNNING when a worker picks it up.
	MarkRunning(ctx context.Context, id uuid.UUID) error
	// FinishOCR persists stage-1 output and marks the job OCR_OK.
	FinishOCR(ctx context.Context, id uuid.UUID, ocrText string, confidence float32, method string) error
	// FinishSuccess marks the job PARSE_OK with the recovered turn count.
	FinishSuccess(ctx context.Context, id uuid.UUID, turnsFound int) error
	// FinishFailure marks the job FAILED with a terminal error message.
	FinishFailure(ctx context.Context, id uuid.UUID, message string) error
}

type importJobRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewImportJobRepository(db *DB, logger *slog.Logger) ImportJobRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &importJobRepository{db: db, logger: logger}
}

func (r *importJobRepository) Start(ctx context.Context, workerID uuid.UUID, sourcePath, contentHash, format string) (*entity.ImportJob, error) {
	job := &entity.ImportJob{
		ID:          uuid.New(),
		WorkerID:    workerID,
		SourcePath:  sourcePath,
		ContentHash: contentHash,
		Format:      format,
		Status:      string(constants.JobStatusQueued),
		StartedAt:   time.Now().UTC(),
	}
	_, err := r.db.sql.ExecContext(ctx,
		r.db.bind(`INSERT INTO import_jobs (id, worker_id, source_path, content_hash, format, status, started_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`),
		job.ID.String(), workerID.String(), sourcePath, contentHash, format,
		job.Status, job.StartedAt.Format(time.RFC3339))
	if err != nil {
		r.logger.Error("failed to start import job", "source_path", sourcePath, "error", err)
		return nil, common.DatabaseError("start import job", err)
	}
	return job, nil
}

func (r *importJobRepository) MarkRunning(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.sql.ExecContext(ctx,
		r.db.bind(`UPDATE import_jobs SET status = ? WHERE id = ?`),
		string(constants.JobStatusRunning), id.String())
	if err != nil {
		r.logger.Error("failed to mark job running", "job_id", id, "error", err)
		return common.DatabaseError("mark job running", err)
	}
	return nil
}

func (r *importJobRepository) FinishOCR(ctx context.Context, id uuid.UUID, ocrText string, confidence float32, method string) error {
	_, err := r.db.sql.ExecContext(ctx,
		r.db.bind(`UPDATE import_jobs SET status = ?, ocr_text = ?, confidence = ?, method = ? WHERE id = ?`),
		string(constants.JobStatusOCROK), ocrText, confidence, method, id.String())
	if err != nil {
		r.logger.Error("failed to record ocr result", "job_id", id, "error", err)
		return common.DatabaseError("finish ocr", err)
	}
	return nil
}

func (r *importJobRepository) FinishSuccess(ctx context.Context, id uuid.UUID, turnsFound int) error {
	_, err := r.db.sql.ExecContext(ctx,
		r.db.bind(`UPDATE import_jobs SET status = ?, turns_found = ?, finished_at = ? WHERE id = ?`),
		string(constants.JobStatusParseOK), turnsFound, time.Now().UTC().Format(time.RFC3339), id.String())
	if err != nil {
		r.logger.Error("failed to finish import job", "job_id", id, "error", err)
		return common.DatabaseError("finish job", err)
	}
	return nil
}

func (r *importJobRepository) FinishFailure(ctx context.Context, id uuid.UUID, message string) error {
	_, err := r.db.sql.ExecContext(ctx,
		r.db.bind(`UPDATE import_jobs SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`),
		string(constants.JobStatusFailed), message, time.Now().UTC().Format(time.RFC3339), id.String())
	if err != nil {
		r.logger.Error("failed to record job failure", "job_id", id, "error", err)
		return common.DatabaseError("fail job", err)
	}
	return nil
}
