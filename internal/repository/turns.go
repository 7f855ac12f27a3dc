package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/turnoapp/turnos-importer/internal/common"
	"github.com/turnoapp/turnos-importer/internal/entity"
	"github.com/turnoapp/turnos-importer/internal/schedule"
)

type TurnRepository interface {
	// UpsertTurns stores parsed turns for a worker. Entries already present
	// keep their original row (first occurrence wins); the count of newly
	// inserted rows is returned.
	UpsertTurns(ctx context.Context, workerID, jobID uuid.UUID, sourcePath string, turns []schedule.Turn) (int, error)
	// ListTurns returns the worker's turns in (date, start_time) order,
	// optionally restricted to a date window (inclusive).
	ListTurns(ctx context.Context, workerID uuid.UUID, fromDate, toDate *time.Time) ([]*entity.Turn, error)
}

type turnRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewTurnRepository(db *DB, logger *slog.Logger) TurnRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &turnRepository{db: db, logger: logger}
}

func (r *turnRepository) UpsertTurns(ctx context.Context, workerID, jobID uuid.UUID, sourcePath string, turns []schedule.Turn) (int, error) {
	inserted := 0
	now := time.Now().UTC().Format(time.RFC3339)

	for _, t := range turns {
		res, err := r.db.sql.ExecContext(ctx,
			r.db.bind(`INSERT INTO turns (id, worker_id, job_id, date, start_time, source_path, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (worker_id, date, start_time) DO NOTHING`),
			uuid.New().String(), workerID.String(), jobID.String(),
			t.Date, t.StartTime, sourcePath, now)
		if err != nil {
			r.logger.Error("failed to insert turn",
				"worker_id", workerID, "date", t.Date, "start_time", t.StartTime, "error", err)
			return inserted, common.DatabaseError("insert turn", err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			inserted++
		}
	}
	return inserted, nil
}

func (r *turnRepository) ListTurns(ctx context.Context, workerID uuid.UUID, fromDate, toDate *time.Time) ([]*entity.Turn, error) {
	query := `SELECT id, worker_id, job_id, date, start_time, source_path, created_at
		FROM turns WHERE worker_id = ?`
	args := []any{workerID.String()}
	if fromDate != nil {
		query += ` AND date >= ?`
		args = append(args, fromDate.Format("2006-01-02"))
	}
	if toDate != nil {
		query += ` AND date <= ?`
		args = append(args, toDate.Format("2006-01-02"))
	}
	query += ` ORDER BY date, start_time`

	rows, err := r.db.sql.QueryContext(ctx, r.db.bind(query), args...)
	if err != nil {
		r.logger.Error("failed to list turns", "worker_id", workerID, "error", err)
		return nil, common.DatabaseError("list turns", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			r.logger.Error("failed to close rows", "error", cerr)
		}
	}()

	var out []*entity.Turn
	for rows.Next() {
		var idStr, workerStr, jobStr, createdAt string
		t := &entity.Turn{}
		if err := rows.Scan(&idStr, &workerStr, &jobStr, &t.Date, &t.StartTime, &t.SourcePath, &createdAt); err != nil {
			return nil, common.DatabaseError("scan turn", err)
		}
		if id, err := uuid.Parse(idStr); err == nil {
			t.ID = id
		}
		if id, err := uuid.Parse(workerStr); err == nil {
			t.WorkerID = id
		}
		if id, err := uuid.Parse(jobStr); err == nil {
			t.JobID = id
		}
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			t.CreatedAt = ts
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, common.DatabaseError("iterate turns", err)
	}
	return out, nil
}
