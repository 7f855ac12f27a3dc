package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/turnoapp/turnos-importer/internal/common"
	"github.com/turnoapp/turnos-importer/internal/entity"
)

type WorkerRepository interface {
	// Upsert creates the worker or replaces their alias list.
	Upsert(ctx context.Context, name string, aliases []string) (*entity.Worker, error)
	GetByName(ctx context.Context, name string) (*entity.Worker, error)
}

type workerRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewWorkerRepository(db *DB, logger *slog.Logger) WorkerRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &workerRepository{db: db, logger: logger}
}

func (r *workerRepository) Upsert(ctx context.Context, name string, aliases []string) (*entity.Worker, error) {
	aliasJSON, err := json.Marshal(aliases)
	if err != nil {
		return nil, common.WrapError(err, "encode aliases")
	}

	existing, err := r.GetByName(ctx, name)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		_, err = r.db.sql.ExecContext(ctx,
			r.db.bind(`UPDATE workers SET aliases = ? WHERE id = ?`),
			string(aliasJSON), existing.ID.String())
		if err != nil {
			r.logger.Error("failed to update worker aliases", "name", name, "error", err)
			return nil, common.DatabaseError("update worker", err)
		}
		existing.Aliases = aliases
		return existing, nil
	}

	w := &entity.Worker{
		ID:        uuid.New(),
		Name:      name,
		Aliases:   aliases,
		CreatedAt: time.Now().UTC(),
	}
	_, err = r.db.sql.ExecContext(ctx,
		r.db.bind(`INSERT INTO workers (id, name, aliases, created_at) VALUES (?, ?, ?, ?)`),
		w.ID.String(), w.Name, string(aliasJSON), w.CreatedAt.Format(time.RFC3339))
	if err != nil {
		r.logger.Error("failed to insert worker", "name", name, "error", err)
		return nil, common.DatabaseError("insert worker", err)
	}
	return w, nil
}

func (r *workerRepository) GetByName(ctx context.Context, name string) (*entity.Worker, error) {
	row := r.db.sql.QueryRowContext(ctx,
		r.db.bind(`SELECT id, name, aliases, created_at FROM workers WHERE name = ?`), name)

	var idStr, aliasJSON, createdAt string
	w := &entity.Worker{}
	if err := row.Scan(&idStr, &w.Name, &aliasJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewAppError("WORKER_NOT_FOUND", name, common.ErrNotFound)
		}
		r.logger.Error("failed to load worker", "name", name, "error", err)
		return nil, common.DatabaseError("load worker", err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, common.WrapError(err, "parse worker id")
	}
	w.ID = id
	if err := json.Unmarshal([]byte(aliasJSON), &w.Aliases); err != nil {
		return nil, common.WrapError(err, "decode aliases")
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		w.CreatedAt = t
	}
	return w, nil
}
