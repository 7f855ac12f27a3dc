// export-turns writes a worker's stored turns to an XLSX workbook.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/turnoapp/turnos-importer/internal/export"
	"github.com/turnoapp/turnos-importer/internal/repository"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	dbFlag := flag.String("db", os.Getenv("DB_URL"), "database (sqlite path or postgres:// URL)")
	workerFlag := flag.String("worker", "", "worker name (required)")
	fromFlag := flag.String("from", "", "start date YYYY-MM-DD (inclusive)")
	toFlag := flag.String("to", "", "end date YYYY-MM-DD (inclusive)")
	outFlag := flag.String("o", "turns.xlsx", "output file")
	flag.Parse()

	if *dbFlag == "" || *workerFlag == "" {
		logger.Error("usage", "cmd", "export-turns -db DSN -worker NAME [-from YYYY-MM-DD] [-to YYYY-MM-DD] [-o turns.xlsx]")
		os.Exit(2)
	}

	var from, to *time.Time
	if *fromFlag != "" {
		t, err := time.Parse("2006-01-02", *fromFlag)
		if err != nil {
			logger.Error("invalid -from date", "from", *fromFlag, "error", err)
			os.Exit(2)
		}
		from = &t
	}
	if *toFlag != "" {
		t, err := time.Parse("2006-01-02", *toFlag)
		if err != nil {
			logger.Error("invalid -to date", "to", *toFlag, "error", err)
			os.Exit(2)
		}
		to = &t
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := repository.Open(ctx, repository.Config{DSN: *dbFlag, DialTimeout: 3 * time.Second}, logger)
	if err != nil {
		logger.Error("open db", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		logger.Error("migrate db", "error", err)
		os.Exit(1)
	}

	worker, err := repository.NewWorkerRepository(db, logger).GetByName(ctx, *workerFlag)
	if err != nil {
		logger.Error("unknown worker", "worker", *workerFlag, "error", err)
		os.Exit(1)
	}

	svc := export.NewService(repository.NewTurnRepository(db, logger), logger)
	data, err := svc.ExportTurnsXLSX(ctx, worker.ID, from, to)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outFlag, data, 0o644); err != nil {
		logger.Error("write output", "path", *outFlag, "error", err)
		os.Exit(1)
	}
	logger.Info("export written", "path", *outFlag, "bytes", len(data))
}
