// turnosd watches the inbox directories for schedule photos and imports the
// configured worker's turns as they arrive.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"go.uber.org/zap"

	"github.com/turnoapp/turnos-importer/internal/async"
	"github.com/turnoapp/turnos-importer/internal/common"
	"github.com/turnoapp/turnos-importer/internal/ingest"
	"github.com/turnoapp/turnos-importer/internal/ocr"
	"github.com/turnoapp/turnos-importer/internal/pipeline"
	"github.com/turnoapp/turnos-importer/internal/repository"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	// Env
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	db, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, slogger)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("migrating database: %v", err)
	}
	if err := db.HealthCheck(ctx, 3*time.Second); err != nil {
		log.Fatalf("DB health failed: %v", err)
	}
	log.Infow("DB health OK")

	// Worker identity
	workers := repository.NewWorkerRepository(db, slogger)
	worker, err := workers.Upsert(ctx, cfg.Import.WorkerName, cfg.Import.Aliases)
	if err != nil {
		log.Fatalf("registering worker: %v", err)
	}
	log.Infow("worker registered", "name", worker.Name, "aliases", worker.Aliases)

	// Import pipeline behind a worker pool
	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Lang:        cfg.OCR.Lang,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
	}, slogger)
	jobs := repository.NewImportJobRepository(db, slogger)
	turns := repository.NewTurnRepository(db, slogger)
	p := pipeline.New(worker, extractor, jobs, turns, slogger)

	queue := async.NewImportQueue(func(ctx context.Context, path string) error {
		_, _, err := p.Run(ctx, path)
		return err
	}, slogger,
		async.WithWorkers(cfg.Import.Workers),
		async.WithProcessTimeout(cfg.Import.JobTimeout),
	)

	// Inbox watcher
	events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       cfg.Import.InboxDirs,
		InitialScan: true,
		Debounce:    cfg.Import.Debounce,
	})
	if err != nil {
		log.Fatalf("starting watcher: %v", err)
	}
	go func() {
		for {
			select {
			case path, ok := <-events:
				if !ok {
					return
				}
				_ = queue.Enqueue(ctx, async.Job{Path: path, SubmittedAt: time.Now()})
			case werr, ok := <-watchErrs:
				if !ok {
					return
				}
				log.Warnw("watcher error", "error", werr)
			}
		}
	}()
	log.Infow("watching inbox", "dirs", cfg.Import.InboxDirs)

	// gRPC health endpoint
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	log.Infof("gRPC serving on %s", cfg.Server.GRPCAddr)

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("grpc serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	grpcServer.GracefulStop()

	drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	queue.Shutdown(drainCtx)
	fmt.Println("stopped.")
}
