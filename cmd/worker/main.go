package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Tribeoftech/atlas-files-manager/internal/config"
	"github.com/Tribeoftech/atlas-files-manager/internal/storage/disk"
	mongostore "github.com/Tribeoftech/atlas-files-manager/internal/store/mongo"
	"github.com/Tribeoftech/atlas-files-manager/internal/worker"

	"github.com/hibiken/asynq"
)

// main is the entry point for the thumbnail worker.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run worker: %v\n", err)
		os.Exit(1)
	}
}

// run wires the stores and serves the job queue until signalled to stop.
// asynq installs its own SIGINT/SIGTERM handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbClient, err := mongostore.NewClient(dbCtx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer dbClient.Disconnect(context.Background())

	fileStore := mongostore.NewFileStore(dbClient.Database(cfg.Mongo.Database))

	contentStorage, err := disk.New(cfg.Storage.Root)
	if err != nil {
		return err
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(worker.TypeThumbnail, worker.NewThumbnailProcessor(fileStore, contentStorage, logger))

	logger.Info("worker starting", "concurrency", cfg.Worker.Concurrency)
	if err := srv.Run(mux); err != nil {
		return fmt.Errorf("worker stopped: %w", err)
	}
	return nil
}
