package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tribeoftech/atlas-files-manager/internal/api"
	"github.com/Tribeoftech/atlas-files-manager/internal/config"
	"github.com/Tribeoftech/atlas-files-manager/internal/platform/crypto"
	"github.com/Tribeoftech/atlas-files-manager/internal/service"
	"github.com/Tribeoftech/atlas-files-manager/internal/storage/disk"
	mongostore "github.com/Tribeoftech/atlas-files-manager/internal/store/mongo"
	redisstore "github.com/Tribeoftech/atlas-files-manager/internal/store/redis"
	"github.com/Tribeoftech/atlas-files-manager/internal/worker"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// main is the entry point for the API server.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run server: %v\n", err)
		os.Exit(1)
	}
}

// run initializes every dependency and starts the HTTP server.
func run() error {
	// =========================================================================
	// Configuration

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	logger.Info("configuration loaded")

	// =========================================================================
	// Database connections

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbClient, err := mongostore.NewClient(dbCtx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer dbClient.Disconnect(context.Background())
	db := dbClient.Database(cfg.Mongo.Database)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(dbCtx).Err(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	defer redisClient.Close()

	logger.Info("stores connected", "mongo", cfg.Mongo.URL, "redis", cfg.Redis.Addr)

	// =========================================================================
	// Stores, queue and services

	userStore, err := mongostore.NewUserStore(dbCtx, db)
	if err != nil {
		return fmt.Errorf("failed to initialize user store: %w", err)
	}
	fileStore := mongostore.NewFileStore(db)
	sessionStore := redisstore.NewSessionStore(redisClient)

	contentStorage, err := disk.New(cfg.Storage.Root)
	if err != nil {
		return err
	}

	queue := worker.NewQueue(asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}))
	defer queue.Close()

	authService := service.NewAuthService(
		userStore,
		sessionStore,
		crypto.NewUUIDGenerator(),
		crypto.NewBcryptManager(cfg.BcryptCost),
		cfg.SessionTTL,
	)
	fileService := service.NewFileService(fileStore, contentStorage, queue, logger)

	// =========================================================================
	// HTTP server

	router := api.NewRouter(
		api.NewAppHandler(userStore, fileStore, sessionStore, func(ctx context.Context) error {
			return dbClient.Ping(ctx, readpref.Primary())
		}),
		api.NewUserHandler(authService),
		api.NewAuthHandler(authService),
		api.NewFileHandler(fileService, sessionStore),
		api.NewAuthMiddleware(sessionStore),
	)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.HTTP.Port)
		serverErrors <- server.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
