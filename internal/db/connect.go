package db

import (
	"context"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/logger"
	"taskboard/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(dsn string) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	if err := db.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("database connected")
	return db
}

// OpenStore picks PostgreSQL when DATABASE_URL is configured and the JSON
// document store otherwise.
func OpenStore(cfg *config.Config) repository.Store {
	if cfg.DatabaseURL != "" {
		return repository.NewPostgresStore(Connect(cfg.DatabaseURL))
	}
	logger.Info("using json document store", "path", cfg.DataFile)
	return repository.NewDocumentStore(cfg.DataFile)
}
