package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/you/blogsvc/internal/app"
	"github.com/you/blogsvc/internal/config"
	"github.com/you/blogsvc/internal/logging"
	"go.uber.org/zap"
)

// Prepares the configured database (SQL tables or mongo indexes) without
// starting the API.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := app.Migrate(ctx, cfg, logger); err != nil {
		logger.Fatal("migration failed", zap.String("driver", cfg.DatabaseDriver), zap.Error(err))
	}
	fmt.Printf("%s database is ready\n", cfg.DatabaseDriver)
}
