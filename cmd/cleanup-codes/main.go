// Command cleanup-codes deletes expired and used login codes. It is
// intended to be invoked by an external cron job, not as an in-process
// goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gramseva/gramseva-backend/internal/adapter/postgres"
	pgotpcode "github.com/gramseva/gramseva-backend/internal/adapter/postgres/otpcode"
	"github.com/gramseva/gramseva-backend/internal/app"
	"github.com/gramseva/gramseva-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	codes := pgotpcode.New(pool)

	deleted, err := codes.DeleteStale(ctx)
	if err != nil {
		logger.Error("cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("cleanup completed", slog.Int("deleted", deleted))
}
