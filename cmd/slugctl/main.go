// Package main is the entry point for slugctl.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/viajastore/backend/internal/cli"
	"github.com/viajastore/backend/internal/config"
	"github.com/viajastore/backend/internal/repo"
	"github.com/viajastore/backend/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	app := cli.App{
		Out:         os.Stdout,
		Err:         os.Stderr,
		OpenAuditor: openAuditor,
	}
	code := cli.Execute(ctx, app, os.Args[1:])
	stop()
	os.Exit(code)
}

// openAuditor connects to the database named by DATABASE_URL. Logs go to
// stderr only at warn and above so stdout stays clean for piping.
func openAuditor(ctx context.Context) (cli.AuditRunner, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: max(level, slog.LevelWarn)}))

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect: %w", err)
	}

	auditor := service.NewAuditService(repo.NewAgencyRepo(pool), repo.NewTripRepo(pool), logger)
	return auditor, pool.Close, nil
}
