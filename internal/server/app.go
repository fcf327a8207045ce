// Package server initializes and runs the bridge: the HTTP surface the
// offline clients replicate against, backed by Postgres for table snapshots
// and an S3-compatible store for media files.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pitwall/paddockpress/internal/logging"
	"github.com/pitwall/paddockpress/internal/server/config"
	"github.com/pitwall/paddockpress/internal/server/httpapi"
	"github.com/pitwall/paddockpress/internal/server/storage"
	"github.com/pitwall/paddockpress/internal/server/tables"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repo   *tables.Repository
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	repo, err := tables.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	files, err := storage.New(ctx, c)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("file store init error: %w", err)
	}

	srv := httpapi.NewServer(logger, repo, files, c.APIKey)

	return &App{config: c, logger: logger, repo: repo, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting bridge...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx, app.config.EndpointAddr); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.repo.Close(); err != nil {
		app.logger.Warn(ctx, "closing database", "error", err)
	}
}
