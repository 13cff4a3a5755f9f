// Package server initializes and runs the task manager application.
// It wires configuration, storage, services and the HTTP server together
// and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/tzetzo/task-manager-api/internal/logging"
	"github.com/tzetzo/task-manager-api/internal/server/auth"
	"github.com/tzetzo/task-manager-api/internal/server/config"
	"github.com/tzetzo/task-manager-api/internal/server/httpapi"
	"github.com/tzetzo/task-manager-api/internal/server/repositories/repomanager"
	"github.com/tzetzo/task-manager-api/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	repos      repomanager.RepositoryManager
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	rm, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	secret := []byte(cfg.SecretKey)
	accountService := services.NewAccounts(rm.Accounts(), rm.SessionTokens(), rm.Tasks(),
		func(accountID string) (string, error) {
			return auth.GenerateToken(accountID, secret)
		})
	taskService := services.NewTasks(rm.Tasks())

	srv := httpapi.NewServer(cfg, logger, accountService, taskService)

	return &App{config: cfg, logger: logger, repos: rm, httpServer: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
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

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
