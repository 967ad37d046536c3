// Package server wires configuration, storage, authentication and the HTTP
// layer into a runnable application.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/movieapi/internal/logging"
	"github.com/dmitrijs2005/movieapi/internal/server/auth"
	"github.com/dmitrijs2005/movieapi/internal/server/config"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/movieapi/internal/server/rest"
	"github.com/dmitrijs2005/movieapi/internal/server/services"
	"github.com/gin-gonic/gin"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	server      *rest.Server
}

// newRepositoryManager is a seam so tests can avoid a real database.
var newRepositoryManager = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	if dsn == repomanager.MemoryDSN {
		return repomanager.NewMemoryRepositoryManager(), nil
	}
	return repomanager.OpenPostgres(ctx, dsn)
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	rm, err := newRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		rm.Close()
		return nil, err
	}

	as, err := auth.NewService(rm.Users(), c, logger)
	if err != nil {
		rm.Close()
		return nil, err
	}

	us := services.NewUserService(rm, as.Hasher(), logger)
	ms := services.NewMovieService(rm, c)

	if logging.ParseLevel(c.LogLevel) > logging.ParseLevel("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	return &App{
		config:      c,
		logger:      logger,
		repomanager: rm,
		server:      rest.NewServer(c, logger, as, us, ms),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	defer func() {
		if err := app.repomanager.Close(); err != nil {
			app.logger.Error(ctx, "closing storage", "error", err)
		}
	}()

	return app.server.Run(ctx)
}
