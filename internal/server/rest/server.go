// Package rest exposes the movie API over HTTP using gin.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/logging"
	"github.com/dmitrijs2005/movieapi/internal/server/auth"
	"github.com/dmitrijs2005/movieapi/internal/server/config"
	"github.com/dmitrijs2005/movieapi/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	staticDir string
	auth      *auth.Service
	users     *services.UserService
	movies    *services.MovieService
	logger    logging.Logger
	engine    *gin.Engine
}

func NewServer(cfg *config.Config, l logging.Logger, as *auth.Service, us *services.UserService, ms *services.MovieService) *Server {
	s := &Server{
		address:   cfg.EndpointAddr,
		staticDir: cfg.StaticDir,
		auth:      as,
		users:     us,
		movies:    ms,
		logger:    l.With("module", "http_server"),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the assembled router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
