// Package server runs the development remote backend's HTTP server with
// graceful shutdown on termination signals.
package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/pkalugin/ironlog/internal/config"
	"github.com/pkalugin/ironlog/internal/logger"
)

type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

func NewServer(handler http.Handler, cfg *config.ServerConfig, logger *logger.Logger) *Server {
	logger.Info().Msg("creating new server...")

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.HTTPAddress,
			Handler: handler,
		},
		logger: logger,
	}
}

// RunServer serves until a termination signal arrives, then shuts down
// gracefully.
func (s *Server) RunServer() {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	go func() {
		<-ctx.Done()
		s.Shutdown()
		close(idleConnectionsClosed)
	}()

	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("launching HTTP server")
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Err(err).Msg("HTTP server ListenAndServe")
		}
	}()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server shutdown gracefully")
}

func (s *Server) Shutdown() {
	if err := s.httpServer.Shutdown(context.Background()); err != nil {
		s.logger.Err(err).Msg("HTTP server shutdown")
	}
}
