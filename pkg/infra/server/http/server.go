// Package http serves a gin engine as a server.Runnable.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/datanikah/pkg/infra/middleware"
	"github.com/kart-io/datanikah/pkg/infra/server"
	httpopts "github.com/kart-io/datanikah/pkg/options/http"
	apierrors "github.com/kart-io/datanikah/pkg/utils/errors"
	"github.com/kart-io/datanikah/pkg/utils/response"
)

var (
	_ server.Runnable = (*Server)(nil)
	_ server.Failer   = (*Server)(nil)
)

// Server is an HTTP server backed by gin.
type Server struct {
	opts   *httpopts.Options
	engine *gin.Engine
	server *http.Server

	mu       sync.Mutex
	listener net.Listener
	failed   chan error
}

// NewServer creates a new HTTP server. Middlewares are applied before any
// route registered on Engine.
func NewServer(opts *httpopts.Options, middlewares ...gin.HandlerFunc) *Server {
	if opts == nil {
		opts = httpopts.NewOptions()
	}
	gin.SetMode(opts.Mode)

	engine := gin.New()
	engine.Use(middlewares...)
	engine.NoRoute(notFound)

	return &Server{
		opts:   opts,
		engine: engine,
		failed: make(chan error, 1),
	}
}

func notFound(c *gin.Context) {
	resp := response.ErrWithLang(apierrors.ErrRouteNotFound, middleware.Language(c)).
		WithRequestID(middleware.GetRequestID(c.Request.Context()))
	c.JSON(resp.HTTPStatus(), resp)
}

// Name returns the server name.
func (s *Server) Name() string {
	return "http"
}

// Engine returns the gin engine for route registration.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.opts.Addr
}

// Failed reports a serve error that happened after Start returned.
func (s *Server) Failed() <-chan error {
	return s.failed
}

// Start binds the listener and serves in the background.
// Bind errors are returned directly.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return errors.New("http server already started")
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return err
	}

	s.listener = ln
	s.server = &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  s.opts.IdleTimeout,
	}

	srv := s.server
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("http server error", "error", err.Error())
			s.failed <- err
		}
	}()

	logger.Infow("HTTP server listening", "addr", ln.Addr().String())
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
