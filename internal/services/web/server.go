// Package web exposes the orchestrator to browsers as a JSON API: a
// state snapshot endpoint plus one intent endpoint per user interaction.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"golang.org/x/text/language"

	"github.com/caoslabs/caos/internal/app"
	"github.com/caoslabs/caos/internal/platform/i18n"
)

const shutdownTimeout = 5 * time.Second

// Config holds the web server configuration.
type Config struct {
	HTTPAddr string
	App      *app.App
	Locale   string
	Logger   *log.Logger
}

// Server serves the render-surface API over HTTP.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	app        *app.App
	locale     language.Tag
	logger     *log.Logger
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.App == nil {
		return nil, errors.New("app is required")
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	server := &Server{
		httpAddr: httpAddr,
		app:      config.App,
		locale:   i18n.ParseTag(config.Locale),
		logger:   config.Logger,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), traceMiddleware())

	engine.GET("/healthz", server.handleHealth)
	api := engine.Group("/api")
	api.GET("/state", server.handleState)
	api.POST("/intents/:name", server.handleIntent)

	server.httpServer = &http.Server{
		Addr:              httpAddr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server, nil
}

// ListenAndServe serves HTTP until ctx is done, then shuts down cleanly.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}

	serveErr := make(chan error, 1)
	s.logger.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Handler exposes the route tree for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleState(c *gin.Context) {
	snapshot, err := s.app.State(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildStateView(snapshot, s.locale))
}

func (s *Server) handleIntent(c *gin.Context) {
	intent, err := parseIntent(c)
	if err != nil {
		s.renderError(c, err)
		return
	}

	if err := s.app.Dispatch(c.Request.Context(), intent); err != nil {
		s.renderError(c, err)
		return
	}

	snapshot, err := s.app.State(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildStateView(snapshot, s.locale))
}

func traceMiddleware() gin.HandlerFunc {
	tracer := otel.Tracer("caos/web")
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+c.FullPath())
		defer span.End()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
