package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/infiniter/eval"
	"github.com/kbukum/infiniter/logger"
	"github.com/kbukum/infiniter/observability"
	"github.com/kbukum/infiniter/resilience"
	"github.com/kbukum/infiniter/server/endpoint"
	"github.com/kbukum/infiniter/server/middleware"
)

// Server is an HTTP server backed by Gin, served over HTTP/1.1 and h2c.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	log        *logger.Logger
	// bulkhead is nil when evaluations are not capped
	bulkhead *resilience.Bulkhead
	// bgCtx scopes background middleware work such as rate limiter pruning
	bgCtx  context.Context
	cancel context.CancelFunc
}

// Routes describes what the evaluation API serves.
type Routes struct {
	ServiceName    string
	ServiceVersion string
	Evaluator      *eval.Evaluator
	// Metrics records evaluations; nil disables recording.
	Metrics *observability.Metrics
	// Checkers extend /health and /ready beyond the generator registry.
	Checkers []observability.HealthChecker
}

// New creates a new Server. No middleware or routes are installed yet; call
// ApplyMiddleware and RegisterRoutes.
func New(cfg Config, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	log = log.WithComponent("server")

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          time.Duration(cfg.IdleTimeout) * time.Second,
	}
	handler := middleware.Chain(
		middleware.RequestLogger(log),
		middleware.CORS(&cfg.CORS),
	)(engine)

	var bulkhead *resilience.Bulkhead
	if cfg.Concurrency.Enabled() {
		bulkhead = resilience.NewBulkhead(cfg.Concurrency)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      h2c.NewHandler(handler, h2s),
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
		},
		engine:   engine,
		config:   cfg,
		log:      log,
		bulkhead: bulkhead,
		bgCtx:    ctx,
		cancel:   cancel,
	}
}

// Handler returns the full handler chain, server-level middleware included.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ApplyMiddleware installs the engine middleware: recovery, request ID,
// rate limiting and the per-request timeout when configured.
func (s *Server) ApplyMiddleware() {
	s.engine.Use(middleware.Recovery(s.log))
	s.engine.Use(middleware.RequestID())
	if s.config.RateLimit.RequestsPerMinute > 0 {
		s.engine.Use(middleware.RateLimit(s.bgCtx, s.config.RateLimit))
	}
	if s.config.RequestTimeout > 0 {
		s.engine.Use(middleware.Timeout(time.Duration(s.config.RequestTimeout) * time.Second))
	}
}

// RegisterRoutes mounts the evaluation API and the probe endpoints.
func (s *Server) RegisterRoutes(r Routes) {
	checkers := append([]observability.HealthChecker{r.Evaluator.Registry()}, r.Checkers...)
	sequences := s.engine.Group("/v1/sequences")
	if s.bulkhead != nil {
		checkers = append(checkers, s.bulkhead)
		sequences.Use(middleware.Concurrency(s.bulkhead))
	}
	sequences.GET("/:name", endpoint.Sequence(r.Evaluator, r.ServiceName, r.Metrics))
	sequences.GET("/:name/stream", endpoint.Stream(r.Evaluator, r.ServiceName, r.Metrics))

	s.engine.GET("/v1/generators", endpoint.Generators(r.Evaluator.Registry()))

	s.engine.GET("/health", endpoint.Health(r.ServiceName, r.ServiceVersion, checkers...))
	s.engine.GET("/ready", endpoint.Readiness(r.ServiceName, checkers...))
	s.engine.GET("/alive", endpoint.Liveness(r.ServiceName))
	s.engine.GET("/version", endpoint.Version())
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(_ context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.WithError(err).Error("Server error")
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": listener.Addr().String(),
	})
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")
	defer s.cancel()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.WithError(err).Error("Server shutdown error")
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
