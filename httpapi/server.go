package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/netutil"

	"github.com/kbukum/pktchain/config"
	"github.com/kbukum/pktchain/descriptor"
	"github.com/kbukum/pktchain/filter"
	"github.com/kbukum/pktchain/logger"
	"github.com/kbukum/pktchain/observability"
)

const (
	shutdownTimeout = 5 * time.Second
	maxBodySize     = 32 << 20
)

// Server serves the pktchain HTTP API.
type Server struct {
	engine  *gin.Engine
	cfg     config.ServerConfig
	reg     *filter.Registry
	catalog *descriptor.Catalog
	metrics *observability.Metrics
	log     *logger.Logger
}

// Option customises a Server.
type Option func(*Server)

// WithCatalog makes the chains of c available by name.
func WithCatalog(c *descriptor.Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

// WithMetrics records packet and run metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a Server building chains from reg.
func New(cfg config.ServerConfig, reg *filter.Registry, log *logger.Logger, opts ...Option) *Server {
	s := &Server{
		engine: gin.New(),
		cfg:    cfg,
		reg:    reg,
		log:    log.WithComponent("httpapi"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine.Use(Recovery(s.log), RequestID(), RequestLogger(s.log), BodyLimit(maxBodySize))
	s.engine.GET("/health", s.health)

	v1 := s.engine.Group("/v1")
	if cfg.JWTSecret != "" {
		v1.Use(Auth([]byte(cfg.JWTSecret)))
	}
	v1.GET("/filters", s.listFilters)
	v1.GET("/chains", s.listChains)
	v1.POST("/run", s.run)
	v1.POST("/run/stream", s.runStream)
	v1.POST("/chains/:name/run", s.runNamed)

	return s
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts at most MaxConns concurrent connections on ln and serves
// until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConns)
	}
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.log.Info("HTTP server started", logger.Fields(
		"addr", ln.Addr().String(),
		"max_conns", s.cfg.MaxConns,
	))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
