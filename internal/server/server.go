package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the deskhand HTTP API server.
type Server struct {
	addr       string
	historyDir string
	version    string
	startTime  time.Time
	assistant  Assistant
	gatherer   prometheus.Gatherer
	sseHub     *SSEHub
	logger     *slog.Logger
}

// New creates a Server. historyDir is watched for the event stream; gatherer
// backs /metrics and may be nil to disable it.
func New(addr, historyDir, version string, a Assistant, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	return &Server{
		addr:       addr,
		historyDir: historyDir,
		version:    version,
		startTime:  time.Now(),
		assistant:  a,
		gatherer:   gatherer,
		sseHub:     NewSSEHub(historyDir, logger),
		logger:     logger,
	}
}

// Handler builds the routed, request-validating HTTP handler.
func (s *Server) Handler(ctx context.Context) (http.Handler, error) {
	router, err := loadRouter(ctx)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	h := &Handlers{
		Assistant: s.assistant,
		Version:   s.version,
		StartTime: s.startTime,
		Logger:    s.logger,
	}
	h.Register(mux)

	// SSE endpoint streams directly from the hub.
	mux.Handle("GET /api/events", s.sseHub)

	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	mux.HandleFunc("GET /openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openAPISpec)
	})

	return validateRequests(router, mux), nil
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	handler, err := s.Handler(ctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start SSE hub watcher.
	go s.sseHub.Start(ctx)

	// Start listener so we can log the actual port.
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}

	s.logger.Info("api server started", "addr", ln.Addr().String())

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
