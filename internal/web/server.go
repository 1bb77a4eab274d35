package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hpungsan/stringlens/internal/config"
	"github.com/hpungsan/stringlens/internal/metrics"
	"github.com/hpungsan/stringlens/internal/store"
)

// shutdownTimeout bounds graceful shutdown after SIGINT/SIGTERM.
const shutdownTimeout = 5 * time.Second

// NewServer creates and configures the HTTP server for the string API.
// collector may be nil, in which case /metrics is not mounted.
func NewServer(st store.Store, cfg *config.Config, logger *slog.Logger, collector *metrics.Collector, version string) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler:           NewHandler(st, logger, collector, version),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler builds the routed handler wrapped in the middleware chain.
func NewHandler(st store.Store, logger *slog.Logger, collector *metrics.Collector, version string) http.Handler {
	h := &Handlers{
		store:   st,
		logger:  logger,
		metrics: collector,
		version: version,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax. The literal natural-language
	// route is more specific than {string_value} and wins.
	mux.HandleFunc("GET /{$}", h.HandleIndex)
	mux.HandleFunc("POST /strings", h.HandleCreate)
	mux.HandleFunc("GET /strings", h.HandleList)
	mux.HandleFunc("GET /strings/filter-by-natural-language", h.HandleNatural)
	mux.HandleFunc("GET /strings/{string_value}", h.HandleGet)
	mux.HandleFunc("DELETE /strings/{string_value}", h.HandleDelete)

	if collector != nil {
		mux.Handle("GET /metrics", collector.Handler())
	}

	// Outermost first: cors, request ID, observe (log + metrics), recover.
	var handler http.Handler = mux
	handler = recoverPanics(logger, handler)
	handler = observe(logger, collector, handler)
	handler = requestID(handler)
	handler = cors(handler)
	handler = securityHeaders(handler)
	return handler
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, logger *slog.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("server running", slog.String("url", "http://"+srv.Addr))

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		logger.Warn("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", slog.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
