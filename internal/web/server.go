// Package web serves the engine over HTTP: a JSON API for calculations and
// stored records, plus an HTML report page.
package web

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ssanyal/graha/internal/config"
)

// NewServer creates and configures the HTTP server for the Graha API.
func NewServer(db *sql.DB, cfg *config.Config, version, bind string, port int) *http.Server {
	h := &Handlers{
		db:      db,
		cfg:     cfg,
		version: version,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /{$}", h.HandleIndex)
	mux.HandleFunc("GET /api/v1/health", h.HandleHealth)
	mux.HandleFunc("GET /api/v1/planets", h.HandlePlanets)
	mux.HandleFunc("POST /api/v1/numerology", h.HandleNumerology)
	mux.HandleFunc("POST /api/v1/astrology", h.HandleAstrology)
	mux.HandleFunc("POST /api/v1/dignity", h.HandleDignity)
	mux.HandleFunc("POST /api/v1/analysis", h.HandleAnalysis)
	mux.HandleFunc("POST /api/v1/temporal", h.HandleTemporal)
	mux.HandleFunc("GET /api/v1/records", h.HandleHistory)
	mux.HandleFunc("GET /api/v1/records/{id}", h.HandleFetch)
	mux.HandleFunc("DELETE /api/v1/records/{id}", h.HandleDelete)
	mux.HandleFunc("GET /reports/{id}", h.HandleReport)

	handler := securityHeaders(mux)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'unsafe-inline'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("Graha API running at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
