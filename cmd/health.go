package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/latoulicious/adventour/internal/version"
	"github.com/latoulicious/adventour/pkg/logging"
)

// SystemHealth is the body served by the health endpoints
type SystemHealth struct {
	Status    string       `json:"status"`
	Uptime    string       `json:"uptime"`
	StartTime time.Time    `json:"start_time"`
	Database  bool         `json:"database_connected"`
	Version   version.Info `json:"version"`
}

type healthChecker struct {
	db    *sql.DB
	start time.Time
}

func (h *healthChecker) snapshot(ctx context.Context) SystemHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	connected := h.db.PingContext(ctx) == nil
	status := "healthy"
	if !connected {
		status = "unhealthy"
	}

	return SystemHealth{
		Status:    status,
		Uptime:    time.Since(h.start).Round(time.Second).String(),
		StartTime: h.start,
		Database:  connected,
		Version:   version.Get(),
	}
}

// ServeHTTP answers 200 while the database responds and 503 otherwise
func (h *healthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	health := h.snapshot(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if health.Database {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(health)
}

// startHealthCheckServer starts the HTTP server for health checks. It
// returns nil when addr is empty.
func startHealthCheckServer(addr string, db *sql.DB, logger logging.Logger) *http.Server {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/health", &healthChecker{db: db, start: time.Now()})

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Starting health check server", map[string]interface{}{"addr": addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Health check server error", err, nil)
		}
	}()

	return server
}

// shutdownHealthServer gracefully shuts down the health check server
func shutdownHealthServer(server *http.Server, logger logging.Logger) {
	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Health server shutdown error", err, nil)
		return
	}
	logger.Info("Health check server shutdown complete", nil)
}
