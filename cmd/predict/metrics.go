package main

import (
	"net/http"
	"time"

	"github.com/yourusername/pitchside/internal/metrics"
)

func newMetricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	path := cfg.Metrics.Path
	if path == "" {
		path = "/metrics"
	}
	mux.Handle(path, metrics.Handler())
	return mux
}

func listenAndServe(addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}
