package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mcdev12/matchclock/go/internal/api"
	"github.com/mcdev12/matchclock/go/internal/gateway"
	"github.com/mcdev12/matchclock/go/internal/health"
	"github.com/mcdev12/matchclock/go/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(cfg *Config, services *Services, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	// Admin RPC
	path, handler := api.NewHandler(api.NewService(services.Orchestrator))
	mux.Handle(path, handler)

	// Panel overlay
	gateway.NewWebSocketHandler(services.Connections).RegisterRoutes(mux)

	mux.Handle("/metrics", metrics.Handler(prometheus.DefaultGatherer))
	mux.Handle("/health", checker)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           h2c.NewHandler(c.Handler(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
