// Package stats serves the Prometheus metrics of the bot.
package stats

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// infoGauge is always 1. Its labels identify the running bot.
var infoGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "hackbot",
	Name:      "info",
	Help:      "Information about the running bot",
}, []string{"name", "store"})

// StatsServer serves /metrics on cfg.Stats.ListenAddr.
type StatsServer struct { //nolint:revive
	ctx    context.Context
	cfg    *config.Config
	server *http.Server
}

// NewStatsServer returns a new StatsServer.
func NewStatsServer(ctx context.Context) (*StatsServer, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}
	logger := log.FromContext(ctx).WithPrefix("stats")
	infoGauge.WithLabelValues(cfg.Name, cfg.Store.Driver).Set(1)

	metrics := promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog:      logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
		ErrorHandling: promhttp.ContinueOnError,
		Timeout:       5 * time.Second,
	})

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.InstrumentMetricHandler(prometheus.DefaultRegisterer, metrics))

	return &StatsServer{
		ctx: ctx,
		cfg: cfg,
		server: &http.Server{
			Addr:              cfg.Stats.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      10 * time.Second,
			ErrorLog:          logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
		},
	}, nil
}

// ListenAndServe starts the StatsServer.
func (s *StatsServer) ListenAndServe() error {
	return s.server.ListenAndServe() //nolint:wrapcheck
}

// Shutdown gracefully shuts down the StatsServer.
func (s *StatsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx) //nolint:wrapcheck
}

// Close closes the StatsServer.
func (s *StatsServer) Close() error {
	return s.server.Close() //nolint:wrapcheck
}
