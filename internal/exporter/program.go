package exporter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"auto-monocle/internal/logging"
)

// Program implements service.Interface. It serves the collector on /metrics
// until the service manager stops it.
type Program struct {
	Addr      string
	Collector prometheus.Collector

	server *http.Server
	log    *slog.Logger
}

func NewProgram(addr string, collector prometheus.Collector, log *slog.Logger) *Program {
	return &Program{
		Addr:      addr,
		Collector: collector,
		log:       logging.Component(log, "exporter"),
	}
}

// Handler builds the HTTP handler with a private registry.
func (p *Program) Handler() (http.Handler, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(p.Collector); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: slog.NewLogLogger(p.log.Handler(), slog.LevelError),
	}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux, nil
}

// Start should not block.
func (p *Program) Start(_ service.Service) error {
	handler, err := p.Handler()
	if err != nil {
		return err
	}
	p.server = &http.Server{
		Addr:              p.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go p.run()
	return nil
}

func (p *Program) run() {
	p.log.Info("exporter listening", "addr", p.Addr)
	if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		p.log.Error("HTTP server error", "error", err)
	}
}

// Stop shuts the HTTP server down within 5 seconds.
func (p *Program) Stop(_ service.Service) error {
	p.log.Info("stopping exporter")
	if p.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.server.Shutdown(ctx); err != nil {
		p.log.Warn("server forced to shutdown", "error", err)
		return err
	}
	return nil
}
