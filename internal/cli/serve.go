package cli

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/circuit"
	httpAdapter "github.com/aretw0/circuit/pkg/adapters/http"
	"github.com/aretw0/circuit/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServeHandler builds the circuit for `serve` and its HTTP surface: the
// JSON API and event stream at the root and Prometheus metrics at /metrics.
func NewServeHandler(opts Options, logger *slog.Logger) (http.Handler, *circuit.Circuit, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)
	streams := httpAdapter.NewStreamManager(logger)

	c, err := createCircuit(opts, logger,
		observability.LogHooks(logger),
		metrics.Hooks(),
		streams.Hooks(),
	)
	if err != nil {
		return nil, nil, err
	}

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Mount("/", httpAdapter.NewHandler(c, streams, logger))
	return r, c, nil
}
