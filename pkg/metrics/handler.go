package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetricsHandler serves the collectors of a registry in the exposition format.
type PrometheusMetricsHandler struct {
	gatherer prometheus.Gatherer
}

// NewPrometheusMetricsHandler serves the default registry. Collectors registered with
// MustRegisterDefault and the counters of this package end up there.
func NewPrometheusMetricsHandler() *PrometheusMetricsHandler {
	return &PrometheusMetricsHandler{gatherer: prometheus.DefaultGatherer}
}

func (h *PrometheusMetricsHandler) Handler() http.Handler {
	return promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})
}
