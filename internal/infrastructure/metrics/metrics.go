// Package metrics expone las métricas Prometheus del servicio.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics colectores del servicio registrados en un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal  *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
	WSConnections  prometheus.Gauge
	EventsSent     *prometheus.CounterVec
	EventsDropped  *prometheus.CounterVec
}

// New crea y registra los colectores. Cada llamada usa un registry nuevo.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_requests_latency_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		WSConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ws_connections",
				Help: "Open WebSocket connections",
			},
		),
		EventsSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "realtime_events_sent_total",
				Help: "Realtime frames queued for delivery",
			},
			[]string{"type"},
		),
		EventsDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "realtime_events_dropped_total",
				Help: "Realtime frames dropped because the connection queue was full",
			},
			[]string{"type"},
		),
	}
	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestLatency,
		m.WSConnections,
		m.EventsSent,
		m.EventsDropped,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler handler HTTP para /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry registry subyacente (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// EventSent implementa realtime.Recorder.
func (m *Metrics) EventSent(eventType string) { m.EventsSent.WithLabelValues(eventType).Inc() }

// EventDropped implementa realtime.Recorder.
func (m *Metrics) EventDropped(eventType string) { m.EventsDropped.WithLabelValues(eventType).Inc() }

// SetConnections implementa realtime.Recorder.
func (m *Metrics) SetConnections(n int) { m.WSConnections.Set(float64(n)) }
