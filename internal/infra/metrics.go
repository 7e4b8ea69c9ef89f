package infra

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Process-wide collectors, registered on the default Prometheus registry.
var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kiosco",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuracion = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kiosco",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	VentasRegistradas = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kiosco",
		Name:      "ventas_total",
		Help:      "Committed sales by payment status.",
	}, []string{"estado_pago"})

	CierresCaja = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "kiosco",
		Name:      "cierres_caja_total",
		Help:      "Register closes recorded.",
	})

	JobsProcesados = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kiosco",
		Name:      "jobs_total",
		Help:      "Background jobs by type and result (ok|error).",
	}, []string{"type", "result"})

	JobDuracion = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kiosco",
		Name:      "job_duration_seconds",
		Help:      "Background job latency including retries.",
		Buckets:   []float64{.05, .1, .5, 1, 2, 5, 10, 30},
	}, []string{"type"})
)

// MetricsHandler serves the default registry in the Prometheus text format.
func MetricsHandler() http.Handler { return promhttp.Handler() }
