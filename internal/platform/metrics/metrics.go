// Package metrics agrupa los collectors de Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	storeOps     *prometheus.CounterVec
	fetches      *prometheus.CounterVec
}

// New registra los collectors en un registry propio (no el global),
// así los tests pueden crear varios routers sin colisiones.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "animals_store_operations_total",
			Help: "Record store operations by operation and result.",
		}, []string{"op", "result"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_fetches_total",
			Help: "Dashboard fetches by filter label and result.",
		}, []string{"filter", "result"}),
	}
	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.storeOps,
		m.fetches,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StoreOp cuenta una operación del store. Seguro con m == nil.
func (m *Metrics) StoreOp(op string, err error) {
	if m == nil {
		return
	}
	m.storeOps.WithLabelValues(op, result(err)).Inc()
}

// Fetch cuenta un fetch del dashboard. Seguro con m == nil.
func (m *Metrics) Fetch(filter string, err error) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(filter, result(err)).Inc()
}

// Middleware instrumenta requests usando el route pattern de chi (no el path crudo).
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
