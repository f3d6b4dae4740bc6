package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cartsvc "storefront/internal/service/cart"
)

const namespace = "storefront"

type Metrics struct {
	Requests    *prometheus.CounterVec
	LatencyMS   *prometheus.HistogramVec
	CartActions *prometheus.CounterVec
	Sessions    prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers the storefront collectors on reg. Passing a fresh
// prometheus.NewRegistry keeps tests independent of the default registry.
func New(reg *prometheus.Registry) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "actions_total",
		Help:      "Cart store mutations by action.",
	}, []string{"action"})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "sessions",
		Help:      "Live shopper sessions.",
	})

	reg.MustRegister(requests, latency, actions, sessions)
	return &Metrics{
		Requests:    requests,
		LatencyMS:   latency,
		CartActions: actions,
		Sessions:    sessions,
		gatherer:    reg,
	}
}

// Middleware records count and latency per matched route. Event streams are
// counted but kept out of the latency histogram: they last as long as the
// client stays connected.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		if isEventStream(c.Writer.Header().Get("Content-Type")) {
			return
		}
		m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	}
}

func isEventStream(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "text/event-stream")
}

// ObserveCart counts every action dispatched to store.
func (m *Metrics) ObserveCart(store *cartsvc.Store) (unsubscribe func()) {
	return store.Subscribe(func(ev cartsvc.Event) {
		m.CartActions.WithLabelValues(string(ev.Action)).Inc()
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
