package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "huddle",
		Name:      "active_connections",
		Help:      "Current number of live websocket connections",
	})

	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "huddle",
		Name:      "active_rooms",
		Help:      "Current number of rooms with at least one participant",
	})

	JoinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "huddle",
		Name:      "joins_total",
		Help:      "Total number of successful room joins",
	})

	MessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "huddle",
		Name:      "messages_total",
		Help:      "Total number of chat messages persisted and broadcast",
	})

	SignalsRelayedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "huddle",
		Name:      "signals_relayed_total",
		Help:      "Total number of signaling payloads relayed between peers",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "huddle",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "path", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "huddle",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// Middleware records per-request counters and latency.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		httpLatency.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
