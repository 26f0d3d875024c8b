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
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "team",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests broken down by route, method and status.",
	}, []string{"route", "method", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "team",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	invitations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "team",
		Subsystem: "invitations",
		Name:      "total",
		Help:      "Invitation lifecycle transitions.",
	}, []string{"event"})

	searchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "team",
		Subsystem: "search",
		Name:      "queries_total",
		Help:      "Search queries applied to list views, by entity.",
	}, []string{"entity"})
)

func InvitationCreated() {
	invitations.WithLabelValues("created").Inc()
}

func InvitationAccepted() {
	invitations.WithLabelValues("accepted").Inc()
}

func SearchQuery(entity string) {
	searchQueries.WithLabelValues(entity).Inc()
}

// Middleware records request count and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
