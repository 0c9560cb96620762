package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the scheduler service
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	runDuration     prometheus.Histogram
	runsTotal       *prometheus.CounterVec
	assignedHours   prometheus.Counter
	unscheduled     prometheus.Counter
	cacheLookups    *prometheus.CounterVec
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_run_duration_seconds",
		Help:    "Duration of scheduling runs",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	runsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_runs_total",
		Help: "Scheduling runs by final session status",
	}, []string{"status"})

	assignedHours := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_assigned_hours_total",
		Help: "Hours placed in timetables",
	})

	unscheduled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_unscheduled_hours_total",
		Help: "Hours that could not be placed",
	})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_cache_lookups_total",
		Help: "Result cache lookups by outcome",
	}, []string{"result"})

	registry.MustRegister(
		requestDuration, requestTotal, runDuration, runsTotal, assignedHours, unscheduled, cacheLookups,
		collectors.NewGoCollector(),
	)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		runDuration:     runDuration,
		runsTotal:       runsTotal,
		assignedHours:   assignedHours,
		unscheduled:     unscheduled,
		cacheLookups:    cacheLookups,
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveRun records a finished scheduling run
func (m *Metrics) ObserveRun(status string, duration time.Duration, assignedHours, unscheduledHours int) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(status).Inc()
	m.runDuration.Observe(duration.Seconds())
	m.assignedHours.Add(float64(assignedHours))
	m.unscheduled.Add(float64(unscheduledHours))
}

// ObserveCacheLookup records a result cache hit or miss
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// Middleware returns gin middleware that captures request metrics
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
