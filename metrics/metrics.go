package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "socialmedia",
		Subsystem: "http",
		Name:      "inflight_requests",
		Help:      "Current number of in-flight HTTP requests.",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "socialmedia",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests handled.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "socialmedia",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	registrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "socialmedia",
		Name:      "registrations_total",
		Help:      "Account registration attempts by result.",
	}, []string{"result"})

	logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "socialmedia",
		Name:      "logins_total",
		Help:      "Login attempts by result.",
	}, []string{"result"})

	messages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "socialmedia",
		Name:      "messages_total",
		Help:      "Message mutations by operation.",
	}, []string{"op"})
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		registrations,
		logins,
		messages,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps next with request count, duration and in-flight metrics.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := canonicalPath(r.URL.Path)
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// canonicalPath collapses ids so the route label stays bounded.
func canonicalPath(raw string) string {
	parts := strings.Split(strings.Trim(raw, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "":
		return "/"
	case parts[0] == "messages" && len(parts) == 2:
		return "/messages/:messageId"
	case parts[0] == "accounts" && len(parts) == 3 && parts[2] == "messages":
		return "/accounts/:accountId/messages"
	case len(parts) == 1:
		return "/" + parts[0]
	default:
		return "/other"
	}
}
