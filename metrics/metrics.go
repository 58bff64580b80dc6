package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rustyeddy/hedger/analysis"
)

const namespace = "hedger"

// Recorder holds the hedger collectors. It satisfies analysis.Observer.
type Recorder struct {
	analyses    *prometheus.CounterVec
	errors      *prometheus.CounterVec
	currentRate *prometheus.GaugeVec
	latency     prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests to keep them isolated.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "analysis",
				Name:      "total",
				Help:      "Completed analyses by trade direction and dominant outcome",
			},
			[]string{"direction", "dominant"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "analysis",
				Name:      "errors_total",
				Help:      "Failed analyses by kind",
			},
			[]string{"kind"},
		),
		currentRate: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "current_rate",
				Help:      "Most recent exchange rate used by an analysis",
			},
			[]string{"instrument"},
		),
		latency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "analysis",
				Name:      "latency_seconds",
				Help:      "Time spent producing an analysis, including the rate lookup",
				Buckets:   prometheus.DefBuckets,
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route", "method"},
		),
	}

	reg.MustRegister(r.analyses, r.errors, r.currentRate, r.latency, r.httpRequests, r.httpDuration)
	return r
}

func (r *Recorder) ObserveAnalysis(rep *analysis.Report, elapsed time.Duration) {
	dir, _ := rep.Trade.Direction.MarshalText()
	dom, _ := rep.Trend.Outcome.MarshalText()

	r.analyses.WithLabelValues(string(dir), string(dom)).Inc()
	r.currentRate.WithLabelValues(rep.Instrument).Set(rep.CurrentRate)
	r.latency.Observe(elapsed.Seconds())
}

func (r *Recorder) RecordError(kind string) {
	r.errors.WithLabelValues(kind).Inc()
}

// Middleware records request counts and durations labelled by the chi route
// pattern, so path parameters don't blow up cardinality.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, req)

		route := routeLabel(req)
		r.httpRequests.WithLabelValues(route, req.Method, strconv.Itoa(rw.status)).Inc()
		r.httpDuration.WithLabelValues(route, req.Method).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func routeLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
