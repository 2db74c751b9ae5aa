package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "adreport"

// Fetch outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder owns the service collectors. All methods are safe to call on a
// nil *Recorder.
type Recorder struct {
	fetches         *prometheus.CounterVec
	fetchDuration   prometheus.Histogram
	recordsTotal    prometheus.Counter
	recordsKept     prometheus.Counter
	windowUncovered prometheus.Counter
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_fetches_total",
			Help:      "Upstream report fetches by outcome.",
		}, []string{"outcome"}),
		fetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_fetch_duration_seconds",
			Help:      "Latency of upstream report fetches.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		recordsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_received_total",
			Help:      "Raw records received from upstream.",
		}),
		recordsKept: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_returned_total",
			Help:      "Normalized records returned after window filtering.",
		}),
		windowUncovered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "window_uncovered_total",
			Help:      "Requests whose upstream day range does not reach back to start_date.",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func (r *Recorder) ObserveFetch(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.fetches.WithLabelValues(outcome).Inc()
	r.fetchDuration.Observe(d.Seconds())
}

func (r *Recorder) ObserveRecords(total, kept int) {
	if r == nil {
		return
	}
	r.recordsTotal.Add(float64(total))
	r.recordsKept.Add(float64(kept))
}

func (r *Recorder) WindowUncovered() {
	if r == nil {
		return
	}
	r.windowUncovered.Inc()
}

func (r *Recorder) ObserveRequest(route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}
