package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.ObserveFetch(OutcomeSuccess, 120*time.Millisecond)
	r.ObserveFetch(OutcomeFailure, time.Second)
	r.ObserveFetch(OutcomeSuccess, 80*time.Millisecond)
	r.ObserveRecords(10, 4)
	r.ObserveRecords(5, 5)
	r.WindowUncovered()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.fetches.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetches.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, 15.0, testutil.ToFloat64(r.recordsTotal))
	assert.Equal(t, 9.0, testutil.ToFloat64(r.recordsKept))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.windowUncovered))
}

func TestRecorderUnmatchedRoute(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.ObserveRequest("", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("unmatched", "404")))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveFetch(OutcomeSuccess, time.Second)
		r.ObserveRecords(1, 1)
		r.WindowUncovered()
		r.ObserveRequest("/x", 200, time.Second)
	})
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg)
	assert.Panics(t, func() { NewRecorder(reg) })
}
