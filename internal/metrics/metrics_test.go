package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordAllocation("macro_tilt")
	r.RecordAllocation("macro_tilt")
	r.RecordAllocationError("degenerate")
	r.RecordFetch("REAL_GDP", "ok", 120*time.Millisecond)
	r.RecordFetch("REAL_GDP", "cache_hit", 0)
	r.RecordHTTP("/api/v1/allocations", "POST", 200, 3*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.allocations.WithLabelValues("macro_tilt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.allocationErrors.WithLabelValues("degenerate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetches.WithLabelValues("REAL_GDP", "cache_hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("/api/v1/allocations", "POST", "200")))

	// cache hits are not timed
	assert.Equal(t, 1, testutil.CollectAndCount(r.fetchLatency))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.RecordAllocation("x")
		r.RecordAllocationError("x")
		r.RecordFetch("x", "ok", time.Second)
		r.RecordHTTP("/", "GET", 200, time.Second)
	})
}
