package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	Register()
	Register()

	assert.NotPanics(t, func() {
		IncHTTP("test_endpoint")
	})

	before := testutil.ToFloat64(reservations.WithLabelValues("seat_conflict"))
	ObserveReservation("seat_conflict", 5*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(reservations.WithLabelValues("seat_conflict")))

	IncCancellation("ok")
	assert.GreaterOrEqual(t, testutil.ToFloat64(cancellations.WithLabelValues("ok")), 1.0)

	IncReport(true)
	IncReport(false)
	assert.GreaterOrEqual(t, testutil.ToFloat64(reports.WithLabelValues("true")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(reports.WithLabelValues("false")), 1.0)
}
