package poolmetrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestRecordAcquire(t *testing.T) {
	m := NewMetrics("test_recordacquire")

	m.RecordAcquire(true)
	m.RecordAcquire(true)
	m.RecordAcquire(false)

	assert.Equal(t, float64(2), counterValue(t, m.segmentsAcquiredTotal.WithLabelValues(statusSuccess)))
	assert.Equal(t, float64(1), counterValue(t, m.segmentsAcquiredTotal.WithLabelValues(statusError)))
}

func TestUpdatePoolStats(t *testing.T) {
	m := NewMetrics("test_updatepoolstats")

	m.UpdatePoolStats(7, 3)

	assert.Equal(t, float64(7), gaugeValue(t, m.segmentsAvailable))
	assert.Equal(t, float64(3), gaugeValue(t, m.segmentsAllocated))
}

func TestRecordCodecOperation(t *testing.T) {
	m := NewMetrics("test_recordcodecoperation")

	m.RecordCodecOperation("encode", true, 2*time.Millisecond)
	m.RecordCodecOperation("decode", false, time.Millisecond)

	assert.Equal(t, float64(1), counterValue(t, m.codecOperationsTotal.WithLabelValues("encode", statusSuccess)))
	assert.Equal(t, float64(1), counterValue(t, m.codecOperationsTotal.WithLabelValues("decode", statusError)))
}

func TestUpdateLayoutCacheSize(t *testing.T) {
	m := NewMetrics("test_updatelayoutcachesize")

	m.UpdateLayoutCacheSize(5)

	assert.Equal(t, float64(5), gaugeValue(t, m.layoutCacheSize))
}
