package profiler

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMetric(t *testing.T) {
	p := New()

	for _, v := range []float64{3, 1, 5} {
		p.RecordMetric("boxes_kept", v)
	}

	m, ok := p.Metric("boxes_kept")
	require.True(t, ok)
	assert.Equal(t, MetricTracker{Sum: 9, Min: 1, Max: 5, Count: 3}, m)
	assert.Equal(t, 3.0, m.Avg())

	_, ok = p.Metric("missing")
	assert.False(t, ok)
}

func TestRecordOperation(t *testing.T) {
	p := New()

	p.RecordOperation("filter", 2*time.Millisecond)
	p.RecordOperation("filter", 4*time.Millisecond)

	op, ok := p.Operation("filter")
	require.True(t, ok)
	assert.Equal(t, 2*time.Millisecond, op.Min)
	assert.Equal(t, 4*time.Millisecond, op.Max)
	assert.Equal(t, 3*time.Millisecond, op.Avg())
	assert.Equal(t, int64(2), op.Count)
}

func TestStartOperation(t *testing.T) {
	p := New()

	done := p.StartOperation("convert")
	done()

	op, ok := p.Operation("convert")
	require.True(t, ok)
	assert.Equal(t, int64(1), op.Count)
	assert.GreaterOrEqual(t, op.Total, time.Duration(0))
}

func TestConcurrentRecording(t *testing.T) {
	p := New()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.RecordMetric("boxes", 1)
			p.StartOperation("file")()
		}()
	}
	wg.Wait()

	m, _ := p.Metric("boxes")
	op, _ := p.Operation("file")
	assert.Equal(t, int64(32), m.Count)
	assert.Equal(t, int64(32), op.Count)
}

func TestReport(t *testing.T) {
	p := New()
	p.RecordMetric("b_metric", 2)
	p.RecordMetric("a_metric", 1)
	p.RecordOperation("write", time.Millisecond)

	var buf bytes.Buffer
	p.Report(&buf)

	out := buf.String()
	assert.Contains(t, out, "PROFILER REPORT")
	assert.Contains(t, out, "a_metric: avg=1.00, min=1.00, max=1.00, samples=1")
	assert.Contains(t, out, "write: avg=1ms, min=1ms, max=1ms, count=1")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("a_metric")), bytes.Index(buf.Bytes(), []byte("b_metric")))
}
