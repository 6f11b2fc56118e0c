// Package profiler - timing and metric tracking for batch box conversion runs.
package profiler

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Profiler tracks per-operation timings and custom metrics. It is safe for
// concurrent use.
type Profiler struct {
	mu        sync.Mutex
	startTime time.Time

	metrics    map[string]*MetricTracker
	operations map[string]*TimeTracker
}

// MetricTracker tracks statistics for a custom metric.
type MetricTracker struct {
	Sum   float64
	Min   float64
	Max   float64
	Count int64
}

// Avg returns the mean recorded value.
func (m MetricTracker) Avg() float64 {
	if m.Count == 0 {
		return 0
	}
	return m.Sum / float64(m.Count)
}

// TimeTracker tracks operation timing statistics.
type TimeTracker struct {
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Count int64
}

// Avg returns the mean operation duration.
func (t TimeTracker) Avg() time.Duration {
	if t.Count == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Count)
}

// New creates an empty profiler whose uptime starts now.
func New() *Profiler {
	return &Profiler{
		startTime:  time.Now(),
		metrics:    make(map[string]*MetricTracker),
		operations: make(map[string]*TimeTracker),
	}
}

// RecordMetric records a custom metric value.
//
// Arguments:
// - name: The name of the metric
// - value: The metric value to record
func (p *Profiler) RecordMetric(name string, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tracker, exists := p.metrics[name]
	if !exists {
		tracker = &MetricTracker{Min: value, Max: value}
		p.metrics[name] = tracker
	}

	tracker.Sum += value
	tracker.Count++
	if value < tracker.Min {
		tracker.Min = value
	}
	if value > tracker.Max {
		tracker.Max = value
	}
}

// StartOperation begins timing an operation.
//
// Arguments:
// - name: The name of the operation to track
//
// Returns:
// - A function to call when the operation completes
//
// @example
// done := prof.StartOperation("filter")
// defer done()
func (p *Profiler) StartOperation(name string) func() {
	start := time.Now()
	return func() {
		p.RecordOperation(name, time.Since(start))
	}
}

// RecordOperation records the completion time of an operation.
func (p *Profiler) RecordOperation(name string, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tracker, exists := p.operations[name]
	if !exists {
		tracker = &TimeTracker{Min: duration, Max: duration}
		p.operations[name] = tracker
	}

	tracker.Total += duration
	tracker.Count++
	if duration < tracker.Min {
		tracker.Min = duration
	}
	if duration > tracker.Max {
		tracker.Max = duration
	}
}

// Metric returns a copy of the named metric's statistics.
func (p *Profiler) Metric(name string) (MetricTracker, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tracker, ok := p.metrics[name]
	if !ok {
		return MetricTracker{}, false
	}
	return *tracker, true
}

// Operation returns a copy of the named operation's statistics.
func (p *Profiler) Operation(name string) (TimeTracker, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tracker, ok := p.operations[name]
	if !ok {
		return TimeTracker{}, false
	}
	return *tracker, true
}

// Report writes every metric and operation timing to w, sorted by name.
func (p *Profiler) Report(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(w, "PROFILER REPORT - uptime %v\n", time.Since(p.startTime).Truncate(time.Millisecond))

	if len(p.metrics) > 0 {
		fmt.Fprintf(w, "\nMETRICS:\n")
		for _, name := range sortedKeys(p.metrics) {
			m := p.metrics[name]
			fmt.Fprintf(w, "  %s: avg=%.2f, min=%.2f, max=%.2f, samples=%d\n",
				name, m.Avg(), m.Min, m.Max, m.Count)
		}
	}

	if len(p.operations) > 0 {
		fmt.Fprintf(w, "\nOPERATION TIMINGS:\n")
		for _, name := range sortedKeys(p.operations) {
			t := p.operations[name]
			fmt.Fprintf(w, "  %s: avg=%v, min=%v, max=%v, count=%d\n",
				name, t.Avg().Truncate(time.Microsecond),
				t.Min.Truncate(time.Microsecond),
				t.Max.Truncate(time.Microsecond),
				t.Count)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
