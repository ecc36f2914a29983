package score

import (
	"math"
	"sync"
	"time"
)

// LatencyTracker keeps the most recent call durations in a fixed-capacity
// FIFO window and reports their arithmetic mean once the window is full.
// One instance lives for the whole process and is shared by every request
// hitting the instrumented backend; the window is never reset.
type LatencyTracker struct {
	mu       sync.Mutex
	samples  []float64 // seconds, oldest first
	capacity int
}

// NewLatencyTracker returns a tracker holding up to capacity samples.
// Non-positive capacities fall back to 10.
func NewLatencyTracker(capacity int) *LatencyTracker {
	if capacity <= 0 {
		capacity = 10
	}
	return &LatencyTracker{capacity: capacity}
}

// Observe appends one sample, evicting the oldest beyond capacity, and
// returns the mean over the window rounded to three decimals. The average
// is valid only when ok is true, i.e. the window is full. Append, eviction
// and averaging happen under a single lock so concurrent callers never see
// a partially updated window.
func (t *LatencyTracker) Observe(elapsed time.Duration) (avg float64, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.samples = append(t.samples, elapsed.Seconds())
	if len(t.samples) > t.capacity {
		t.samples = t.samples[1:]
	}
	if len(t.samples) < t.capacity {
		return 0, false
	}
	var sum float64
	for _, s := range t.samples {
		sum += s
	}
	return math.Round(sum/float64(t.capacity)*1000) / 1000, true
}
