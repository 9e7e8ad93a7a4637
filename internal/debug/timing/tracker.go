package timing

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// maxSamples bounds the history kept per operation.
const maxSamples = 256

type Tracker struct {
	mu      sync.RWMutex
	timings map[string][]time.Duration
	enabled bool
}

func NewTracker() *Tracker {
	return &Tracker{
		timings: make(map[string][]time.Duration),
		enabled: true,
	}
}

// StartTiming returns the func that records the elapsed time for operation.
func (tt *Tracker) StartTiming(operation string) func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		elapsed := time.Since(start)
		tt.Record(operation, elapsed)
		return elapsed
	}
}

func (tt *Tracker) Record(operation string, d time.Duration) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if !tt.enabled {
		return
	}

	samples := append(tt.timings[operation], d)
	if len(samples) > maxSamples {
		samples = samples[len(samples)-maxSamples:]
	}
	tt.timings[operation] = samples
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, duration := range timings {
		total += duration
	}

	return total / time.Duration(len(timings))
}

// Report renders one line per operation, sorted by name.
func (tt *Tracker) Report() string {
	tt.mu.RLock()
	operations := make([]string, 0, len(tt.timings))
	for op := range tt.timings {
		operations = append(operations, op)
	}
	tt.mu.RUnlock()

	if len(operations) == 0 {
		return "No operations recorded"
	}
	sort.Strings(operations)

	var b strings.Builder
	for _, op := range operations {
		samples := tt.GetTimings(op)
		fmt.Fprintf(&b, "%s: %d runs, avg %s\n", op, len(samples), tt.GetAverageTime(op).Round(time.Microsecond))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, operation)
	}
}
