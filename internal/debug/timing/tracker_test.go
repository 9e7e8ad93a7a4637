package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerAverage(t *testing.T) {
	tt := NewTracker()
	tt.Record("resize", 10*time.Millisecond)
	tt.Record("resize", 30*time.Millisecond)

	assert.Len(t, tt.GetTimings("resize"), 2)
	assert.Equal(t, 20*time.Millisecond, tt.GetAverageTime("resize"))
	assert.Zero(t, tt.GetAverageTime("write"))
}

func TestTrackerStartTiming(t *testing.T) {
	tt := NewTracker()
	stop := tt.StartTiming("read")
	elapsed := stop()

	samples := tt.GetTimings("read")
	assert.Len(t, samples, 1)
	assert.Equal(t, elapsed, samples[0])
}

func TestTrackerBoundedHistory(t *testing.T) {
	tt := NewTracker()
	for i := 0; i < maxSamples+10; i++ {
		tt.Record("total", time.Duration(i))
	}

	samples := tt.GetTimings("total")
	assert.Len(t, samples, maxSamples)
	assert.Equal(t, time.Duration(10), samples[0])
}

func TestTrackerDisabledAndReset(t *testing.T) {
	tt := NewTracker()
	tt.SetEnabled(false)
	tt.Record("read", time.Second)
	assert.Nil(t, tt.GetTimings("read"))

	tt.SetEnabled(true)
	tt.Record("read", time.Second)
	tt.Record("write", time.Second)
	tt.Reset("read")
	assert.Nil(t, tt.GetTimings("read"))
	assert.NotNil(t, tt.GetTimings("write"))

	tt.Reset("")
	assert.Equal(t, "No operations recorded", tt.Report())
}

func TestTrackerReport(t *testing.T) {
	tt := NewTracker()
	tt.Record("write", 2*time.Millisecond)
	tt.Record("read", time.Millisecond)

	assert.Equal(t, "read: 1 runs, avg 1ms\nwrite: 1 runs, avg 2ms", tt.Report())
}
