package pipeline

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathLocksSerialiseSamePath(t *testing.T) {
	locks := newPathLocks()

	var active, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("/out/a.png")
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			active.Add(-1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), peak.Load())
	assert.Zero(t, locks.len())
}

func TestPathLocksIndependentPaths(t *testing.T) {
	locks := newPathLocks()

	unlockA := locks.Lock("/out/a.png")
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("/out/b.png")
		unlockB()
		close(done)
	}()
	<-done
	unlockA()

	assert.Zero(t, locks.len())
}
