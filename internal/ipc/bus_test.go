package ipc

import (
	"sync/atomic"
	"testing"
	"time"

	"image-resizer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversByTopic(t *testing.T) {
	bus := NewBus(8, nil)
	defer bus.Shutdown()

	done := make(chan Message, 1)
	failed := make(chan Message, 1)
	bus.Subscribe(TopicDone, func(m Message) { done <- m })
	bus.Subscribe(TopicFailed, func(m Message) { failed <- m })

	require.True(t, bus.Publish(Message{Topic: TopicDone, Result: &models.ResizeResult{ID: "r1"}}))

	select {
	case m := <-done:
		assert.Equal(t, "r1", m.ID())
		assert.False(t, m.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("done message not delivered")
	}

	select {
	case m := <-failed:
		t.Fatalf("unexpected delivery on %s", m.Topic)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(8, nil)

	var calls atomic.Int32
	unsubscribe := bus.Subscribe(TopicResize, func(Message) { calls.Add(1) })
	unsubscribe()

	bus.Publish(Message{Topic: TopicResize, Request: &models.ResizeRequest{ID: "q1"}})
	bus.Shutdown()

	assert.Zero(t, calls.Load())
}

func TestBusRecoversHandlerPanic(t *testing.T) {
	bus := NewBus(8, nil)

	var calls atomic.Int32
	bus.Subscribe(TopicDone, func(Message) { panic("boom") })
	bus.Subscribe(TopicDone, func(Message) { calls.Add(1) })

	bus.Publish(Message{Topic: TopicDone})
	bus.Publish(Message{Topic: TopicDone})
	bus.Shutdown()

	assert.Equal(t, int32(2), calls.Load())
}

func TestBusShutdownDrainsAndRejects(t *testing.T) {
	bus := NewBus(16, nil)

	var calls atomic.Int32
	bus.Subscribe(TopicResize, func(Message) {
		time.Sleep(10 * time.Millisecond)
		calls.Add(1)
	})

	for i := 0; i < 5; i++ {
		require.True(t, bus.Publish(Message{Topic: TopicResize}))
	}
	bus.Shutdown()
	bus.Shutdown()

	assert.Equal(t, int32(5), calls.Load())
	assert.False(t, bus.Publish(Message{Topic: TopicResize}))
}

func TestMessageID(t *testing.T) {
	assert.Equal(t, "a", Message{Request: &models.ResizeRequest{ID: "a"}}.ID())
	assert.Equal(t, "b", Message{Result: &models.ResizeResult{ID: "b"}}.ID())
	assert.Empty(t, Message{}.ID())
	assert.Equal(t, "image:done id=b", Message{Topic: TopicDone, Result: &models.ResizeResult{ID: "b"}}.String())
}
