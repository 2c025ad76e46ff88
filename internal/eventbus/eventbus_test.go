package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	bus := New()
	defer bus.Close()

	sub := bus.Subscribe()
	bus.Publish("hello")

	select {
	case e := <-sub:
		require.Equal(t, "hello", e)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestFanOutToMultipleSubscribers(t *testing.T) {
	bus := New()
	defer bus.Close()

	a := bus.Subscribe()
	b := bus.Subscribe()
	bus.Publish(42)

	for _, sub := range []<-chan Event{a, b} {
		select {
		case e := <-sub:
			require.Equal(t, 42, e)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	bus := New()
	defer bus.Close()

	_ = bus.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New()
	defer bus.Close()

	sub := bus.Subscribe()
	bus.Unsubscribe(sub)

	_, open := <-sub
	require.False(t, open)

	// Publishing after unsubscribe must not panic.
	bus.Publish("ignored")
}

func TestCloseIsIdempotent(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()

	bus.Close()
	bus.Close()

	_, open := <-sub
	require.False(t, open)

	// Subscribing after close yields a closed channel.
	late := bus.Subscribe()
	_, open = <-late
	require.False(t, open)
}
