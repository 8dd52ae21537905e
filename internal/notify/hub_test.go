package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe(1)
	defer cancel()

	hub.Publish(1)

	select {
	case <-ch:
	default:
		t.Fatal("expected a signal")
	}
}

func TestHub_PublishIsScopedToOwner(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe(1)
	defer cancel()

	hub.Publish(2)

	select {
	case <-ch:
		t.Fatal("signal for another user must not arrive")
	default:
	}
}

func TestHub_PublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe(1)
	defer cancel()

	// second and third publish must not block even though nobody drains
	hub.Publish(1)
	hub.Publish(1)
	hub.Publish(1)

	<-ch
	select {
	case <-ch:
		t.Fatal("coalesced signals should collapse into one")
	default:
	}
}

func TestHub_CancelRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe(1)
	cancel()

	hub.Publish(1)

	select {
	case <-ch:
		t.Fatal("cancelled subscriber must not receive signals")
	default:
	}
}

func TestHub_MultipleSubscribers(t *testing.T) {
	hub := NewHub()
	ch1, cancel1 := hub.Subscribe(1)
	defer cancel1()
	ch2, cancel2 := hub.Subscribe(1)
	defer cancel2()

	hub.Publish(1)

	for i, ch := range []<-chan struct{}{ch1, ch2} {
		select {
		case <-ch:
		default:
			assert.Failf(t, "missing signal", "subscriber %d got no signal", i)
		}
	}
}
