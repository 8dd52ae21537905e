package notify

import "sync"

// Hub fans out "records changed" signals per user. Subscribers re-fetch and
// re-derive; no payload is carried, the signal only says "data changed".
type Hub struct {
	mu   sync.Mutex
	subs map[uint]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint]map[chan struct{}]struct{})}
}

// Subscribe registers a listener for the given user. The returned cancel
// function must be called when the listener goes away.
func (h *Hub) Subscribe(ownerID uint) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	set, ok := h.subs[ownerID]
	if !ok {
		set = make(map[chan struct{}]struct{})
		h.subs[ownerID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[ownerID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, ownerID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish signals every subscriber of ownerID. The send is non-blocking: a
// subscriber that already has a pending signal needs no second one.
func (h *Hub) Publish(ownerID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[ownerID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
