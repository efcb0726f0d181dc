package event

import (
	"context"
	"sync"
)

// Hub is an in-process Publisher that fans changes out to subscribers.
// A subscriber whose buffer is full misses the change instead of blocking the writer.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*subscription
	buffer int
}

type subscription struct {
	ch     chan Change
	filter map[Collection]bool
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 64
	}
	return &Hub{subs: make(map[int]*subscription), buffer: buffer}
}

// Subscribe returns a channel receiving changes for the given collections (all when none given)
// and a cancel function that closes it.
func (h *Hub) Subscribe(collections ...Collection) (<-chan Change, func()) {
	sub := &subscription{ch: make(chan Change, h.buffer)}
	if len(collections) > 0 {
		sub.filter = make(map[Collection]bool, len(collections))
		for _, c := range collections {
			sub.filter[c] = true
		}
	}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = sub
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

func (h *Hub) Publish(_ context.Context, c Change) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if sub.filter != nil && !sub.filter[c.Collection] {
			continue
		}
		select {
		case sub.ch <- c:
		default:
		}
	}
	return nil
}

// Subscribers returns the number of active subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
