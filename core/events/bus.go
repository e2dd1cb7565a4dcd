// ABOUTME: In-process refresh event bus with scoped notifications
// ABOUTME: Publish never blocks; slow subscribers drop events instead of stalling refreshes

package events

import "sync"

// ScopeHome is the refresh scope covering the combined home view.
const ScopeHome = "home"

// RefreshEvent announces that fresher data for a scope has landed in the
// store. Scope is ScopeHome or a category slug.
type RefreshEvent struct {
	Scope string `json:"scope"`
}

// Bus fans refresh events out to subscribers.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan RefreshEvent
}

// NewBus creates an event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan RefreshEvent)}
}

// Subscribe registers a subscriber and returns its channel plus a cancel
// function. Cancel is idempotent and closes the channel.
func (b *Bus) Subscribe() (<-chan RefreshEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan RefreshEvent, 8)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber without blocking. A
// subscriber whose buffer is full misses the event.
func (b *Bus) Publish(event RefreshEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
