package events

import "sync"

// Listener receives published events.
type Listener func(Event)

// SubscriptionID identifies a registered listener.
type SubscriptionID uint64

type subscription struct {
	id SubscriptionID
	fn Listener
}

// Bus is a synchronous publish/subscribe broadcaster.
// Listeners are called in subscription order on the publishing goroutine.
type Bus struct {
	mu     sync.Mutex
	nextID SubscriptionID
	subs   []subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn. A nil listener is ignored and yields the zero ID.
func (b *Bus) Subscribe(fn Listener) SubscriptionID {
	if fn == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs = append(b.subs, subscription{id: b.nextID, fn: fn})
	return b.nextID
}

// Unsubscribe removes the listener registered under id and reports whether it was found.
func (b *Bus) Unsubscribe(id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			// Copy so an in-flight Publish keeps iterating its own slice.
			subs := make([]subscription, 0, len(b.subs)-1)
			subs = append(subs, b.subs[:i]...)
			b.subs = append(subs, b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish delivers e to every listener registered at the time of the call.
// The lock is not held while listeners run, so they may subscribe or unsubscribe.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(e)
	}
}
