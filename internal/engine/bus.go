package engine

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Subscriber receives gesture events. Callbacks run synchronously inside
// the frame-processing pass, so they should return quickly.
type Subscriber func(GestureEvent)

// Bus fans accepted gesture events out to subscribers in subscription
// order. A panicking subscriber is isolated: it never prevents delivery to
// the remaining subscribers.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	closed bool
}

type subscription struct {
	token string
	fn    Subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a callback and returns a token for Unsubscribe.
func (b *Bus) Subscribe(fn Subscriber) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || fn == nil {
		return ""
	}

	token := uuid.New().String()
	b.subs = append(b.subs, subscription{token: token, fn: fn})
	return token
}

// Unsubscribe removes the subscription for the given token. Unknown tokens
// are ignored.
func (b *Bus) Unsubscribe(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.token == token {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers an event to every current subscriber, synchronously and
// in subscription order. Publishing after Close is a no-op.
func (b *Bus) Publish(event GestureEvent) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		deliver(s.fn, event)
	}
}

// deliver invokes one subscriber, recovering from panics so one faulty
// callback cannot abort delivery to the rest.
func deliver(fn Subscriber, event GestureEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("gesture subscriber panic: %v", r)
		}
	}()
	fn(event)
}

// Len returns the number of current subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close drops all subscribers and rejects further publishes.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = nil
	b.closed = true
}
