// Package eventbus fans typed notifications out to subscribers.
package eventbus

import "sync"

// TypedBus is a type-safe publish/subscribe bus for events of type T.
//
// Each subscriber has a small buffer. When it is full the oldest pending
// event is dropped so a slow subscriber always ends up seeing the newest one.
type TypedBus[T any] struct {
	mu     sync.Mutex
	subs   []chan T
	size   int
	closed bool
}

// NewTyped creates a new TypedBus whose subscribers buffer up to size events.
// A size below 1 is raised to 1.
func NewTyped[T any](size int) *TypedBus[T] {
	if size < 1 {
		size = 1
	}
	return &TypedBus[T]{size: size}
}

// Publish sends the event to all subscribers without blocking.
func (b *TypedBus[T]) Publish(e T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		for {
			select {
			case ch <- e:
			default:
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}

// Subscribe registers a subscriber and returns its channel. Subscribing to a
// closed bus returns a closed channel.
func (b *TypedBus[T]) Subscribe() <-chan T {
	ch := make(chan T, b.size)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *TypedBus[T]) Unsubscribe(sub <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// Len returns the number of active subscribers.
func (b *TypedBus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes the bus and all subscriber channels.
func (b *TypedBus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
