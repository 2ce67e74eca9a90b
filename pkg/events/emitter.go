// Package events provides small typed event emitters for wiring components
// together. Publication is synchronous: subscribers run on the publishing
// goroutine, in subscription order.
package events

import "sync"

// Emitter fans a value of type T out to its subscribers.
type Emitter[T any] struct {
	mu   sync.Mutex
	next int
	ids  []int
	subs map[int]func(T)
}

// NewEmitter creates an empty emitter.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{subs: make(map[int]func(T))}
}

// Subscribe registers fn and returns a function that removes it again.
func (e *Emitter[T]) Subscribe(fn func(T)) func() {
	e.mu.Lock()
	id := e.next
	e.next++
	e.ids = append(e.ids, id)
	e.subs[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
		for i, v := range e.ids {
			if v == id {
				e.ids = append(e.ids[:i], e.ids[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers v to every current subscriber.
func (e *Emitter[T]) Publish(v T) {
	e.mu.Lock()
	fns := make([]func(T), 0, len(e.ids))
	for _, id := range e.ids {
		if fn, ok := e.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// SubscriberCount returns the number of active subscriptions.
func (e *Emitter[T]) SubscriberCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}
