// Package state implements a minimal pull-based observer store. A store
// holds one value; views read it with Get and subscribe to re-render on
// change. Notification is synchronous and in subscription order.
package state

import "sync"

// Store holds a single observable value of type T.
type Store[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	next  int
}

// New creates a store seeded with the given value.
func New[T any](initial T) *Store[T] {
	return &Store[T]{
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value and notifies subscribers.
func (s *Store[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
}

// Update applies fn to the current value and notifies subscribers with the
// result. The transform runs under the store lock; it must not call back
// into the store.
func (s *Store[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	value := s.value
	subs := s.snapshot()
	s.mu.Unlock()

	for _, sub := range subs {
		sub(value)
	}
}

// Subscribe registers fn to run on every change. The returned cancel
// function removes the subscription; calling it more than once is safe.
func (s *Store[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// snapshot copies subscribers in registration order. Callers must hold mu.
func (s *Store[T]) snapshot() []func(T) {
	out := make([]func(T), 0, len(s.subs))
	for id := 0; id < s.next; id++ {
		if fn, ok := s.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
