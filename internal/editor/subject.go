package editor

import (
	"slices"
	"sync"
)

// Subject remembers the latest published value and hands it to every new subscriber.
type Subject[T any] struct {
	mu     sync.Mutex
	subs   map[int]func(T)
	nextID int
	last   T
	has    bool
}

func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{subs: make(map[int]func(T))}
}

// Publish caches v and notifies current subscribers in subscription order.
func (s *Subject[T]) Publish(v T) {
	s.mu.Lock()
	s.last = v
	s.has = true
	fns := s.snapshot()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers fn and replays the latest value, if any. The returned func unsubscribes.
func (s *Subject[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	last, has := s.last, s.has
	s.mu.Unlock()

	if has {
		fn(last)
	}

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Subject[T]) snapshot() []func(T) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	return fns
}
