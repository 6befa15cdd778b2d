package repository

import (
	"sync"
)

// store is a copy-on-write collection. The backing slice is never written
// in place: every mutation builds a new slice and swaps it in, so a slice
// handed out by snapshot stays valid forever.
type store[T any] struct {
	mu    sync.RWMutex
	items []T
	id    func(T) string
	clone func(T) T
}

func newStore[T any](items []T, id func(T) string, clone func(T) T) *store[T] {
	s := &store[T]{id: id, clone: clone}
	s.items = make([]T, 0, len(items))
	for _, it := range items {
		s.items = append(s.items, clone(it))
	}
	return s
}

func (s *store[T]) snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// list returns caller-owned copies of every item matching keep
func (s *store[T]) list(keep func(T) bool) []T {
	items := s.snapshot()
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep == nil || keep(it) {
			out = append(out, s.clone(it))
		}
	}
	return out
}

func (s *store[T]) find(match func(T) bool) (T, bool) {
	for _, it := range s.snapshot() {
		if match(it) {
			return s.clone(it), true
		}
	}
	var zero T
	return zero, false
}

func (s *store[T]) get(id string) (T, bool) {
	return s.find(func(it T) bool { return s.id(it) == id })
}

func (s *store[T]) insert(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.id(item)
	for _, it := range s.items {
		if s.id(it) == id {
			return ErrDuplicate
		}
	}
	next := make([]T, len(s.items), len(s.items)+1)
	copy(next, s.items)
	s.items = append(next, s.clone(item))
	return nil
}

func (s *store[T]) replace(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.id(item)
	for i, it := range s.items {
		if s.id(it) != id {
			continue
		}
		next := make([]T, len(s.items))
		copy(next, s.items)
		next[i] = s.clone(item)
		s.items = next
		return nil
	}
	return ErrNotFound
}
