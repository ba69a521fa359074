package reactive

import (
	"reflect"
	"sync"
)

// Signal is a dependency-tracked mutable cell.
type Signal[T any] struct {
	rt    *Runtime
	mu    sync.RWMutex
	value T
	equal func(a, b T) bool
	subs  map[*effect]struct{}
}

// SignalOption configures a Signal.
type SignalOption[T any] func(*Signal[T])

// WithEqual replaces the default reflect.DeepEqual comparison used to skip
// no-op writes.
func WithEqual[T any](eq func(a, b T) bool) SignalOption[T] {
	return func(s *Signal[T]) {
		if eq != nil {
			s.equal = eq
		}
	}
}

// NewSignal creates a signal bound to rt holding initial.
func NewSignal[T any](rt *Runtime, initial T, opts ...SignalOption[T]) *Signal[T] {
	s := &Signal[T]{
		rt:    rt,
		value: initial,
		equal: func(a, b T) bool { return reflect.DeepEqual(a, b) },
		subs:  make(map[*effect]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the current value and records the read for the running effect.
func (s *Signal[T]) Get() T {
	s.rt.track(s)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Peek returns the current value without recording a dependency.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and schedules dependents. Writing a value equal to
// the current one does nothing.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	if s.equal(s.value, v) {
		s.mu.Unlock()
		return
	}
	s.value = v
	subs := make([]*effect, 0, len(s.subs))
	for e := range s.subs {
		subs = append(subs, e)
	}
	s.mu.Unlock()

	s.rt.schedule(subs)
}

// Update applies fn to the current value and stores the result.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.Peek()))
}

func (s *Signal[T]) subscribe(e *effect) {
	s.mu.Lock()
	s.subs[e] = struct{}{}
	s.mu.Unlock()
}

func (s *Signal[T]) unsubscribe(e *effect) {
	s.mu.Lock()
	delete(s.subs, e)
	s.mu.Unlock()
}

// subscribers reports how many effects currently depend on s.
func (s *Signal[T]) subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
