package runtime

import "math"

// SafeNotEqual reports whether a slot write should count as a change.
// Primitives compare by value, with NaN treated as unchanged against
// itself. Everything else (maps, slices, funcs, structs behind any) is
// conservatively treated as changed, since it may have been mutated in
// place.
func SafeNotEqual(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b != nil
	case bool:
		bv, ok := b.(bool)
		return !ok || av != bv
	case string:
		bv, ok := b.(string)
		return !ok || av != bv
	case int:
		bv, ok := b.(int)
		return !ok || av != bv
	case int64:
		bv, ok := b.(int64)
		return !ok || av != bv
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return true
		}
		if math.IsNaN(av) && math.IsNaN(bv) {
			return false
		}
		return av != bv
	default:
		return true
	}
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Store holds a single reactive value. Subscribers are notified
// synchronously on every accepted write; components bind a store to a
// slot so writes flow into the scheduler.
type Store[T any] struct {
	rt       *RuntimeContext
	value    T
	notEqual func(a, b any) bool
	subs     []subscriber[T]
	nextSub  uint64
}

// NewStore creates a store owned by rt with the given initial value.
func NewStore[T any](rt *RuntimeContext, initial T) *Store[T] {
	return &Store[T]{rt: rt, value: initial, notEqual: SafeNotEqual}
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	s.rt.checkThread()
	return s.value
}

// Set writes value and notifies subscribers when it differs from the
// current value under the store's equality rule.
func (s *Store[T]) Set(value T) {
	s.rt.checkThread()
	if !s.notEqual(s.value, value) {
		return
	}
	s.value = value
	s.rt.stats.StoreWrites++
	if s.rt.metrics != nil {
		s.rt.metrics.storeWrites.Inc()
	}
	for _, sub := range s.subs {
		sub.fn(value)
	}
}

// Update applies fn to the current value and stores the result.
func (s *Store[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// Subscribe registers fn, invokes it immediately with the current value,
// and returns an unsubscribe function.
func (s *Store[T]) Subscribe(fn func(T)) func() {
	s.rt.checkThread()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	fn(s.value)
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Bind routes the store into slot of c: every accepted write invalidates
// the slot. Returns the unsubscribe function, which the caller usually
// hands to OnDestroy.
func (s *Store[T]) Bind(c *ComponentInstance, slot int) func() {
	return s.Subscribe(func(v T) {
		c.Invalidate(slot, v)
	})
}
