package safepool

import "sync"

// A Pool is a type-safe wrapper around a sync.Pool.
type Pool[T any] struct {
	p     *sync.Pool
	reset func(*T)
}

// NewPool constructs a new Pool. newFn allocates a fresh value when the pool
// is empty and reset, if non-nil, clears a value before it is pooled again.
func NewPool[T any](newFn func() *T, reset func(*T)) Pool[T] {
	return Pool[T]{
		p: &sync.Pool{
			New: func() any {
				return newFn()
			},
		},
		reset: reset,
	}
}

// Get retrieves a value from the pool, creating one if necessary.
func (p Pool[T]) Get() *T {
	return p.p.Get().(*T)
}

// Put resets t and adds it to the pool.
func (p Pool[T]) Put(t *T) {
	if t == nil {
		return
	}
	if p.reset != nil {
		p.reset(t)
	}
	p.p.Put(t)
}
