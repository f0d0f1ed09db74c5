// Package errsync provides synchronization primitives for functions that can
// fail.
package errsync

import "sync"

// Once runs a function a single time and remembers its error. Unlike
// sync.Once it can be reset so the function runs again.
type Once struct {
	mu   sync.Mutex
	done bool
	err  error
}

// Do calls fn if, and only if, Do has not been called since the Once was
// created or last reset. Every call returns the error of that single run.
func (o *Once) Do(fn func() error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.done {
		return o.err
	}

	o.err = fn()
	o.done = true

	return o.err
}

// Reset forgets the previous run so that the next Do calls its function.
func (o *Once) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.done = false
	o.err = nil
}
