// Package debounce delays propagation of a fast-changing value until it has
// stabilized for a fixed duration. Trailing edge only: nothing is emitted on
// the first change, and every new change re-arms the pending timer.
package debounce

import (
	"sync"
	"time"
)

// Debouncer commits the most recent value passed to Set once the configured
// delay has elapsed without a further Set. Stop guarantees commit is never
// called afterwards, so owners can tear down without a stale late update.
//
// The commit callback runs with the debouncer's lock held and must not call
// back into the same debouncer.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	commit  func(T)
	timer   *time.Timer
	gen     uint64
	pending T
	stopped bool
}

// New builds a debouncer. A delay of zero commits synchronously on every Set.
func New[T any](delay time.Duration, commit func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		delay:  delay,
		commit: commit,
	}
}

// Set records a new value and re-arms the pending timer. The previous pending
// value, if any, is discarded uncommitted.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.delay <= 0 {
		d.commit(value)
		return
	}

	d.pending = value
	if d.timer != nil {
		d.timer.Stop()
	}
	// The generation ties a timer callback to the Set that armed it. A timer
	// that fired while a later Set held the lock sees a newer generation and
	// must not commit that value before its own delay has run.
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || d.timer == nil || gen != d.gen {
		return
	}
	d.timer = nil
	d.commit(d.pending)
}

// Stop cancels any pending commit. After Stop returns, commit will never be
// called again.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush commits the pending value immediately, if one is armed.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || d.timer == nil {
		return
	}
	d.timer.Stop()
	d.timer = nil
	d.commit(d.pending)
}
