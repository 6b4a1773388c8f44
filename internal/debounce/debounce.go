// Package debounce delays a fast-changing value until it has been quiet for a
// fixed period.
package debounce

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the debouncer needs
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d
type AfterFunc func(d time.Duration, f func()) Timer

// Option configures a Debouncer
type Option func(*Debouncer)

// WithAfterFunc replaces the timer source, mainly for tests
func WithAfterFunc(after AfterFunc) Option {
	return func(d *Debouncer) {
		d.after = after
	}
}

// Debouncer emits the latest value once no new value has arrived for delay
type Debouncer struct {
	delay time.Duration
	emit  func(string)
	after AfterFunc

	mu      sync.Mutex
	value   string
	timer   Timer
	gen     uint64
	stopped bool
}

// New creates a debouncer whose value starts at initial. Nothing is emitted
// until Set is called and the quiet period elapses.
func New(initial string, delay time.Duration, emit func(string), opts ...Option) *Debouncer {
	d := &Debouncer{
		delay: delay,
		emit:  emit,
		value: initial,
		after: func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Set records a raw value and restarts the quiet period
func (d *Debouncer) Set(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopTimerLocked()
	gen := d.gen
	d.timer = d.after(d.delay, func() { d.fire(gen, v) })
}

// Value returns the last emitted value
func (d *Debouncer) Value() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Cancel drops the pending emission, if any
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopTimerLocked()
}

// Stop cancels the pending emission and ignores every later Set
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopTimerLocked()
	d.stopped = true
}

// stopTimerLocked also bumps the generation so a callback already past its
// timer cannot emit.
func (d *Debouncer) stopTimerLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

func (d *Debouncer) fire(gen uint64, v string) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.value = v
	d.timer = nil
	d.mu.Unlock()

	if d.emit != nil {
		d.emit(v)
	}
}
