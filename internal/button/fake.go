package button

import "time"

// FakeWatcher is a test double that lets tests inject button presses.
type FakeWatcher struct {
	events chan time.Time

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeWatcher creates a FakeWatcher with the same bounded buffer as
// the real one.
func NewFakeWatcher() *FakeWatcher {
	return &FakeWatcher{
		events: make(chan time.Time, eventBuffer),
	}
}

// Press injects one falling-edge press. Like the real handler it never
// blocks: presses beyond the buffer are dropped and Press reports whether
// the event was delivered.
func (f *FakeWatcher) Press(at time.Time) bool {
	select {
	case f.events <- at:
		return true
	default:
		return false
	}
}

// Events returns the press channel.
func (f *FakeWatcher) Events() <-chan time.Time {
	return f.events
}

// Close marks the watcher as closed.
func (f *FakeWatcher) Close() error {
	f.Closed = true
	return nil
}
