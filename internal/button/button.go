// Package button provides the edge-triggered reset input with hardware
// abstraction. The real implementation uses the Linux GPIO character
// device; the fake implementation allows testing without hardware.
package button

import "time"

// Watcher delivers button press events.
type Watcher interface {
	// Events returns the channel on which falling-edge presses are
	// delivered. The channel is bounded; presses arriving while it is
	// full are dropped (the reset is level-idempotent, so a dropped
	// duplicate is harmless).
	Events() <-chan time.Time

	// Close releases GPIO resources.
	Close() error
}

// Default wiring (BCM numbering). The line is pulled up and the switch
// shorts it to ground, so a press is a falling edge. There is no software
// debounce: the pull configuration and edge polarity are all the
// filtering this input gets.
const (
	DefaultChip = "gpiochip0"
	DefaultPin  = 17
)

// eventBuffer bounds the press channel. The handler never blocks on a
// full buffer.
const eventBuffer = 4
