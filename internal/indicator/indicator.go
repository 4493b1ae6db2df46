// Package indicator drives the expiry indicator LED with hardware
// abstraction, following the same real/fake split as the other
// peripherals.
package indicator

// Indicator is a single digital output.
type Indicator interface {
	// Set drives the output to the given state.
	Set(on bool) error

	// Toggle flips the output.
	Toggle() error

	// Close drives the output low and releases GPIO resources.
	Close() error
}

// Default wiring (BCM numbering).
const (
	DefaultChip = "gpiochip0"
	DefaultPin  = 27
)
