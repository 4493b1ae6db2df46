// Package display provides the character display with hardware
// abstraction. The real implementation drives an SSD1306 128x32 OLED over
// I2C; the fake implementation records frames for tests.
package display

import "github.com/sweeney/countdown-timer/internal/countdown"

// Writer accepts full display frames. There is no partial-update API: a
// frame always overwrites every cell, which is what keeps renders free of
// scrolling and stale fragments.
type Writer interface {
	// WriteFrame overwrites the whole display with the frame.
	// A bus error is returned to the caller, never swallowed.
	WriteFrame(f countdown.Frame) error

	// Clear blanks the display.
	Clear() error

	// Close releases the display.
	Close() error
}

// DefaultBus is the I2C bus the display usually hangs off on a Pi.
const DefaultBus = "1"
