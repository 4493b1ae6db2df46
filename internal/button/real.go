//go:build linux

package button

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// RealWatcher watches a GPIO line on actual hardware using the Linux GPIO
// character device.
type RealWatcher struct {
	line   *gpiocdev.Line
	events chan time.Time
}

// NewRealWatcher requests the button line as a pulled-up input and
// registers a falling-edge handler.
func NewRealWatcher(chip string, pin int) (*RealWatcher, error) {
	w := &RealWatcher{
		events: make(chan time.Time, eventBuffer),
	}

	line, err := gpiocdev.RequestLine(chip, pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(w.handle))
	if err != nil {
		return nil, fmt.Errorf("request button pin %d: %w", pin, err)
	}

	w.line = line
	return w, nil
}

// handle runs on the gpiocdev event goroutine. It must never block, so
// the send is non-blocking and drops when the loop is behind.
func (w *RealWatcher) handle(evt gpiocdev.LineEvent) {
	if evt.Type != gpiocdev.LineEventFallingEdge {
		return
	}
	select {
	case w.events <- time.Now():
	default:
	}
}

// Events returns the press channel.
func (w *RealWatcher) Events() <-chan time.Time {
	return w.events
}

// Close releases the line. The pull-up is left configured so the input
// stays in a defined state across restarts.
func (w *RealWatcher) Close() error {
	if w.line != nil {
		if err := w.line.Close(); err != nil {
			return fmt.Errorf("close button line: %w", err)
		}
	}
	return nil
}
