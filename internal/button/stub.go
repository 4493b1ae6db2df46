//go:build !linux

package button

import (
	"errors"
	"time"
)

// RealWatcher is not available on non-Linux platforms.
type RealWatcher struct{}

// NewRealWatcher returns an error on non-Linux platforms.
func NewRealWatcher(chip string, pin int) (*RealWatcher, error) {
	return nil, errors.New("button: not supported on this platform (requires Linux)")
}

// Events is not implemented on non-Linux platforms.
func (w *RealWatcher) Events() <-chan time.Time {
	return nil
}

// Close is not implemented on non-Linux platforms.
func (w *RealWatcher) Close() error {
	return nil
}
