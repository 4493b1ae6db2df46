package display

import "github.com/sweeney/countdown-timer/internal/countdown"

// FakeWriter records frames for test assertions.
type FakeWriter struct {
	// Frames contains every frame written, in order.
	Frames []countdown.Frame

	// Cleared counts Clear calls.
	Cleared int

	// WriteError, if set, will be returned by WriteFrame. FailOnce
	// limits the failure to the next write, which is how the
	// skip-and-retry render path is exercised.
	WriteError error
	FailOnce   bool

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeWriter creates a FakeWriter.
func NewFakeWriter() *FakeWriter {
	return &FakeWriter{}
}

// WriteFrame records the frame.
func (f *FakeWriter) WriteFrame(frame countdown.Frame) error {
	if f.WriteError != nil {
		err := f.WriteError
		if f.FailOnce {
			f.WriteError = nil
			f.FailOnce = false
		}
		return err
	}
	f.Frames = append(f.Frames, frame)
	return nil
}

// Clear records the clear.
func (f *FakeWriter) Clear() error {
	f.Cleared++
	return nil
}

// Close marks the writer as closed.
func (f *FakeWriter) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recent frame, or a zero frame if none were
// written.
func (f *FakeWriter) Last() countdown.Frame {
	if len(f.Frames) == 0 {
		return countdown.Frame{}
	}
	return f.Frames[len(f.Frames)-1]
}

// Reset clears recorded frames.
func (f *FakeWriter) Reset() {
	f.Frames = nil
	f.Cleared = 0
	f.WriteError = nil
	f.FailOnce = false
	f.Closed = false
}
