package indicator

// FakeIndicator records output transitions for test assertions.
type FakeIndicator struct {
	// On is the current output state.
	On bool

	// History contains the state after each Set or Toggle.
	History []bool

	// SetError, if set, will be returned by Set and Toggle.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeIndicator creates a FakeIndicator, initially off.
func NewFakeIndicator() *FakeIndicator {
	return &FakeIndicator{}
}

// Set records the new state.
func (f *FakeIndicator) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.On = on
	f.History = append(f.History, on)
	return nil
}

// Toggle records the flipped state.
func (f *FakeIndicator) Toggle() error {
	return f.Set(!f.On)
}

// Close marks the indicator as closed.
func (f *FakeIndicator) Close() error {
	f.Closed = true
	return nil
}

// Toggles returns how many transitions were recorded.
func (f *FakeIndicator) Toggles() int {
	return len(f.History)
}

// Reset clears recorded history.
func (f *FakeIndicator) Reset() {
	f.On = false
	f.History = nil
	f.SetError = nil
	f.Closed = false
}
