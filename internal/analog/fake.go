package analog

import "errors"

// FakeConverter is a test double that returns scripted readings.
type FakeConverter struct {
	// Samples contains scripted raw readings. Each call to Convert
	// consumes the next sample; when exhausted, the last sample is
	// returned repeatedly.
	Samples []uint16

	// ResolutionBits is the value returned by Bits. Defaults to
	// the quantizer's native 6 bits when zero.
	ResolutionBits uint

	// ConvertError, if set, will be returned by Convert.
	ConvertError error

	// Closed tracks if Close was called.
	Closed bool

	index int
}

// NewFakeConverter creates a FakeConverter with the given 6-bit samples.
func NewFakeConverter(samples []uint16) *FakeConverter {
	return &FakeConverter{Samples: samples}
}

// Convert returns the next scripted sample.
func (f *FakeConverter) Convert() (uint16, error) {
	if f.ConvertError != nil {
		return 0, f.ConvertError
	}

	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return sample, nil
}

// Bits returns the configured resolution.
func (f *FakeConverter) Bits() uint {
	if f.ResolutionBits == 0 {
		return 6
	}
	return f.ResolutionBits
}

// Close marks the converter as closed.
func (f *FakeConverter) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the converter to the beginning of samples.
func (f *FakeConverter) Reset() {
	f.index = 0
	f.Closed = false
	f.ConvertError = nil
}
