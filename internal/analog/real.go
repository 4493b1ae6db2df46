package analog

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RealConverter reads the dial through the Linux IIO sysfs interface.
// Each Convert opens and reads the raw attribute, which is how IIO
// one-shot conversions work: the kernel triggers the conversion on read
// and blocks until the sample is ready.
type RealConverter struct {
	path string
	bits uint
}

// NewRealConverter validates the device path with one conversion and
// returns the converter.
func NewRealConverter(path string, bits uint) (*RealConverter, error) {
	if bits == 0 || bits > 16 {
		return nil, fmt.Errorf("adc resolution %d bits out of range", bits)
	}
	c := &RealConverter{path: path, bits: bits}
	if _, err := c.Convert(); err != nil {
		return nil, fmt.Errorf("probe adc: %w", err)
	}
	return c, nil
}

// Convert performs one conversion.
func (c *RealConverter) Convert() (uint16, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return 0, fmt.Errorf("read adc %s: %w", c.path, err)
	}
	raw, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("parse adc reading %q: %w", strings.TrimSpace(string(data)), err)
	}
	max := uint64(1)<<c.bits - 1
	if raw > max {
		return 0, fmt.Errorf("adc reading %d exceeds %d-bit range", raw, c.bits)
	}
	return uint16(raw), nil
}

// Bits returns the configured resolution.
func (c *RealConverter) Bits() uint {
	return c.bits
}

// Close releases the converter. Sysfs attributes are opened per read, so
// there is nothing to release.
func (c *RealConverter) Close() error {
	return nil
}
