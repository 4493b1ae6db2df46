// Package analog provides the duration-dial ADC input with hardware
// abstraction. The real implementation reads a Linux IIO sysfs channel;
// the fake implementation allows testing without hardware.
package analog

// Converter performs blocking one-shot analog conversions.
type Converter interface {
	// Convert performs one conversion and returns the raw reading in
	// [0, 2^Bits - 1].
	Convert() (uint16, error)

	// Bits returns the converter's resolution in bits.
	Bits() uint

	// Close releases the converter.
	Close() error
}

// DefaultDevicePath is the raw-voltage attribute of the first IIO
// channel, the usual spot an SBC hat's ADC shows up.
const DefaultDevicePath = "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"

// DefaultBits matches the common MCP3008/ADS1015 class of dial ADCs.
const DefaultBits = 10
