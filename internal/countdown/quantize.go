package countdown

// The duration dial maps a 6-bit sample onto a ladder of whole minutes:
// the low-order bit is discarded and the rest scaled by 60 s, giving the
// 32 levels {0, 60, 120, ..., 1860}.
const (
	// QuantBits is the sample width the quantizer operates on.
	QuantBits = 6
	// QuantStep is the size of one ladder step in seconds.
	QuantStep = 60
	// QuantMax is the largest target the quantizer can produce.
	QuantMax = ((1<<QuantBits - 1) >> 1) * QuantStep // 1860
)

// Quantize maps a 6-bit sample to a target duration in seconds.
// It is monotonic non-decreasing in raw.
func Quantize(raw uint16) uint32 {
	return uint32(raw>>1) * QuantStep
}

// ReduceSample reduces a raw reading of the given bit width to the
// quantizer's 6-bit domain by dropping low-order bits. Readings from a
// 6-bit or narrower converter pass through unchanged.
func ReduceSample(raw uint16, bits uint) uint16 {
	if bits <= QuantBits {
		return raw
	}
	return raw >> (bits - QuantBits)
}
