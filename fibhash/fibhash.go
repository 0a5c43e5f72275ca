// Package fibhash implements the Fibonacci index-mixing and fingerprint
// extraction shared by every table in this module. It is a pure function
// library with no state: given a 32-bit hash and a shift amount it produces
// a bucket index and a 7-bit fingerprint, replacing a modulo with a
// multiply-and-shift the way Fibonacci hashing always does.
package fibhash

import "math/bits"

const (
	// Multiplier is the 32-bit Fibonacci/golden-ratio constant. Its low
	// bits distribute the high bits of the input hash into the positions
	// that survive the shift.
	Multiplier = 0x9E3779B9

	// H2Bits is the width of the fingerprint stored alongside each entry.
	H2Bits = 7
	// H2Mask extracts the low H2Bits bits of a hash. The high bit of the
	// result is always zero, which is what lets metadata bytes distinguish
	// a fingerprint from the two sentinel states.
	H2Mask = (1 << H2Bits) - 1
)

// Split mixes a 32-bit hash into a bucket index in [0, 1<<(32-shift)) and a
// 7-bit fingerprint. shift must be the value returned by ShiftForCapacity
// (or ShiftForCapacityExtraBit) for the table's current capacity.
func Split(h uint32, shift uint) (index uint32, h2 uint8) {
	index = (h * Multiplier) >> shift
	h2 = uint8(h & H2Mask)
	return index, h2
}

// ShiftForCapacity returns the shift amount such that
// (h * Multiplier) >> shift lands in [0, capacity) for a power-of-two
// capacity. This implements invariant 5 of the shared data model: shift =
// 32 - log2(capacity).
func ShiftForCapacity(capacity uint32) uint {
	return 32 - uint(bits.Len32(capacity-1))
}

// ShiftForCapacityExtraBit is ShiftForCapacity with one additional bit of
// mix, used only by the linear table per its invariant 5 variant
// (shift = 33 - log2(capacity)).
func ShiftForCapacityExtraBit(capacity uint32) uint {
	return ShiftForCapacity(capacity) + 1
}

// NextPowerOfTwo rounds n up to the next power of two, flooring at min.
func NextPowerOfTwo(n, min uint32) uint32 {
	if n < min {
		n = min
	}
	if n&(n-1) == 0 {
		return n
	}
	return uint32(1) << bits.Len32(n-1)
}

// Log2 returns floor(log2(n)) for a power-of-two n > 0.
func Log2(n uint32) uint {
	return uint(bits.Len32(n)) - 1
}
