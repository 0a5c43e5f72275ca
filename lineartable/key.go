package lineartable

import "github.com/saiprakashreddy14/hashtable/fibhash"

// Key is the numeric-key restriction this table imposes: it only supports
// primitive keys whose hash is trivial and stable, the way hyperpb-go's
// swiss table constrains its own numeric key type.
type Key interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~uintptr
}

// maxPSLForCapacity is the probe-sequence-length ceiling that triggers a
// resize during insertion. At load factor <= 0.5 it is log2(capacity); at
// higher loads, where longer probe runs are both more likely and more
// tolerable, it follows a small precomputed growth schedule.
func maxPSLForCapacity(capacity uint32, loadFactor float64) uint32 {
	base := uint32(fibhash.Log2(capacity))

	switch {
	case loadFactor <= 0.5:
		return base
	case loadFactor <= 0.625:
		return base + base/2
	case loadFactor <= 0.75:
		return base * 2
	default:
		return base * 3
	}
}
