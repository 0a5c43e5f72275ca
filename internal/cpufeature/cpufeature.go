// Package cpufeature answers one question for simdtable: does this process
// have a 128-bit byte-wise compare capability available? It exists so
// simdtable.New can fail construction immediately and legibly instead of
// silently falling back to something slower on a platform that can't back
// the contract.
package cpufeature

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// HasVectorCompare reports whether the current GOARCH/GOOS combination
// offers a 128-bit byte-equality compare primitive suitable for scanning a
// 16-slot metadata group in one shot. Our actual group scan is a portable
// SWAR (SIMD-within-a-register) implementation over two uint64 loads, which
// works correctly everywhere; this check exists to preserve the
// "unsupported platform" construction-time contract for architectures that
// genuinely lack a 128-bit-wide register class the design was written
// against, rather than to gate correctness of the fallback itself.
func HasVectorCompare() bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return cpu.X86.HasSSE2
	case "arm64":
		return cpu.ARM64.HasASIMD
	case "arm":
		return cpu.ARM.HasNEON
	default:
		return false
	}
}
