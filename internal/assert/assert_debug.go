//go:build hashtabledebug

// Package assert gives every table package one invariant-checking primitive
// that is compiled out of release builds. Invariant violations are not
// recoverable at runtime and should abort the process in debug builds only.
package assert

import "fmt"

// That panics if cond is false. Build with -tags hashtabledebug to enable;
// it is a no-op otherwise.
func That(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("invariant violated: "+format, args...))
	}
}
