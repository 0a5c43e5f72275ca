//go:build !hashtabledebug

package assert

// That is a no-op outside debug builds (build with -tags hashtabledebug to
// enable invariant checking).
func That(cond bool, format string, args ...any) {}
