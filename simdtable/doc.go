// Package simdtable implements the SIMD-accelerated dense hash table: an
// open-addressing table whose metadata is scanned 16 slots at a time using a
// portable SWAR (SIMD-within-a-register) byte compare, with triangular
// probing over 16-slot groups and a tombstone-preferring insert.
//
// The table is single-threaded; callers needing concurrent access must
// serialize externally (a sync.RWMutex is the natural pairing). It does not
// cache hashes, persist to disk, or guarantee any iteration order.
package simdtable
