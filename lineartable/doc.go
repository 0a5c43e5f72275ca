// Package lineartable implements a Robin Hood linear-probing hash table:
// open addressing restricted to numeric keys, with each slot carrying a
// probe-sequence length (PSL) instead of a fingerprint. Insertion
// displaces the "richer" resident when the carried entry has traveled
// farther from its ideal slot, and growth triggers when PSL crosses a
// capacity-dependent ceiling rather than on a fixed load factor alone.
//
// Deletion is backward-shift, not tombstone-based: a removed slot is filled
// by shifting the following run of entries one slot earlier, decrementing
// each one's PSL, until an empty slot or a zero-PSL entry is reached.
package lineartable
