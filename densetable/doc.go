// Package densetable implements the scalar dense hash table: a simpler
// sibling of simdtable that walks the same triangular probe discipline one
// slot at a time instead of scanning 16-slot groups with a vector compare.
//
// It shares fibhash's Fibonacci index mixing and fingerprint extraction, and
// the same single-threaded, non-persistent contract as simdtable.
package densetable
