package simdtable

import "errors"

var (
	// ErrUnsupportedPlatform is returned by New when the host CPU has no
	// 128-bit byte-compare capability to back the table's group scan
	// contract.
	ErrUnsupportedPlatform = errors.New("simdtable: platform lacks required vector compare capability")

	// ErrKeyNotFound is the error form of a lookup/update/remove miss, used
	// only by the indexed-access surface (Table.At and Table.SetAt); every other operation
	// reports a miss via a boolean return.
	ErrKeyNotFound = errors.New("simdtable: key not found")
)
