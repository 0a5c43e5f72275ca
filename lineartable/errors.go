package lineartable

import "errors"

var (
	// ErrKeyNotFound is the error form of a lookup/update/remove miss, used
	// only by the indexed-access surface (Table.At and Table.SetAt).
	ErrKeyNotFound = errors.New("lineartable: key not found")
)
