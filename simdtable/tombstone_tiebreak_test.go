package simdtable_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saiprakashreddy14/hashtable/simdtable"
)

// TestTombstonePreferredOverEmptyWithinGroup characterizes spec §9 open
// question 1: within a probe group, a tombstone is always preferred over an
// empty slot, and among several tombstones the lowest-offset one wins
// (ascending bit order, per §4.2 "candidates are examined in ascending
// offset order").
func TestTombstonePreferredOverEmptyWithinGroup(t *testing.T) {
	tbl := newIntTable(t, simdtable.WithCapacity[int](16))

	// Capacity 16 is exactly one group, so every key below lands in it.
	for i := 0; i < 10; i++ {
		require.True(t, tbl.Insert(i, i))
	}

	offsetA := tbl.IndexOf(3)
	offsetB := tbl.IndexOf(7)
	require.NotEqual(t, -1, offsetA)
	require.NotEqual(t, -1, offsetB)

	require.True(t, tbl.Remove(3))
	require.True(t, tbl.Remove(7))

	require.True(t, tbl.Insert(999, 999))

	want := offsetA
	if offsetB < want {
		want = offsetB
	}
	assert := require.New(t)
	assert.Equal(want, tbl.IndexOf(999), "insert must reuse the lowest-offset tombstone in the group, never an empty slot")
}
