package simdtable_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saiprakashreddy14/hashtable/simdtable"
)

// TestInsertDuplicateAcrossGroupsWithEarlierTombstone covers a key whose
// live entry sits in a later group than a tombstone left behind in an
// earlier group by an unrelated removal. Insert must find the existing
// entry before ever considering the tombstone as a placement candidate.
func TestInsertDuplicateAcrossGroupsWithEarlierTombstone(t *testing.T) {
	// Every key collides on the same group anchor, so the table fills
	// group 0 completely before anything spills into group 1.
	collidingHash := func(k int) uint32 { return 0 }

	tbl, err := simdtable.New[int, int](collidingHash, simdtable.WithCapacity[int](32))
	require.NoError(t, err)

	for i := 0; i < 16; i++ {
		require.True(t, tbl.Insert(i, i))
	}

	// Key 16 overflows group 0 and lands in group 1.
	require.True(t, tbl.Insert(16, 1600))
	require.NotEqual(t, -1, tbl.IndexOf(16))
	require.Less(t, tbl.IndexOf(16), 48) // sanity: still within the table

	// Remove an unrelated key in group 0, leaving a tombstone there.
	require.True(t, tbl.Remove(5))

	beforeCount := tbl.Count()

	// Re-inserting key 16 must be recognized as a duplicate, not placed
	// into group 0's fresh tombstone.
	require.False(t, tbl.Insert(16, 9999))

	v, ok := tbl.Get(16)
	require.True(t, ok)
	require.Equal(t, 1600, v, "insert must not overwrite the existing live entry")
	require.Equal(t, beforeCount, tbl.Count(), "count must not change on a rejected duplicate insert")
}
