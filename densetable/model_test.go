package densetable_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/saiprakashreddy14/hashtable/densetable"
)

// TestTableAgreesWithReferenceMap drives a sequence of random Insert/Update/
// Remove/Get operations against both the table and a plain Go map, asserting
// agreement after every step. Grounded on simdtable's model test, itself
// grounded on the teacher's TestSwissTableVsMap.
func TestTableAgreesWithReferenceMap(t *testing.T) {
	testCases := []struct {
		name     string
		numOps   int
		keyRange int
	}{
		{"SmallFewOps", 200, 10},
		{"MediumManyOps", 2000, 100},
		{"ManyCollisions", 1000, 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tbl := newIntTable(t)
			model := map[int]int{}

			rnd := rand.New(rand.NewSource(1))

			for i := 0; i < tc.numOps; i++ {
				key := rnd.Intn(tc.keyRange)
				value := rnd.Intn(1000)

				switch rnd.Intn(4) {
				case 0:
					_, existed := model[key]
					gotNew := tbl.Insert(key, value)
					require.Equal(t, !existed, gotNew)
					if !existed {
						model[key] = value
					}
				case 1:
					_, existed := model[key]
					got := tbl.Update(key, value)
					require.Equal(t, existed, got)
					if existed {
						model[key] = value
					}
				case 2:
					_, existed := model[key]
					got := tbl.Remove(key)
					require.Equal(t, existed, got)
					delete(model, key)
				case 3:
					wantVal, wantOk := model[key]
					gotVal, gotOk := tbl.Get(key)
					require.Equal(t, wantOk, gotOk)
					if wantOk {
						require.Equal(t, wantVal, gotVal)
					}
				}

				require.Equal(t, len(model), tbl.Count())
			}

			got := map[int]int{}
			for k, v := range tbl.Iterate() {
				got[k] = v
			}
			if diff := cmp.Diff(model, got); diff != "" {
				t.Fatalf("table disagrees with reference model after %d ops (-model +table):\n%s", tc.numOps, diff)
			}
		})
	}
}

func FuzzTableAgreesWithReferenceMap(f *testing.F) {
	f.Add(int64(1), 500)
	f.Add(int64(42), 2000)

	f.Fuzz(func(t *testing.T, seed int64, numOps int) {
		if numOps < 0 {
			numOps = -numOps
		}
		if numOps > 5000 {
			numOps = 5000
		}

		tbl := densetable.New[int32, int32](func(k int32) uint32 { return uint32(k) })
		model := map[int32]int32{}

		rnd := rand.New(rand.NewSource(seed))
		const keyRange = 64

		for i := 0; i < numOps; i++ {
			key := int32(rnd.Intn(keyRange))
			value := int32(rnd.Intn(1000))

			switch rnd.Intn(3) {
			case 0:
				_, existed := model[key]
				if tbl.Insert(key, value) == existed {
					t.Fatalf("Insert(%d) returned %v, model existed=%v", key, !existed, existed)
				}
				if !existed {
					model[key] = value
				}
			case 1:
				_, existed := model[key]
				if tbl.Remove(key) != existed {
					t.Fatalf("Remove(%d) disagreed with model", key)
				}
				delete(model, key)
			case 2:
				wantVal, wantOk := model[key]
				gotVal, gotOk := tbl.Get(key)
				if wantOk != gotOk || (wantOk && wantVal != gotVal) {
					t.Fatalf("Get(%d) = (%v,%v), want (%v,%v)", key, gotVal, gotOk, wantVal, wantOk)
				}
			}

			if tbl.Count() != len(model) {
				t.Fatalf("count mismatch: table=%d model=%d", tbl.Count(), len(model))
			}
		}
	})
}
