package lineartable

import (
	"iter"

	"github.com/saiprakashreddy14/hashtable/fibhash"
	"github.com/saiprakashreddy14/hashtable/internal/assert"
)

// emptyPSL is the metadata sentinel for an unoccupied slot. Every occupied
// slot's PSL stays well under this by construction (maxPSLForCapacity never
// approaches 0xFF for any capacity this table can actually hold).
const emptyPSL = 0xFF

// entry is the parallel-array payload. hash is cached alongside the key so
// lookups can reject most non-matches on a 32-bit compare before falling
// back to the equality comparator.
type entry[K Key, V any] struct {
	key   K
	value V
	hash  uint32
}

// Table is a Robin Hood linear-probing table. It is single-threaded;
// external synchronization is the caller's responsibility if shared across
// goroutines.
type Table[K Key, V any] struct {
	metadata []byte
	entries  []entry[K, V]

	count      uint32
	capacity   uint32
	maxPSL     uint32
	currentPSL uint32
	shift      uint
	loadFactor float64

	hash  func(K) uint32
	equal func(a, b K) bool
}

// New constructs a Table. hash must return a 32-bit hash of key.
func New[K Key, V any](hash func(K) uint32, opts ...Option[K]) *Table[K, V] {
	cfg := config[K]{
		initialCapacity: minCapacity,
		loadFactor:      defaultLoadFactor,
		equal:           defaultEqual[K],
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	lf := cfg.loadFactor
	if lf <= 0 || lf >= 1 {
		lf = defaultLoadFactor
	}

	capacity := fibhash.NextPowerOfTwo(cfg.initialCapacity, minCapacity)
	maxPSL := maxPSLForCapacity(capacity, lf)

	return &Table[K, V]{
		metadata:   newMetadata(capacity + maxPSL + 1),
		entries:    make([]entry[K, V], capacity+maxPSL+1),
		capacity:   capacity,
		maxPSL:     maxPSL,
		shift:      fibhash.ShiftForCapacityExtraBit(capacity),
		loadFactor: lf,
		hash:       hash,
		equal:      cfg.equal,
	}
}

func newMetadata(n uint32) []byte {
	m := make([]byte, n)
	for i := range m {
		m[i] = emptyPSL
	}
	return m
}

// Count returns the number of live entries.
func (t *Table[K, V]) Count() int { return int(t.count) }

// Capacity returns the current slot capacity (excluding probe padding).
func (t *Table[K, V]) Capacity() int { return int(t.capacity) }

func (t *Table[K, V]) bumpCurrentPSL(psl uint32) {
	if psl > t.currentPSL {
		t.currentPSL = psl
	}
}

// find scans linearly from key's initial index, comparing cached hashes and
// then the equality comparator, bounded by currentPSL and by the Robin Hood
// invariant that a resident with a smaller PSL than the current scan
// distance rules out the key being present any further along.
func (t *Table[K, V]) find(key K, h uint32) (slot uint32, found bool) {
	idx := (h * fibhash.Multiplier) >> t.shift

	var dist uint32
	for i := idx; dist <= t.currentPSL; i++ {
		assert.That(i < uint32(len(t.metadata)), "find: probe ran past the padded entries array")

		m := t.metadata[i]
		if m == emptyPSL {
			return 0, false
		}
		if t.entries[i].hash == h && t.equal(t.entries[i].key, key) {
			return i, true
		}
		if dist > uint32(m) {
			return 0, false
		}
		dist++
	}
	return 0, false
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	_, found := t.find(key, t.hash(key))
	return found
}

// Get retrieves the value stored for key.
func (t *Table[K, V]) Get(key K) (V, bool) {
	slot, found := t.find(key, t.hash(key))
	if !found {
		var zero V
		return zero, false
	}
	return t.entries[slot].value, true
}

// At is the indexed-access surface: ErrKeyNotFound instead of a boolean miss.
func (t *Table[K, V]) At(key K) (V, error) {
	v, found := t.Get(key)
	if !found {
		return v, ErrKeyNotFound
	}
	return v, nil
}

// SetAt requires key to already exist, reporting ErrKeyNotFound otherwise.
func (t *Table[K, V]) SetAt(key K, value V) error {
	if !t.Update(key, value) {
		return ErrKeyNotFound
	}
	return nil
}

// Update overwrites the value for an existing key. It returns false and
// leaves the table unchanged if key is absent.
func (t *Table[K, V]) Update(key K, value V) bool {
	slot, found := t.find(key, t.hash(key))
	if !found {
		return false
	}
	t.entries[slot].value = value
	return true
}

// insertEntryRobinHood places n via linear probing, swapping a carried
// entry into any slot whose resident has a smaller PSL. Crossing maxPSL
// triggers an inline resize-and-restart.
func (t *Table[K, V]) insertEntryRobinHood(n entry[K, V]) {
	idx := (n.hash * fibhash.Multiplier) >> t.shift
	psl := uint32(0)

	for i := idx; ; i++ {
		assert.That(i < uint32(len(t.metadata)), "insertEntryRobinHood: probe ran past the padded entries array")

		if t.metadata[i] == emptyPSL {
			t.entries[i] = n
			t.metadata[i] = byte(psl)
			t.bumpCurrentPSL(psl)
			t.count++
			return
		}

		if uint32(t.metadata[i]) < psl {
			residentPSL := uint32(t.metadata[i])
			t.entries[i], n = n, t.entries[i]
			t.metadata[i] = byte(psl)
			t.bumpCurrentPSL(psl)
			psl = residentPSL
		}

		psl++
		if psl == t.maxPSL {
			t.rehash(t.capacity * 2)
			idx = (n.hash * fibhash.Multiplier) >> t.shift
			i = idx - 1
			psl = 0
			continue
		}
	}
}

// Insert creates a new entry if key is absent. It returns false without
// modifying the table if key is already present.
func (t *Table[K, V]) Insert(key K, value V) bool {
	h := t.hash(key)
	if _, found := t.find(key, h); found {
		return false
	}
	if t.count+1 > uint32(float64(t.capacity)*t.loadFactor) {
		t.rehash(t.capacity * 2)
	}
	t.insertEntryRobinHood(entry[K, V]{key: key, value: value, hash: h})
	return true
}

// Remove deletes key if present via backward-shift delete: the following
// run of entries shifts one slot earlier, each losing one PSL, until an
// empty slot or a zero-PSL entry is reached.
func (t *Table[K, V]) Remove(key K) bool {
	h := t.hash(key)
	idx := (h * fibhash.Multiplier) >> t.shift

	var dist uint32
	for i := idx; dist <= t.currentPSL; i++ {
		m := t.metadata[i]
		if m == emptyPSL {
			return false
		}
		if t.entries[i].hash == h && t.equal(t.entries[i].key, key) {
			t.count--
			t.backwardShift(i)
			return true
		}
		if dist > uint32(m) {
			return false
		}
		dist++
	}
	return false
}

func (t *Table[K, V]) backwardShift(hole uint32) {
	for i := hole + 1; ; i++ {
		assert.That(i < uint32(len(t.metadata)), "backwardShift: probe ran past the padded entries array")

		if t.metadata[i] == emptyPSL || t.metadata[i] == 0 {
			t.entries[hole] = entry[K, V]{}
			t.metadata[hole] = emptyPSL
			return
		}
		t.entries[hole] = t.entries[i]
		t.metadata[hole] = t.metadata[i] - 1
		hole = i
	}
}

// Clear resets the table to empty while preserving capacity.
func (t *Table[K, V]) Clear() {
	for i := range t.metadata {
		t.metadata[i] = emptyPSL
	}
	for i := range t.entries {
		t.entries[i] = entry[K, V]{}
	}
	t.count = 0
	t.currentPSL = 0
}

// IndexOf returns the slot index holding key, or -1 if absent. It exists
// for test introspection.
func (t *Table[K, V]) IndexOf(key K) int {
	slot, found := t.find(key, t.hash(key))
	if !found {
		return -1
	}
	return int(slot)
}

// Copy bulk-inserts every live entry of other into t via the public insert
// path, so duplicate keys in t are left untouched.
func (t *Table[K, V]) Copy(other *Table[K, V]) {
	for i := range other.metadata {
		if other.metadata[i] == emptyPSL {
			continue
		}
		e := other.entries[i]
		t.Insert(e.key, e.value)
	}
}

// Clone returns an independent copy of t at the same capacity and load
// factor.
func (t *Table[K, V]) Clone() *Table[K, V] {
	clone := &Table[K, V]{
		metadata:   newMetadata(uint32(len(t.metadata))),
		entries:    make([]entry[K, V], len(t.entries)),
		capacity:   t.capacity,
		maxPSL:     t.maxPSL,
		shift:      t.shift,
		loadFactor: t.loadFactor,
		hash:       t.hash,
		equal:      t.equal,
	}
	clone.Copy(t)
	return clone
}

// Iterate yields every live (key, value) pair from highest slot index to
// lowest, so a caller may remove the just-yielded entry without disturbing
// slots still to be visited. Order is otherwise unspecified.
func (t *Table[K, V]) Iterate() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := len(t.metadata) - 1; i >= 0; i-- {
			if t.metadata[i] == emptyPSL {
				continue
			}
			e := t.entries[i]
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// rehash resizes the table to newCapacity (every caller passes double the
// current capacity), recomputes the maxPSL ceiling for the new capacity,
// and replays every live entry
// through the internal no-duplicate-check insert path.
func (t *Table[K, V]) rehash(newCapacity uint32) {
	oldEntries := t.entries
	oldMetadata := t.metadata

	t.capacity = newCapacity
	t.shift = fibhash.ShiftForCapacityExtraBit(newCapacity)
	t.maxPSL = maxPSLForCapacity(newCapacity, t.loadFactor)
	t.metadata = newMetadata(newCapacity + t.maxPSL + 1)
	t.entries = make([]entry[K, V], newCapacity+t.maxPSL+1)
	t.count = 0
	t.currentPSL = 0

	for i := range oldMetadata {
		if oldMetadata[i] == emptyPSL {
			continue
		}
		e := oldEntries[i]
		t.insertEntryRobinHood(e)
	}
}
