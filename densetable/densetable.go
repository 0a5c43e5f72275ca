package densetable

import (
	"iter"

	"github.com/saiprakashreddy14/hashtable/fibhash"
	"github.com/saiprakashreddy14/hashtable/internal/assert"
)

// Metadata sentinel values, same encoding as simdtable: both sentinels have
// the high bit set, every fingerprint does not (fibhash.H2Mask is 7 bits).
const (
	empty     byte = 0xFF
	tombstone byte = 0xFE
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Table is a scalar dense hash table: one slot at a time instead of
// simdtable's 16-wide group scan. Unlike simdtable, Insert never places a
// new entry into a tombstoned slot — it probes past tombstones looking for
// a true EMPTY slot, so tombstones accumulate until a rehash clears them.
// Lookup, Update and Remove still skip over tombstones when searching for
// an existing key.
type Table[K comparable, V any] struct {
	metadata []byte
	entries  []entry[K, V]

	count      uint32
	capacity   uint32
	shift      uint
	loadFactor float64
	tombstones uint32

	hash  func(K) uint32
	equal func(a, b K) bool
}

// New constructs a Table. hash must return a 32-bit hash of key.
func New[K comparable, V any](hash func(K) uint32, opts ...Option[K]) *Table[K, V] {
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

	return &Table[K, V]{
		metadata:   newMetadata(capacity),
		entries:    make([]entry[K, V], capacity),
		capacity:   capacity,
		shift:      fibhash.ShiftForCapacity(capacity),
		loadFactor: lf,
		hash:       hash,
		equal:      cfg.equal,
	}
}

func newMetadata(capacity uint32) []byte {
	m := make([]byte, capacity)
	for i := range m {
		m[i] = empty
	}
	return m
}

// Count returns the number of live entries.
func (t *Table[K, V]) Count() int { return int(t.count) }

// Capacity returns the current slot capacity.
func (t *Table[K, V]) Capacity() int { return int(t.capacity) }

// find scans the probe sequence for key one slot at a time, skipping
// tombstones, and stops on the first EMPTY slot (a definite miss).
func (t *Table[K, V]) find(key K, h uint32) (slot uint32, found bool) {
	_, h2 := fibhash.Split(h, t.shift)
	p := newProbe(h, t.shift, t.capacity)

	for guard := uint32(0); guard <= t.capacity+4; guard++ {
		s := p.slot()
		switch {
		case t.metadata[s] == empty:
			return 0, false
		case t.metadata[s] == tombstone:
			// skip
		case t.metadata[s] == h2 && t.equal(t.entries[s].key, key):
			return s, true
		}
		p.advance()
	}
	assert.That(false, "find: probe sequence did not terminate")
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

// findEmptyForInsert scans the probe sequence for key, returning its slot if
// already present (found=true), or the first true EMPTY slot reached
// (found=false) — a tombstone along the way is never returned, only skipped.
func (t *Table[K, V]) findEmptyForInsert(key K, h uint32) (slot uint32, found bool) {
	_, h2 := fibhash.Split(h, t.shift)
	p := newProbe(h, t.shift, t.capacity)

	for guard := uint32(0); guard <= t.capacity+4; guard++ {
		s := p.slot()
		switch {
		case t.metadata[s] == empty:
			return s, false
		case t.metadata[s] == tombstone:
			// never a placement candidate; keep scanning
		case t.metadata[s] == h2 && t.equal(t.entries[s].key, key):
			return s, true
		}
		p.advance()
	}
	assert.That(false, "findEmptyForInsert: probe sequence did not terminate")
	return 0, false
}

// Insert creates a new entry if key is absent. It returns false without
// modifying the table if key is already present.
func (t *Table[K, V]) Insert(key K, value V) bool {
	if t.count+1 > uint32(float64(t.capacity)*t.loadFactor) {
		t.rehash(t.capacity * 2)
	}

	h := t.hash(key)
	slot, found := t.findEmptyForInsert(key, h)
	if found {
		return false
	}

	_, h2 := fibhash.Split(h, t.shift)
	t.metadata[slot] = h2
	t.entries[slot] = entry[K, V]{key: key, value: value}
	t.count++
	return true
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

// Remove deletes key if present, tombstoning its slot. Tombstones are never
// reused for placement by Insert; only rehash clears them.
func (t *Table[K, V]) Remove(key K) bool {
	slot, found := t.find(key, t.hash(key))
	if !found {
		return false
	}

	var zero entry[K, V]
	t.entries[slot] = zero
	t.metadata[slot] = tombstone
	t.tombstones++
	t.count--
	return true
}

// Clear resets the table to empty while preserving capacity.
func (t *Table[K, V]) Clear() {
	for i := range t.metadata {
		t.metadata[i] = empty
	}
	for i := range t.entries {
		t.entries[i] = entry[K, V]{}
	}
	t.count = 0
	t.tombstones = 0
}

// IndexOf returns the slot index holding key, or -1 if absent.
func (t *Table[K, V]) IndexOf(key K) int {
	slot, found := t.find(key, t.hash(key))
	if !found {
		return -1
	}
	return int(slot)
}

// Copy bulk-inserts every live entry of other into t via the public insert
// path, leaving duplicate keys already in t untouched.
func (t *Table[K, V]) Copy(other *Table[K, V]) {
	for i := uint32(0); i < other.capacity; i++ {
		if other.metadata[i] < 0x80 {
			e := other.entries[i]
			t.Insert(e.key, e.value)
		}
	}
}

// Clone returns an independent copy of t at the same capacity and load
// factor. The clone starts tombstone-free even if t was not, since Copy
// replays only live entries.
func (t *Table[K, V]) Clone() *Table[K, V] {
	clone := &Table[K, V]{
		metadata:   newMetadata(t.capacity),
		entries:    make([]entry[K, V], t.capacity),
		capacity:   t.capacity,
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
		for i := int64(t.capacity) - 1; i >= 0; i-- {
			if t.metadata[i] >= 0x80 {
				continue
			}
			e := t.entries[i]
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Tombstones returns the number of tombstoned slots currently sitting in the
// table. Since Insert never reclaims them, this count only falls on rehash.
func (t *Table[K, V]) Tombstones() int { return int(t.tombstones) }

// rehash resizes the table to newCapacity (every caller passes double the
// current capacity) and replays every live entry, dropping all tombstones
// in the process.
func (t *Table[K, V]) rehash(newCapacity uint32) {
	oldEntries := t.entries
	oldMetadata := t.metadata

	t.capacity = newCapacity
	t.shift = fibhash.ShiftForCapacity(newCapacity)
	t.metadata = newMetadata(newCapacity)
	t.entries = make([]entry[K, V], newCapacity)
	t.count = 0
	t.tombstones = 0

	for i := range oldMetadata {
		if oldMetadata[i] >= 0x80 {
			continue
		}
		e := oldEntries[i]
		t.insertNoDuplicateCheck(e.key, e.value)
	}
}

// insertNoDuplicateCheck places an entry at the first EMPTY slot in probe
// order without checking whether the key already exists. Callers (rehash)
// must guarantee key uniqueness themselves. It runs against a freshly
// cleared metadata array, so there are no tombstones to skip.
func (t *Table[K, V]) insertNoDuplicateCheck(key K, value V) {
	h := t.hash(key)
	_, h2 := fibhash.Split(h, t.shift)
	p := newProbe(h, t.shift, t.capacity)

	for guard := uint32(0); guard <= t.capacity+4; guard++ {
		s := p.slot()
		if t.metadata[s] == empty {
			t.metadata[s] = h2
			t.entries[s] = entry[K, V]{key: key, value: value}
			t.count++
			return
		}
		p.advance()
	}
	assert.That(false, "insertNoDuplicateCheck: probe sequence did not terminate")
}
