package simdtable

import (
	"iter"
	"math/bits"

	"github.com/saiprakashreddy14/hashtable/fibhash"
	"github.com/saiprakashreddy14/hashtable/internal/assert"
	"github.com/saiprakashreddy14/hashtable/internal/cpufeature"
)

// Metadata sentinel values. Both have the high bit set (>= 0x80); every
// fingerprint is < 0x80 (fibhash.H2Mask is 7 bits), so a simple unsigned
// comparison against 0x80 distinguishes "holds an entry" from "does not"
// without a branch per sentinel.
const (
	empty     byte = 0xFF
	tombstone byte = 0xFE
)

// entry is the parallel-array payload; it is meaningful only when its
// metadata byte is a fingerprint.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// Table is the SIMD-accelerated dense hash table: open addressing over
// 16-slot metadata groups scanned with a SWAR byte compare. It is
// single-threaded; external synchronization is the caller's responsibility
// if shared across goroutines.
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

// New constructs a Table. hash must return a 32-bit hash of key; supplying
// one is the caller's responsibility. New fails with ErrUnsupportedPlatform
// if the host has no vector-compare capability to back the group scan.
func New[K comparable, V any](hash func(K) uint32, opts ...Option[K]) (*Table[K, V], error) {
	if !cpufeature.HasVectorCompare() {
		return nil, ErrUnsupportedPlatform
	}

	cfg := config[K]{
		initialCapacity: minCapacity,
		loadFactor:      defaultLoadFactor,
		equal:           defaultEqual[K],
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	lf := cfg.loadFactor
	if lf <= 0 {
		lf = defaultLoadFactor
	}
	if lf > maxLoadFactor {
		lf = maxLoadFactor
	}

	capacity := fibhash.NextPowerOfTwo(cfg.initialCapacity, minCapacity)

	return &Table[K, V]{
		metadata:   newMetadata(capacity),
		entries:    make([]entry[K, V], capacity+groupPadding),
		capacity:   capacity,
		shift:      fibhash.ShiftForCapacity(capacity),
		loadFactor: lf,
		hash:       hash,
		equal:      cfg.equal,
	}, nil
}

func newMetadata(capacity uint32) []byte {
	m := make([]byte, capacity+groupPadding)
	for i := range m {
		m[i] = empty
	}
	return m
}

// Count returns the number of live entries.
func (t *Table[K, V]) Count() int { return int(t.count) }

// Capacity returns the current slot capacity.
func (t *Table[K, V]) Capacity() int { return int(t.capacity) }

// find scans the probe sequence for key, returning its slot if present. It
// terminates on the first EMPTY slot encountered in a scanned group.
func (t *Table[K, V]) find(key K, h uint32) (slot uint32, found bool) {
	_, h2 := fibhash.Split(h, t.shift)
	p := newProbe(h, t.shift, t.capacity)

	for guard := uint32(0); ; guard++ {
		assert.That(guard <= t.capacity/groupSize*4+4, "find: probe sequence did not terminate")

		g := p.group()

		mask := matchByte(t.metadata, g, h2)
		for mask != 0 {
			bit := bits.TrailingZeros16(mask)
			mask &= mask - 1
			slot := g + uint32(bit)
			if t.equal(t.entries[slot].key, key) {
				return slot, true
			}
		}

		if matchByte(t.metadata, g, empty) != 0 {
			return 0, false
		}

		p.advance()
	}
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

// At is the indexed-access surface: it returns ErrKeyNotFound instead of a
// boolean miss, for callers that want an error value.
func (t *Table[K, V]) At(key K) (V, error) {
	v, found := t.Get(key)
	if !found {
		return v, ErrKeyNotFound
	}
	return v, nil
}

// SetAt is the indexed-write counterpart to At: it requires the key to
// already exist and reports ErrKeyNotFound otherwise, leaving the table
// unchanged.
func (t *Table[K, V]) SetAt(key K, value V) error {
	if !t.Update(key, value) {
		return ErrKeyNotFound
	}
	return nil
}

// findSlotForInsert finds either the existing slot for key (found=true) or
// the slot a new entry for key should occupy (found=false). Duplicate
// detection runs as its own complete pass over the whole probe path first —
// the same full scan find() does, continuing past tombstones and stopping
// only at EMPTY — because a live entry can sit in a later group than a
// tombstone some unrelated removal left behind in an earlier one; a merged
// single-pass scan would stop at that earlier tombstone and miss it,
// producing a duplicate live entry. Only once the key is confirmed absent
// does a second, separate pass look for where to place it, preferring the
// first tombstone seen within a group over a later group's empty slot and
// never looking back across groups for an earlier tombstone once a group
// offers one.
func (t *Table[K, V]) findSlotForInsert(key K, h uint32) (slot uint32, found bool) {
	if slot, found := t.find(key, h); found {
		return slot, true
	}
	return t.findEmptySlot(h), false
}

// findEmptySlot scans for the first tombstone-or-empty slot in probe order,
// assuming the caller has already ruled out key being present.
func (t *Table[K, V]) findEmptySlot(h uint32) uint32 {
	p := newProbe(h, t.shift, t.capacity)

	for guard := uint32(0); ; guard++ {
		assert.That(guard <= t.capacity/groupSize*4+4, "findEmptySlot: probe sequence did not terminate")

		g := p.group()

		if tsMask := matchByte(t.metadata, g, tombstone); tsMask != 0 {
			return g + uint32(bits.TrailingZeros16(tsMask))
		}

		if emMask := matchByte(t.metadata, g, empty); emMask != 0 {
			return g + uint32(bits.TrailingZeros16(emMask))
		}

		p.advance()
	}
}

// Insert creates a new entry if key is absent. It returns false without
// modifying the table if key is already present; Count increments by exactly
// one per distinct key regardless of how many times Insert is called on it.
func (t *Table[K, V]) Insert(key K, value V) bool {
	if t.count+1 > uint32(float64(t.capacity)*t.loadFactor) {
		t.rehash(t.capacity * 2)
	}

	h := t.hash(key)
	slot, found := t.findSlotForInsert(key, h)
	if found {
		return false
	}

	_, h2 := fibhash.Split(h, t.shift)
	if t.metadata[slot] == tombstone {
		t.tombstones--
	}
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

// Remove deletes key if present, tombstoning its slot. Tombstones are
// recycled by future inserts within the same group and eliminated by
// rehash.
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
	for i := uint32(0); i < other.capacity; i++ {
		if other.metadata[i] < 0x80 {
			e := other.entries[i]
			t.Insert(e.key, e.value)
		}
	}
}

// Clone returns an independent copy of t at the same capacity and load
// factor.
func (t *Table[K, V]) Clone() *Table[K, V] {
	clone := &Table[K, V]{
		metadata:   newMetadata(t.capacity),
		entries:    make([]entry[K, V], t.capacity+groupPadding),
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
// slots still to be visited. Order is otherwise unspecified and invalidated
// by any mutation.
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

// rehash resizes the table to newCapacity (every caller passes double the
// current capacity) and replays every live entry through the internal
// no-duplicate-check insert path.
func (t *Table[K, V]) rehash(newCapacity uint32) {
	oldEntries := t.entries
	oldMetadata := t.metadata

	t.capacity = newCapacity
	t.shift = fibhash.ShiftForCapacity(newCapacity)
	t.metadata = newMetadata(newCapacity)
	t.entries = make([]entry[K, V], newCapacity+groupPadding)
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

// insertNoDuplicateCheck places an entry at the first tombstone-or-empty
// slot in probe order without checking whether the key already exists.
// Callers (rehash) must guarantee key uniqueness themselves.
func (t *Table[K, V]) insertNoDuplicateCheck(key K, value V) {
	h := t.hash(key)
	_, h2 := fibhash.Split(h, t.shift)
	p := newProbe(h, t.shift, t.capacity)

	for guard := uint32(0); ; guard++ {
		assert.That(guard <= t.capacity/groupSize*4+4, "insertNoDuplicateCheck: probe sequence did not terminate")

		g := p.group()

		if tsMask := matchByte(t.metadata, g, tombstone); tsMask != 0 {
			slot := g + uint32(bits.TrailingZeros16(tsMask))
			t.metadata[slot] = h2
			t.entries[slot] = entry[K, V]{key: key, value: value}
			t.count++
			return
		}

		if emMask := matchByte(t.metadata, g, empty); emMask != 0 {
			slot := g + uint32(bits.TrailingZeros16(emMask))
			t.metadata[slot] = h2
			t.entries[slot] = entry[K, V]{key: key, value: value}
			t.count++
			return
		}

		p.advance()
	}
}
