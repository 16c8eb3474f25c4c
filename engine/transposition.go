package engine

import (
	"math/bits"
	"sync/atomic"
	"unsafe"

	"chess-core/bitmg"
)

// slot stores key^word next to word. A reader that sees the halves of two
// different writes reconstructs a key that matches neither, so the caller's
// key comparison rejects it.
type slot struct {
	check atomic.Uint64
	data  atomic.Uint64
}

const slotBytes = uint64(unsafe.Sizeof(slot{}))

// HashTable is a single-slot transposition table indexed by the low bits of
// the Zobrist key. It is safe for concurrent Get and Insert.
type HashTable struct {
	slots []slot
	mask  uint64
}

func nextPowerOfTwo(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len64(n-1)
}

// NewHashTable allocates max(1, requested) entries rounded up to a power of two.
func NewHashTable(requested int) *HashTable {
	if requested < 1 {
		requested = 1
	}
	size := nextPowerOfTwo(uint64(requested))
	return &HashTable{
		slots: make([]slot, size),
		mask:  size - 1,
	}
}

// NewHashTableMB sizes the table to the largest power-of-two entry count that
// fits in mb megabytes.
func NewHashTableMB(mb int) *HashTable {
	if mb < 1 {
		mb = 1
	}
	n := uint64(mb) * 1024 * 1024 / slotBytes
	size := uint64(1) << (bits.Len64(n) - 1)
	return NewHashTable(int(size))
}

// Size returns the number of slots.
func (t *HashTable) Size() int { return len(t.slots) }

// Mask returns size-1, the index mask applied to keys.
func (t *HashTable) Mask() uint64 { return t.mask }

// Get returns whatever is stored in key's slot. The entry's Key may differ
// from key (another position, or a torn concurrent write); callers must
// compare before trusting it.
func (t *HashTable) Get(key bitmg.ZKey) HashEntry {
	s := &t.slots[uint64(key)&t.mask]
	data := s.data.Load()
	check := s.check.Load()
	return HashEntry{Key: bitmg.ZKey(check ^ data), word: data}
}

// Probe is Get plus the key check: it returns the entry only when it belongs
// to key.
func (t *HashTable) Probe(key bitmg.ZKey) (HashEntry, bool) {
	e := t.Get(key)
	if e.IsEmpty() || e.Key != key {
		return HashEntry{}, false
	}
	return e, true
}

// Insert stores e unless its slot holds a PV entry searched deeper than e.
// Empty slots, non-PV residents and residents with draft <= e's are
// overwritten. The return value reports whether e was stored.
func (t *HashTable) Insert(e HashEntry) bool {
	if e.IsEmpty() {
		return false
	}
	s := &t.slots[uint64(e.Key)&t.mask]
	old := HashEntry{word: s.data.Load()}
	if !old.IsEmpty() && old.Node() == NodePV && old.Draft() > e.Draft() {
		return false
	}
	s.data.Store(e.word)
	s.check.Store(uint64(e.Key) ^ e.word)
	return true
}

// Clear empties every slot, keeping the capacity.
func (t *HashTable) Clear() {
	for i := range t.slots {
		t.slots[i].data.Store(0)
		t.slots[i].check.Store(0)
	}
}

// Usage returns the permille of occupied slots among the first thousand
// (the UCI hashfull figure).
func (t *HashTable) Usage() int {
	n := len(t.slots)
	if n > 1000 {
		n = 1000
	}
	used := 0
	for i := 0; i < n; i++ {
		if t.slots[i].data.Load()&occupiedBit != 0 {
			used++
		}
	}
	return used * 1000 / n
}
