package engine

import (
	"math/rand"
	"sync"
	"testing"

	"chess-core/bitmg"
)

func testEntry(key bitmg.ZKey, draft int, node NodeType) HashEntry {
	m := bitmg.NewMove(bitmg.Square(key%64), bitmg.Square(key>>6%64), bitmg.Knight, bitmg.NoPieceType, bitmg.NoPieceType, bitmg.FlagNone)
	return NewHashEntry(key, EntryData{Move: m, Draft: draft, Score: int16(key >> 12), Node: node})
}

func TestHashTableSizing(t *testing.T) {
	for _, c := range []struct{ req, want int }{{1000, 1024}, {1024, 1024}, {1025, 2048}, {1, 1}, {0, 1}, {-5, 1}} {
		tt := NewHashTable(c.req)
		if tt.Size() != c.want || tt.Mask() != uint64(c.want-1) {
			t.Errorf("NewHashTable(%d): size %d mask %d", c.req, tt.Size(), tt.Mask())
		}
	}
	if got := NewHashTableMB(1).Size(); got != 1<<20/int(slotBytes) {
		t.Errorf("1 MB table: %d entries", got)
	}
	if got := NewHashTableMB(3).Size(); got != 2<<20/int(slotBytes) {
		t.Errorf("3 MB table: %d entries, want the 2 MB power of two", got)
	}
}

func TestHashTableEmpty(t *testing.T) {
	tt := NewHashTable(64)
	for k := bitmg.ZKey(0); k < 64; k++ {
		if e := tt.Get(k); !e.IsEmpty() {
			t.Fatalf("slot %d not empty: %v", k, e)
		}
		if _, ok := tt.Probe(k); ok {
			t.Fatalf("probe hit on an empty table")
		}
	}
	if tt.Usage() != 0 {
		t.Fatalf("usage %d", tt.Usage())
	}
	if tt.Insert(HashEntry{Key: 5}) {
		t.Fatalf("stored an empty entry")
	}
}

func TestHashTableInsertProbe(t *testing.T) {
	tt := NewHashTable(1024)
	e := testEntry(0xDEADBEEF_00000123, 6, NodeCut)
	if !tt.Insert(e) {
		t.Fatalf("insert into an empty slot refused")
	}
	got, ok := tt.Probe(e.Key)
	if !ok || got != e {
		t.Fatalf("probe: %v %v", got, ok)
	}
	// same slot, other key
	other := e.Key ^ 1<<40
	if _, ok := tt.Probe(other); ok {
		t.Fatalf("probe hit for a colliding key")
	}
	if tt.Get(other).Key != e.Key {
		t.Fatalf("Get must return the resident regardless of key")
	}
}

func TestHashTableReplacement(t *testing.T) {
	tt := NewHashTable(16)
	const base = bitmg.ZKey(0x1000_0000_0000_0003)
	pv := testEntry(base, 10, NodePV)
	if !tt.Insert(pv) {
		t.Fatalf("pv insert refused")
	}

	// a shallower result for a colliding key must not evict a deeper PV node
	shallow := testEntry(base+16, 5, NodeCut)
	if tt.Insert(shallow) {
		t.Fatalf("shallow entry replaced a deeper pv entry")
	}
	if got, ok := tt.Probe(base); !ok || got != pv {
		t.Fatalf("pv entry changed: %v", got)
	}
	shallowPV := testEntry(base+32, 9, NodePV)
	if tt.Insert(shallowPV) {
		t.Fatalf("shallower pv entry replaced a deeper one")
	}

	equal := testEntry(base+48, 10, NodeAll)
	if !tt.Insert(equal) {
		t.Fatalf("equal draft refused")
	}
	if got, ok := tt.Probe(base + 48); !ok || got != equal {
		t.Fatalf("equal-draft entry not stored")
	}

	// non-pv residents are always replaced
	if !tt.Insert(testEntry(base+64, 1, NodeCut)) {
		t.Fatalf("non-pv resident not replaced")
	}
	if !tt.Insert(testEntry(base+80, 0, NodeAll)) {
		t.Fatalf("non-pv resident not replaced by draft 0")
	}
}

func TestHashTableClearAndUsage(t *testing.T) {
	tt := NewHashTable(2048)
	for k := bitmg.ZKey(0); k < 100; k++ {
		tt.Insert(testEntry(k, 1, NodeAll))
	}
	if got := tt.Usage(); got != 100 {
		t.Fatalf("usage %d, want 100 permille", got)
	}
	tt.Clear()
	if tt.Usage() != 0 || tt.Size() != 2048 {
		t.Fatalf("clear: usage %d size %d", tt.Usage(), tt.Size())
	}
	for i := range tt.slots {
		if !tt.Get(bitmg.ZKey(i)).IsEmpty() {
			t.Fatalf("slot %d survived Clear", i)
		}
	}
	small := NewHashTable(4)
	small.Insert(testEntry(1, 1, NodeAll))
	if got := small.Usage(); got != 250 {
		t.Fatalf("usage on a 4-slot table %d", got)
	}
}

// A slot holding the data word of one write and the check word of another
// must not match either key.
func TestHashTableTornWrite(t *testing.T) {
	tt := NewHashTable(8)
	a := testEntry(0x0A00_0000_0000_0002, 4, NodeCut)
	b := testEntry(0x0B00_0000_0000_000A, 7, NodePV)
	if a.Word() == b.Word() {
		t.Fatalf("test entries must differ")
	}
	tt.Insert(a)
	s := &tt.slots[2]
	s.data.Store(b.Word())
	for _, k := range []bitmg.ZKey{a.Key, b.Key} {
		if e, ok := tt.Probe(k); ok {
			t.Fatalf("torn slot matched %016x: %v", uint64(k), e)
		}
	}
}

func TestHashTableConcurrent(t *testing.T) {
	tt := NewHashTable(256)
	const writers, readers, ops = 4, 4, 20000
	keys := make([]bitmg.ZKey, 1024)
	rng := rand.New(rand.NewSource(99))
	for i := range keys {
		keys[i] = bitmg.ZKey(rng.Uint64())
	}

	var wg sync.WaitGroup
	errs := make(chan string, readers)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < ops; i++ {
				tt.Insert(testEntry(keys[rng.Intn(len(keys))], rng.Intn(20), NodeCut))
			}
		}(int64(w))
	}
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < ops; i++ {
				k := keys[i%len(keys)]
				e, ok := tt.Probe(k)
				if !ok {
					continue
				}
				// a hit is exactly what some writer stored for k
				if want := testEntry(k, e.Draft(), NodeCut); want.Word() != e.Word() {
					errs <- e.String()
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for s := range errs {
		t.Fatalf("reader accepted a torn entry: %s", s)
	}
}
