package s3fifo

import "testing"

func TestGhostFIFO_InsertAndContains(t *testing.T) {
	g := newGhostFIFO(3)

	if g.contains(1) {
		t.Fatal("empty ghost should not contain anything")
	}

	g.insert(1)
	g.insert(2)
	g.insert(3)

	for _, h := range []uint64{1, 2, 3} {
		if !g.contains(h) {
			t.Errorf("ghost should contain %d", h)
		}
	}
	if g.len() != 3 {
		t.Fatalf("len() = %d; want 3", g.len())
	}
}

func TestGhostFIFO_EvictsOldestOnOverflow(t *testing.T) {
	g := newGhostFIFO(2)

	g.insert(1)
	g.insert(2)
	g.insert(3) // evicts 1

	if g.contains(1) {
		t.Error("oldest fingerprint should have been evicted")
	}
	if !g.contains(2) || !g.contains(3) {
		t.Error("the two most recent fingerprints should remain")
	}
	if g.len() != 2 {
		t.Fatalf("len() = %d; want 2", g.len())
	}
}

func TestGhostFIFO_InsertIsIdempotent(t *testing.T) {
	g := newGhostFIFO(2)

	g.insert(1)
	g.insert(1)
	g.insert(1)

	if g.len() != 1 {
		t.Fatalf("len() = %d; want 1 (idempotent re-insert)", g.len())
	}
}

func TestGhostFIFO_ReinsertAfterEvictionIsFresh(t *testing.T) {
	g := newGhostFIFO(2)

	g.insert(1)
	g.insert(2)
	g.insert(3) // evicts 1
	g.insert(1) // re-enters, now the newest

	if !g.contains(1) {
		t.Fatal("re-inserted fingerprint should be present")
	}
	if g.contains(2) {
		t.Error("2 should have been evicted to make room for re-inserted 1")
	}
}

func TestGhostFIFO_ZeroCapacityNeverStores(t *testing.T) {
	g := newGhostFIFO(0)

	g.insert(1)

	if g.len() != 0 {
		t.Fatalf("len() = %d; want 0 for a zero-capacity ghost", g.len())
	}
	if g.contains(1) {
		t.Error("zero-capacity ghost should never report a hit")
	}
}
