// Package hashindex implements the open-addressing hash table described by
// the solver's tableau: linear probing over a power-of-two-sized slot
// array, backshift deletion, and rehash-on-growth once the load factor
// reaches one half.
//
// It is a direct port of the reference implementation's hash_table.inl:
// keys are non-zero 32-bit hashes (0 marks an empty slot), the probe step
// is 1 modulo the table size, and Find/FindNext let a caller walk every
// slot that collided on the same hash so it can re-verify the full key.
package hashindex

import "github.com/gridwright/cassowary/internal/arena"

// GrowthObserver is invoked whenever the table doubles in size.
type GrowthObserver = arena.GrowthObserver

const minSize = 8

// Probe is one step of a linear-probe walk: the slot index and the hash
// byte-for-byte as stored there. Hash == 0 means Index names an empty
// slot — the walk reached the end of the probe chain without another
// candidate, and Index is where a new entry would be inserted.
type Probe struct {
	Index uint32
	Hash  uint32
}

// Table maps non-zero 32-bit hashes to opaque uint32 values (tableau term
// indices). The zero value is not usable; construct with New.
type Table struct {
	hashes []uint32
	values []uint32
	count  uint32
	onGrow GrowthObserver
}

// New creates a Table with at least sizeHint slots, rounded up to a power
// of two no smaller than minSize. The first rehash happens once an
// insertion would bring the entry count to half the slot count.
func New(sizeHint int, onGrow GrowthObserver) *Table {
	size := uint32(minSize)
	for int(size) < sizeHint {
		size *= 2
	}

	return &Table{
		hashes: make([]uint32, size),
		values: make([]uint32, size),
		onGrow: onGrow,
	}
}

// Size returns the current slot capacity (always a power of two).
func (t *Table) Size() uint32 { return uint32(len(t.hashes)) }

// Count returns the number of live entries.
func (t *Table) Count() uint32 { return t.count }

func (t *Table) mask() uint32 { return uint32(len(t.hashes)) - 1 }

// Find starts a probe walk for hash: it returns the first slot whose
// stored hash is either 0 (empty — the insertion point) or equal to hash
// (a candidate match the caller must re-verify against the full key).
func (t *Table) Find(hash uint32) Probe {
	mask := t.mask()
	idx := hash & mask
	for i := uint32(0); i <= mask; i++ {
		h := t.hashes[idx]
		if h == 0 || h == hash {
			return Probe{Index: idx, Hash: h}
		}
		idx = (idx + 1) & mask
	}

	return Probe{Index: idx, Hash: 0}
}

// FindNext continues the walk started by Find (or a prior FindNext),
// looking for another slot colliding on the same hash as prev.
func (t *Table) FindNext(prev Probe) Probe {
	mask := t.mask()
	idx := (prev.Index + 1) & mask
	for i := uint32(0); i <= mask; i++ {
		h := t.hashes[idx]
		if h == 0 || h == prev.Hash {
			return Probe{Index: idx, Hash: h}
		}
		idx = (idx + 1) & mask
	}

	return Probe{Index: idx, Hash: 0}
}

// Value returns the value stored at slot index.
func (t *Table) Value(index uint32) uint32 { return t.values[index] }

// Insert adds a new (hash, value) pair, growing and rehashing first if
// the load factor would otherwise reach one half. The caller must have
// already established, via Find/FindNext, that no entry for this exact
// key exists yet. Returns the slot the entry landed in.
func (t *Table) Insert(hash, value uint32) uint32 {
	if (t.count+1)*2 >= uint32(len(t.hashes)) {
		t.grow(uint32(len(t.hashes)) * 2)
	}

	p := t.Find(hash)
	for p.Hash == hash {
		p = t.FindNext(p)
	}
	t.hashes[p.Index] = hash
	t.values[p.Index] = value
	t.count++

	return p.Index
}

// Erase removes the entry at slot index and backshifts later probe-chain
// occupants into the gap so every surviving key's probe sequence still
// terminates correctly. Returns the value that was stored there.
func (t *Table) Erase(index uint32) uint32 {
	value := t.values[index]
	mask := t.mask()

	for i := (index + 1) & mask; i != index; i = (i + 1) & mask {
		h := t.hashes[i]
		if h == 0 {
			break
		}

		home := h & mask
		// i's occupant may move into the gap only if its home slot lies
		// outside the ring interval (index, i] — i.e. it is not "settled".
		if (i > index && (home <= index || home > i)) ||
			(i < index && (home <= index && home > i)) {
			t.hashes[index] = h
			t.values[index] = t.values[i]
			index = i
		}
	}

	t.hashes[index] = 0
	t.values[index] = 0
	t.count--

	return value
}

func (t *Table) grow(newSize uint32) {
	oldHashes, oldValues := t.hashes, t.values
	t.hashes = make([]uint32, newSize)
	t.values = make([]uint32, newSize)
	t.count = 0

	for i, h := range oldHashes {
		if h == 0 {
			continue
		}

		p := t.Find(h)
		for p.Hash == h {
			p = t.FindNext(p)
		}
		t.hashes[p.Index] = h
		t.values[p.Index] = oldValues[i]
		t.count++
	}

	if t.onGrow != nil {
		t.onGrow(len(oldHashes), int(newSize))
	}
}
