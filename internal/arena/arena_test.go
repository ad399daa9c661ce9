package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocNeverReturnsZero(t *testing.T) {
	p := New[int](4, nil)
	for i := 0; i < 20; i++ {
		id := p.Alloc(i)
		assert.NotZero(t, id)
		assert.Equal(t, i, *p.Get(id))
	}
}

func TestFreeAndReuse(t *testing.T) {
	p := New[string](4, nil)
	a := p.Alloc("a")
	b := p.Alloc("b")

	p.Free(a)
	assert.False(t, p.Live(a))

	c := p.Alloc("c")
	assert.Equal(t, a, c, "freed slot should be reused before growing")
	assert.Equal(t, "c", *p.Get(c))
	assert.Equal(t, "b", *p.Get(b))
}

func TestGrowDoublesAndPreservesData(t *testing.T) {
	grown := 0
	p := New[int](2, func(oldCap, newCap int) {
		grown++
		assert.Equal(t, oldCap*2, newCap)
	})

	ids := make([]uint32, 0, 10)
	for i := 0; i < 10; i++ {
		ids = append(ids, p.Alloc(i))
	}
	require.Positive(t, grown)

	for i, id := range ids {
		assert.Equal(t, i, *p.Get(id))
	}
}

func TestFreeListHeadNeverHandedOut(t *testing.T) {
	p := New[int](1, nil)
	id := p.Alloc(42)
	p.Free(id)
	p.Free(id) // double-free is a no-op, must not corrupt the free list
	id2 := p.Alloc(7)
	assert.Equal(t, id, id2)
}

func TestRangeSkipsFreedSlots(t *testing.T) {
	p := New[int](4, nil)
	a := p.Alloc(1)
	b := p.Alloc(2)
	p.Alloc(3)
	p.Free(b)

	seen := map[uint32]int{}
	p.Range(func(id uint32, v *int) bool {
		seen[id] = *v
		return true
	})

	assert.Equal(t, 1, seen[a])
	_, freed := seen[b]
	assert.False(t, freed, "freed slot must not be visited")
	assert.Len(t, seen, 2)
}

func TestRangeStopsEarly(t *testing.T) {
	p := New[int](4, nil)
	for i := 0; i < 5; i++ {
		p.Alloc(i)
	}

	visited := 0
	p.Range(func(id uint32, v *int) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}

func TestLiveFalseForFreeOrOutOfRange(t *testing.T) {
	p := New[int](2, nil)
	assert.False(t, p.Live(0))
	assert.False(t, p.Live(999))

	id := p.Alloc(1)
	assert.True(t, p.Live(id))
	p.Free(id)
	assert.False(t, p.Live(id))
}
