package ordering_test

import (
	"math/rand"
	"strconv"
	"testing"

	"taskboard/internal/ordering"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertPosition(t *testing.T) {
	assert.Equal(t, 0, ordering.InsertPosition(nil))
	assert.Equal(t, 1, ordering.InsertPosition([]int{0}))
	assert.Equal(t, 4, ordering.InsertPosition([]int{2, 0, 3, 1}))
	// a gap left by older data still yields a value above every sibling
	assert.Equal(t, 8, ordering.InsertPosition([]int{0, 7}))
}

func TestDeleteShift(t *testing.T) {
	s := ordering.DeleteShift(1)

	got := applyAll(s, []int{0, 2, 3})
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.False(t, s.Bounded())
}

func TestSameParentMove(t *testing.T) {
	tests := []struct {
		name     string
		oldPos   int
		newPos   int
		siblings []int
		want     []int
	}{
		{"forward", 0, 2, []int{1, 2, 3}, []int{0, 1, 3}},
		{"backward", 3, 1, []int{0, 1, 2}, []int{0, 2, 3}},
		{"to front", 2, 0, []int{0, 1}, []int{1, 2}},
		{"same position", 1, 1, []int{0, 2}, []int{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ordering.SameParentMove(tt.oldPos, tt.newPos)
			assert.Equal(t, tt.want, applyAll(s, tt.siblings))
			assert.True(t, ordering.Contiguous(append(applyAll(s, tt.siblings), tt.newPos)))
		})
	}
}

func TestSameParentMove_NoOpIsEmpty(t *testing.T) {
	s := ordering.SameParentMove(4, 4)
	assert.True(t, s.Empty())
	assert.False(t, s.Contains(4))
	assert.Equal(t, 4, s.Apply(4))
}

func TestCrossParentMove(t *testing.T) {
	// A = [a0, a1], B = [b0]; move a1 to B at 0
	source, dest := ordering.CrossParentMove(1, 0)

	assert.Equal(t, []int{0}, applyAll(source, []int{0}))
	assert.Equal(t, []int{1}, applyAll(dest, []int{0}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, ordering.Clamp(-3, 5))
	assert.Equal(t, 5, ordering.Clamp(9, 5))
	assert.Equal(t, 2, ordering.Clamp(2, 5))
	assert.Equal(t, 0, ordering.Clamp(2, -1))
}

func TestContiguous(t *testing.T) {
	assert.True(t, ordering.Contiguous(nil))
	assert.True(t, ordering.Contiguous([]int{2, 0, 1}))
	assert.False(t, ordering.Contiguous([]int{0, 2}))
	assert.False(t, ordering.Contiguous([]int{0, 0, 1}))
	assert.False(t, ordering.Contiguous([]int{1}))
}

// board simulates parents holding child ids keyed by position, applying the
// rules the same way the repositories do.
type board struct {
	parents map[int]map[string]int
	nextID  int
}

func newBoard(parents int) *board {
	b := &board{parents: make(map[int]map[string]int)}
	for i := 0; i < parents; i++ {
		b.parents[i] = make(map[string]int)
	}
	return b
}

func (b *board) positions(parent int) []int {
	var out []int
	for _, p := range b.parents[parent] {
		out = append(out, p)
	}
	return out
}

func (b *board) shift(parent int, s ordering.Shift) {
	for id, p := range b.parents[parent] {
		b.parents[parent][id] = s.Apply(p)
	}
}

func (b *board) create(parent int) {
	b.nextID++
	id := "child-" + strconv.Itoa(b.nextID)
	b.parents[parent][id] = ordering.InsertPosition(b.positions(parent))
}

func (b *board) pick(r *rand.Rand, parent int) (string, bool) {
	for id := range b.parents[parent] {
		if r.Intn(2) == 0 {
			return id, true
		}
	}
	for id := range b.parents[parent] {
		return id, true
	}
	return "", false
}

func (b *board) remove(parent int, id string) {
	pos := b.parents[parent][id]
	delete(b.parents[parent], id)
	b.shift(parent, ordering.DeleteShift(pos))
}

func (b *board) reposition(parent int, id string, target int) {
	old := b.parents[parent][id]
	target = ordering.Clamp(target, len(b.parents[parent])-1)
	delete(b.parents[parent], id)
	b.shift(parent, ordering.SameParentMove(old, target))
	b.parents[parent][id] = target
}

func (b *board) move(from, to int, id string, target int) {
	old := b.parents[from][id]
	target = ordering.Clamp(target, len(b.parents[to]))
	source, dest := ordering.CrossParentMove(old, target)
	delete(b.parents[from], id)
	b.shift(from, source)
	b.shift(to, dest)
	b.parents[to][id] = target
}

func TestRandomOperationsKeepContiguity(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	b := newBoard(3)

	for step := 0; step < 2000; step++ {
		parent := r.Intn(3)
		switch op := r.Intn(4); op {
		case 0:
			b.create(parent)
		case 1:
			if id, ok := b.pick(r, parent); ok {
				b.remove(parent, id)
			}
		case 2:
			if id, ok := b.pick(r, parent); ok {
				b.reposition(parent, id, r.Intn(8)-2)
			}
		case 3:
			to := (parent + 1 + r.Intn(2)) % 3
			if id, ok := b.pick(r, parent); ok {
				before := len(b.parents[parent]) + len(b.parents[to])
				b.move(parent, to, id, r.Intn(8)-2)
				require.Equal(t, before, len(b.parents[parent])+len(b.parents[to]))
			}
		}

		for p := 0; p < 3; p++ {
			require.Truef(t, ordering.Contiguous(b.positions(p)), "step %d parent %d: %v", step, p, b.positions(p))
		}
	}
}

func applyAll(s ordering.Shift, positions []int) []int {
	out := make([]int, len(positions))
	for i, p := range positions {
		out[i] = s.Apply(p)
	}
	return out
}
