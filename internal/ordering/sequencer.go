// Package ordering holds the position rules for ordered child lists: columns
// within a board and cards within a column. Positions of the children of one
// parent always form the contiguous sequence 0..n-1.
//
// Nothing here touches storage. The functions return Shift values that a store
// applies to the siblings of an entity, after which the entity itself is
// written at its final position.
package ordering

import "sort"

// Unbounded marks a Shift with no upper limit.
const Unbounded = -1

// Shift moves every sibling whose position lies in [From, To] by Delta.
// To == Unbounded means the range is open ended.
type Shift struct {
	From  int
	To    int
	Delta int
}

// Empty reports whether the shift changes nothing.
func (s Shift) Empty() bool {
	if s.Delta == 0 {
		return true
	}
	return s.To != Unbounded && s.To < s.From
}

// Bounded reports whether the range has an upper limit.
func (s Shift) Bounded() bool {
	return s.To != Unbounded
}

// Contains reports whether position falls inside the shifted range.
func (s Shift) Contains(position int) bool {
	if s.Empty() || position < s.From {
		return false
	}
	return !s.Bounded() || position <= s.To
}

// Apply returns the position after the shift.
func (s Shift) Apply(position int) int {
	if s.Contains(position) {
		return position + s.Delta
	}
	return position
}

// InsertPosition returns the position for a new child appended after siblings.
func InsertPosition(siblings []int) int {
	if len(siblings) == 0 {
		return 0
	}
	highest := siblings[0]
	for _, p := range siblings[1:] {
		if p > highest {
			highest = p
		}
	}
	return highest + 1
}

// DeleteShift closes the gap left by removing the child at deleted.
func DeleteShift(deleted int) Shift {
	return Shift{From: deleted + 1, To: Unbounded, Delta: -1}
}

// SameParentMove returns the sibling shift for moving a child from oldPos to
// newPos inside one parent. The moved child is excluded from the range and must
// be written at newPos by the caller.
func SameParentMove(oldPos, newPos int) Shift {
	switch {
	case newPos > oldPos:
		return Shift{From: oldPos + 1, To: newPos, Delta: -1}
	case newPos < oldPos:
		return Shift{From: newPos, To: oldPos - 1, Delta: 1}
	default:
		return Shift{}
	}
}

// CrossParentMove returns the shift for the old parent's remaining children and
// the shift that opens a slot at target in the new parent.
func CrossParentMove(oldPos, target int) (source, dest Shift) {
	return DeleteShift(oldPos), Shift{From: target, To: Unbounded, Delta: 1}
}

// Clamp bounds target to [0, upper].
func Clamp(target, upper int) int {
	if upper < 0 {
		upper = 0
	}
	switch {
	case target < 0:
		return 0
	case target > upper:
		return upper
	default:
		return target
	}
}

// Contiguous reports whether positions are exactly {0, ..., len-1}, in any order.
func Contiguous(positions []int) bool {
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)
	for i, p := range sorted {
		if p != i {
			return false
		}
	}
	return true
}
