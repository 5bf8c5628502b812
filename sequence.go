package trellis

import (
	"fmt"
	"math"
)

// SequenceFuncs are supplied by the owner of a linear, mutable extent (a
// string, a list) to expose it as a Sequence.
type SequenceFuncs struct {
	// Size returns the current number of elements. Required.
	Size func() int
	// Insert stores count new elements at index. args are passed through
	// from Sequence.Insert.
	Insert func(index, count int, args ...any)
	// Remove drops count elements at index.
	Remove func(index, count int)
}

// Sequence routes inserts and removes to its owner and keeps every registered
// Spot and Interval pointing at the same elements. Positions are 0-based.
//
// Spots and intervals are updated before the owner's callback runs, so they
// see the size from before the change.
type Sequence struct {
	funcs     SequenceFuncs
	spots     []*Spot
	intervals []*Interval
}

// NewSequence wraps funcs. Panics if funcs.Size is nil.
func NewSequence(funcs SequenceFuncs) *Sequence {
	if funcs.Size == nil {
		panic("trellis: sequence needs a Size func")
	}
	return &Sequence{funcs: funcs}
}

// Len returns the owner's current size.
func (s *Sequence) Len() int {
	return s.funcs.Size()
}

// Insert adds count elements at index, which must lie in [0, Len()].
func (s *Sequence) Insert(index, count int, args ...any) {
	size := s.Len()
	if index < 0 || index > size {
		panic(fmt.Sprintf("trellis: insert index %d out of range [0,%d]", index, size))
	}
	if count < 0 {
		panic(fmt.Sprintf("trellis: negative insert count %d", count))
	}
	if count == 0 {
		return
	}
	for _, iv := range s.intervals {
		iv.onInsert(index, count)
	}
	for _, sp := range s.spots {
		sp.onInsert(index, count, size)
	}
	if s.funcs.Insert != nil {
		s.funcs.Insert(index, count, args...)
	}
}

// Remove drops count elements starting at index. The range is clipped to the
// sequence; an empty clipped range is a no-op.
func (s *Sequence) Remove(index, count int) {
	size := s.Len()
	lo, n := overlap(index, count, 0, size)
	if n == 0 {
		return
	}
	for _, iv := range s.intervals {
		iv.onRemove(lo, n)
	}
	for _, sp := range s.spots {
		sp.onRemove(lo, n, size-n)
	}
	if s.funcs.Remove != nil {
		s.funcs.Remove(lo, n)
	}
}

// overlap returns the start and length of the intersection of [a, a+an) and
// [b, b+bn).
func overlap(a, an, b, bn int) (start, n int) {
	lo := max(a, b)
	hi := min(addClamped(a, an), addClamped(b, bn))
	if hi <= lo {
		return lo, 0
	}
	return lo, hi - lo
}

// addClamped returns x+y saturated to the int range.
func addClamped(x, y int) int {
	switch {
	case y > 0 && x > math.MaxInt-y:
		return math.MaxInt
	case y < 0 && x < math.MinInt-y:
		return math.MinInt
	}
	return x + y
}

// --- Spot ---

// Spot is a single position that follows its element through inserts and
// removes: a text cursor, a list selection, a scroll anchor.
//
// An add spot may sit one past the last element, where new elements would be
// appended. A non-add spot whose sequence empties is parked at 0: it reports
// no position until elements are inserted again. A migratable
// spot whose element is removed moves to the removal point; a non-migratable
// one becomes invalid.
type Spot struct {
	seq        *Sequence
	index      int
	valid      bool
	add        bool
	migratable bool
}

// NewSpot registers an invalid spot on s.
func (s *Sequence) NewSpot(add, migratable bool) *Spot {
	sp := &Spot{seq: s, add: add, migratable: migratable}
	s.spots = append(s.spots, sp)
	return sp
}

// Set moves the spot to index. Panics if index is out of range for the spot,
// which is always the case for a non-add spot on an empty sequence.
func (sp *Spot) Set(index int) {
	n := sp.seq.Len()
	hi := sp.maxIndex(n)
	if !sp.add && n == 0 {
		panic("trellis: non-add spot on an empty sequence")
	}
	if index < 0 || index > hi {
		panic(fmt.Sprintf("trellis: spot index %d out of range [0,%d]", index, hi))
	}
	sp.index = index
	sp.valid = true
}

// maxIndex returns the last position the spot may take for a sequence of
// size n.
func (sp *Spot) maxIndex(n int) int {
	if sp.add {
		return n
	}
	return max(n-1, 0)
}

// Index returns the spot's position. ok is false if the spot is invalid or
// parked on an empty sequence.
func (sp *Spot) Index() (index int, ok bool) {
	return sp.index, sp.Valid()
}

// Valid reports whether the spot holds a position.
func (sp *Spot) Valid() bool {
	return sp.valid && (sp.add || sp.seq.Len() > 0)
}

// IsAdd reports whether the spot may sit past the last element.
func (sp *Spot) IsAdd() bool { return sp.add }

// Migratable reports whether the spot survives removal of its element.
func (sp *Spot) Migratable() bool { return sp.migratable }

// Clear invalidates the spot.
func (sp *Spot) Clear() {
	sp.valid = false
	sp.index = 0
}

// Release unregisters the spot from its sequence. The spot is invalid
// afterwards and must not be used again.
func (sp *Spot) Release() {
	sp.Clear()
	s := sp.seq
	for i, o := range s.spots {
		if o == sp {
			s.spots = append(s.spots[:i], s.spots[i+1:]...)
			return
		}
	}
}

func (sp *Spot) onInsert(index, count, oldSize int) {
	if !sp.valid || sp.index < index {
		return
	}
	sp.index += count
	if oldSize == 0 && !sp.add {
		sp.index--
	}
}

func (sp *Spot) onRemove(index, count, newSize int) {
	if !sp.valid || sp.index < index {
		return
	}
	if sp.index >= index+count {
		sp.index -= count
		return
	}
	if !sp.migratable {
		sp.Clear()
		return
	}
	sp.index = min(index, sp.maxIndex(newSize))
}

// --- Interval ---

// Interval is a contiguous range that follows its elements through inserts
// and removes: a text selection, a visible window of a list.
type Interval struct {
	seq   *Sequence
	start int
	count int
	valid bool
}

// NewInterval registers an invalid interval on s.
func (s *Sequence) NewInterval() *Interval {
	iv := &Interval{seq: s}
	s.intervals = append(s.intervals, iv)
	return iv
}

// Set makes the interval cover [start, start+count). Panics if the range does
// not fit the sequence.
func (iv *Interval) Set(start, count int) {
	size := iv.seq.Len()
	if start < 0 || count < 0 || start+count > size {
		panic(fmt.Sprintf("trellis: interval [%d,%d) out of range [0,%d]", start, start+count, size))
	}
	iv.start, iv.count = start, count
	iv.valid = true
}

// Span sets the interval between two positions in either order.
func (iv *Interval) Span(a, b int) {
	if b < a {
		a, b = b, a
	}
	iv.Set(a, b-a)
}

// Start returns the first position.
func (iv *Interval) Start() int { return iv.start }

// Count returns the number of covered elements.
func (iv *Interval) Count() int { return iv.count }

// End returns the position one past the last covered element.
func (iv *Interval) End() int { return iv.start + iv.count }

// Valid reports whether the interval holds a range.
func (iv *Interval) Valid() bool { return iv.valid }

// Empty reports whether the interval is invalid or covers nothing.
func (iv *Interval) Empty() bool { return !iv.valid || iv.count == 0 }

// Contains reports whether position i is covered.
func (iv *Interval) Contains(i int) bool {
	return iv.valid && i >= iv.start && i < iv.start+iv.count
}

// Clear invalidates the interval.
func (iv *Interval) Clear() {
	iv.valid = false
	iv.start, iv.count = 0, 0
}

// Release unregisters the interval from its sequence.
func (iv *Interval) Release() {
	iv.Clear()
	s := iv.seq
	for i, o := range s.intervals {
		if o == iv {
			s.intervals = append(s.intervals[:i], s.intervals[i+1:]...)
			return
		}
	}
}

// RemoveContent removes the covered elements from the sequence. Panics if the
// interval is empty.
func (iv *Interval) RemoveContent() {
	if iv.Empty() {
		panic("trellis: remove from an empty interval")
	}
	iv.seq.Remove(iv.start, iv.count)
}

func (iv *Interval) onInsert(index, count int) {
	if !iv.valid {
		return
	}
	switch {
	case index <= iv.start:
		iv.start += count
	case index < iv.start+iv.count:
		iv.count += count
	}
}

func (iv *Interval) onRemove(index, count int) {
	if !iv.valid {
		return
	}
	_, n := overlap(index, count, iv.start, iv.count)
	iv.count -= n
	if iv.start > index {
		iv.start -= min(count, iv.start-index)
	}
}
