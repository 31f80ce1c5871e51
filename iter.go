package vecopt

import "iter"

// BitIter is a double-ended iterator over a bit view. Both ends advance
// by splitting the remaining view, so forward and backward traversal
// share one mechanism.
type BitIter struct {
	s BitSlice
}

// Len returns the number of bits not yet yielded.
func (it *BitIter) Len() int {
	return it.s.Len()
}

// Next yields the next bit from the front. The second return is false
// when the iterator is exhausted.
func (it *BitIter) Next() (bool, bool) {
	v, rest, ok := it.s.SplitFirst()
	if !ok {
		return false, false
	}
	it.s = rest
	return v, true
}

// NextBack yields the next bit from the back.
func (it *BitIter) NextBack() (bool, bool) {
	rest, v, ok := it.s.SplitLast()
	if !ok {
		return false, false
	}
	it.s = rest
	return v, true
}

// Skip drops the next n bits from the front. Skipping past the end
// empties the iterator.
func (it *BitIter) Skip(n int) {
	if n >= it.s.Len() {
		it.s = BitSlice{}
		return
	}
	it.s = it.s.suffix(n)
}

// Bits returns a restartable forward sequence over the view.
func (s BitSlice) Bits() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		it := s.Iter()
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Bits returns a restartable forward sequence over the vector's bits.
func (v *BitVec) Bits() iter.Seq[bool] {
	return v.AsSlice().Bits()
}

// Iter is a double-ended iterator over an option view, yielding each
// slot's option by value.
type Iter[T any] struct {
	s Slice[T]
}

// Len returns the number of elements not yet yielded.
func (it *Iter[T]) Len() int {
	return it.s.Len()
}

// Next yields the next element from the front. The second return is
// false when the iterator is exhausted; a None element is a vacant slot.
func (it *Iter[T]) Next() (Option[T], bool) {
	v, rest, ok := it.s.SplitFirst()
	if !ok {
		return None[T](), false
	}
	it.s = rest
	return v, true
}

// NextBack yields the next element from the back.
func (it *Iter[T]) NextBack() (Option[T], bool) {
	rest, v, ok := it.s.SplitLast()
	if !ok {
		return None[T](), false
	}
	it.s = rest
	return v, true
}

// Skip drops the next n elements from the front.
func (it *Iter[T]) Skip(n int) {
	if n >= it.s.Len() {
		it.s = Slice[T]{}
		return
	}
	it.s = it.s.suffix(n)
}

// All returns a restartable forward sequence over the view.
func (s Slice[T]) All() iter.Seq[Option[T]] {
	return func(yield func(Option[T]) bool) {
		it := s.Iter()
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward returns a restartable back-to-front sequence over the view.
func (s Slice[T]) Backward() iter.Seq[Option[T]] {
	return func(yield func(Option[T]) bool) {
		it := s.Iter()
		for v, ok := it.NextBack(); ok; v, ok = it.NextBack() {
			if !yield(v) {
				return
			}
		}
	}
}

// All returns a restartable forward sequence over the vector.
func (v *VecOption[T]) All() iter.Seq[Option[T]] {
	return v.AsSlice().All()
}

// Backward returns a restartable back-to-front sequence over the vector.
func (v *VecOption[T]) Backward() iter.Seq[Option[T]] {
	return v.AsSlice().Backward()
}

// Drain returns a single-pass consuming sequence: every yielded value is
// taken out of its slot, and the vector is empty once the sequence
// finishes, whether or not it ran to completion.
func (v *VecOption[T]) Drain() iter.Seq[Option[T]] {
	return func(yield func(Option[T]) bool) {
		defer v.Clear()
		for i, n := 0, v.Len(); i < n; i++ {
			o, _ := v.Take(i)
			if !yield(o) {
				return
			}
		}
	}
}
