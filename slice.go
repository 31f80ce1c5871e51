package vecopt

import (
	"fmt"
	"strings"
)

// Slice is a zero-copy read-only view of a contiguous range of a
// VecOption: a payload window paired with the matching discriminant
// bits. It borrows from the owning vector and must not outlive it.
type Slice[T any] struct {
	data []T
	flag BitSlice
}

// SliceMut is a Slice with write access to its range. Exclusivity over
// overlapping mutable views is the caller's contract; disjoint views are
// always safe even when their discriminant bits share a byte.
type SliceMut[T any] struct {
	data []T
	flag BitSliceMut
}

// Len returns the number of logical elements in the view.
func (s Slice[T]) Len() int {
	return s.flag.Len()
}

// IsEmpty reports whether the view covers no elements.
func (s Slice[T]) IsEmpty() bool {
	return s.flag.IsEmpty()
}

func (s Slice[T]) prefix(end int) Slice[T] {
	return Slice[T]{data: s.data, flag: s.flag.prefix(end)}
}

func (s Slice[T]) suffix(start int) Slice[T] {
	return Slice[T]{data: s.data[start:], flag: s.flag.suffix(start)}
}

// Get returns the option at index by value. The second return is false
// when index is out of bounds; an inner None means the slot is vacant.
func (s Slice[T]) Get(index int) (Option[T], bool) {
	if !checkIndex(index, s.Len()) {
		return None[T](), false
	}
	return s.getUnchecked(index), true
}

func (s Slice[T]) getUnchecked(index int) Option[T] {
	if s.flag.getUnchecked(index) {
		return Some(s.data[index])
	}
	return None[T]()
}

// Sub applies a range shape to the view.
func (s Slice[T]) Sub(r RangeIndex[Slice[T]]) (Slice[T], bool) {
	return SubView(s, r)
}

// SplitAt cuts the view into [0, index) and [index, len).
func (s Slice[T]) SplitAt(index int) (Slice[T], Slice[T], bool) {
	if index < 0 || index > s.Len() {
		return Slice[T]{}, Slice[T]{}, false
	}
	return s.prefix(index), s.suffix(index), true
}

// SplitFirst peels off the first element.
func (s Slice[T]) SplitFirst() (Option[T], Slice[T], bool) {
	if s.IsEmpty() {
		return None[T](), Slice[T]{}, false
	}
	return s.getUnchecked(0), s.suffix(1), true
}

// SplitLast peels off the last element.
func (s Slice[T]) SplitLast() (Slice[T], Option[T], bool) {
	if s.IsEmpty() {
		return Slice[T]{}, None[T](), false
	}
	n := s.Len() - 1
	return s.prefix(n), s.getUnchecked(n), true
}

// Iter returns a double-ended iterator over the view.
func (s Slice[T]) Iter() *Iter[T] {
	return &Iter[T]{s: s}
}

func (s Slice[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, n := 0, s.Len(); i < n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.getUnchecked(i).String())
	}
	b.WriteByte(']')
	return b.String()
}

// Slice reborrows the view read-only.
func (s SliceMut[T]) Slice() Slice[T] {
	return Slice[T]{data: s.data, flag: s.flag.Slice()}
}

// Len returns the number of logical elements in the view.
func (s SliceMut[T]) Len() int {
	return s.flag.Len()
}

// IsEmpty reports whether the view covers no elements.
func (s SliceMut[T]) IsEmpty() bool {
	return s.flag.IsEmpty()
}

func (s SliceMut[T]) prefix(end int) SliceMut[T] {
	return SliceMut[T]{data: s.data, flag: s.flag.prefix(end)}
}

func (s SliceMut[T]) suffix(start int) SliceMut[T] {
	return SliceMut[T]{data: s.data[start:], flag: s.flag.suffix(start)}
}

// Get returns the option at index by value; see Slice.Get.
func (s SliceMut[T]) Get(index int) (Option[T], bool) {
	return s.Slice().Get(index)
}

// SubMut applies a range shape, keeping write access.
func (s SliceMut[T]) SubMut(r RangeIndex[SliceMut[T]]) (SliceMut[T], bool) {
	return SubView(s, r)
}

// GetProxy returns a write-back proxy for the element at index. The
// second return is false when index is out of bounds. The slot is vacant
// until the proxy is committed; see OptionProxy.
func (s SliceMut[T]) GetProxy(index int) (*OptionProxy[T], bool) {
	if !checkIndex(index, s.Len()) {
		return nil, false
	}
	return s.getProxyUnchecked(index), true
}

func (s SliceMut[T]) getProxyUnchecked(index int) *OptionProxy[T] {
	return newOptionProxy(s.flag.getProxyUnchecked(index), &s.data[index])
}

// Take removes and returns the option at index, leaving the slot vacant.
// The second return is false when index is out of bounds.
func (s SliceMut[T]) Take(index int) (Option[T], bool) {
	return s.Replace(index, None[T]())
}

// Replace installs value at index and returns the previous option. The
// caller owns any returned value. A vacant slot's payload is never read;
// a newly vacated slot is zeroed so the vector drops its reference.
func (s SliceMut[T]) Replace(index int, value Option[T]) (Option[T], bool) {
	was, ok := s.flag.Get(index)
	if !ok {
		return None[T](), false
	}

	old := None[T]()
	if was {
		old = Some(s.data[index])
	}

	if v, some := value.Unwrap(); some {
		s.flag.Set(index, true)
		s.data[index] = v
	} else {
		s.flag.Set(index, false)
		if was && needsClear[T]() {
			var zero T
			s.data[index] = zero
		}
	}
	return old, true
}

// Set writes Some(v) at index. Panics when index is out of bounds,
// matching array indexing ergonomics.
func (s SliceMut[T]) Set(index int, v T) {
	if _, ok := s.Replace(index, Some(v)); !ok {
		panic(fmt.Sprintf("vecopt: index %d out of range for length %d", index, s.Len()))
	}
}

// SplitAtMut cuts the view into two exclusive mutable views.
func (s SliceMut[T]) SplitAtMut(index int) (SliceMut[T], SliceMut[T], bool) {
	if index < 0 || index > s.Len() {
		return SliceMut[T]{}, SliceMut[T]{}, false
	}
	return s.prefix(index), s.suffix(index), true
}

// SplitFirstMut peels off a proxy for the first element.
func (s SliceMut[T]) SplitFirstMut() (*OptionProxy[T], SliceMut[T], bool) {
	if s.IsEmpty() {
		return nil, SliceMut[T]{}, false
	}
	return s.getProxyUnchecked(0), s.suffix(1), true
}

// SplitLastMut peels off a proxy for the last element.
func (s SliceMut[T]) SplitLastMut() (SliceMut[T], *OptionProxy[T], bool) {
	if s.IsEmpty() {
		return SliceMut[T]{}, nil, false
	}
	n := s.Len() - 1
	return s.prefix(n), s.getProxyUnchecked(n), true
}

// ForEach visits every element through a write-back proxy, front to
// back. Each slot is extracted before the callback runs and committed
// after it returns; the commit is deferred, so a panicking callback
// leaves its slot vacant along with any earlier slots it chose not to
// restore.
func (s SliceMut[T]) ForEach(fn func(*OptionProxy[T])) {
	rest := s
	for !rest.IsEmpty() {
		p, next, _ := rest.SplitFirstMut()
		visit(p, fn)
		rest = next
	}
}

// TryForEach is ForEach that stops at the first error and returns it.
func (s SliceMut[T]) TryForEach(fn func(*OptionProxy[T]) error) error {
	rest := s
	for !rest.IsEmpty() {
		p, next, _ := rest.SplitFirstMut()
		if err := visitErr(p, fn); err != nil {
			return err
		}
		rest = next
	}
	return nil
}

// Fold visits every element of s with an accumulator, with the same
// proxy discipline as ForEach.
func Fold[T, A any](s SliceMut[T], acc A, fn func(A, *OptionProxy[T]) A) A {
	rest := s
	for !rest.IsEmpty() {
		p, next, _ := rest.SplitFirstMut()
		acc = visitAcc(p, acc, fn)
		rest = next
	}
	return acc
}

// TryFold is Fold that stops at the first error. The accumulator from
// the successful steps is returned alongside the error; values taken and
// not restored before the failing step stay discarded.
func TryFold[T, A any](s SliceMut[T], acc A, fn func(A, *OptionProxy[T]) (A, error)) (A, error) {
	rest := s
	for !rest.IsEmpty() {
		p, next, _ := rest.SplitFirstMut()
		next2, err := visitAccErr(p, acc, fn)
		if err != nil {
			return acc, err
		}
		acc = next2
		rest = next
	}
	return acc, nil
}

func visit[T any](p *OptionProxy[T], fn func(*OptionProxy[T])) {
	defer p.Commit()
	fn(p)
}

func visitErr[T any](p *OptionProxy[T], fn func(*OptionProxy[T]) error) error {
	defer p.Commit()
	return fn(p)
}

func visitAcc[T, A any](p *OptionProxy[T], acc A, fn func(A, *OptionProxy[T]) A) A {
	defer p.Commit()
	return fn(acc, p)
}

func visitAccErr[T, A any](p *OptionProxy[T], acc A, fn func(A, *OptionProxy[T]) (A, error)) (A, error) {
	defer p.Commit()
	return fn(acc, p)
}
