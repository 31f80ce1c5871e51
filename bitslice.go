package vecopt

import (
	"fmt"
	"strings"
)

// BitSlice is a zero-copy read-only view of a contiguous bit range. The
// range need not start at a byte boundary: bit i of the view lives at
// byte (off+i)/8, bit (off+i)%8 of the backing bytes. A BitSlice borrows
// from its owning store and must not outlive it.
type BitSlice struct {
	data []uint8
	off  uint8 // 0..8
	n    int
}

// BitSliceMut is a BitSlice with write access to its range. Because
// ranges are not byte-aligned, two disjoint mutable views may address
// different bits of the same physical byte; every write is therefore a
// single-bit read-modify-write against the byte's current contents.
// Exclusivity over overlapping ranges is the caller's contract.
type BitSliceMut struct {
	BitSlice
}

// Len returns the number of bits in the view.
func (s BitSlice) Len() int {
	return s.n
}

// IsEmpty reports whether the view covers no bits.
func (s BitSlice) IsEmpty() bool {
	return s.n == 0
}

func (s BitSlice) prefix(end int) BitSlice {
	s.n = end
	return s
}

func (s BitSlice) suffix(start int) BitSlice {
	index := int(s.off) + start
	slot, offset := indexToSlot(index)
	return BitSlice{data: s.data[slot:], off: offset, n: s.n - start}
}

// Get returns the bit at index. The second return is false when index is
// out of bounds.
func (s BitSlice) Get(index int) (bool, bool) {
	if !checkIndex(index, s.n) {
		return false, false
	}
	return s.getUnchecked(index), true
}

func (s BitSlice) getUnchecked(index int) bool {
	slot, offset := indexToSlot(index + int(s.off))
	return getBit(s.data[slot], offset)
}

// Sub applies a range shape to the view.
func (s BitSlice) Sub(r RangeIndex[BitSlice]) (BitSlice, bool) {
	return SubView(s, r)
}

// SplitAt cuts the view into [0, index) and [index, len). The third
// return is false when index is out of range; the two parts' lengths
// always sum to the original.
func (s BitSlice) SplitAt(index int) (BitSlice, BitSlice, bool) {
	if index < 0 || index > s.n {
		return BitSlice{}, BitSlice{}, false
	}
	return s.prefix(index), s.suffix(index), true
}

// SplitFirst peels off the first bit.
func (s BitSlice) SplitFirst() (bool, BitSlice, bool) {
	if s.n == 0 {
		return false, BitSlice{}, false
	}
	return s.getUnchecked(0), s.suffix(1), true
}

// SplitLast peels off the last bit.
func (s BitSlice) SplitLast() (BitSlice, bool, bool) {
	if s.n == 0 {
		return BitSlice{}, false, false
	}
	return s.prefix(s.n - 1), s.getUnchecked(s.n - 1), true
}

// Iter returns a double-ended iterator over the view.
func (s BitSlice) Iter() *BitIter {
	return &BitIter{s: s}
}

func (s BitSlice) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < s.n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		if s.getUnchecked(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteByte(']')
	return b.String()
}

func (s BitSliceMut) prefix(end int) BitSliceMut {
	return BitSliceMut{s.BitSlice.prefix(end)}
}

func (s BitSliceMut) suffix(start int) BitSliceMut {
	return BitSliceMut{s.BitSlice.suffix(start)}
}

// Slice reborrows the view read-only.
func (s BitSliceMut) Slice() BitSlice {
	return s.BitSlice
}

// SubMut applies a range shape, keeping write access.
func (s BitSliceMut) SubMut(r RangeIndex[BitSliceMut]) (BitSliceMut, bool) {
	return SubView(s, r)
}

// GetProxy returns a write-back proxy for the bit at index. The second
// return is false when index is out of bounds.
func (s BitSliceMut) GetProxy(index int) (*BitProxy, bool) {
	if !checkIndex(index, s.n) {
		return nil, false
	}
	return s.getProxyUnchecked(index), true
}

func (s BitSliceMut) getProxyUnchecked(index int) *BitProxy {
	slot, offset := indexToSlot(index + int(s.off))
	return &BitProxy{
		cell:   &s.data[slot],
		offset: offset,
		value:  getBit(s.data[slot], offset),
	}
}

// Set writes the bit at index. Panics when index is out of bounds.
func (s BitSliceMut) Set(index int, value bool) {
	if !checkIndex(index, s.n) {
		panic(fmt.Sprintf("vecopt: bit index %d out of range for length %d", index, s.n))
	}
	slot, offset := indexToSlot(index + int(s.off))
	setBit(&s.data[slot], offset, value)
}

// SetAll writes value into every bit of the view. The leading partial
// byte, whole middle bytes and trailing partial byte are handled
// separately; bits outside the view are never touched, so sibling views
// sharing an edge byte stay intact.
func (s BitSliceMut) SetAll(value bool) {
	if s.n == 0 {
		return
	}
	var fill uint8
	if value {
		fill = 0xff
	}

	data, off, n := s.data, int(s.off), s.n
	if off != 0 {
		head := off + n
		if head > 8 {
			head = 8
		}
		for o := off; o < head; o++ {
			setBit(&data[0], uint8(o), value)
		}
		n -= head - off
		if n == 0 {
			return
		}
		data = data[1:]
	}

	blocks, last := n>>3, uint8(n&0b0111)
	for i := 0; i < blocks; i++ {
		data[i] = fill
	}
	for o := uint8(0); o < last; o++ {
		setBit(&data[blocks], o, value)
	}
}

// SplitAtMut cuts the view into two exclusive mutable views. The halves
// may share an edge byte; see the type comment for the write contract.
func (s BitSliceMut) SplitAtMut(index int) (BitSliceMut, BitSliceMut, bool) {
	if index < 0 || index > s.n {
		return BitSliceMut{}, BitSliceMut{}, false
	}
	return s.prefix(index), s.suffix(index), true
}

// SplitFirstMut peels off a proxy for the first bit.
func (s BitSliceMut) SplitFirstMut() (*BitProxy, BitSliceMut, bool) {
	if s.n == 0 {
		return nil, BitSliceMut{}, false
	}
	return s.getProxyUnchecked(0), s.suffix(1), true
}

// SplitLastMut peels off a proxy for the last bit.
func (s BitSliceMut) SplitLastMut() (BitSliceMut, *BitProxy, bool) {
	if s.n == 0 {
		return BitSliceMut{}, nil, false
	}
	return s.prefix(s.n - 1), s.getProxyUnchecked(s.n - 1), true
}
