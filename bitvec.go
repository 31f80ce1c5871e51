package vecopt

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// BitVec is a growable array of bits packed into bytes. The logical bit
// count is tracked apart from the byte storage, so bits past Len in the
// last byte carry no meaning until written.
type BitVec struct {
	data []uint8
	len  int
}

// AllocInfo reports the byte allocation behind a BitVec.
type AllocInfo struct {
	Len int
	Cap int
}

//             | offset, the bit offset into the byte
//             V
// 0 1 2 3 4 5 6 7 | 0 1 2 3 4 5 6 7
// \-- slot 0 ---/   \-- slot 1 ---/
func indexToSlot(index int) (slot int, offset uint8) {
	return index >> 3, uint8(index & 0b0111)
}

func setBit(slot *uint8, offset uint8, value bool) {
	var v uint8
	if value {
		v = 1
	}
	*slot = (*slot &^ (1 << offset)) | (v << offset)
}

func getBit(slot uint8, offset uint8) bool {
	return slot&(1<<offset) != 0
}

func checkIndex(index, n int) bool {
	return index >= 0 && index < n
}

// NewBitVec creates an empty bit vector. It does not allocate.
func NewBitVec() *BitVec {
	return &BitVec{}
}

// BitVecWithCapacity creates an empty bit vector with backing space for at
// least bits bits.
func BitVecWithCapacity(bits int) *BitVec {
	return &BitVec{data: make([]uint8, 0, (bits>>3)+1)}
}

// Len returns the number of logical bits stored.
func (v *BitVec) Len() int {
	return v.len
}

// IsEmpty reports whether the vector holds no bits.
func (v *BitVec) IsEmpty() bool {
	return v.len == 0
}

// AllocInfo reports the current byte storage behind the vector.
func (v *BitVec) AllocInfo() AllocInfo {
	return AllocInfo{Len: len(v.data), Cap: cap(v.data)}
}

// Reserve ensures space for at least additional more bits.
func (v *BitVec) Reserve(additional int) {
	v.data = slices.Grow(v.data, (additional>>3)+1)
}

// ReserveExact ensures space for additional more bits without the usual
// grow-by-doubling headroom.
func (v *BitVec) ReserveExact(additional int) {
	need := (additional >> 3) + 1
	if cap(v.data)-len(v.data) < need {
		data := make([]uint8, len(v.data), len(v.data)+need)
		copy(data, v.data)
		v.data = data
	}
}

// Push appends one bit and returns a proxy already holding the pushed
// value, useful for immediate follow-up mutation. The proxy addresses the
// vector's current backing byte; it must not be used after the vector
// grows or reallocates.
func (v *BitVec) Push(value bool) *BitProxy {
	slot, offset := indexToSlot(v.len)
	v.len++
	if slot >= len(v.data) {
		v.data = append(v.data, 0)
	}
	setBit(&v.data[slot], offset, value)
	return &BitProxy{cell: &v.data[slot], offset: offset, value: value}
}

// Pop removes and returns the last bit. The second return is false when
// the vector is empty.
func (v *BitVec) Pop() (bool, bool) {
	if v.len == 0 {
		return false, false
	}
	v.len--
	slot, offset := indexToSlot(v.len)
	return getBit(v.data[slot], offset), true
}

// Get returns the bit at index. The second return is false when index is
// out of bounds.
func (v *BitVec) Get(index int) (bool, bool) {
	if !checkIndex(index, v.len) {
		return false, false
	}
	return v.getUnchecked(index), true
}

func (v *BitVec) getUnchecked(index int) bool {
	slot, offset := indexToSlot(index)
	return getBit(v.data[slot], offset)
}

// GetProxy returns a write-back proxy for the bit at index. The second
// return is false when index is out of bounds. Changes made through the
// proxy take effect on Flush.
func (v *BitVec) GetProxy(index int) (*BitProxy, bool) {
	if !checkIndex(index, v.len) {
		return nil, false
	}
	return v.getProxyUnchecked(index), true
}

func (v *BitVec) getProxyUnchecked(index int) *BitProxy {
	slot, offset := indexToSlot(index)
	return &BitProxy{
		cell:   &v.data[slot],
		offset: offset,
		value:  getBit(v.data[slot], offset),
	}
}

// Set writes the bit at index. Out of bounds indices are a contract
// violation and panic, matching array indexing ergonomics.
func (v *BitVec) Set(index int, value bool) {
	if !checkIndex(index, v.len) {
		panic(fmt.Sprintf("vecopt: bit index %d out of range for length %d", index, v.len))
	}
	slot, offset := indexToSlot(index)
	setBit(&v.data[slot], offset, value)
}

// Grow extends the vector by additional bits, all set to value. The fill
// is bit-wise over the partial edge bytes and byte-wise over the middle,
// and produces the same bits as a per-bit loop. Panics if the new length
// overflows the index range.
func (v *BitVec) Grow(additional int, value bool) {
	if additional < 0 {
		panic("vecopt: negative grow")
	}
	newLen := v.len + additional
	if newLen < v.len {
		panic("vecopt: capacity overflow")
	}
	if additional == 0 {
		return
	}

	if need := (newLen >> 3) + 1; need > len(v.data) {
		v.data = append(v.data, make([]uint8, need-len(v.data))...)
	}

	slot, offset := indexToSlot(v.len)
	for o := offset; o < 8; o++ {
		setBit(&v.data[slot], o, value)
	}

	// bits not covered by the head byte
	rest := newLen - (v.len + int(8-offset))
	v.len = newLen

	if rest > 0 {
		var fill uint8
		if value {
			fill = 0xff
		}
		n := (rest >> 3) + 1
		for i := slot + 1; i < slot+1+n; i++ {
			v.data[i] = fill
		}
	}
}

// Truncate reduces the logical length to n. Byte storage is never
// released. No-op when n is not smaller than the current length.
func (v *BitVec) Truncate(n int) {
	if n < 0 {
		panic("vecopt: negative length")
	}
	if n < v.len {
		v.len = n
	}
}

// Clear removes all bits.
func (v *BitVec) Clear() {
	v.data = v.data[:0]
	v.len = 0
}

// SetAll writes value into every logical bit.
func (v *BitVec) SetAll(value bool) {
	var fill uint8
	if value {
		fill = 0xff
	}
	for i := range v.data {
		v.data[i] = fill
	}
}

// AsSlice returns a read-only view of the whole vector.
func (v *BitVec) AsSlice() BitSlice {
	return BitSlice{data: v.data, off: 0, n: v.len}
}

// AsSliceMut returns a mutable view of the whole vector.
func (v *BitVec) AsSliceMut() BitSliceMut {
	return BitSliceMut{BitSlice{data: v.data, off: 0, n: v.len}}
}

// Iter returns a double-ended iterator over the bits.
func (v *BitVec) Iter() *BitIter {
	return v.AsSlice().Iter()
}

// Hash64 returns an xxhash digest of the logical bit content. Bits past
// the logical length do not contribute.
func (v *BitVec) Hash64() uint64 {
	d := xxhash.New()
	full := v.len >> 3
	d.Write(v.data[:full])
	if rem := uint(v.len & 0b0111); rem != 0 {
		d.Write([]byte{v.data[full] & (1<<rem - 1)})
	}
	var lb [8]byte
	binary.LittleEndian.PutUint64(lb[:], uint64(v.len))
	d.Write(lb[:])
	return d.Sum64()
}

// Clone returns a deep copy of the vector.
func (v *BitVec) Clone() *BitVec {
	return &BitVec{data: slices.Clone(v.data), len: v.len}
}

// BitProxy is a write-back handle bound to one bit of one byte. The held
// value is mutated locally; Flush commits it with a read-modify-write of
// the single target bit, so a sibling proxy addressing a different bit of
// the same byte can flush independently without losing this one's update.
type BitProxy struct {
	cell   *uint8
	offset uint8
	value  bool
}

// Bool returns the locally held value.
func (p *BitProxy) Bool() bool {
	return p.value
}

// Set replaces the locally held value. The backing byte is unchanged
// until Flush.
func (p *BitProxy) Set(value bool) {
	p.value = value
}

// Toggle inverts the locally held value.
func (p *BitProxy) Toggle() {
	p.value = !p.value
}

// Flush commits the held value into the backing byte. Only the target bit
// is rewritten; all other bits keep whatever the byte holds at flush
// time.
func (p *BitProxy) Flush() {
	setBit(p.cell, p.offset, p.value)
}
