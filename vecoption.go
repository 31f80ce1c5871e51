// Package vecopt implements a space optimized vector of optional values
// which stores the presence discriminant apart from the payload:
//  1. packed bit storage with write-back proxies
//  2. zero-copy views addressable at any bit offset
//  3. one payload allocation per track
//  4. bulk vacancy operations (set-all-none, extend-none)
//
// The containers are not synchronized: they are safe for concurrent
// readers, and for a single writer with no other access, when the
// element type is.
package vecopt

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cespare/xxhash/v2"
)

// VecOption is a vector of optional values with the payload array and
// the discriminant bits stored as two separate tracks of equal length.
// A payload slot is meaningful iff its discriminant bit is set; a vacant
// slot is held at the zero value of T so the vector retains no stale
// references.
type VecOption[T any] struct {
	data []T
	flag BitVec
}

// CapacityInfo reports the element capacity of the two tracks.
type CapacityInfo struct {
	Data int
	Flag int
}

// HashFn digests a single element for VecOption.Hash64.
type HashFn[T any] func(T) uint64

// New creates an empty vector. It does not allocate.
func New[T any]() *VecOption[T] {
	return &VecOption[T]{}
}

// WithCapacity creates an empty vector with space for at least n
// elements on both tracks.
func WithCapacity[T any](n int) *VecOption[T] {
	return &VecOption[T]{
		data: make([]T, 0, n),
		flag: *BitVecWithCapacity(n),
	}
}

// FromSlice builds a vector where every slot is occupied by the
// corresponding value of vals.
func FromSlice[T any](vals []T) *VecOption[T] {
	v := WithCapacity[T](len(vals))
	v.data = append(v.data, vals...)
	v.flag.Grow(len(vals), true)
	return v
}

// FromOptions builds a vector with the given mix of occupied and vacant
// slots.
func FromOptions[T any](opts []Option[T]) *VecOption[T] {
	v := WithCapacity[T](len(opts))
	v.ExtendOptions(opts...)
	return v
}

// Len returns the number of logical elements.
func (v *VecOption[T]) Len() int {
	return len(v.data)
}

// IsEmpty reports whether the vector holds no elements.
func (v *VecOption[T]) IsEmpty() bool {
	return len(v.data) == 0
}

// Capacity reports the capacity of the payload and discriminant tracks.
func (v *VecOption[T]) Capacity() CapacityInfo {
	return CapacityInfo{Data: cap(v.data), Flag: v.flag.AllocInfo().Cap * 8}
}

// Reserve ensures space for at least amount more elements.
func (v *VecOption[T]) Reserve(amount int) {
	v.data = slices.Grow(v.data, amount)
	v.flag.Reserve(amount)
}

// ReserveExact ensures space for amount more elements without the usual
// grow-by-doubling headroom.
func (v *VecOption[T]) ReserveExact(amount int) {
	if cap(v.data)-len(v.data) < amount {
		data := make([]T, len(v.data), len(v.data)+amount)
		copy(data, v.data)
		v.data = data
	}
	v.flag.ReserveExact(amount)
}

// Push appends an occupied slot holding value.
func (v *VecOption[T]) Push(value T) {
	v.data = append(v.data, value)
	v.flag.Push(true)
}

// PushOption appends a slot, occupied or vacant per value.
func (v *VecOption[T]) PushOption(value Option[T]) {
	if val, ok := value.Unwrap(); ok {
		v.data = append(v.data, val)
		v.flag.Push(true)
	} else {
		var zero T
		v.data = append(v.data, zero)
		v.flag.Push(false)
	}
}

// Extend appends one occupied slot per value.
func (v *VecOption[T]) Extend(vals ...T) {
	v.Reserve(len(vals))
	for _, val := range vals {
		v.Push(val)
	}
}

// ExtendOptions appends the given options in order.
func (v *VecOption[T]) ExtendOptions(opts ...Option[T]) {
	v.Reserve(len(opts))
	for _, o := range opts {
		v.PushOption(o)
	}
}

// Pop removes and returns the last slot. The second return is false when
// the vector is empty; the returned option is None when the popped slot
// was vacant. Ownership of any contained value moves to the caller.
func (v *VecOption[T]) Pop() (Option[T], bool) {
	occupied, ok := v.flag.Pop()
	if !ok {
		return None[T](), false
	}
	n := len(v.data) - 1
	out := None[T]()
	if occupied {
		out = Some(v.data[n])
	}
	var zero T
	v.data[n] = zero
	v.data = v.data[:n]
	return out, true
}

// Get returns the option at index by value. The second return is false
// when index is out of bounds; an inner None means the slot is vacant.
func (v *VecOption[T]) Get(index int) (Option[T], bool) {
	return v.AsSlice().Get(index)
}

// GetProxy returns a write-back proxy for the element at index. The
// element is extracted into the proxy and the slot left vacant until
// Commit; a proxy that is never committed discards the value. The proxy
// addresses the vector's current backing arrays and must not be used
// after the vector grows or reallocates.
func (v *VecOption[T]) GetProxy(index int) (*OptionProxy[T], bool) {
	return v.AsSliceMut().GetProxy(index)
}

// Swap exchanges the slots at a and b, payload and discriminant alike.
// Panics when either index is out of bounds.
func (v *VecOption[T]) Swap(a, b int) {
	n := len(v.data)
	if !checkIndex(a, n) || !checkIndex(b, n) {
		panic(fmt.Sprintf("vecopt: swap indices %d, %d out of range for length %d", a, b, n))
	}
	v.data[a], v.data[b] = v.data[b], v.data[a]
	fa, fb := v.flag.getUnchecked(a), v.flag.getUnchecked(b)
	v.flag.Set(a, fb)
	v.flag.Set(b, fa)
}

// Take removes and returns the option at index, leaving the slot
// vacant. The second return is false when index is out of bounds.
func (v *VecOption[T]) Take(index int) (Option[T], bool) {
	return v.Replace(index, None[T]())
}

// Replace installs value at index and returns the previous option. The
// caller owns any returned value.
func (v *VecOption[T]) Replace(index int, value Option[T]) (Option[T], bool) {
	return v.AsSliceMut().Replace(index, value)
}

// Truncate reduces the vector to n elements. Every discarded occupied
// slot is zeroed exactly once so the vector drops its references;
// backing capacity is kept. No-op when n is not smaller than the current
// length.
func (v *VecOption[T]) Truncate(n int) {
	if n < 0 {
		panic("vecopt: negative length")
	}
	if len(v.data) <= n {
		return
	}
	if needsClear[T]() {
		var zero T
		for i := n; i < len(v.data); i++ {
			if v.flag.getUnchecked(i) {
				v.flag.Set(i, false)
				v.data[i] = zero
			}
		}
	}
	v.data = v.data[:n]
	v.flag.Truncate(n)
}

// Clear removes all elements, keeping capacity.
func (v *VecOption[T]) Clear() {
	v.Truncate(0)
}

// SetAllNone makes every slot vacant. When T holds no pointers the
// payload track is left untouched and only the discriminant track is
// bulk-cleared; otherwise each occupied slot is zeroed individually.
func (v *VecOption[T]) SetAllNone() {
	if needsClear[T]() {
		var zero T
		for i := range v.data {
			if v.flag.getUnchecked(i) {
				v.flag.Set(i, false)
				v.data[i] = zero
			}
		}
	} else {
		v.flag.SetAll(false)
	}
}

// ExtendNone appends additional vacant slots. No payload values are
// constructed or dropped.
func (v *VecOption[T]) ExtendNone(additional int) {
	if additional < 0 {
		panic("vecopt: negative extend")
	}
	v.flag.Grow(additional, false)
	v.data = append(v.data, make([]T, additional)...)
}

// AsSlice returns a read-only view of the whole vector.
func (v *VecOption[T]) AsSlice() Slice[T] {
	return Slice[T]{data: v.data, flag: v.flag.AsSlice()}
}

// AsSliceMut returns a mutable view of the whole vector.
func (v *VecOption[T]) AsSliceMut() SliceMut[T] {
	return SliceMut[T]{data: v.data, flag: v.flag.AsSliceMut()}
}

// Iter returns a double-ended iterator over the elements.
func (v *VecOption[T]) Iter() *Iter[T] {
	return v.AsSlice().Iter()
}

// ForEach visits every element through a write-back proxy; see
// SliceMut.ForEach.
func (v *VecOption[T]) ForEach(fn func(*OptionProxy[T])) {
	v.AsSliceMut().ForEach(fn)
}

// TryForEach is ForEach that stops at the first error and returns it.
func (v *VecOption[T]) TryForEach(fn func(*OptionProxy[T]) error) error {
	return v.AsSliceMut().TryForEach(fn)
}

// Clone returns a deep copy. Payload values are copied by assignment.
func (v *VecOption[T]) Clone() *VecOption[T] {
	return &VecOption[T]{
		data: slices.Clone(v.data),
		flag: *v.flag.Clone(),
	}
}

// Occupied returns a bitmap of the occupied indices, for bulk set
// operations on occupancy.
func (v *VecOption[T]) Occupied() *roaring.Bitmap {
	bm := roaring.New()
	for i := range v.data {
		if v.flag.getUnchecked(i) {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// Hash64 digests the vector with xxhash, folding in one elem digest per
// occupied slot and a distinct marker per vacant slot.
func (v *VecOption[T]) Hash64(elem HashFn[T]) uint64 {
	d := xxhash.New()
	var buf [9]byte
	for i := range v.data {
		if v.flag.getUnchecked(i) {
			buf[0] = 1
			binary.LittleEndian.PutUint64(buf[1:], elem(v.data[i]))
			d.Write(buf[:])
		} else {
			buf[0] = 0
			d.Write(buf[:1])
		}
	}
	return d.Sum64()
}

func (v *VecOption[T]) String() string {
	return v.AsSlice().String()
}

// Equal reports whether two vectors hold the same sequence of options.
func Equal[T comparable](a, b *VecOption[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.data {
		fa, fb := a.flag.getUnchecked(i), b.flag.getUnchecked(i)
		if fa != fb || (fa && a.data[i] != b.data[i]) {
			return false
		}
	}
	return true
}

// EqualOptions reports whether v holds exactly the options of opts.
func EqualOptions[T comparable](v *VecOption[T], opts []Option[T]) bool {
	if v.Len() != len(opts) {
		return false
	}
	for i, o := range opts {
		want, ok := o.Unwrap()
		if v.flag.getUnchecked(i) != ok || (ok && v.data[i] != want) {
			return false
		}
	}
	return true
}

// EqualValues reports whether v is fully occupied and holds exactly
// vals.
func EqualValues[T comparable](v *VecOption[T], vals []T) bool {
	if v.Len() != len(vals) {
		return false
	}
	for i, val := range vals {
		if !v.flag.getUnchecked(i) || v.data[i] != val {
			return false
		}
	}
	return true
}

// needsClear reports whether T can hold pointers, in which case vacated
// payload slots must be zeroed so the GC can collect what they referred
// to. Pointer-free payloads may be left in place when a slot goes
// vacant.
func needsClear[T any]() bool {
	var zero T
	return typeHasPointers(reflect.TypeOf(&zero).Elem())
}

func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// pointers, maps, chans, funcs, interfaces, slices, strings
		return true
	}
}
