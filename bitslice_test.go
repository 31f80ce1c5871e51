package vecopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bitsOf views bits [start, end) of a byte buffer.
func bitsOf(b []uint8, start, end int) BitSliceMut {
	return BitSliceMut{BitSlice{
		data: b[start>>3 : (end+7)>>3],
		off:  uint8(start & 0b0111),
		n:    end - start,
	}}
}

func collectSlice(s BitSlice) (out []bool) {
	for b := range s.Bits() {
		out = append(out, b)
	}
	return
}

func TestSetAllBytePattern(t *testing.T) {
	a := make([]uint8, 16)

	bitsOf(a, 4, 28).SetAll(true)
	bitsOf(a, 32, 64).SetAll(true)
	bitsOf(a, 64, 92).SetAll(true)
	bitsOf(a, 100, 128).SetAll(true)

	assert.Equal(t,
		[]uint8{240, 255, 255, 15, 255, 255, 255, 255, 255, 255, 255, 15, 240, 255, 255, 255},
		a)
}

func TestSetAllWithinOneByte(t *testing.T) {
	a := make([]uint8, 2)
	bitsOf(a, 3, 6).SetAll(true)
	assert.Equal(t, []uint8{0b00111000, 0}, a, "bits outside the view must stay intact")

	b := []uint8{0xff, 0xff}
	bitsOf(b, 3, 6).SetAll(false)
	assert.Equal(t, []uint8{0b11000111, 0xff}, b)
}

func TestSplitInvariant(t *testing.T) {
	vec := NewBitVec()
	vec.Grow(10, true)
	vec.Grow(7, false)
	vec.Grow(12, true)
	whole := collectSlice(vec.AsSlice())

	s := vec.AsSlice()
	for i := 0; i <= s.Len(); i++ {
		left, right, ok := s.SplitAt(i)
		require.True(t, ok)
		require.Equal(t, s.Len(), left.Len()+right.Len())
		require.Equal(t, whole, append(collectSlice(left), collectSlice(right)...), "split at %d", i)
	}

	_, _, ok := s.SplitAt(s.Len() + 1)
	assert.False(t, ok)
}

func TestSplitAtMutDisjointWrites(t *testing.T) {
	vec := NewBitVec()
	vec.Grow(20, false)

	// the halves share the byte holding bit 10
	left, right, ok := vec.AsSliceMut().SplitAtMut(11)
	require.True(t, ok)

	left.SetAll(true)
	right.SetAll(false)
	assert.Equal(t, repeatBits(run(11, true), run(9, false)), collectSlice(vec.AsSlice()))

	right.SetAll(true)
	assert.Equal(t, repeatBits(run(20, true)), collectSlice(vec.AsSlice()))
}

func TestBitSliceGetAtOffset(t *testing.T) {
	a := []uint8{0b10101010, 0b01010101}
	s := bitsOf(a, 3, 13).Slice()

	require.Equal(t, 10, s.Len())
	for i := 0; i < 10; i++ {
		want := getBit(a[(3+i)>>3], uint8((3+i)&0b0111))
		got, ok := s.Get(i)
		require.True(t, ok)
		require.Equal(t, want, got, "bit %d", i)
	}
	_, ok := s.Get(10)
	assert.False(t, ok)
	_, ok = s.Get(-1)
	assert.False(t, ok)
}

func TestBitSliceSetPanics(t *testing.T) {
	a := make([]uint8, 2)
	s := bitsOf(a, 2, 10)
	assert.Panics(t, func() { s.Set(8, true) })
	s.Set(0, true)
	assert.Equal(t, uint8(0b100), a[0])
}

func TestRangeShapes(t *testing.T) {
	vec := NewBitVec()
	vec.Grow(4, true)
	vec.Grow(6, false)
	s := vec.AsSlice() // 10 bits: 4x1 6x0

	cases := []struct {
		name string
		r    RangeIndex[BitSlice]
		ok   bool
		want []bool
	}{
		{"full", Full[BitSlice]{}, true, repeatBits(run(4, true), run(6, false))},
		{"to", To[BitSlice]{End: 4}, true, repeatBits(run(4, true))},
		{"to-len", To[BitSlice]{End: 10}, true, repeatBits(run(4, true), run(6, false))},
		{"to-past", To[BitSlice]{End: 11}, false, nil},
		{"to-incl", ToIncl[BitSlice]{End: 4}, true, repeatBits(run(4, true), run(1, false))},
		{"to-incl-len", ToIncl[BitSlice]{End: 10}, false, nil},
		{"from", From[BitSlice]{Start: 3}, true, repeatBits(run(1, true), run(6, false))},
		{"from-len", From[BitSlice]{Start: 10}, true, nil},
		{"from-past", From[BitSlice]{Start: 11}, false, nil},
		{"span", Span[BitSlice]{Start: 2, End: 6}, true, repeatBits(run(2, true), run(2, false))},
		{"span-empty", Span[BitSlice]{Start: 3, End: 3}, false, nil},
		{"span-reversed", Span[BitSlice]{Start: 6, End: 2}, false, nil},
		{"span-incl", SpanIncl[BitSlice]{Start: 2, End: 5}, true, repeatBits(run(2, true), run(2, false))},
		{"span-incl-point", SpanIncl[BitSlice]{Start: 3, End: 3}, true, repeatBits(run(1, true))},
		{"span-incl-at-len", SpanIncl[BitSlice]{Start: 2, End: 10}, false, nil},
		{"negative", From[BitSlice]{Start: -1}, false, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub, ok := s.Sub(tc.r)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, collectSlice(sub))
			}
		})
	}
}

func TestRangeShapesMut(t *testing.T) {
	vec := NewBitVec()
	vec.Grow(16, false)

	sub, ok := vec.AsSliceMut().SubMut(Span[BitSliceMut]{Start: 5, End: 11})
	require.True(t, ok)
	sub.SetAll(true)

	assert.Equal(t, repeatBits(run(5, false), run(6, true), run(5, false)),
		collectSlice(vec.AsSlice()))
}

func TestSplitFirstLast(t *testing.T) {
	vec := NewBitVec()
	vec.Push(true)
	vec.Push(false)
	vec.Push(true)

	first, rest, ok := vec.AsSlice().SplitFirst()
	require.True(t, ok)
	assert.True(t, first)
	assert.Equal(t, 2, rest.Len())

	rest2, last, ok := rest.SplitLast()
	require.True(t, ok)
	assert.True(t, last)
	assert.Equal(t, 1, rest2.Len())

	empty := BitSlice{}
	_, _, ok = empty.SplitFirst()
	assert.False(t, ok)
	_, _, ok = empty.SplitLast()
	assert.False(t, ok)
}

func TestBitSliceMutProxyAtOffset(t *testing.T) {
	a := make([]uint8, 2)
	s := bitsOf(a, 6, 12)

	p, ok := s.GetProxy(3) // absolute bit 9, second byte
	require.True(t, ok)
	assert.False(t, p.Bool())
	p.Set(true)
	p.Flush()

	assert.Equal(t, []uint8{0, 0b10}, a)
}
