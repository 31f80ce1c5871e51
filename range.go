package vecopt

// View is the slicing capability shared by BitSlice, BitSliceMut,
// Slice and SliceMut. The projection methods are unexported, which keeps
// the set of view types closed to this package.
type View[V any] interface {
	Len() int

	// prefix keeps the first end elements. No bounds check.
	prefix(end int) V
	// suffix drops the first start elements, re-basing the view.
	// No bounds check.
	suffix(start int) V
}

// RangeIndex is an index shape over a view type. Check validates the
// shape against a length; Project cuts the view assuming Check passed.
// The compound shapes Span and SpanIncl project by composing a prefix cut
// with a suffix cut, so every range reduces to the two primitives.
type RangeIndex[V View[V]] interface {
	Check(n int) bool
	Project(v V) V
}

// Full selects the whole view.
type Full[V View[V]] struct{}

func (Full[V]) Check(n int) bool { return true }
func (Full[V]) Project(v V) V    { return v }

// To selects the prefix [0, End).
type To[V View[V]] struct{ End int }

func (r To[V]) Check(n int) bool { return r.End >= 0 && r.End <= n }
func (r To[V]) Project(v V) V    { return v.prefix(r.End) }

// ToIncl selects the prefix [0, End].
type ToIncl[V View[V]] struct{ End int }

func (r ToIncl[V]) Check(n int) bool { return r.End >= 0 && r.End < n }
func (r ToIncl[V]) Project(v V) V    { return v.prefix(r.End + 1) }

// From selects the suffix [Start, len).
type From[V View[V]] struct{ Start int }

func (r From[V]) Check(n int) bool { return r.Start >= 0 && r.Start <= n }
func (r From[V]) Project(v V) V    { return v.suffix(r.Start) }

// Span selects [Start, End).
type Span[V View[V]] struct{ Start, End int }

func (r Span[V]) Check(n int) bool {
	return r.Start >= 0 && r.Start < r.End && r.End <= n
}

func (r Span[V]) Project(v V) V {
	return From[V]{r.Start}.Project(To[V]{r.End}.Project(v))
}

// SpanIncl selects [Start, End].
type SpanIncl[V View[V]] struct{ Start, End int }

func (r SpanIncl[V]) Check(n int) bool {
	return r.Start >= 0 && r.Start <= r.End && r.End < n
}

func (r SpanIncl[V]) Project(v V) V {
	return From[V]{r.Start}.Project(ToIncl[V]{r.End}.Project(v))
}

// SubView applies r to v, checking it against the view's length first.
// The zero view and false are returned when the check fails.
func SubView[V View[V]](v V, r RangeIndex[V]) (V, bool) {
	if !r.Check(v.Len()) {
		var zero V
		return zero, false
	}
	return r.Project(v), true
}
