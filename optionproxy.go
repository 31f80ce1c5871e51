package vecopt

// OptionProxy is a write-back handle for one logical option of a
// VecOption. Construction takes ownership of the slot: the payload is
// moved into the proxy, the slot is zeroed and its discriminant bit is
// cleared and flushed immediately, so for the proxy's lifetime the
// vector sees the slot as vacant. Commit writes the held option back.
//
// A proxy that is never committed leaves the slot vacant and its prior
// value with the proxy. The callback-driven access paths (ForEach, Fold
// and friends) commit via defer, so a panicking callback still leaves the
// slot in a well-defined vacant-or-new-value state; it can never expose a
// half-written payload.
type OptionProxy[T any] struct {
	slot  *T
	flag  *BitProxy
	value Option[T]
}

func newOptionProxy[T any](flag *BitProxy, slot *T) *OptionProxy[T] {
	var zero T
	was := flag.Bool()
	value := None[T]()
	if was {
		value = Some(*slot)
	}
	*slot = zero
	flag.Set(false)
	flag.Flush()
	return &OptionProxy[T]{slot: slot, flag: flag, value: value}
}

// Get returns the option currently held by the proxy.
func (p *OptionProxy[T]) Get() Option[T] {
	return p.value
}

// IsSome reports whether the proxy holds a value.
func (p *OptionProxy[T]) IsSome() bool {
	return p.value.IsSome()
}

// Set replaces the held option. The vector is unchanged until Commit.
func (p *OptionProxy[T]) Set(value Option[T]) {
	p.value = value
}

// SetValue replaces the held option with Some(v).
func (p *OptionProxy[T]) SetValue(v T) {
	p.value = Some(v)
}

// Take moves the held option out of the proxy, leaving None. On commit
// the slot then stays vacant.
func (p *OptionProxy[T]) Take() Option[T] {
	return p.value.Take()
}

// Update applies f to the held value, if any.
func (p *OptionProxy[T]) Update(f func(T) T) {
	if v, ok := p.value.Unwrap(); ok {
		p.value = Some(f(v))
	}
}

// Commit writes the held option back into the vector: the payload slot
// and discriminant bit are set when the option is Some, and the slot is
// left vacant otherwise. The held value moves back into the vector, so a
// second Commit is a no-op.
func (p *OptionProxy[T]) Commit() {
	if v, ok := p.value.Take().Unwrap(); ok {
		*p.slot = v
		p.flag.Set(true)
		p.flag.Flush()
	}
}

func (p *OptionProxy[T]) String() string {
	return p.value.String()
}
