package vecopt

import "fmt"

// Option represents an optional value: Some(v) holds a value, None holds
// nothing. The zero Option is None.
type Option[T any] struct {
	value T
	ok    bool
}

// Some constructs an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None constructs an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the option holds a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// Unwrap returns the value and whether it was present.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}

// MustUnwrap returns the value or panics if the option is None.
func (o Option[T]) MustUnwrap() T {
	if !o.ok {
		panic("vecopt: unwrap of None")
	}
	return o.value
}

// Or returns the contained value, or def when None.
func (o Option[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Take moves the value out of the option, leaving None behind.
func (o *Option[T]) Take() Option[T] {
	out := *o
	*o = Option[T]{}
	return out
}

// Replace stores v in the option and returns the previous contents.
func (o *Option[T]) Replace(v T) Option[T] {
	out := *o
	*o = Some(v)
	return out
}

func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// MapOption applies f to the contained value, if any.
func MapOption[T, U any](o Option[T], f func(T) U) Option[U] {
	if v, ok := o.Unwrap(); ok {
		return Some(f(v))
	}
	return None[U]()
}
