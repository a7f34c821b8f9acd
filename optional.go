package valfmt

import "gopkg.in/yaml.v3"

// Optional holds either a value of type T or nothing. The zero Optional is
// empty.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the held value and whether there is one.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// IsSome reports whether o holds a value.
func (o Optional[T]) IsSome() bool { return o.ok }

// OrElse returns the held value, or def when o is empty.
func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// MarshalYAML encodes an empty Optional as null.
func (o Optional[T]) MarshalYAML() (any, error) {
	if !o.ok {
		return nil, nil
	}
	return o.value, nil
}

// UnmarshalYAML decodes null as an empty Optional and anything else as T.
func (o *Optional[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// wrapOptional lifts f to Optional[T]. An empty Optional renders as nothing
// and always succeeds; a held value is delegated to f unchanged.
func wrapOptional[T any](f Formatter[T]) Formatter[Optional[T]] {
	return func(v Optional[T], dst []byte, spec FormatSpec) (int, error) {
		if !v.ok {
			return 0, nil
		}
		return f(v.value, dst, spec)
	}
}
