package valfmt

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for programmatic error handling. Formatters return them
// unwrapped so the hot path never allocates.
var (
	ErrUnsupportedType   = errors.New("unsupported type")
	ErrInsufficientSpace = errors.New("insufficient space")
	ErrInvalidSpec       = errors.New("invalid format spec")
	ErrTypeMismatch      = errors.New("value type does not match formatter")
)

// FormatSpec describes how a value is rendered. The empty spec selects the
// fastest default rendering for the type.
type FormatSpec string

// String returns the spec text.
func (s FormatSpec) String() string { return string(s) }

// Formatter writes v into dst according to spec. On success it returns the
// number of bytes written at the start of dst. On failure nothing is written
// and the error is one of the package sentinels; ErrInsufficientSpace means
// the caller may retry with a larger dst.
type Formatter[T any] func(v T, dst []byte, spec FormatSpec) (int, error)

// ErasedFormatter is a Formatter whose value type is only known at run time.
type ErasedFormatter interface {
	// TryWrite formats v, which must have the dynamic type named by Key.
	TryWrite(v any, dst []byte, spec FormatSpec) (int, error)
	// Key returns the type this formatter accepts.
	Key() TypeKey
}

// TypeKey identifies a concrete value type for dispatch. Two keys are equal
// exactly when they name the same Go type.
type TypeKey struct {
	t reflect.Type
}

// KeyOf returns the key for type T.
func KeyOf[T any]() TypeKey {
	return TypeKey{t: reflect.TypeFor[T]()}
}

// KeyFor returns the key for the dynamic type of v. A nil v yields the zero
// key, which is never supported.
func KeyFor(v any) TypeKey {
	return TypeKey{t: reflect.TypeOf(v)}
}

// Type returns the underlying reflect.Type, or nil for the zero key.
func (k TypeKey) Type() reflect.Type { return k.t }

// IsZero reports whether k names no type.
func (k TypeKey) IsZero() bool { return k.t == nil }

// String returns the canonical name for supported keys ("int32",
// "optional[uuid]") and the Go type name otherwise.
func (k TypeKey) String() string {
	if k.t == nil {
		return "<nil>"
	}
	if e, ok := registryTable().byType[k.t]; ok {
		return e.name
	}
	return k.t.String()
}

// ParseTypeKey returns the key whose canonical name is s.
func ParseTypeKey(s string) (TypeKey, error) {
	if e, ok := registryTable().byName[s]; ok {
		return e.key, nil
	}
	return TypeKey{}, fmt.Errorf("%w: %q", ErrUnsupportedType, s)
}

// Keys returns every supported key, sorted by canonical name.
func Keys() []TypeKey {
	keys := registryTable().keys
	out := make([]TypeKey, len(keys))
	copy(out, keys)
	return out
}

// IsSupported reports whether type T has a registered formatter.
func IsSupported[T any]() bool {
	_, ok := registryTable().byType[reflect.TypeFor[T]()]
	return ok
}

// Lookup returns the formatter registered for key. The second result is false
// for any type outside the supported set; callers fall back to their own
// generic rendering in that case.
func Lookup(key TypeKey) (ErasedFormatter, bool) {
	if key.t == nil {
		return nil, false
	}
	e, ok := registryTable().byType[key.t]
	if !ok {
		return nil, false
	}
	return e.erased, true
}

// For returns the typed formatter for T. It resolves the same table entry as
// Lookup(KeyOf[T]()) but lets callers that know T statically skip the
// interface conversion on every call.
func For[T any]() (Formatter[T], bool) {
	e, ok := registryTable().byType[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	f, ok := e.typed.(Formatter[T])
	return f, ok
}

// TryWrite formats v into dst using the formatter registered for its dynamic
// type. It returns ErrUnsupportedType when there is none.
func TryWrite(dst []byte, v any, spec FormatSpec) (int, error) {
	f, ok := Lookup(KeyFor(v))
	if !ok {
		return 0, ErrUnsupportedType
	}
	return f.TryWrite(v, dst, spec)
}

type erased[T any] struct {
	key TypeKey
	f   Formatter[T]
}

func (e erased[T]) TryWrite(v any, dst []byte, spec FormatSpec) (int, error) {
	x, ok := v.(T)
	if !ok {
		return 0, ErrTypeMismatch
	}
	return e.f(x, dst, spec)
}

func (e erased[T]) Key() TypeKey { return e.key }
