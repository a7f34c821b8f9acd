// Package valfmt writes primitive values as text straight into a caller-owned
// byte slice, without allocating intermediate strings.
//
// The central entry points are [Lookup], which maps a [TypeKey] to an
// [ErasedFormatter], and [For], which returns the typed [Formatter] when the
// value's type is known at the call site. Every formatter either writes the
// whole rendering at the start of dst and reports its length, or writes
// nothing and returns an error. [ErrInsufficientSpace] is advisory: grow the
// destination and retry.
//
//	f, ok := valfmt.For[int32]()
//	n, err := f(-42, buf, "")
//	// buf[:n] == "-42"
//
// # Supported Types
//
// The set is closed:
//
//   - int8, int16, int32, int64, int and their unsigned counterparts
//   - float32, float64
//   - [time.Duration], [time.Time], [OffsetTime]
//   - decimal.Decimal (github.com/shopspring/decimal)
//   - uuid.UUID (github.com/google/uuid)
//   - uintptr and [Intptr] (address width)
//   - [Optional] of every type above, and Optional[bool]
//
// Use [IsSupported] or [Lookup] to test membership. Types outside the set are
// reported as not found and callers render them through their own fallback.
//
// # Format Specs
//
// An empty [FormatSpec] selects the fastest default. Integers with an empty
// spec skip spec parsing entirely and go through a dedicated decimal writer.
//
// Numeric specs follow fmt verbs without the '%': [flags][width][.prec][verb].
// Flags are '+', '-', '0', '#' and ' '.
//
//   - integers: d (default), x, X, o, b; precision is the minimum digit count
//   - floats: g (default), G, e, E, f, F, x, X, b; '#' keeps the decimal
//     point and the trailing zeros of g, as fmt does, and '+' or ' ' also
//     sign NaN
//   - decimals: f or F with precision for fixed point, r for banker's rounding
//
// Times take a Go layout, a layout name such as "RFC1123" or "DateOnly", or
// one of unix, unixms, unixus, unixns. Durations take [.prec]unit with unit
// one of h, m, s, ms, us, µs, ns; counts of seconds and smaller units are
// exact, while h and m are computed in float64. UUIDs take D, N, B, P, X or
// urn.
//
// uintptr and [Intptr] ignore the spec and always render decimal. On a host
// with a 32-bit word only the low 32 bits are rendered.
//
// # Optional Values
//
// Every supported T also has a formatter for [Optional][T]. An empty Optional
// renders as nothing and always succeeds, even into a nil slice. A held value
// renders exactly as T does.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnsupportedType]: no formatter for the type
//   - [ErrInsufficientSpace]: dst too small; nothing was written
//   - [ErrInvalidSpec]: the spec is malformed for the type
//   - [ErrTypeMismatch]: an erased formatter received another type
package valfmt
