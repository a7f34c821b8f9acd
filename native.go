package valfmt

import "math/bits"

// Intptr is a signed integer as wide as a machine address, the signed
// counterpart of uintptr.
type Intptr int

// nativeWordBits reports the host word size. Address-width formatters consult
// it on every call rather than capturing it at registration.
func nativeWordBits() int {
	return bits.UintSize
}

// uintptrFormatter ignores the spec and always renders canonical decimal. On
// a 32-bit word size only the low 32 bits are rendered.
func uintptrFormatter(wordBits func() int) Formatter[uintptr] {
	return func(v uintptr, dst []byte, _ FormatSpec) (int, error) {
		if wordBits() == 32 {
			return writeUint64Fast(dst, uint64(uint32(v)))
		}
		return writeUint64Fast(dst, uint64(v))
	}
}

// intptrFormatter is the signed variant; a 32-bit word size reinterprets the
// low 32 bits as a two's-complement int32.
func intptrFormatter(wordBits func() int) Formatter[Intptr] {
	return func(v Intptr, dst []byte, _ FormatSpec) (int, error) {
		if wordBits() == 32 {
			return writeInt64Fast(dst, int64(int32(v)))
		}
		return writeInt64Fast(dst, int64(v))
	}
}
