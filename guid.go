package valfmt

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// formatUUID supports the spec letters D (default, hyphenated), N (digits
// only), B (braces), P (parentheses), X (upper-case hyphenated) and urn.
func formatUUID(u uuid.UUID, dst []byte, spec FormatSpec) (int, error) {
	var scratch [45]byte
	var b []byte
	switch spec {
	case "", "D":
		b = appendUUID(scratch[:0], u)
	case "X":
		b = appendUUID(scratch[:0], u)
		upperHex(b)
	case "N":
		b = scratch[:32]
		hex.Encode(b, u[:])
	case "B":
		b = append(appendUUID(append(scratch[:0], '{'), u), '}')
	case "P":
		b = append(appendUUID(append(scratch[:0], '('), u), ')')
	case "urn":
		b = appendUUID(append(scratch[:0], "urn:uuid:"...), u)
	default:
		return 0, ErrInvalidSpec
	}
	return writeText(dst, b)
}

// appendUUID appends the 8-4-4-4-12 form of u. b must have room for 36 more
// bytes within its capacity.
func appendUUID(b []byte, u uuid.UUID) []byte {
	start := len(b)
	b = b[:start+36]
	out := b[start:]
	hex.Encode(out[0:8], u[0:4])
	out[8] = '-'
	hex.Encode(out[9:13], u[4:6])
	out[13] = '-'
	hex.Encode(out[14:18], u[6:8])
	out[18] = '-'
	hex.Encode(out[19:23], u[8:10])
	out[23] = '-'
	hex.Encode(out[24:], u[10:])
	return b
}
