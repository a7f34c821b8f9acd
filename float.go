package valfmt

import (
	"math"
	"strconv"
)

// floatFormatter renders with fmt-style verbs g (default), G, e, E, f, F, x,
// X and b. The default precision is the shortest that round-trips at bitSize.
func floatFormatter[T ~float32 | ~float64](bitSize int) Formatter[T] {
	return func(v T, dst []byte, spec FormatSpec) (int, error) {
		return formatFloat(float64(v), bitSize, dst, spec)
	}
}

func formatFloat(f float64, bitSize int, dst []byte, spec FormatSpec) (int, error) {
	sp, err := parseNumSpec(spec)
	if err != nil {
		return 0, err
	}
	verb := sp.verb
	switch verb {
	case 0:
		verb = 'g'
	case 'F':
		verb = 'f'
	case 'g', 'G', 'e', 'E', 'f', 'x', 'X', 'b':
	default:
		return 0, ErrInvalidSpec
	}

	switch {
	case math.IsNaN(f):
		return writeNumber(dst, sp.sign(false), "", 0, "NaN", sp, false)
	case math.IsInf(f, 0):
		sign := sp.sign(f < 0)
		if sign == 0 {
			sign = '+'
		}
		return writeNumber(dst, sign, "", 0, "Inf", sp, false)
	}

	var scratch [160]byte
	digits := strconv.AppendFloat(scratch[:0], math.Abs(f), verb, sp.prec, bitSize)
	if sp.sharp && verb != 'b' {
		digits = sharpFloat(digits, verb, sp.prec)
	}
	return writeNumber(dst, sp.sign(math.Signbit(f)), "", 0, digits, sp, true)
}

// sharpFloat applies the '#' flag to unsigned float text as fmt does: the
// decimal point is always kept, and g, G and x keep trailing zeros up to the
// precision (6 when none is given).
func sharpFloat(num []byte, verb byte, prec int) []byte {
	digits := 0
	switch verb {
	case 'g', 'G', 'x':
		digits = prec
		if digits < 0 {
			digits = 6
		}
	}

	var tailBuf [8]byte
	tail := tailBuf[:0]
	hasPoint, sawNonzero := false, false
scan:
	for i := 0; i < len(num); i++ {
		switch c := num[i]; {
		case c == '.':
			hasPoint = true
		case c == 'p' || c == 'P' || (c == 'e' || c == 'E') && verb != 'x' && verb != 'X':
			tail = append(tail, num[i:]...)
			num = num[:i]
			break scan
		default:
			if c != '0' {
				sawNonzero = true
			}
			if sawNonzero {
				digits--
			}
		}
	}
	if !hasPoint {
		if len(num) == 1 && num[0] == '0' {
			digits--
		}
		num = append(num, '.')
	}
	for ; digits > 0; digits-- {
		num = append(num, '0')
	}
	return append(num, tail...)
}
