package valfmt

import "github.com/shopspring/decimal"

// maxFastDecimalDigits bounds the coefficients rendered without the decimal
// library's string conversion; 18 digits always fit in an int64.
const maxFastDecimalDigits = 18

// formatDecimal renders d in its canonical form, or fixed-point with verb f/F
// (half away from zero) or r (half to even) at the spec precision. The
// canonical form of a coefficient with at most 18 digits is written directly
// (without allocating while it is within ±2^53);
// wider coefficients and explicit precisions go through its string rendering.
func formatDecimal(d decimal.Decimal, dst []byte, spec FormatSpec) (int, error) {
	sp, err := parseNumSpec(spec)
	if err != nil {
		return 0, err
	}
	var s string
	switch sp.verb {
	case 0, 'f', 'F':
		if sp.prec < 0 {
			var scratch [64]byte
			if digits, neg, ok := putSmallDecimal(&scratch, d); ok {
				return writeNumber(dst, sp.sign(neg), "", 0, digits, sp, true)
			}
			s = d.String()
		} else {
			s = d.StringFixed(int32(sp.prec))
		}
	case 'r':
		if sp.prec < 0 {
			return 0, ErrInvalidSpec
		}
		s = d.StringFixedBank(int32(sp.prec))
	default:
		return 0, ErrInvalidSpec
	}
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	return writeNumber(dst, sp.sign(neg), "", 0, s, sp, true)
}

// putSmallDecimal writes the magnitude of d into buf as d.String would, with
// trailing fraction zeros dropped. ok is false when the coefficient is wider
// than maxFastDecimalDigits or the text does not fit in buf.
func putSmallDecimal(buf *[64]byte, d decimal.Decimal) (digits []byte, neg, ok bool) {
	if d.NumDigits() > maxFastDecimalDigits {
		return nil, false, false
	}
	coef := d.CoefficientInt64()
	exp := int(d.Exponent())
	u := uint64(coef)
	if coef < 0 {
		neg = true
		u = -u
	}

	if exp >= 0 {
		if u == 0 {
			exp = 0
		}
		n := decimalLen(u)
		if n+exp > len(buf) {
			return nil, false, false
		}
		putDecimal(buf[:n], u)
		for i := n; i < n+exp; i++ {
			buf[i] = '0'
		}
		return buf[:n+exp], neg, true
	}

	frac := -exp
	for frac > 0 && u%10 == 0 {
		u /= 10
		frac--
	}
	var coefDigits [20]byte
	n := decimalLen(u)
	putDecimal(coefDigits[:n], u)
	cd := coefDigits[:n]

	switch {
	case frac == 0:
		return buf[:copy(buf[:], cd)], neg, true
	case n > frac:
		w := copy(buf[:], cd[:n-frac])
		buf[w] = '.'
		w++
		w += copy(buf[w:], cd[n-frac:])
		return buf[:w], neg, true
	}
	size := 2 + frac
	if size > len(buf) {
		return nil, false, false
	}
	buf[0], buf[1] = '0', '.'
	w := 2
	for ; w < size-n; w++ {
		buf[w] = '0'
	}
	copy(buf[w:], cd)
	return buf[:size], neg, true
}
