package valfmt

import "strconv"

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// signedFormatter routes the empty spec to the fast decimal writer and
// everything else through the spec-driven integer formatter.
func signedFormatter[T signed]() Formatter[T] {
	return func(v T, dst []byte, spec FormatSpec) (int, error) {
		if spec == "" {
			return writeInt64Fast(dst, int64(v))
		}
		return formatInt64(int64(v), dst, spec)
	}
}

func unsignedFormatter[T unsigned]() Formatter[T] {
	return func(v T, dst []byte, spec FormatSpec) (int, error) {
		if spec == "" {
			return writeUint64Fast(dst, uint64(v))
		}
		return formatUint64(uint64(v), dst, spec)
	}
}

const digitPairs = "00010203040506070809" +
	"10111213141516171819" +
	"20212223242526272829" +
	"30313233343536373839" +
	"40414243444546474849" +
	"50515253545556575859" +
	"60616263646566676869" +
	"70717273747576777879" +
	"80818283848586878889" +
	"90919293949596979899"

// decimalLen returns the number of base-10 digits in u.
func decimalLen(u uint64) int {
	n := 1
	for u >= 100 {
		u /= 100
		n += 2
	}
	if u >= 10 {
		n++
	}
	return n
}

// putDecimal writes u right-aligned into b, which must hold exactly
// decimalLen(u) bytes.
func putDecimal(b []byte, u uint64) {
	i := len(b)
	for u >= 100 {
		q := u / 100
		r := (u - q*100) * 2
		i -= 2
		b[i], b[i+1] = digitPairs[r], digitPairs[r+1]
		u = q
	}
	if u >= 10 {
		r := u * 2
		b[i-2], b[i-1] = digitPairs[r], digitPairs[r+1]
		return
	}
	b[i-1] = byte('0' + u)
}

func writeUint64Fast(dst []byte, u uint64) (int, error) {
	n := decimalLen(u)
	if n > len(dst) {
		return 0, ErrInsufficientSpace
	}
	putDecimal(dst[:n], u)
	return n, nil
}

func writeInt64Fast(dst []byte, v int64) (int, error) {
	if v >= 0 {
		return writeUint64Fast(dst, uint64(v))
	}
	u := -uint64(v)
	n := decimalLen(u) + 1
	if n > len(dst) {
		return 0, ErrInsufficientSpace
	}
	dst[0] = '-'
	putDecimal(dst[1:n], u)
	return n, nil
}

func formatInt64(v int64, dst []byte, spec FormatSpec) (int, error) {
	u := uint64(v)
	if v < 0 {
		u = -u
	}
	return formatInteger(u, v < 0, dst, spec)
}

func formatUint64(u uint64, dst []byte, spec FormatSpec) (int, error) {
	return formatInteger(u, false, dst, spec)
}

// formatInteger renders the magnitude u with verbs d, x, X, o and b.
// Precision is the minimum digit count and disables zero padding, as in fmt.
func formatInteger(u uint64, neg bool, dst []byte, spec FormatSpec) (int, error) {
	sp, err := parseNumSpec(spec)
	if err != nil {
		return 0, err
	}
	base, prefix := 10, ""
	switch sp.verb {
	case 0, 'd':
	case 'x':
		base, prefix = 16, "0x"
	case 'X':
		base, prefix = 16, "0X"
	case 'o':
		base, prefix = 8, "0"
	case 'b':
		base, prefix = 2, "0b"
	default:
		return 0, ErrInvalidSpec
	}
	if !sp.sharp {
		prefix = ""
	}

	var scratch [64]byte
	digits := strconv.AppendUint(scratch[:0], u, base)
	if sp.verb == 'X' {
		upperHex(digits)
	}
	if sp.prec == 0 && u == 0 {
		digits = digits[:0]
	}
	lead := 0
	if sp.prec > len(digits) {
		lead = sp.prec - len(digits)
	}
	if prefix == "0" && (lead > 0 || len(digits) > 0 && digits[0] == '0') {
		prefix = ""
	}
	return writeNumber(dst, sp.sign(neg), prefix, lead, digits, sp, sp.prec < 0)
}

func upperHex(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'f' {
			b[i] = c - ('a' - 'A')
		}
	}
}
