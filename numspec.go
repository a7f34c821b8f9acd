package valfmt

// maxSpecWidth bounds width and precision so a spec cannot demand an
// arbitrarily large destination.
const maxSpecWidth = 64

// numSpec is a parsed numeric FormatSpec: [flags][width][.precision][verb],
// the fmt verb syntax without the leading '%'.
type numSpec struct {
	plus  bool
	minus bool
	zero  bool
	sharp bool
	space bool
	width int
	prec  int // -1 when absent
	verb  byte
}

func parseNumSpec(spec FormatSpec) (numSpec, error) {
	sp := numSpec{prec: -1}
	i := 0
flags:
	for ; i < len(spec); i++ {
		switch spec[i] {
		case '+':
			sp.plus = true
		case '-':
			sp.minus = true
		case '0':
			sp.zero = true
		case '#':
			sp.sharp = true
		case ' ':
			sp.space = true
		default:
			break flags
		}
	}
	var ok bool
	if sp.width, i, ok = parseSpecNumber(spec, i); !ok {
		return sp, ErrInvalidSpec
	}
	if i < len(spec) && spec[i] == '.' {
		if sp.prec, i, ok = parseSpecNumber(spec, i+1); !ok {
			return sp, ErrInvalidSpec
		}
	}
	if i < len(spec) {
		sp.verb = spec[i]
		i++
	}
	if i != len(spec) {
		return sp, ErrInvalidSpec
	}
	return sp, nil
}

// parseSpecNumber reads a run of decimal digits starting at i. An empty run
// yields zero.
func parseSpecNumber(spec FormatSpec, i int) (n, next int, ok bool) {
	for ; i < len(spec) && spec[i] >= '0' && spec[i] <= '9'; i++ {
		n = n*10 + int(spec[i]-'0')
		if n > maxSpecWidth {
			return 0, i, false
		}
	}
	return n, i, true
}

func (sp numSpec) sign(neg bool) byte {
	switch {
	case neg:
		return '-'
	case sp.plus:
		return '+'
	case sp.space:
		return ' '
	}
	return 0
}

// writeNumber lays out sign, prefix, lead zeros and digits in dst, padding to
// the spec width. Zero padding goes between the prefix and the digits and is
// only used when zeroPad is allowed. Nothing is written unless everything fits.
func writeNumber[D ~string | ~[]byte](dst []byte, sign byte, prefix string, lead int, digits D, sp numSpec, zeroPad bool) (int, error) {
	body := len(prefix) + lead + len(digits)
	if sign != 0 {
		body++
	}
	pad := max(sp.width-body, 0)
	if body+pad > len(dst) {
		return 0, ErrInsufficientSpace
	}
	zeroPad = zeroPad && sp.zero && !sp.minus
	i := 0
	if !sp.minus && !zeroPad {
		i += fill(dst[i:i+pad], ' ')
	}
	if sign != 0 {
		dst[i] = sign
		i++
	}
	i += copy(dst[i:], prefix)
	if zeroPad {
		lead += pad
	}
	i += fill(dst[i:i+lead], '0')
	i += copyBytes(dst[i:], digits)
	if sp.minus {
		i += fill(dst[i:i+pad], ' ')
	}
	return i, nil
}

func fill(b []byte, c byte) int {
	for i := range b {
		b[i] = c
	}
	return len(b)
}

func copyBytes[D ~string | ~[]byte](dst []byte, src D) int {
	for i := 0; i < len(src); i++ {
		dst[i] = src[i]
	}
	return len(src)
}

// writeText copies s into dst whole or not at all.
func writeText[D ~string | ~[]byte](dst []byte, s D) (int, error) {
	if len(s) > len(dst) {
		return 0, ErrInsufficientSpace
	}
	return copyBytes(dst, s), nil
}
