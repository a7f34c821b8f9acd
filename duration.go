package valfmt

import (
	"strconv"
	"time"
)

var durationUnits = map[FormatSpec]time.Duration{
	"h":  time.Hour,
	"m":  time.Minute,
	"s":  time.Second,
	"ms": time.Millisecond,
	"us": time.Microsecond,
	"µs": time.Microsecond,
	"ns": time.Nanosecond,
}

// formatDuration renders the same text as time.Duration.String for the empty
// spec. Otherwise the spec is [.precision]unit and the duration is written as
// a decimal count of that unit, without a suffix. Counts of seconds and
// smaller units are exact; minutes and hours go through float64.
func formatDuration(d time.Duration, dst []byte, spec FormatSpec) (int, error) {
	if spec == "" {
		var scratch [32]byte
		return writeText(dst, scratch[putDuration(&scratch, d):])
	}
	prec := -1
	if spec[0] == '.' {
		var i int
		var ok bool
		prec, i, ok = parseSpecNumber(spec, 1)
		if !ok {
			return 0, ErrInvalidSpec
		}
		spec = spec[i:]
	}
	unit, ok := durationUnits[spec]
	if !ok {
		return 0, ErrInvalidSpec
	}
	var scratch [96]byte
	if unit <= time.Second {
		return writeText(dst, appendDurationCount(scratch[:0], d, unit, prec))
	}
	return writeText(dst, strconv.AppendFloat(scratch[:0], float64(d)/float64(unit), 'f', prec, 64))
}

// appendDurationCount appends d as a count of unit, a power of ten no larger
// than a second. With prec < 0 every nonzero fraction digit is kept; otherwise
// the fraction is rounded half to even or zero-extended to prec digits.
func appendDurationCount(buf []byte, d, unit time.Duration, prec int) []byte {
	u := uint64(d)
	if d < 0 {
		buf = append(buf, '-')
		u = -u
	}
	q, r := u/uint64(unit), u%uint64(unit)
	places := decimalLen(uint64(unit)) - 1

	if prec >= 0 && prec < places {
		div := pow10(places - prec)
		kept, rest := r/div, r%div
		odd := kept%2 == 1
		if prec == 0 {
			odd = q%2 == 1
		}
		if half := div / 2; rest > half || rest == half && odd {
			kept++
			if kept == pow10(prec) {
				kept = 0
				q++
			}
		}
		r, places = kept, prec
	}

	buf = strconv.AppendUint(buf, q, 10)
	if prec < 0 {
		for places > 0 && r%10 == 0 {
			r /= 10
			places--
		}
	}
	if places == 0 && prec <= 0 {
		return buf
	}
	buf = append(buf, '.')
	if places > 0 {
		var digits [20]byte
		frac := digits[:places]
		for i := range frac {
			frac[i] = '0'
		}
		putDecimal(frac[places-decimalLen(r):], r)
		buf = append(buf, frac...)
	}
	for i := places; i < prec; i++ {
		buf = append(buf, '0')
	}
	return buf
}

func pow10(n int) uint64 {
	p := uint64(1)
	for range n {
		p *= 10
	}
	return p
}

// putDuration writes d right-aligned into buf and returns the start offset.
// Below one second the largest fitting sub-second unit is used; otherwise
// hours, minutes and fractional seconds.
func putDuration(buf *[32]byte, d time.Duration) int {
	w := len(buf)
	u := uint64(d)
	neg := d < 0
	if neg {
		u = -u
	}

	w--
	buf[w] = 's'
	if u < uint64(time.Second) {
		var digits int
		switch {
		case u == 0:
			w--
			buf[w] = '0'
			return w
		case u < uint64(time.Microsecond):
			w--
			buf[w] = 'n'
		case u < uint64(time.Millisecond):
			digits = 3
			w -= len("µ")
			copy(buf[w:], "µ")
		default:
			digits = 6
			w--
			buf[w] = 'm'
		}
		w, u = putFraction(buf[:w], u, digits)
		w = putUint(buf[:w], u)
	} else {
		w, u = putFraction(buf[:w], u, 9)
		w = putUint(buf[:w], u%60)
		if u /= 60; u > 0 {
			w--
			buf[w] = 'm'
			w = putUint(buf[:w], u%60)
			if u /= 60; u > 0 {
				w--
				buf[w] = 'h'
				w = putUint(buf[:w], u)
			}
		}
	}
	if neg {
		w--
		buf[w] = '-'
	}
	return w
}

// putFraction writes the low digits of v as a fraction with trailing zeros
// dropped, right-aligned in buf, and returns the new start and v shifted down.
func putFraction(buf []byte, v uint64, digits int) (int, uint64) {
	w := len(buf)
	printing := false
	for range digits {
		d := v % 10
		v /= 10
		printing = printing || d != 0
		if printing {
			w--
			buf[w] = byte('0' + d)
		}
	}
	if printing {
		w--
		buf[w] = '.'
	}
	return w, v
}

func putUint(buf []byte, v uint64) int {
	w := len(buf)
	if v == 0 {
		w--
		buf[w] = '0'
		return w
	}
	for v > 0 {
		w--
		buf[w] = byte('0' + v%10)
		v /= 10
	}
	return w
}
