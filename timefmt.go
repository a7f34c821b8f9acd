package valfmt

import (
	"strconv"
	"time"
)

// OffsetTime is a timestamp qualified by its UTC offset. Unlike time.Time,
// its default rendering always spells out the numeric offset, never "Z".
type OffsetTime struct {
	time.Time
}

// NewOffsetTime returns t as an OffsetTime.
func NewOffsetTime(t time.Time) OffsetTime {
	return OffsetTime{Time: t}
}

const offsetLayout = "2006-01-02T15:04:05.999999999-07:00"

// namedLayouts maps spec names onto time layouts, so callers can write
// "RFC1123" instead of the layout itself.
var namedLayouts = map[FormatSpec]string{
	"ANSIC":       time.ANSIC,
	"RFC822":      time.RFC822,
	"RFC1123":     time.RFC1123,
	"RFC1123Z":    time.RFC1123Z,
	"RFC3339":     time.RFC3339,
	"RFC3339Nano": time.RFC3339Nano,
	"Kitchen":     time.Kitchen,
	"Stamp":       time.Stamp,
	"DateTime":    time.DateTime,
	"DateOnly":    time.DateOnly,
	"TimeOnly":    time.TimeOnly,
}

// formatTime renders RFC3339Nano by default. A non-empty spec is a named
// layout, an epoch unit (unix, unixms, unixus, unixns) or a Go layout string.
func formatTime(t time.Time, dst []byte, spec FormatSpec) (int, error) {
	if spec == "" {
		var scratch [40]byte
		return writeText(dst, appendRFC3339Nano(scratch[:0], t, true))
	}
	return formatTimeSpec(t, dst, spec)
}

func formatOffsetTime(t OffsetTime, dst []byte, spec FormatSpec) (int, error) {
	if spec == "" {
		var scratch [40]byte
		return writeText(dst, appendRFC3339Nano(scratch[:0], t.Time, false))
	}
	return formatTimeSpec(t.Time, dst, spec)
}

func formatTimeSpec(t time.Time, dst []byte, spec FormatSpec) (int, error) {
	var scratch [64]byte
	var b []byte
	switch spec {
	case "unix":
		b = strconv.AppendInt(scratch[:0], t.Unix(), 10)
	case "unixms":
		b = strconv.AppendInt(scratch[:0], t.UnixMilli(), 10)
	case "unixus":
		b = strconv.AppendInt(scratch[:0], t.UnixMicro(), 10)
	case "unixns":
		b = strconv.AppendInt(scratch[:0], t.UnixNano(), 10)
	default:
		layout, ok := namedLayouts[spec]
		if !ok {
			layout = string(spec)
		}
		b = t.AppendFormat(scratch[:0], layout)
	}
	return writeText(dst, b)
}

// appendRFC3339Nano appends t in RFC3339Nano form without going through
// time.Format. zulu selects "Z" for a zero offset; otherwise the offset is
// always numeric. Years outside 0..9999 and offsets beyond ±18h fall back to
// AppendFormat.
func appendRFC3339Nano(buf []byte, t time.Time, zulu bool) []byte {
	layout := time.RFC3339Nano
	if !zulu {
		layout = offsetLayout
	}
	year, month, day := t.Date()
	if year < 0 || year > 9999 {
		return t.AppendFormat(buf, layout)
	}
	_, offset := t.Zone()
	if offset < -18*3600 || offset > 18*3600 {
		return t.AppendFormat(buf, layout)
	}
	hour, minute, sec := t.Clock()
	buf = appendFourDigits(buf, year)
	buf = append(buf, '-')
	buf = appendTwoDigits(buf, int(month))
	buf = append(buf, '-')
	buf = appendTwoDigits(buf, day)
	buf = append(buf, 'T')
	buf = appendTwoDigits(buf, hour)
	buf = append(buf, ':')
	buf = appendTwoDigits(buf, minute)
	buf = append(buf, ':')
	buf = appendTwoDigits(buf, sec)
	if nano := t.Nanosecond(); nano != 0 {
		buf = appendFraction(buf, nano)
	}
	if offset == 0 && zulu {
		return append(buf, 'Z')
	}
	// Seconds are truncated before the sign is chosen, so -30s is +00:00.
	zone := offset / 60
	if zone < 0 {
		buf = append(buf, '-')
		zone = -zone
	} else {
		buf = append(buf, '+')
	}
	buf = appendTwoDigits(buf, zone/60)
	buf = append(buf, ':')
	return appendTwoDigits(buf, zone%60)
}

// appendFraction appends '.' and the nanoseconds with trailing zeros removed.
func appendFraction(buf []byte, nano int) []byte {
	var digits [9]byte
	for i := 8; i >= 0; i-- {
		digits[i] = byte('0' + nano%10)
		nano /= 10
	}
	n := 9
	for n > 0 && digits[n-1] == '0' {
		n--
	}
	buf = append(buf, '.')
	return append(buf, digits[:n]...)
}

func appendFourDigits(buf []byte, v int) []byte {
	buf = appendTwoDigits(buf, v/100)
	return appendTwoDigits(buf, v%100)
}

func appendTwoDigits(buf []byte, v int) []byte {
	return append(buf, digitPairs[v*2], digitPairs[v*2+1])
}
