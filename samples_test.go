package valfmt_test

import (
	"math"
	"time"

	"github.com/bjaus/valfmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// sample pairs a value of every scalar in the supported set with its
// optional forms.
type sample struct {
	name  string
	plain any // nil when only the optional form is registered
	some  any
	none  any
	specs []valfmt.FormatSpec
}

var (
	sampleTime = time.Date(2024, time.March, 9, 7, 5, 3, 120000000, time.FixedZone("CET", 3600))
	sampleUUID = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
)

func samples() []sample {
	intSpecs := []valfmt.FormatSpec{"", "d", "x", "#X", "08d", "+d", "-6d", ".4d", "b", "o"}
	floatSpecs := []valfmt.FormatSpec{"", "f", ".2f", "e", "10.3g", "+.1E"}
	return []sample{
		{"int8", int8(math.MinInt8), valfmt.Some(int8(math.MinInt8)), valfmt.None[int8](), intSpecs},
		{"int16", int16(-1234), valfmt.Some(int16(-1234)), valfmt.None[int16](), intSpecs},
		{"int32", int32(-42), valfmt.Some(int32(-42)), valfmt.None[int32](), intSpecs},
		{"int64", int64(math.MinInt64), valfmt.Some(int64(math.MinInt64)), valfmt.None[int64](), intSpecs},
		{"int", 987654321, valfmt.Some(987654321), valfmt.None[int](), intSpecs},
		{"uint8", uint8(255), valfmt.Some(uint8(255)), valfmt.None[uint8](), intSpecs},
		{"uint16", uint16(65535), valfmt.Some(uint16(65535)), valfmt.None[uint16](), intSpecs},
		{"uint32", uint32(4000000000), valfmt.Some(uint32(4000000000)), valfmt.None[uint32](), intSpecs},
		{"uint64", uint64(math.MaxUint64), valfmt.Some(uint64(math.MaxUint64)), valfmt.None[uint64](), intSpecs},
		{"uint", uint(7), valfmt.Some(uint(7)), valfmt.None[uint](), intSpecs},
		{"float32", float32(3.25), valfmt.Some(float32(3.25)), valfmt.None[float32](), floatSpecs},
		{"float64", -1234.5678, valfmt.Some(-1234.5678), valfmt.None[float64](), floatSpecs},
		{"duration", 90*time.Minute + 1500*time.Millisecond, valfmt.Some(90*time.Minute + 1500*time.Millisecond), valfmt.None[time.Duration](),
			[]valfmt.FormatSpec{"", "s", ".2m", "ns", "ms"}},
		{"time", sampleTime, valfmt.Some(sampleTime), valfmt.None[time.Time](),
			[]valfmt.FormatSpec{"", "RFC1123", "unix", "2006/01/02", "DateTime"}},
		{"offsettime", valfmt.NewOffsetTime(sampleTime), valfmt.Some(valfmt.NewOffsetTime(sampleTime)), valfmt.None[valfmt.OffsetTime](),
			[]valfmt.FormatSpec{"", "RFC3339", "unixms", "Kitchen"}},
		{"decimal", decimal.RequireFromString("-12.345"), valfmt.Some(decimal.RequireFromString("-12.345")), valfmt.None[decimal.Decimal](),
			[]valfmt.FormatSpec{"", ".2f", ".2r", "12.1f"}},
		{"uuid", sampleUUID, valfmt.Some(sampleUUID), valfmt.None[uuid.UUID](),
			[]valfmt.FormatSpec{"", "D", "N", "B", "P", "X", "urn"}},
		{"uintptr", uintptr(0xdeadbeef), valfmt.Some(uintptr(0xdeadbeef)), valfmt.None[uintptr](), []valfmt.FormatSpec{"", "x"}},
		{"intptr", valfmt.Intptr(-4096), valfmt.Some(valfmt.Intptr(-4096)), valfmt.None[valfmt.Intptr](), []valfmt.FormatSpec{"", "x"}},
		{"bool", nil, valfmt.Some(true), valfmt.None[bool](), []valfmt.FormatSpec{"", "t", "T", "1"}},
	}
}

// render formats v through Lookup into a generously sized buffer.
func render(v any, spec valfmt.FormatSpec) (string, error) {
	f, ok := valfmt.Lookup(valfmt.KeyFor(v))
	if !ok {
		return "", valfmt.ErrUnsupportedType
	}
	buf := make([]byte, 256)
	n, err := f.TryWrite(v, buf, spec)
	if err != nil {
		return "", err
	}
	return string(buf[:n]), nil
}
