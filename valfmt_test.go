package valfmt_test

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/bjaus/valfmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userStruct struct {
	Name string
}

func TestParseTypeKey(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    valfmt.TypeKey
		wantErr require.ErrorAssertionFunc
	}{
		"int32":            {input: "int32", want: valfmt.KeyOf[int32](), wantErr: require.NoError},
		"uint8":            {input: "uint8", want: valfmt.KeyOf[byte](), wantErr: require.NoError},
		"duration":         {input: "duration", want: valfmt.KeyOf[time.Duration](), wantErr: require.NoError},
		"decimal":          {input: "decimal", want: valfmt.KeyOf[decimal.Decimal](), wantErr: require.NoError},
		"uuid":             {input: "uuid", want: valfmt.KeyOf[uuid.UUID](), wantErr: require.NoError},
		"intptr":           {input: "intptr", want: valfmt.KeyOf[valfmt.Intptr](), wantErr: require.NoError},
		"optional int64":   {input: "optional[int64]", want: valfmt.KeyOf[valfmt.Optional[int64]](), wantErr: require.NoError},
		"optional bool":    {input: "optional[bool]", want: valfmt.KeyOf[valfmt.Optional[bool]](), wantErr: require.NoError},
		"plain bool":       {input: "bool", want: valfmt.TypeKey{}, wantErr: require.Error},
		"string":           {input: "string", want: valfmt.TypeKey{}, wantErr: require.Error},
		"optional unknown": {input: "optional[string]", want: valfmt.TypeKey{}, wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := valfmt.ParseTypeKey(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTypeKeyErrorWraps(t *testing.T) {
	t.Parallel()
	_, err := valfmt.ParseTypeKey("complex128")
	require.ErrorIs(t, err, valfmt.ErrUnsupportedType)
	assert.Contains(t, err.Error(), `"complex128"`)
}

func TestKeys(t *testing.T) {
	t.Parallel()
	keys := valfmt.Keys()
	// 19 scalars with optional forms plus optional[bool].
	require.Len(t, keys, 39)

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
		parsed, err := valfmt.ParseTypeKey(names[i])
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	assert.True(t, slices.IsSorted(names))

	// Returned slice must be a copy.
	keys[0] = valfmt.TypeKey{}
	assert.False(t, valfmt.Keys()[0].IsZero())
}

func TestTypeKeyString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "int32", valfmt.KeyOf[int32]().String())
	assert.Equal(t, "optional[uuid]", valfmt.KeyOf[valfmt.Optional[uuid.UUID]]().String())
	assert.Equal(t, "valfmt_test.userStruct", valfmt.KeyOf[userStruct]().String())
	assert.Equal(t, "<nil>", valfmt.KeyFor(nil).String())
}

func TestKeyForMatchesKeyOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, valfmt.KeyOf[int16](), valfmt.KeyFor(int16(3)))
	assert.Equal(t, valfmt.KeyOf[valfmt.Optional[float64]](), valfmt.KeyFor(valfmt.None[float64]()))
	assert.NotEqual(t, valfmt.KeyOf[int64](), valfmt.KeyOf[time.Duration]())
	assert.Equal(t, valfmt.KeyOf[int32]().Type(), valfmt.KeyFor(int32(0)).Type())
}

func TestIsSupported(t *testing.T) {
	t.Parallel()
	assert.True(t, valfmt.IsSupported[int8]())
	assert.True(t, valfmt.IsSupported[uintptr]())
	assert.True(t, valfmt.IsSupported[valfmt.OffsetTime]())
	assert.True(t, valfmt.IsSupported[valfmt.Optional[bool]]())
	assert.False(t, valfmt.IsSupported[bool]())
	assert.False(t, valfmt.IsSupported[string]())
	assert.False(t, valfmt.IsSupported[*int]())
	assert.False(t, valfmt.IsSupported[userStruct]())
	assert.False(t, valfmt.IsSupported[valfmt.Optional[userStruct]]())
	assert.False(t, valfmt.IsSupported[valfmt.Optional[valfmt.Optional[int]]]())
}

func TestLookupUnsupported(t *testing.T) {
	t.Parallel()
	tests := map[string]valfmt.TypeKey{
		"user struct":   valfmt.KeyOf[userStruct](),
		"string":        valfmt.KeyOf[string](),
		"bool":          valfmt.KeyOf[bool](),
		"complex":       valfmt.KeyOf[complex128](),
		"pointer":       valfmt.KeyOf[*int32](),
		"slice":         valfmt.KeyOf[[]byte](),
		"zero key":      {},
		"optional user": valfmt.KeyOf[valfmt.Optional[userStruct]](),
	}
	for name, key := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f, ok := valfmt.Lookup(key)
			assert.False(t, ok)
			assert.Nil(t, f)
		})
	}
}

func TestLookupKeyRoundTrip(t *testing.T) {
	t.Parallel()
	for _, k := range valfmt.Keys() {
		f, ok := valfmt.Lookup(k)
		require.True(t, ok, k.String())
		assert.Equal(t, k, f.Key())
	}
}

func TestLookupIdempotent(t *testing.T) {
	t.Parallel()
	for _, s := range samples() {
		for _, v := range []any{s.plain, s.some} {
			if v == nil {
				continue
			}
			for _, spec := range s.specs {
				first, ok := valfmt.Lookup(valfmt.KeyFor(v))
				require.True(t, ok)
				second, ok := valfmt.Lookup(valfmt.KeyFor(v))
				require.True(t, ok)

				a, b := make([]byte, 128), make([]byte, 128)
				na, erra := first.TryWrite(v, a, spec)
				nb, errb := second.TryWrite(v, b, spec)
				require.NoError(t, erra, "%s %q", s.name, spec)
				require.NoError(t, errb)
				assert.Equal(t, a[:na], b[:nb], "%s %q", s.name, spec)
			}
		}
	}
}

func TestLookupConcurrent(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Go(func() {
			out, err := render(int64(-i), "")
			if err == nil {
				results[i] = out
			}
		})
	}
	wg.Wait()
	for i, got := range results {
		assert.Equal(t, fmt.Sprint(-i), got)
	}
}

func TestScenarios(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		value   any
		size    int
		want    string
		wantErr error
	}{
		"int32 fits":                 {value: int32(-42), size: 3, want: "-42"},
		"int32 short":                {value: int32(-42), size: 2, wantErr: valfmt.ErrInsufficientSpace},
		"absent int64 into nothing":  {value: valfmt.None[int64](), size: 0, want: ""},
		"present byte":               {value: valfmt.Some(byte(7)), size: 1, want: "7"},
		"uint64 2^32":                {value: uint64(1) << 32, size: 10, want: "4294967296"},
		"present bool":               {value: valfmt.Some(false), size: 5, want: "false"},
		"present bool short":         {value: valfmt.Some(true), size: 3, wantErr: valfmt.ErrInsufficientSpace},
		"absent uuid into nothing":   {value: valfmt.None[uuid.UUID](), size: 0, want: ""},
		"zero":                       {value: 0, size: 1, want: "0"},
		"min int64":                  {value: int64(-9223372036854775808), size: 20, want: "-9223372036854775808"},
		"max uint64":                 {value: uint64(18446744073709551615), size: 20, want: "18446744073709551615"},
		"max uint64 one short":       {value: uint64(18446744073709551615), size: 19, wantErr: valfmt.ErrInsufficientSpace},
		"duration":                   {value: 1500 * time.Millisecond, size: 4, want: "1.5s"},
		"uuid":                       {value: sampleUUID, size: 36, want: "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
		"decimal":                    {value: decimal.RequireFromString("10.50"), size: 4, want: "10.5"},
		"float":                      {value: 0.1, size: 3, want: "0.1"},
		"time":                       {value: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC), size: 20, want: "2020-01-02T03:04:05Z"},
		"optional address absent":    {value: valfmt.None[uintptr](), size: 0, want: ""},
		"optional address present":   {value: valfmt.Some(valfmt.Intptr(-1)), size: 2, want: "-1"},
		"address short":              {value: uintptr(10), size: 1, wantErr: valfmt.ErrInsufficientSpace},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dst := make([]byte, tt.size)
			n, err := valfmt.TryWrite(dst, tt.value, "")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, n)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(dst[:n]))
		})
	}
}

func TestNativeWidthFullRange(t *testing.T) {
	t.Parallel()
	if valfmt.KeyOf[uintptr]().Type().Size() != 8 {
		t.Skip("requires a 64-bit host")
	}
	shift := 32
	got, err := render(uintptr(1)<<shift, "")
	require.NoError(t, err)
	assert.Equal(t, "4294967296", got)

	shift = 40
	got, err = render(valfmt.Intptr(-1)<<shift, "")
	require.NoError(t, err)
	assert.Equal(t, "-1099511627776", got)
}

func TestAddressWidthIgnoresSpec(t *testing.T) {
	t.Parallel()
	for _, spec := range []valfmt.FormatSpec{"", "x", "#08X", "garbage"} {
		got, err := render(uintptr(255), spec)
		require.NoError(t, err)
		assert.Equal(t, "255", got)
	}
}

func TestTryWriteUnsupported(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 32)
	for _, v := range []any{nil, "text", true, userStruct{Name: "x"}, []int{1}} {
		n, err := valfmt.TryWrite(buf, v, "")
		assert.ErrorIs(t, err, valfmt.ErrUnsupportedType)
		assert.Zero(t, n)
	}
}

func TestErasedTypeMismatch(t *testing.T) {
	t.Parallel()
	f, ok := valfmt.Lookup(valfmt.KeyOf[int32]())
	require.True(t, ok)
	buf := make([]byte, 32)
	n, err := f.TryWrite(int64(1), buf, "")
	assert.ErrorIs(t, err, valfmt.ErrTypeMismatch)
	assert.Zero(t, n)

	n, err = f.TryWrite(nil, buf, "")
	assert.ErrorIs(t, err, valfmt.ErrTypeMismatch)
	assert.Zero(t, n)
}

func TestForMatchesLookup(t *testing.T) {
	t.Parallel()
	typed, ok := valfmt.For[int16]()
	require.True(t, ok)
	buf := make([]byte, 16)
	n, err := typed(-300, buf, "x")
	require.NoError(t, err)
	assert.Equal(t, "-12c", string(buf[:n]))

	got, err := render(int16(-300), "x")
	require.NoError(t, err)
	assert.Equal(t, "-12c", got)

	_, ok = valfmt.For[string]()
	assert.False(t, ok)
}

func TestNoPartialWrites(t *testing.T) {
	t.Parallel()
	for _, s := range samples() {
		for _, v := range []any{s.plain, s.some} {
			if v == nil {
				continue
			}
			for _, spec := range s.specs {
				full, err := render(v, spec)
				require.NoError(t, err, "%s %q", s.name, spec)
				for size := range len(full) {
					dst := bytes.Repeat([]byte{'~'}, size)
					n, err := valfmt.TryWrite(dst, v, spec)
					require.ErrorIs(t, err, valfmt.ErrInsufficientSpace, "%s %q size %d", s.name, spec, size)
					assert.Zero(t, n)
					assert.Equal(t, bytes.Repeat([]byte{'~'}, size), dst, "%s %q size %d", s.name, spec, size)
				}
				dst := make([]byte, len(full))
				n, err := valfmt.TryWrite(dst, v, spec)
				require.NoError(t, err)
				assert.Equal(t, full, string(dst[:n]))
			}
		}
	}
}

func TestInvalidSpecWritesNothing(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		value any
		spec  valfmt.FormatSpec
	}{
		"int unknown verb":      {value: 12, spec: "q"},
		"int trailing text":     {value: 12, spec: "dx"},
		"int width too large":   {value: 12, spec: "65d"},
		"float unknown verb":    {value: 1.5, spec: "d"},
		"decimal unknown verb":  {value: decimal.NewFromInt(1), spec: "x"},
		"decimal bank no prec":  {value: decimal.NewFromInt(1), spec: "r"},
		"duration unknown unit": {value: time.Second, spec: "days"},
		"duration bad prec":     {value: time.Second, spec: ".99s"},
		"uuid unknown":          {value: sampleUUID, spec: "Q"},
		"bool unknown":          {value: valfmt.Some(true), spec: "yes"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dst := bytes.Repeat([]byte{'~'}, 64)
			n, err := valfmt.TryWrite(dst, tt.value, tt.spec)
			require.True(t, errors.Is(err, valfmt.ErrInvalidSpec), "got %v", err)
			assert.Zero(t, n)
			assert.Equal(t, bytes.Repeat([]byte{'~'}, 64), dst)
		})
	}
}

func TestInvalidSpecOnAbsentOptional(t *testing.T) {
	t.Parallel()
	// Nothing is rendered for an empty optional, so the spec is never read.
	n, err := valfmt.TryWrite(nil, valfmt.None[int](), "q")
	require.NoError(t, err)
	assert.Zero(t, n)
}
