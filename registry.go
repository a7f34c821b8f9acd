package valfmt

import (
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type entry struct {
	key    TypeKey
	name   string
	typed  any // Formatter[T] for the entry's T
	erased ErasedFormatter
}

type registry struct {
	byType map[reflect.Type]*entry
	byName map[string]*entry
	keys   []TypeKey
}

// registryTable returns the process-wide table, building it on first use.
// The maps are never written after construction.
var registryTable = sync.OnceValue(buildRegistry)

func buildRegistry() *registry {
	r := &registry{
		byType: make(map[reflect.Type]*entry),
		byName: make(map[string]*entry),
	}

	addScalar(r, "int8", signedFormatter[int8]())
	addScalar(r, "int16", signedFormatter[int16]())
	addScalar(r, "int32", signedFormatter[int32]())
	addScalar(r, "int64", signedFormatter[int64]())
	addScalar(r, "int", signedFormatter[int]())
	addScalar(r, "uint8", unsignedFormatter[uint8]())
	addScalar(r, "uint16", unsignedFormatter[uint16]())
	addScalar(r, "uint32", unsignedFormatter[uint32]())
	addScalar(r, "uint64", unsignedFormatter[uint64]())
	addScalar(r, "uint", unsignedFormatter[uint]())

	addScalar(r, "float32", floatFormatter[float32](32))
	addScalar(r, "float64", floatFormatter[float64](64))

	addScalar[time.Duration](r, "duration", formatDuration)
	addScalar[time.Time](r, "time", formatTime)
	addScalar[OffsetTime](r, "offsettime", formatOffsetTime)
	addScalar[decimal.Decimal](r, "decimal", formatDecimal)
	addScalar[uuid.UUID](r, "uuid", formatUUID)

	addScalar(r, "uintptr", uintptrFormatter(nativeWordBits))
	addScalar(r, "intptr", intptrFormatter(nativeWordBits))

	addOptional[bool](r, "bool", formatBool)

	slices.SortFunc(r.keys, func(a, b TypeKey) int {
		return strings.Compare(r.byType[a.t].name, r.byType[b.t].name)
	})
	return r
}

// addScalar registers f for T and the derived formatter for Optional[T].
func addScalar[T any](r *registry, name string, f Formatter[T]) {
	addEntry(r, name, f)
	addOptional(r, name, f)
}

// addOptional registers only Optional[T], deriving it from f.
func addOptional[T any](r *registry, name string, f Formatter[T]) {
	addEntry(r, "optional["+name+"]", wrapOptional(f))
}

func addEntry[T any](r *registry, name string, f Formatter[T]) {
	key := KeyOf[T]()
	if _, dup := r.byType[key.t]; dup {
		panic("valfmt: duplicate formatter for " + name)
	}
	e := &entry{
		key:    key,
		name:   name,
		typed:  f,
		erased: erased[T]{key: key, f: f},
	}
	r.byType[key.t] = e
	r.byName[name] = e
	r.keys = append(r.keys, key)
}
