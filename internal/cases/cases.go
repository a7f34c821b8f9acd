// Package cases loads formatter conformance cases from YAML and runs them
// against the valfmt registry.
package cases

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"reflect"
	"strings"

	"github.com/bjaus/valfmt"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for programmatic error handling.
var (
	ErrMissingValue = errors.New("missing value")
	ErrInvalidSize  = errors.New("invalid size")
)

// unwritten fills destinations before each run. Formatters only emit valid
// UTF-8, so a surviving 0xFF proves the byte was never touched.
const unwritten = 0xFF

// Case is one entry of a suite file.
type Case struct {
	Name  string               `yaml:"name"`
	Type  string               `yaml:"type"`
	Value yaml.Node            `yaml:"value"`
	Spec  string               `yaml:"spec"`
	Size  valfmt.Optional[int] `yaml:"size"`
	Want  string               `yaml:"want"`
	Short bool                 `yaml:"short"`

	key   valfmt.TypeKey
	value any
}

// Key returns the resolved type key. It is zero until the case is loaded.
func (c *Case) Key() valfmt.TypeKey { return c.key }

// Decoded returns the value decoded into the case's Go type.
func (c *Case) Decoded() any { return c.value }

// Suite is a parsed case file.
type Suite struct {
	Cases []*Case `yaml:"cases"`
}

// LoadFile reads a suite from path.
func LoadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load reads a suite and resolves every case's type and value.
func Load(r io.Reader) (*Suite, error) {
	var s Suite
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, err
	}
	for i, c := range s.Cases {
		if err := c.resolve(); err != nil {
			return nil, fmt.Errorf("case %d (%s): %w", i+1, c.label(), err)
		}
	}
	return &s, nil
}

func (c *Case) label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Type
}

func (c *Case) resolve() error {
	key, err := valfmt.ParseTypeKey(c.Type)
	if err != nil {
		return err
	}
	if n, ok := c.Size.Get(); ok && n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	v, err := decodeValue(key, &c.Value)
	if err != nil {
		return err
	}
	c.key, c.value = key, v
	return nil
}

// decodeValue decodes node into a fresh value of the key's type. A missing
// or null node is only accepted for optional types, where it means empty.
func decodeValue(key valfmt.TypeKey, node *yaml.Node) (any, error) {
	t := key.Type()
	optional := strings.HasPrefix(key.String(), "optional[")
	if node.Kind == 0 {
		if optional {
			return reflect.Zero(t).Interface(), nil
		}
		return nil, fmt.Errorf("%w for %s", ErrMissingValue, key)
	}
	if !optional && node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil, fmt.Errorf("%w for %s", ErrMissingValue, key)
	}
	ptr := reflect.New(t)
	if err := node.Decode(ptr.Interface()); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}

// Result is the outcome of running one case.
type Result struct {
	Case   *Case
	Size   int
	Got    string
	Err    error
	Pass   bool
	Reason string
}

// Run formats the case into a destination of its size, or defaultSize when it
// has none, and compares the outcome with the expectation.
func (c *Case) Run(defaultSize int) Result {
	res := Result{Case: c, Size: c.Size.OrElse(defaultSize)}
	f, ok := valfmt.Lookup(c.key)
	if !ok {
		res.Err = valfmt.ErrUnsupportedType
		res.Reason = "no formatter"
		return res
	}

	dst := bytes.Repeat([]byte{unwritten}, res.Size)
	n, err := f.TryWrite(c.value, dst, valfmt.FormatSpec(c.Spec))
	res.Err = err
	if err == nil {
		res.Got = string(dst[:n])
	}

	switch {
	case c.Short && errors.Is(err, valfmt.ErrInsufficientSpace):
		if !untouched(dst) {
			res.Reason = "partial write"
			return res
		}
		res.Pass = true
	case c.Short:
		res.Reason = "expected insufficient space"
	case err != nil:
		res.Reason = err.Error()
	case res.Got != c.Want:
		res.Reason = fmt.Sprintf("want %q", c.Want)
	default:
		res.Pass = true
	}
	return res
}

func untouched(dst []byte) bool {
	for _, b := range dst {
		if b != unwritten {
			return false
		}
	}
	return true
}

// Run yields the result of every case in order, stopping early when the
// consumer does.
func (s *Suite) Run(defaultSize int) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for _, c := range s.Cases {
			if !yield(c.Run(defaultSize)) {
				return
			}
		}
	}
}
