// Package report renders conformance results as a table, TSV, JSON, or YAML.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Sentinel errors for programmatic error handling.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format represents an output format.
type Format string

const (
	Table Format = "table"
	TSV   Format = "tsv"
	JSON  Format = "json"
	YAML  Format = "yaml"
)

var formats = []Format{Table, TSV, JSON, YAML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format string.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Status is the outcome of a single case.
type Status string

const (
	Pass Status = "pass"
	Fail Status = "fail"
)

// Row is one rendered result.
type Row struct {
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type" yaml:"type"`
	Spec   string `json:"spec" yaml:"spec"`
	Size   int    `json:"size" yaml:"size"`
	Got    string `json:"got" yaml:"got"`
	Status Status `json:"status" yaml:"status"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

var header = []string{"NAME", "TYPE", "SPEC", "SIZE", "GOT", "STATUS", "REASON"}

// cells returns the row as display columns. Specs and output are quoted so
// empty and whitespace-only text stays visible.
func (r Row) cells() []string {
	return []string{
		r.Name,
		r.Type,
		strconv.Quote(r.Spec),
		strconv.Itoa(r.Size),
		strconv.Quote(r.Got),
		string(r.Status),
		r.Reason,
	}
}

// Summary counts outcomes.
type Summary struct {
	Passed int `json:"passed" yaml:"passed"`
	Failed int `json:"failed" yaml:"failed"`
}

// Add records a row's outcome.
func (s *Summary) Add(r Row) {
	if r.Status == Pass {
		s.Passed++
	} else {
		s.Failed++
	}
}

// Total returns the number of recorded rows.
func (s Summary) Total() int { return s.Passed + s.Failed }

func (s Summary) String() string {
	return fmt.Sprintf("%d passed, %d failed", s.Passed, s.Failed)
}

// Write renders rows to w in format f.
func Write(w io.Writer, f Format, rows ...Row) error {
	switch f {
	case Table:
		return writeTable(w, rows)
	case TSV:
		return writeTSV(w, rows)
	case JSON:
		return writeJSON(w, rows)
	case YAML:
		return writeYAML(w, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
