package report

import (
	"fmt"
	"io"
	"iter"
)

// WriteIter renders rows from seq as they arrive and returns the outcome
// counts. TSV rows are written immediately. Table, JSON and YAML need every
// row for layout or the summary, so those rows are collected first.
func WriteIter(w io.Writer, f Format, seq iter.Seq[Row]) (Summary, error) {
	switch f {
	case TSV:
		return streamTSV(w, seq)
	case Table, JSON, YAML:
		return streamCollect(w, f, seq)
	default:
		return Summary{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func streamCollect(w io.Writer, f Format, seq iter.Seq[Row]) (Summary, error) {
	var (
		rows []Row
		sum  Summary
	)
	for r := range seq {
		rows = append(rows, r)
		sum.Add(r)
	}
	return sum, Write(w, f, rows...)
}

func streamTSV(w io.Writer, seq iter.Seq[Row]) (Summary, error) {
	var sum Summary
	for r := range seq {
		if sum.Total() == 0 {
			if err := writeTSVLine(w, header); err != nil {
				return sum, err
			}
		}
		sum.Add(r)
		if err := writeTSVLine(w, r.cells()); err != nil {
			return sum, err
		}
	}
	return sum, nil
}
