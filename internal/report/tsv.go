package report

import (
	"fmt"
	"io"
	"strings"
)

func writeTSV(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	if err := writeTSVLine(w, header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writeTSVLine(w, r.cells()); err != nil {
			return err
		}
	}
	return nil
}

func writeTSVLine(w io.Writer, cells []string) error {
	_, err := fmt.Fprintln(w, strings.Join(cells, "\t"))
	return err
}
