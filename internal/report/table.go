package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Columns wider than this are truncated with an ellipsis.
const maxCellWidth = 48

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var rounded = borderChars{
	topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
	horizontal: "─", vertical: "│",
	topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
	cross: "┼",
}

type alignment int

const (
	alignLeft alignment = iota
	alignRight
)

// SIZE is numeric; everything else reads left to right.
var aligns = []alignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft}

func writeTable(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	cells := make([][]string, len(rows))
	var sum Summary
	for i, r := range rows {
		cells[i] = r.cells()
		sum.Add(r)
	}
	footer := []string{sum.String()}

	widths := computeWidths(len(header), header, cells)
	for i := range widths {
		widths[i] = min(widths[i], maxCellWidth)
	}

	bc := rounded
	if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
		return err
	}
	if err := drawRow(w, header, widths, bc.vertical); err != nil {
		return err
	}
	if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}
	for _, row := range cells {
		if err := drawRow(w, row, widths, bc.vertical); err != nil {
			return err
		}
	}
	// The summary spans the full width, so the separator has no column tees.
	if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.bottomTee, bc.rightTee); err != nil {
		return err
	}
	inner := tableInnerWidth(widths) - 2
	if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, alignCell(footer[0], inner, alignLeft), bc.vertical); err != nil {
		return err
	}
	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.horizontal, bc.bottomRight)
}

func computeWidths(numCols int, header []string, rows [][]string) []int {
	widths := make([]int, numCols)
	for i, h := range header {
		if w := runewidth.StringWidth(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// tableInnerWidth returns the character width between the outer vertical
// borders. Each cell contributes its width plus one space of padding on each
// side, and cells are separated by a single border character.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawRow(w io.Writer, cells []string, widths []int, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(formatCell(cell, width, aligns[i]))
		sb.WriteString(" ")
		if i < len(widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func formatCell(s string, width int, align alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case alignRight:
		return strings.Repeat(" ", pad) + s
	default:
		return s + strings.Repeat(" ", pad)
	}
}
