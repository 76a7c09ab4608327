package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/TomShaoquan/arduino-panda/internal/domain"
)

// MaxCellWidth caps a single table cell; longer content is truncated with an
// ellipsis. Port descriptions from USB metadata can get long.
const MaxCellWidth = 60

// FormatTable renders headers and rows as aligned columns separated by two
// spaces. Column widths follow the widest cell, measured in terminal cells
// via runewidth so double-width runes line up.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	clipped := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(headers))
		for i := range headers {
			if i < len(row) {
				cells[i] = runewidth.Truncate(row[i], MaxCellWidth, "…")
			}
			if w := runewidth.StringWidth(cells[i]); w > widths[i] {
				widths[i] = w
			}
		}
		clipped = append(clipped, cells)
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		b.WriteByte('\n')
	}

	writeRow(headers)
	for _, cells := range clipped {
		writeRow(cells)
	}
	return b.String()
}

// PortTableData returns display headers and rows for discovered ports.
func PortTableData(ports []domain.PortInfo) ([]string, [][]string) {
	headers := []string{"PORT", "DESCRIPTION"}
	rows := make([][]string, 0, len(ports))
	for _, p := range ports {
		rows = append(rows, []string{p.Address, p.Description})
	}
	return headers, rows
}

// BoardTableData returns display headers and rows for known boards.
func BoardTableData(boards []domain.BoardInfo) ([]string, [][]string) {
	headers := []string{"BOARD", "FQBN"}
	rows := make([][]string, 0, len(boards))
	for _, b := range boards {
		rows = append(rows, []string{b.Name, b.FQBN})
	}
	return headers, rows
}
