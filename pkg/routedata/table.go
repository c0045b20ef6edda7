// Package routedata loads per-route coordinate tables and extracts ordered
// point sequences from them, tolerating the mixed layouts found in the field.
package routedata

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Table is a rectangular view of one route's data file. The first row of the
// source sheet is taken as the header; Rows may be ragged because trailing
// empty cells are not materialized.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns the cell at (row, col), or "" when the row is shorter.
func (t *Table) Cell(row, col int) string {
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// ReadXLSX loads the first sheet of an Excel workbook into a Table.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q of %s: %w", sheet, path, err)
	}

	t := &Table{}
	if len(rows) > 0 {
		t.Header = rows[0]
		t.Rows = rows[1:]
	}
	return t, nil
}
