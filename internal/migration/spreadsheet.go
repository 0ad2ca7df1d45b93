package migration

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Données"

// Table is a sheet's header row plus its data rows. Rows may be shorter than
// the header when trailing cells are empty.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable loads sheet from an .xlsx stream.
func ReadTable(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	return &Table{Header: header, Rows: rows[1:]}, nil
}

// Columns maps each header to its first column index.
func (t *Table) Columns() map[string]int {
	out := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		if _, dup := out[h]; !dup && h != "" {
			out[h] = i
		}
	}
	return out
}
