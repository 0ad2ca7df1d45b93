package migration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yungbote/maturity-backend/internal/domain/survey"
)

// workbook builds an .xlsx with one sheet holding rows.
func workbook(t *testing.T, sheet string, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	require.NoError(t, err)
	f.SetActiveSheet(idx)
	require.NoError(t, f.DeleteSheet("Sheet1"))

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func writeWorkbook(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, workbook(t, SheetName, rows), 0o644))
	return path
}

// surveyRow builds a data row aligned with ExpectedColumns: metadata then
// level/strength/weakness per axis, in axis order.
func surveyRow(group, revenue string, levels ...string) []string {
	row := []string{group, revenue, "50-250", "10-50"}
	for i := range survey.Axes {
		lvl := ""
		if i < len(levels) {
			lvl = levels[i]
		}
		row = append(row, lvl, "", "")
	}
	return row
}

func sheetRows(rows ...[]string) [][]string {
	return append([][]string{ExpectedColumns()}, rows...)
}

func reader(b []byte) *bytes.Reader { return bytes.NewReader(b) }
