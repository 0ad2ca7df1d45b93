package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/maturity-backend/internal/domain/survey"
)

func TestReadTableAndTransform(t *testing.T) {
	first := surveyRow("Industrie", "10-50M", "N2 - En cours", "Pas démarré", "N4")
	first[5] = "Formation interne"
	blank := make([]string, len(first))
	third := surveyRow("Services", "", "N0")

	table, err := ReadTable(reader(workbook(t, SheetName, sheetRows(first, blank, third))), SheetName)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)

	out := Transform(table)
	assert.Empty(t, out.Missing)
	assert.Equal(t, 0, out.Blank)
	require.Len(t, out.Responses, 3)

	r := out.Responses[0]
	assert.Equal(t, "response_000", r.ID)
	assert.Equal(t, "Industrie", r.Group)
	assert.Equal(t, "10-50M", r.Revenue)
	assert.Equal(t, "50-250", r.Headcount)
	assert.Equal(t, "10-50", r.ITHeadcount)

	require.NotNil(t, r.Axes[0].Level)
	assert.Equal(t, 2, *r.Axes[0].Level)
	assert.Equal(t, "N2 - En cours", *r.Axes[0].LevelRaw)
	require.NotNil(t, r.Axes[0].Strength)
	assert.Equal(t, "Formation interne", *r.Axes[0].Strength)
	assert.Nil(t, r.Axes[0].Weakness)

	assert.Nil(t, r.Axes[1].Level)
	require.NotNil(t, r.Axes[1].LevelRaw)
	assert.Equal(t, "Pas démarré", *r.Axes[1].LevelRaw)
	assert.Equal(t, 4, *r.Axes[2].Level)
	assert.Nil(t, r.Axes[3].LevelRaw)

	// An interior blank row is still a respondent, with every answer empty.
	empty := out.Responses[1]
	assert.Equal(t, "response_001", empty.ID)
	assert.Equal(t, "", empty.Group)
	for _, a := range empty.Axes {
		assert.Nil(t, a.LevelRaw)
		assert.Nil(t, a.Level)
	}

	assert.Equal(t, "response_002", out.Responses[2].ID)
	assert.Equal(t, "", out.Responses[2].Revenue)
	assert.Equal(t, 0, *out.Responses[2].Axes[0].Level)
}

func TestTransformDropsTrailingBlankRows(t *testing.T) {
	table := &Table{
		Header: []string{GroupColumn, survey.Axes[0].LevelColumn()},
		Rows:   [][]string{{"A", "N1"}, {"", ""}, {"B", "N3"}, {" ", ""}, {}},
	}
	out := Transform(table)
	assert.Equal(t, 2, out.Blank)
	require.Len(t, out.Responses, 3)
	assert.Equal(t, "response_002", out.Responses[2].ID)
	assert.Equal(t, "B", out.Responses[2].Group)
}

func TestTransformReportsMissingColumns(t *testing.T) {
	table := &Table{
		Header: []string{GroupColumn, survey.Axes[0].LevelColumn()},
		Rows:   [][]string{{"A", "N1"}, {"B"}},
	}
	out := Transform(table)
	assert.Len(t, out.Missing, len(ExpectedColumns())-2)
	assert.NotContains(t, out.Missing, GroupColumn)
	require.Len(t, out.Responses, 2)
	assert.Equal(t, 1, *out.Responses[0].Axes[0].Level)
	assert.Nil(t, out.Responses[1].Axes[0].LevelRaw)
	assert.Equal(t, "", out.Responses[1].Revenue)
}

func TestReadTableErrors(t *testing.T) {
	_, err := ReadTable(reader(workbook(t, "Autre", sheetRows())), SheetName)
	assert.Error(t, err)

	_, err = ReadTable(reader([]byte("not a workbook")), SheetName)
	assert.Error(t, err)

	_, err = ReadTable(reader(workbook(t, SheetName, nil)), SheetName)
	assert.Error(t, err)
}

func TestResponseID(t *testing.T) {
	assert.Equal(t, "response_000", ResponseID(0))
	assert.Equal(t, "response_042", ResponseID(42))
	assert.Equal(t, "response_1234", ResponseID(1234))
}
