package migration

import (
	"fmt"
	"strings"

	"github.com/yungbote/maturity-backend/internal/domain/survey"
	"github.com/yungbote/maturity-backend/internal/modules/maturity"
)

// Respondent metadata headers.
const (
	GroupColumn       = "Dans quel groupe ton entreprise se situe-t-elle ?"
	RevenueColumn     = "Tranche de chiffre d'affaires"
	HeadcountColumn   = "Effectif de l'entreprise"
	ITHeadcountColumn = "Effectif de la DSI"
)

// ExpectedColumns lists every header the transform reads.
func ExpectedColumns() []string {
	cols := []string{GroupColumn, RevenueColumn, HeadcountColumn, ITHeadcountColumn}
	for _, a := range survey.Axes {
		cols = append(cols, a.LevelColumn(), a.StrengthColumn(), a.WeaknessColumn())
	}
	return cols
}

// ResponseID formats the id of the data row at 0-based index idx.
func ResponseID(idx int) string {
	return fmt.Sprintf("response_%03d", idx)
}

type Transformed struct {
	Responses []*survey.Response
	// Missing lists expected headers absent from the sheet; they read as empty.
	Missing []string
	// Blank counts all-empty rows dropped from the end of the sheet. Interior
	// blank rows are kept as empty responses.
	Blank int
}

// Transform converts every data row up to the last non-blank one into a
// response. Ids follow the sheet position.
func Transform(t *Table) Transformed {
	cols := t.Columns()
	out := Transformed{Responses: make([]*survey.Response, 0, len(t.Rows))}
	for _, c := range ExpectedColumns() {
		if _, ok := cols[c]; !ok {
			out.Missing = append(out.Missing, c)
		}
	}

	rows := t.Rows
	for len(rows) > 0 && blankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
		out.Blank++
	}

	for idx, row := range rows {
		cell := func(name string) *string {
			i, ok := cols[name]
			if !ok || i >= len(row) || row[i] == "" {
				return nil
			}
			v := row[i]
			return &v
		}
		text := func(name string) string {
			if v := cell(name); v != nil {
				return *v
			}
			return ""
		}

		r := &survey.Response{
			ID:          ResponseID(idx),
			Group:       text(GroupColumn),
			Revenue:     text(RevenueColumn),
			Headcount:   text(HeadcountColumn),
			ITHeadcount: text(ITHeadcountColumn),
		}
		for i, axis := range survey.Axes {
			raw := cell(axis.LevelColumn())
			r.Axes[i] = survey.AxisAnswer{
				LevelRaw: raw,
				Level:    maturity.ExtractLevelPtr(raw),
				Strength: cell(axis.StrengthColumn()),
				Weakness: cell(axis.WeaknessColumn()),
			}
		}
		out.Responses = append(out.Responses, r)
	}
	return out
}

// blankRow reports whether every cell is empty or whitespace.
func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
