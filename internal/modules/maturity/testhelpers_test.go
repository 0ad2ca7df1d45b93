package maturity

import "github.com/yungbote/maturity-backend/internal/domain/survey"

func strPtr(s string) *string { return &s }
func intPtr(v int) *int { return &v }

// respondent builds a response whose axis i has levels[i]; -1 means absent.
func respondent(id, group string, levels ...int) *survey.Response {
	r := &survey.Response{ID: id, Group: group}
	for i, lvl := range levels {
		if lvl >= 0 {
			r.Axes[i].Level = intPtr(lvl)
		}
	}
	return r
}
