package maturity

import (
	"bytes"
	"encoding/json"

	"github.com/yungbote/maturity-backend/internal/domain/survey"
)

type NoteSummary struct {
	Count     int          `json:"count"`
	Responses []string     `json:"responses"`
	Themes    ThemeBuckets `json:"themes"`
}

type AxisNotes struct {
	Axis       string      `json:"-"`
	LongName   string      `json:"axe_complet"`
	Strengths  NoteSummary `json:"forces"`
	Weaknesses NoteSummary `json:"faiblesses"`
}

// StrengthsWeaknesses holds one entry per axis in catalog order and encodes
// as an object keyed by short axis name.
type StrengthsWeaknesses []AxisNotes

func (s StrengthsWeaknesses) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, notes := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(notes.Axis)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(notes)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ComputeStrengthsWeaknesses collects every present note per axis, in
// response order, and groups them with the catalog.
func ComputeStrengthsWeaknesses(responses []*survey.Response, themes ThemeCatalog) StrengthsWeaknesses {
	out := make(StrengthsWeaknesses, 0, survey.AxisCount)
	for i, axis := range survey.Axes {
		var strengths, weaknesses []string
		for _, r := range responses {
			if r == nil {
				continue
			}
			if s := r.Axes[i].Strength; s != nil {
				strengths = append(strengths, *s)
			}
			if w := r.Axes[i].Weakness; w != nil {
				weaknesses = append(weaknesses, *w)
			}
		}
		out = append(out, AxisNotes{
			Axis:       axis.Short,
			LongName:   axis.Long,
			Strengths:  summarizeNotes(strengths, themes),
			Weaknesses: summarizeNotes(weaknesses, themes),
		})
	}
	return out
}

func summarizeNotes(texts []string, themes ThemeCatalog) NoteSummary {
	if texts == nil {
		texts = []string{}
	}
	return NoteSummary{
		Count:     len(texts),
		Responses: texts,
		Themes:    themes.Classify(texts),
	}
}
