package maturity

import (
	"sort"

	"github.com/yungbote/maturity-backend/internal/domain/survey"
)

// FilterOptions lists the distinct non-empty values of each dimension.
type FilterOptions struct {
	Groups       []string `json:"groupes"`
	Revenues     []string `json:"tranches_ca"`
	Headcounts   []string `json:"effectifs_entreprise"`
	ITHeadcounts []string `json:"effectifs_dsi"`
}

func ComputeFilterOptions(responses []*survey.Response) FilterOptions {
	return FilterOptions{
		Groups:       DistinctValues(responses, survey.DimensionGroup),
		Revenues:     DistinctValues(responses, survey.DimensionRevenue),
		Headcounts:   DistinctValues(responses, survey.DimensionHeadcount),
		ITHeadcounts: DistinctValues(responses, survey.DimensionITHeadcount),
	}
}

// DistinctValues returns the sorted set of non-empty values for dim.
func DistinctValues(responses []*survey.Response, dim survey.Dimension) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range responses {
		v := dim.Value(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
