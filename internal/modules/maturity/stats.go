package maturity

import (
	"math"

	"github.com/yungbote/maturity-backend/internal/domain/survey"
)

// AxisStats summarizes the extracted levels of one axis.
type AxisStats struct {
	Mean         float64     `json:"moyenne"`
	Min          int         `json:"min"`
	Max          int         `json:"max"`
	Distribution map[int]int `json:"distribution"`
}

// GlobalAxisStats adds the sample standard deviation, nil for a single value.
type GlobalAxisStats struct {
	AxisStats
	StdDev *float64 `json:"ecart_type"`
}

type GlobalStats struct {
	TotalResponses int                        `json:"total_responses"`
	Axes           map[string]GlobalAxisStats `json:"axes"`
}

type GroupStats struct {
	Count int                  `json:"count"`
	Axes  map[string]AxisStats `json:"axes"`
}

// ComputeGlobalStats aggregates every axis over all responses. Axes without
// any extracted level are left out.
func ComputeGlobalStats(responses []*survey.Response) GlobalStats {
	out := GlobalStats{
		TotalResponses: len(responses),
		Axes:           make(map[string]GlobalAxisStats, survey.AxisCount),
	}
	for i, axis := range survey.Axes {
		levels := axisLevels(responses, i)
		if len(levels) == 0 {
			continue
		}
		out.Axes[axis.Short] = GlobalAxisStats{
			AxisStats: summarize(levels),
			StdDev:    sampleStdDev(levels),
		}
	}
	return out
}

// ComputeStatsByGroup partitions responses by dimension value. Responses with
// an empty value belong to no group.
func ComputeStatsByGroup(responses []*survey.Response, dim survey.Dimension) map[string]GroupStats {
	partitions := map[string][]*survey.Response{}
	for _, r := range responses {
		key := dim.Value(r)
		if key == "" {
			continue
		}
		partitions[key] = append(partitions[key], r)
	}

	out := make(map[string]GroupStats, len(partitions))
	for key, members := range partitions {
		out[key] = GroupStats{
			Count: len(members),
			Axes:  axesStats(members),
		}
	}
	return out
}

func axesStats(responses []*survey.Response) map[string]AxisStats {
	out := make(map[string]AxisStats, survey.AxisCount)
	for i, axis := range survey.Axes {
		levels := axisLevels(responses, i)
		if len(levels) == 0 {
			continue
		}
		out[axis.Short] = summarize(levels)
	}
	return out
}

func axisLevels(responses []*survey.Response, axis int) []int {
	levels := make([]int, 0, len(responses))
	for _, r := range responses {
		if r == nil || r.Axes[axis].Level == nil {
			continue
		}
		levels = append(levels, *r.Axes[axis].Level)
	}
	return levels
}

// summarize requires at least one value.
func summarize(levels []int) AxisStats {
	st := AxisStats{
		Min:          levels[0],
		Max:          levels[0],
		Distribution: map[int]int{},
	}
	sum := 0.0
	for _, v := range levels {
		sum += float64(v)
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
		st.Distribution[v]++
	}
	st.Mean = round(sum/float64(len(levels)), 2)
	return st
}

// sampleStdDev uses n-1 degrees of freedom; it is undefined below two values.
func sampleStdDev(levels []int) *float64 {
	if len(levels) < 2 {
		return nil
	}
	var sum float64
	for _, v := range levels {
		sum += float64(v)
	}
	mean := sum / float64(len(levels))
	var ss float64
	for _, v := range levels {
		d := float64(v) - mean
		ss += d * d
	}
	sd := round(math.Sqrt(ss/float64(len(levels)-1)), 2)
	return &sd
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
