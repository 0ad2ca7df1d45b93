package maturity

import (
	"math"

	"github.com/yungbote/maturity-backend/internal/domain/survey"
)

const (
	// StrongCorrelationThreshold is exclusive: |r| must be greater.
	StrongCorrelationThreshold = 0.5

	InsufficientCorrelationData = "Pas assez de données pour calculer les corrélations"

	minAxisObservations = 2
)

type StrongCorrelation struct {
	Axis1       string  `json:"axe1"`
	Axis2       string  `json:"axe2"`
	Correlation float64 `json:"correlation"`
}

// CorrelationReport is either a matrix or, when Insufficient is set, a
// reason why none could be computed.
type CorrelationReport struct {
	Matrix             map[string]map[string]float64 `json:"matrix"`
	Labels             []string                      `json:"labels"`
	StrongCorrelations []StrongCorrelation           `json:"strong_correlations"`

	Insufficient bool   `json:"-"`
	Reason       string `json:"-"`
}

type pairAcc struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (p *pairAcc) add(x, y float64) {
	p.n++
	p.sumX += x
	p.sumY += y
	p.sumXX += x * x
	p.sumYY += y * y
	p.sumXY += x * y
}

// pearson returns 0 wherever the coefficient is undefined.
func (p *pairAcc) pearson() float64 {
	if p.n < 2 {
		return 0
	}
	num := p.n*p.sumXY - p.sumX*p.sumY
	den := math.Sqrt((p.n*p.sumXX - p.sumX*p.sumX) * (p.n*p.sumYY - p.sumY*p.sumY))
	if den == 0 {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// ComputeCorrelations builds the pairwise-complete Pearson matrix over the
// axes that have at least two observed levels.
func ComputeCorrelations(responses []*survey.Response) CorrelationReport {
	usable := make([]int, 0, survey.AxisCount)
	for i := range survey.Axes {
		if len(axisLevels(responses, i)) >= minAxisObservations {
			usable = append(usable, i)
		}
	}
	if len(usable) < 2 {
		return CorrelationReport{Insufficient: true, Reason: InsufficientCorrelationData}
	}

	k := len(usable)
	accs := make([]pairAcc, k*k)
	for _, r := range responses {
		if r == nil {
			continue
		}
		for a := 0; a < k; a++ {
			x := r.Axes[usable[a]].Level
			if x == nil {
				continue
			}
			for b := a; b < k; b++ {
				y := r.Axes[usable[b]].Level
				if y == nil {
					continue
				}
				accs[a*k+b].add(float64(*x), float64(*y))
			}
		}
	}

	report := CorrelationReport{
		Matrix:             make(map[string]map[string]float64, k),
		Labels:             make([]string, 0, k),
		StrongCorrelations: []StrongCorrelation{},
	}
	for _, idx := range usable {
		short := survey.Axes[idx].Short
		report.Labels = append(report.Labels, short)
		report.Matrix[short] = make(map[string]float64, k)
	}
	for a := 0; a < k; a++ {
		for b := a; b < k; b++ {
			r := accs[a*k+b].pearson()
			la, lb := report.Labels[a], report.Labels[b]
			rounded := round(r, 3)
			report.Matrix[la][lb] = rounded
			report.Matrix[lb][la] = rounded
			if a < b && math.Abs(r) > StrongCorrelationThreshold {
				report.StrongCorrelations = append(report.StrongCorrelations, StrongCorrelation{
					Axis1:       la,
					Axis2:       lb,
					Correlation: rounded,
				})
			}
		}
	}
	return report
}
