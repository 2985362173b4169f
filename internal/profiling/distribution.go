package profiling

import (
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// NumericSummary describes the values of a number field
type NumericSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	Sum    float64 `json:"sum"`
	StdDev float64 `json:"stdDev"`
}

// summarizeNumbers computes the numeric summary; data must not be empty
func summarizeNumbers(data []float64) (*NumericSummary, error) {
	summary := &NumericSummary{}
	var err error

	if summary.Min, err = stats.Min(data); err != nil {
		return nil, err
	}
	if summary.Max, err = stats.Max(data); err != nil {
		return nil, err
	}
	if summary.Mean, err = stats.Mean(data); err != nil {
		return nil, err
	}
	if summary.Median, err = stats.Median(data); err != nil {
		return nil, err
	}
	if summary.Sum, err = stats.Sum(data); err != nil {
		return nil, err
	}
	if summary.StdDev, err = stats.StandardDeviation(data); err != nil {
		return nil, err
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	summary.Q1 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	summary.Q3 = stat.Quantile(0.75, stat.Empirical, sorted, nil)

	return summary, nil
}
