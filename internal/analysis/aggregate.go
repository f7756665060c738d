package analysis

import (
	"math"
	"sort"

	"github.com/Lucas-Iglesia/Thesis-Carola/internal/experiment"
)

// FieldStats holds the descriptive statistics of one score field for one
// profile. Values keeps the raw series for re-analysis.
type FieldStats struct {
	Mean   float64   `json:"mean"`
	Median float64   `json:"median"`
	Stdev  float64   `json:"stdev"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Values []float64 `json:"values"`
}

// ProfileAggregate summarizes all outcomes of one profile. Score statistics
// cover successful outcomes only; a profile whose every attempt failed keeps
// its counts and an empty Scores map.
type ProfileAggregate struct {
	ProfileID       string                `json:"profile_id"`
	Description     string                `json:"description"`
	TotalIterations int                   `json:"total_iterations"`
	SuccessCount    int                   `json:"success_count"`
	ErrorCount      int                   `json:"error_count"`
	Scores          map[string]FieldStats `json:"scores"`
}

// MeanTotalScore returns the mean of the discrimination scoring field, when
// the profile has one.
func (a *ProfileAggregate) MeanTotalScore() (float64, bool) {
	stats, ok := a.Scores[experiment.TotalScoreField]
	if !ok {
		return 0, false
	}
	return stats.Mean, true
}

// Aggregate groups outcomes by profile and computes per-field statistics.
// The returned slice is ordered by first appearance in the result, making
// repeated aggregation of the same result identical.
func Aggregate(result *experiment.Result) []*ProfileAggregate {
	order := make([]string, 0)
	byProfile := make(map[string]*ProfileAggregate)
	series := make(map[string]map[string][]float64)

	for _, outcome := range result.Results {
		aggregate, seen := byProfile[outcome.ProfileID]
		if !seen {
			aggregate = &ProfileAggregate{
				ProfileID:   outcome.ProfileID,
				Description: outcome.ProfileDescription,
				Scores:      make(map[string]FieldStats),
			}
			byProfile[outcome.ProfileID] = aggregate
			series[outcome.ProfileID] = make(map[string][]float64)
			order = append(order, outcome.ProfileID)
		}

		aggregate.TotalIterations++

		if !outcome.Success {
			aggregate.ErrorCount++
			continue
		}

		aggregate.SuccessCount++

		for name := range outcome.Scores {
			// Non-numeric and null fields are skipped, not fatal.
			if value, ok := outcome.Scores.Numeric(name); ok {
				series[outcome.ProfileID][name] = append(series[outcome.ProfileID][name], value)
			}
		}
	}

	aggregates := make([]*ProfileAggregate, 0, len(order))
	for _, id := range order {
		aggregate := byProfile[id]
		for name, values := range series[id] {
			aggregate.Scores[name] = computeStats(values)
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates
}

// computeStats derives the five descriptive statistics for a non-empty
// series. Sample standard deviation uses the n-1 estimator and is exactly 0
// for a single-value series.
func computeStats(values []float64) FieldStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var stdev float64
	if len(values) > 1 {
		var squares float64
		for _, v := range values {
			squares += (v - mean) * (v - mean)
		}
		stdev = math.Sqrt(squares / float64(len(values)-1))
	}

	return FieldStats{
		Mean:   mean,
		Median: median(sorted),
		Stdev:  stdev,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Values: values,
	}
}

// median expects a sorted series.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
