package stats

import (
	"fmt"

	descstats "github.com/montanaflynn/stats"

	"github.com/verte-zerg/drawstat/internal/model"
)

// FrequencySummary describes the spread of per-number counts.
type FrequencySummary struct {
	Distinct     int     `json:"distinct"`
	Observations int     `json:"observations"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
}

// Summarize computes descriptive statistics over the counts in freqs.
func Summarize(freqs model.FrequencyMap) (FrequencySummary, error) {
	if len(freqs) == 0 {
		return FrequencySummary{}, fmt.Errorf("%w: frequency map is empty", ErrInvalidState)
	}
	entries := SortedByNumber(freqs)
	counts := make([]float64, len(entries))
	for i, e := range entries {
		counts[i] = float64(e.Count)
	}

	mean, err := descstats.Mean(counts)
	if err != nil {
		return FrequencySummary{}, fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := descstats.Median(counts)
	if err != nil {
		return FrequencySummary{}, fmt.Errorf("failed to compute median: %w", err)
	}
	stdDev, err := descstats.StandardDeviation(counts)
	if err != nil {
		return FrequencySummary{}, fmt.Errorf("failed to compute standard deviation: %w", err)
	}
	minVal, err := descstats.Min(counts)
	if err != nil {
		return FrequencySummary{}, fmt.Errorf("failed to compute min: %w", err)
	}
	maxVal, err := descstats.Max(counts)
	if err != nil {
		return FrequencySummary{}, fmt.Errorf("failed to compute max: %w", err)
	}

	return FrequencySummary{
		Distinct:     len(freqs),
		Observations: freqs.Total(),
		Mean:         mean,
		Median:       median,
		StdDev:       stdDev,
		Min:          minVal,
		Max:          maxVal,
	}, nil
}
