package stats

import (
	"fmt"

	"github.com/verte-zerg/drawstat/internal/model"
)

// TrendScore returns the share of all scanned observations taken by the given
// numbers: sum(freqs[n]) / sum(freqs). Numbers never drawn contribute zero and
// repeated numbers are counted each time.
//
// This is a historical-frequency trend score. Draws are independent, so it says
// nothing about the odds of a future draw.
func TrendScore(numbers []int, freqs model.FrequencyMap) (float64, error) {
	total := freqs.Total()
	if total == 0 {
		return 0, fmt.Errorf("%w: frequency map has no observations", ErrInvalidState)
	}
	hits := 0
	for _, n := range numbers {
		hits += freqs[n]
	}
	return float64(hits) / float64(total), nil
}
