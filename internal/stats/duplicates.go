package stats

import (
	"fmt"
	"sort"

	"github.com/verte-zerg/drawstat/internal/model"
)

type combination struct {
	numbers [5]int
	bonus   int
}

// FindDuplicateCombinations returns every full combination (five main numbers in
// recorded order plus the bonus) drawn more than once, most frequent first.
// Equal counts are ordered lexicographically by combination.
func FindDuplicateCombinations(table model.DrawTable) ([]model.DuplicateEntry, error) {
	if err := requireColumns(table, model.CombinationColumns); err != nil {
		return nil, fmt.Errorf("duplicate detection: %w", err)
	}
	counts := make(map[combination]int, len(table.Records))
	for _, rec := range table.Records {
		counts[combination{numbers: rec.Numbers, bonus: rec.Bonus}]++
	}

	out := []model.DuplicateEntry{}
	for combo, count := range counts {
		if count <= 1 {
			continue
		}
		out = append(out, model.DuplicateEntry{Numbers: combo.numbers, Bonus: combo.bonus, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return combinationLess(out[i], out[j])
	})
	return out, nil
}

func combinationLess(a, b model.DuplicateEntry) bool {
	for k := range a.Numbers {
		if a.Numbers[k] != b.Numbers[k] {
			return a.Numbers[k] < b.Numbers[k]
		}
	}
	return a.Bonus < b.Bonus
}
