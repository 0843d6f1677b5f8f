package stats

import (
	"fmt"
	"sort"

	"github.com/verte-zerg/drawstat/internal/model"
)

type numberCount struct {
	number int
	count  int
}

// TopN returns the n most frequent numbers, highest count first.
// Equal counts are ordered by ascending number.
func TopN(freqs model.FrequencyMap, n int) ([]int, error) {
	items, err := rankedItems(freqs, n)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count == items[j].count {
			return items[i].number < items[j].number
		}
		return items[i].count > items[j].count
	})
	return firstNumbers(items, n), nil
}

// BottomN returns the n least frequent numbers, lowest count first.
// Equal counts are ordered by ascending number, as in TopN.
func BottomN(freqs model.FrequencyMap, n int) ([]int, error) {
	items, err := rankedItems(freqs, n)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count == items[j].count {
			return items[i].number < items[j].number
		}
		return items[i].count < items[j].count
	})
	return firstNumbers(items, n), nil
}

func rankedItems(freqs model.FrequencyMap, n int) ([]numberCount, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n must be >= 0, got %d", ErrInvalidInput, n)
	}
	items := make([]numberCount, 0, len(freqs))
	for number, count := range freqs {
		items = append(items, numberCount{number: number, count: count})
	}
	return items, nil
}

func firstNumbers(items []numberCount, n int) []int {
	if n > len(items) {
		n = len(items)
	}
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].number)
	}
	return out
}

// SortedByNumber returns the map entries ordered by ascending number.
func SortedByNumber(freqs model.FrequencyMap) []NumberCount {
	out := make([]NumberCount, 0, len(freqs))
	for number, count := range freqs {
		out = append(out, NumberCount{Number: number, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})
	return out
}

// NumberCount is a single frequency map entry.
type NumberCount struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}
