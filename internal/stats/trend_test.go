package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/verte-zerg/drawstat/internal/model"
)

func TestTrendScore(t *testing.T) {
	freqs := model.FrequencyMap{1: 4, 2: 3, 3: 2, 4: 1}

	tests := []struct {
		name    string
		numbers []int
		want    float64
	}{
		{name: "empty selection", numbers: nil, want: 0},
		{name: "single number", numbers: []int{1}, want: 0.4},
		{name: "never drawn", numbers: []int{42}, want: 0},
		{name: "mixed", numbers: []int{2, 42, 4}, want: 0.4},
		{name: "repeats count each time", numbers: []int{3, 3}, want: 0.4},
		{name: "all numbers", numbers: []int{1, 2, 3, 4}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TrendScore(tt.numbers, freqs)
			if err != nil {
				t.Fatalf("trend score: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("expected %.4f, got %.4f", tt.want, got)
			}
		})
	}
}

func TestTrendScoreEmptyFrequencies(t *testing.T) {
	for _, freqs := range []model.FrequencyMap{{}, nil, {1: 0}} {
		if _, err := TrendScore([]int{1, 2}, freqs); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("frequencies %v: expected ErrInvalidState, got %v", freqs, err)
		}
	}
}
