package generator

import (
	"sort"
	"testing"

	"github.com/verte-zerg/drawstat/internal/model"
)

func TestPickProducesDistinctSortedNumbers(t *testing.T) {
	g := NewWithSeed(42)
	rules := model.PowerballRules()
	for i := 0; i < 200; i++ {
		pick, err := g.Pick(rules)
		if err != nil {
			t.Fatalf("pick: %v", err)
		}
		if len(pick.Numbers) != rules.MainCount {
			t.Fatalf("expected %d numbers, got %v", rules.MainCount, pick.Numbers)
		}
		if !sort.IntsAreSorted(pick.Numbers) {
			t.Fatalf("expected sorted numbers, got %v", pick.Numbers)
		}
		seen := map[int]bool{}
		for _, n := range pick.Numbers {
			if n < 1 || n > rules.MainMax {
				t.Fatalf("number %d out of range", n)
			}
			if seen[n] {
				t.Fatalf("duplicate number in %v", pick.Numbers)
			}
			seen[n] = true
		}
		if pick.Bonus < 1 || pick.Bonus > rules.BonusMax {
			t.Fatalf("bonus %d out of range", pick.Bonus)
		}
	}
}

func TestPickWeightedFavorsFrequentNumbers(t *testing.T) {
	g := NewWithSeed(7)
	rules := model.GameRules{MainCount: 1, MainMax: 10, BonusMax: 1}
	freqs := model.FrequencyMap{3: 100}
	hits := 0
	const rounds = 2000
	for i := 0; i < rounds; i++ {
		pick, err := g.PickWeighted(rules, freqs, 50)
		if err != nil {
			t.Fatalf("pick: %v", err)
		}
		if pick.Numbers[0] == 3 {
			hits++
		}
	}
	// Number 3 has weight 51 against 9 others at weight 1.
	if hits < rounds/2 {
		t.Fatalf("expected weighted number to dominate, got %d/%d", hits, rounds)
	}
}

func TestPickUsesWholePool(t *testing.T) {
	g := NewWithSeed(1)
	rules := model.GameRules{MainCount: 5, MainMax: 5, BonusMax: 1}
	pick, err := g.Pick(rules)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	for i, n := range pick.Numbers {
		if n != i+1 {
			t.Fatalf("expected 1..5, got %v", pick.Numbers)
		}
	}
}

func TestPickRejectsInvalidRules(t *testing.T) {
	g := NewWithSeed(1)
	for _, rules := range []model.GameRules{
		{MainCount: 0, MainMax: 10, BonusMax: 1},
		{MainCount: 6, MainMax: 5, BonusMax: 1},
		{MainCount: 1, MainMax: 5, BonusMax: 0},
	} {
		if _, err := g.Pick(rules); err == nil {
			t.Fatalf("expected error for rules %+v", rules)
		}
	}
	if _, err := g.PickWeighted(model.PowerballRules(), nil, -1); err == nil {
		t.Fatalf("expected error for negative factor")
	}
}
