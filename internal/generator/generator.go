// Package generator builds random quick picks.
package generator

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/verte-zerg/drawstat/internal/model"
)

// Pick is one generated combination.
type Pick struct {
	Numbers []int `json:"numbers"`
	Bonus   int   `json:"bonus"`
}

// Generator produces random picks.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick selects distinct main numbers and a bonus uniformly.
func (g *Generator) Pick(rules model.GameRules) (Pick, error) {
	return g.PickWeighted(rules, nil, 0)
}

// PickWeighted selects distinct main numbers with a bias toward numbers drawn
// more often. Each number n has weight 1 + factor*freqs[n]/max(freqs), so a zero
// factor or empty map is a uniform pick. The bonus is always uniform.
func (g *Generator) PickWeighted(rules model.GameRules, freqs model.FrequencyMap, factor float64) (Pick, error) {
	if err := validateRules(rules); err != nil {
		return Pick{}, err
	}
	if factor < 0 {
		return Pick{}, fmt.Errorf("weight factor must be >= 0")
	}

	maxCount := 0
	for _, c := range freqs {
		if c > maxCount {
			maxCount = c
		}
	}
	pool := make([]int, rules.MainMax)
	weights := make([]float64, rules.MainMax)
	for i := range pool {
		pool[i] = i + 1
		w := 1.0
		if maxCount > 0 {
			w += factor * float64(freqs[i+1]) / float64(maxCount)
		}
		weights[i] = w
	}

	numbers := make([]int, 0, rules.MainCount)
	for len(numbers) < rules.MainCount {
		idx := g.weightedIndex(weights)
		numbers = append(numbers, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
		weights = append(weights[:idx], weights[idx+1:]...)
	}
	sort.Ints(numbers)
	return Pick{Numbers: numbers, Bonus: g.rnd.Intn(rules.BonusMax) + 1}, nil
}

func (g *Generator) weightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := g.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}

func validateRules(rules model.GameRules) error {
	if rules.MainCount <= 0 {
		return fmt.Errorf("main count must be > 0")
	}
	if rules.MainMax < rules.MainCount {
		return fmt.Errorf("main pool (%d) is smaller than main count (%d)", rules.MainMax, rules.MainCount)
	}
	if rules.BonusMax <= 0 {
		return fmt.Errorf("bonus pool must be > 0")
	}
	return nil
}
