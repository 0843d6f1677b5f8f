package stats

import (
	"time"

	"github.com/verte-zerg/drawstat/internal/model"
)

// DefaultTopN is the size of the hot and cold lists when none is configured.
const DefaultTopN = 5

// Report contains precomputed data for rendering.
type Report struct {
	Draws       int
	FirstDraw   time.Time
	LastDraw    time.Time
	Columns     []string
	Frequencies model.FrequencyMap
	Summary     FrequencySummary
	Hot         []int
	Cold        []int
	Duplicates  []model.DuplicateEntry
	Numbers     []int
	TrendScore  float64
	HasTrend    bool
}

// BuildReport filters the table and computes every statistic for display.
func BuildReport(table model.DrawTable, cfg model.StatsConfig) (Report, error) {
	table = table.Window(cfg.Since, cfg.Last)
	columns := cfg.Columns
	if len(columns) == 0 {
		columns = model.MainColumns
	}
	topN := cfg.TopN
	if topN == 0 {
		topN = DefaultTopN
	}

	freqs, err := ComputeFrequencies(table, columns)
	if err != nil {
		return Report{}, err
	}
	report := Report{
		Draws:       table.Len(),
		Columns:     columns,
		Frequencies: freqs,
	}
	if table.Len() > 0 {
		report.FirstDraw = table.Records[0].DrawDate
		report.LastDraw = table.Records[table.Len()-1].DrawDate
	}

	if report.Hot, err = TopN(freqs, topN); err != nil {
		return Report{}, err
	}
	if report.Cold, err = BottomN(freqs, topN); err != nil {
		return Report{}, err
	}
	if len(freqs) > 0 {
		if report.Summary, err = Summarize(freqs); err != nil {
			return Report{}, err
		}
	}
	if report.Duplicates, err = FindDuplicateCombinations(table); err != nil {
		return Report{}, err
	}
	if len(cfg.Numbers) > 0 && len(freqs) > 0 {
		score, err := TrendScore(cfg.Numbers, freqs)
		if err != nil {
			return Report{}, err
		}
		report.Numbers = append([]int(nil), cfg.Numbers...)
		report.TrendScore = score
		report.HasTrend = true
	}
	return report, nil
}
