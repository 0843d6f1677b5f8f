// Package charts renders frequency data as interactive HTML charts.
package charts

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/verte-zerg/drawstat/internal/model"
	"github.com/verte-zerg/drawstat/internal/stats"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title    string
	Subtitle string
	Width    string
	Height   string
	Theme    string
	Color    string // bar color
	HotColor string // bar color for hot numbers
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Title:    "Number Frequencies",
		Width:    "1200px",
		Height:   "500px",
		Theme:    "light",
		Color:    "#5470C6",
		HotColor: "#EE6666",
	}
}

// RenderFrequencyChart writes an HTML bar chart with one bar per number.
// Bars for numbers in hot use the hot color.
func RenderFrequencyChart(w io.Writer, freqs model.FrequencyMap, hot []int, config ChartConfig) error {
	if len(freqs) == 0 {
		return fmt.Errorf("no frequencies to chart")
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Number",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Draws",
		}),
	)

	hotSet := make(map[int]struct{}, len(hot))
	for _, n := range hot {
		hotSet[n] = struct{}{}
	}
	entries := stats.SortedByNumber(freqs)
	labels := make([]string, len(entries))
	data := make([]opts.BarData, len(entries))
	for i, e := range entries {
		labels[i] = strconv.Itoa(e.Number)
		color := config.Color
		if _, ok := hotSet[e.Number]; ok {
			color = config.HotColor
		}
		data[i] = opts.BarData{
			Name:      labels[i],
			Value:     e.Count,
			ItemStyle: &opts.ItemStyle{Color: color},
		}
	}
	bar.SetXAxis(labels).AddSeries("Frequency", data)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// WriteFrequencyChart renders the chart into a file at outputPath.
func WriteFrequencyChart(outputPath string, freqs model.FrequencyMap, hot []int, config ChartConfig) (err error) {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close chart file: %w", cerr)
		}
	}()
	return RenderFrequencyChart(f, freqs, hot, config)
}
