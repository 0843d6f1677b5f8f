// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/drawstat/internal/model"
)

const dateLayout = "2006-01-02"

// FormatNumbers renders numbers as a comma-separated list.
func FormatNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// FormatCombination renders a full combination as "n1 n2 n3 n4 n5 + PB".
func FormatCombination(numbers [5]int, bonus int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return fmt.Sprintf("%s + %02d", strings.Join(parts, " "), bonus)
}

// FormatScore renders a trend score as a percentage.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f%%", score*100)
}

// RenderReport prints the summary, hot/cold lists, trend score and duplicates.
func RenderReport(w io.Writer, report Report) error {
	if report.Draws == 0 {
		_, err := fmt.Fprintln(w, "No draws found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Draws: %s (%s to %s)", humanize.Comma(int64(report.Draws)),
			report.FirstDraw.Format(dateLayout), report.LastDraw.Format(dateLayout)),
		fmt.Sprintf("Columns: %s", strings.Join(report.Columns, ", ")),
		fmt.Sprintf("Distinct numbers: %d", report.Summary.Distinct),
		fmt.Sprintf("Count mean/median: %.2f / %.2f", report.Summary.Mean, report.Summary.Median),
		fmt.Sprintf("Count std dev: %.2f (min %.0f, max %.0f)", report.Summary.StdDev, report.Summary.Min, report.Summary.Max),
		"",
		fmt.Sprintf("Hot numbers: %s", FormatNumbers(report.Hot)),
		fmt.Sprintf("Cold numbers: %s", FormatNumbers(report.Cold)),
		"",
	}
	if report.HasTrend {
		lines = append(lines,
			fmt.Sprintf("Trend score for %s: %s", FormatNumbers(report.Numbers), FormatScore(report.TrendScore)),
			"(share of past observations; not a probability)",
			"",
		)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return RenderDuplicates(w, report.Duplicates)
}

// RenderFrequencyTable prints every number with its count and share.
func RenderFrequencyTable(w io.Writer, freqs model.FrequencyMap) error {
	if len(freqs) == 0 {
		_, err := fmt.Fprintln(w, "No frequencies found.")
		return err
	}
	total := freqs.Total()
	headers := []string{"Number", "Count", "Share"}
	rows := make([][]string, 0, len(freqs))
	for _, e := range SortedByNumber(freqs) {
		rows = append(rows, []string{
			strconv.Itoa(e.Number),
			humanize.Comma(int64(e.Count)),
			FormatScore(float64(e.Count) / float64(total)),
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{0: true, 1: true, 2: true}))
}

// RenderRanking prints ranked numbers with their counts and share of observations.
func RenderRanking(w io.Writer, numbers []int, freqs model.FrequencyMap) error {
	if len(numbers) == 0 {
		_, err := fmt.Fprintln(w, "No frequencies found.")
		return err
	}
	total := freqs.Total()
	headers := []string{"Rank", "Number", "Count", "Share"}
	rows := make([][]string, 0, len(numbers))
	for i, n := range numbers {
		share := 0.0
		if total > 0 {
			share = float64(freqs[n]) / float64(total)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(n),
			humanize.Comma(int64(freqs[n])),
			FormatScore(share),
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{0: true, 1: true, 2: true, 3: true}))
}

// RenderDuplicates prints combinations drawn more than once.
func RenderDuplicates(w io.Writer, dups []model.DuplicateEntry) error {
	if len(dups) == 0 {
		_, err := fmt.Fprintln(w, "No full duplicate combinations detected.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Combinations drawn more than once:"); err != nil {
		return err
	}
	headers := []string{"Combination", "Times"}
	rows := make([][]string, 0, len(dups))
	for _, d := range dups {
		rows = append(rows, []string{FormatCombination(d.Numbers, d.Bonus), strconv.Itoa(d.Count)})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{1: true}))
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
