package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/drawstat/internal/model"
)

func TestBuildReport(t *testing.T) {
	table := drawTable(
		[6]int{1, 2, 3, 4, 5, 6},
		[6]int{1, 2, 3, 4, 5, 6},
		[6]int{6, 7, 8, 9, 10, 1},
		[6]int{1, 7, 20, 30, 40, 2},
	)
	cfg := model.StatsConfig{
		Last:    3,
		TopN:    2,
		Numbers: []int{1, 6},
	}
	report, err := BuildReport(table, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Draws != 3 {
		t.Fatalf("expected 3 draws, got %d", report.Draws)
	}
	if !report.FirstDraw.Equal(table.Records[1].DrawDate) || !report.LastDraw.Equal(table.Records[3].DrawDate) {
		t.Fatalf("unexpected date range: %v - %v", report.FirstDraw, report.LastDraw)
	}
	if report.Frequencies.Total() != 15 {
		t.Fatalf("expected 15 observations, got %d", report.Frequencies.Total())
	}
	if len(report.Hot) != 2 || report.Hot[0] != 1 || report.Hot[1] != 7 {
		t.Fatalf("unexpected hot numbers: %v", report.Hot)
	}
	if len(report.Cold) != 2 || report.Cold[0] != 2 || report.Cold[1] != 3 {
		t.Fatalf("unexpected cold numbers: %v", report.Cold)
	}
	if len(report.Duplicates) != 0 {
		t.Fatalf("expected no duplicates inside the window, got %v", report.Duplicates)
	}
	if !report.HasTrend || report.TrendScore != 3.0/15.0 {
		t.Fatalf("unexpected trend score: %v", report.TrendScore)
	}
}

func TestBuildReportSince(t *testing.T) {
	table := drawTable(
		[6]int{1, 2, 3, 4, 5, 6},
		[6]int{1, 2, 3, 4, 5, 6},
		[6]int{6, 7, 8, 9, 10, 1},
	)
	since := table.Records[1].DrawDate.Add(-time.Hour)
	report, err := BuildReport(table, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Draws != 2 {
		t.Fatalf("expected 2 draws, got %d", report.Draws)
	}
	if len(report.Hot) != DefaultTopN {
		t.Fatalf("expected default top n, got %v", report.Hot)
	}
}

func TestBuildReportUnknownColumn(t *testing.T) {
	_, err := BuildReport(drawTable([6]int{1, 2, 3, 4, 5, 6}), model.StatsConfig{Columns: []string{"bogus"}})
	if err == nil {
		t.Fatalf("expected error for unknown column")
	}
}

func TestRenderReport(t *testing.T) {
	table := drawTable(
		[6]int{1, 2, 3, 4, 5, 6},
		[6]int{1, 2, 3, 4, 5, 6},
		[6]int{6, 7, 8, 9, 10, 1},
	)
	report, err := BuildReport(table, model.StatsConfig{Numbers: []int{1, 6}})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderReport(&buf, report); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Draws: 3 (2020-01-01 to 2020-01-07)",
		"Hot numbers: 1, 2, 3, 4, 5",
		"Cold numbers: 6, 7, 8, 9, 10",
		"Trend score for 1, 6: 20.00%",
		"01 02 03 04 05 + 06",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderReport(&buf, Report{}); err != nil {
		t.Fatalf("render report: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No draws found." {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderDuplicatesNone(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderDuplicates(&buf, nil); err != nil {
		t.Fatalf("render duplicates: %v", err)
	}
	if !strings.Contains(buf.String(), "No full duplicate combinations detected.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderRanking(t *testing.T) {
	freqs := model.FrequencyMap{1: 3, 6: 1, 2: 1}
	var buf bytes.Buffer
	if err := RenderRanking(&buf, []int{1, 6}, freqs); err != nil {
		t.Fatalf("render ranking: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d:\n%s", len(lines), buf.String())
	}
	if got := strings.Join(strings.Fields(lines[0]), " "); got != "Rank Number Count Share" {
		t.Fatalf("unexpected header: %q", got)
	}
	if got := strings.Join(strings.Fields(lines[1]), " "); got != "1 1 3 60.00%" {
		t.Fatalf("unexpected first row: %q", got)
	}
	if got := strings.Join(strings.Fields(lines[2]), " "); got != "2 6 1 20.00%" {
		t.Fatalf("unexpected second row: %q", got)
	}
}

func TestRenderRankingEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderRanking(&buf, nil, model.FrequencyMap{}); err != nil {
		t.Fatalf("render ranking: %v", err)
	}
	if buf.String() != "No frequencies found.\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
