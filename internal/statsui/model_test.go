package statsui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/drawstat/internal/model"
)

func sampleTable(combos ...[6]int) model.DrawTable {
	base := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	table := model.DrawTable{Columns: model.StandardColumns()}
	for i, c := range combos {
		table.Records = append(table.Records, model.DrawRecord{
			DrawDate: base.AddDate(0, 0, 3*i),
			Numbers:  [5]int{c[0], c[1], c[2], c[3], c[4]},
			Bonus:    c[5],
		})
	}
	return table
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newSizedModel(t *testing.T, load Loader) *Model {
	t.Helper()
	table := sampleTable(
		[6]int{5, 12, 23, 34, 45, 10},
		[6]int{5, 12, 23, 34, 45, 10},
		[6]int{5, 8, 15, 22, 30, 3},
	)
	m := NewModel(table, load, model.StatsConfig{TopN: 2})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestNewModelBuildsReport(t *testing.T) {
	m := newSizedModel(t, nil)
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if m.report.Draws != 3 {
		t.Fatalf("expected 3 draws, got %d", m.report.Draws)
	}
	if got := m.report.Hot; len(got) != 2 || got[0] != 5 || got[1] != 12 {
		t.Fatalf("unexpected hot numbers: %v", got)
	}
	if len(m.report.Duplicates) != 1 {
		t.Fatalf("expected one duplicate, got %d", len(m.report.Duplicates))
	}
	view := m.View()
	if !strings.Contains(view, "Overview") || !strings.Contains(view, "Frequencies") {
		t.Fatalf("expected tabs in view, got:\n%s", view)
	}
}

func TestRenderOverview(t *testing.T) {
	m := newSizedModel(t, nil)
	out := renderOverview(m.report, 100)
	for _, want := range []string{"Hot numbers:  5, 12", "Cold numbers: 8, 15", "Press / to score your numbers."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in overview, got:\n%s", want, out)
		}
	}
}

func TestRenderOverviewEmpty(t *testing.T) {
	m := NewModel(sampleTable(), nil, model.StatsConfig{})
	if got := renderOverview(m.report, 80); got != "No draws found." {
		t.Fatalf("unexpected empty overview: %q", got)
	}
}

func TestNumberInputInvalid(t *testing.T) {
	m := newSizedModel(t, nil)
	m.Update(keyRunes("/"))
	if !m.numberInputMode {
		t.Fatalf("expected number input to open")
	}
	m.Update(keyRunes("abc"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.numberInputMode {
		t.Fatalf("expected number input to stay open on invalid input")
	}
	if m.numberInputError != invalidNumbersMsg {
		t.Fatalf("unexpected error: %q", m.numberInputError)
	}
	if !strings.Contains(m.View(), invalidNumbersMsg) {
		t.Fatalf("expected error message in view")
	}
	if m.report.HasTrend {
		t.Fatalf("trend must not be computed from invalid input")
	}
}

func TestNumberInputScoresTrend(t *testing.T) {
	m := newSizedModel(t, nil)
	m.Update(keyRunes("/"))
	m.Update(keyRunes("5, 8"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.numberInputMode {
		t.Fatalf("expected number input to close")
	}
	if !m.report.HasTrend {
		t.Fatalf("expected trend score")
	}
	if want := 4.0 / 15.0; m.report.TrendScore != want {
		t.Fatalf("expected trend score %v, got %v", want, m.report.TrendScore)
	}

	m.Update(keyRunes("/"))
	m.numberInput.SetValue("")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.report.HasTrend {
		t.Fatalf("expected empty input to clear the trend")
	}
}

func TestParseNumberInput(t *testing.T) {
	if _, err := parseNumberInput("1, 0"); err == nil {
		t.Fatalf("expected error for zero")
	}
	got, err := parseNumberInput("  ")
	if err != nil || got != nil {
		t.Fatalf("expected empty selection, got %v, %v", got, err)
	}
}

func TestTopAdjust(t *testing.T) {
	m := newSizedModel(t, nil)
	m.Update(keyRunes("="))
	if len(m.report.Hot) != 3 {
		t.Fatalf("expected 3 hot numbers, got %v", m.report.Hot)
	}
	m.Update(keyRunes("-"))
	m.Update(keyRunes("-"))
	m.Update(keyRunes("-"))
	if m.cfg.TopN != 1 {
		t.Fatalf("expected top to stop at 1, got %d", m.cfg.TopN)
	}
}

func TestMoveTabWraps(t *testing.T) {
	m := newSizedModel(t, nil)
	m.Update(keyRunes("h"))
	if m.activeTab != tabDuplicates {
		t.Fatalf("expected duplicates tab, got %d", m.activeTab)
	}
	if !strings.Contains(m.View(), "Combination") {
		t.Fatalf("expected duplicates table in view")
	}
	m.Update(keyRunes("l"))
	if m.activeTab != tabOverview {
		t.Fatalf("expected overview tab, got %d", m.activeTab)
	}
}

func TestApplyFilterRejectsUnknownColumn(t *testing.T) {
	m := newSizedModel(t, nil)
	m.Update(keyRunes("s"))
	if !m.filterMode {
		t.Fatalf("expected settings form")
	}
	m.filterInputs[3].SetValue("num1,bogus")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.filterMode {
		t.Fatalf("expected settings form to stay open")
	}
	if !strings.Contains(m.filterError, "bogus") {
		t.Fatalf("unexpected filter error: %q", m.filterError)
	}

	m.filterInputs[3].SetValue("powerball")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode {
		t.Fatalf("expected settings form to close: %s", m.filterError)
	}
	if m.report.Frequencies[10] != 2 || m.report.Frequencies[3] != 1 {
		t.Fatalf("unexpected powerball frequencies: %v", m.report.Frequencies)
	}
}

func TestReloadReplacesTable(t *testing.T) {
	calls := 0
	load := func(context.Context) (model.DrawTable, error) {
		calls++
		return sampleTable([6]int{1, 2, 3, 4, 5, 6}), nil
	}
	m := newSizedModel(t, load)

	_, cmd := m.Update(ReloadMsg{})
	if cmd == nil {
		t.Fatalf("expected reload command")
	}
	if !m.loading {
		t.Fatalf("expected loading state")
	}
	if _, again := m.Update(ReloadMsg{}); again != nil {
		t.Fatalf("expected reload to be ignored while loading")
	}
	m.Update(cmd())
	if calls != 1 {
		t.Fatalf("expected one load, got %d", calls)
	}
	if m.loading || m.report.Draws != 1 {
		t.Fatalf("expected reloaded report with 1 draw, got %d", m.report.Draws)
	}
}

func TestReloadFailureKeepsReport(t *testing.T) {
	load := func(context.Context) (model.DrawTable, error) {
		return model.DrawTable{}, errors.New("offline")
	}
	m := newSizedModel(t, load)
	_, cmd := m.Update(keyRunes("r"))
	if cmd == nil {
		t.Fatalf("expected reload command")
	}
	m.Update(cmd())
	if !strings.Contains(m.errMsg, "offline") {
		t.Fatalf("expected reload error, got %q", m.errMsg)
	}
	if m.report.Draws != 3 {
		t.Fatalf("expected previous report to stay, got %d draws", m.report.Draws)
	}
}
