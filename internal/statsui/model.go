// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/drawstat/internal/model"
	"github.com/verte-zerg/drawstat/internal/source"
	"github.com/verte-zerg/drawstat/internal/stats"
)

const (
	tabOverview = iota
	tabFrequencies
	tabDuplicates
)

const (
	dateLayout        = "2006-01-02"
	invalidNumbersMsg = "Please enter valid numbers."
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	hotStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#EE6666"))
	coldStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#5AB1EF"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Loader produces a fresh draw table from the configured source.
type Loader func(ctx context.Context) (model.DrawTable, error)

// ReloadMsg asks the model to reload its source.
type ReloadMsg struct{}

type loadedMsg struct {
	table model.DrawTable
	err   error
}

// Model implements the Bubble Tea stats UI.
type Model struct {
	load  Loader
	table model.DrawTable
	cfg   model.StatsConfig

	report  stats.Report
	errMsg  string
	loading bool

	tabs      []string
	activeTab int
	overview  viewport.Model
	freqTable dataTable
	dupTable  dataTable

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	numberInputMode  bool
	numberInput      textinput.Model
	numberInputError string
}

type dataTable struct {
	model  table.Model
	layout tableLayout
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
	colCount int
}

// NewModel constructs a stats UI model over an already loaded table.
// load is used for reloads and may be nil.
func NewModel(drawTable model.DrawTable, load Loader, cfg model.StatsConfig) *Model {
	m := &Model{
		load:  load,
		table: drawTable,
		cfg:   cfg,
		tabs:  []string{"Overview", "Frequencies", "Duplicates"},
	}
	m.initInputs()
	m.initNumberInput()
	m.freqTable = newDataTable()
	m.dupTable = newDataTable()
	m.overview = viewport.New(0, 0)
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case ReloadMsg:
		return m, m.reload()
	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("failed to reload draws: %v", msg.err)
			return m, nil
		}
		m.table = msg.table
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.numberInputMode {
			return m.updateNumberInput(msg)
		}
		m.focusActiveTable()
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.TopN = m.topN() + 1
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.TopN = maxInt(1, m.topN()-1)
			m.refreshReport()
			return m, nil
		case "r":
			return m, m.reload()
		case "/":
			return m.startNumberInput()
		case "s":
			return m.startFilter()
		case "g", "home":
			if t := m.activeTable(); t != nil {
				t.model.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if t := m.activeTable(); t != nil {
				t.model.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if t := m.activeTable(); t != nil {
				t.model, cmd = t.model.Update(msg)
				return m, cmd
			}
			m.overview, cmd = m.overview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.numberInputMode {
		return fitLines(m.renderNumberModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) reload() tea.Cmd {
	if m.load == nil || m.loading {
		return nil
	}
	m.loading = true
	load := m.load
	return func() tea.Msg {
		drawTable, err := load(context.Background())
		return loadedMsg{table: drawTable, err: err}
	}
}

func (m *Model) topN() int {
	if m.cfg.TopN > 0 {
		return m.cfg.TopN
	}
	return stats.DefaultTopN
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Top: "),
		newFilterInput("Columns: "),
	}
	m.setInputsFromConfig()
}

func (m *Model) initNumberInput() {
	m.numberInput = newFilterInput("Numbers: ")
	m.numberInput.Placeholder = "5, 8, 15, 22, 30"
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	if len(m.filterInputs) == 0 {
		return
	}
	if m.cfg.Since != nil {
		m.filterInputs[0].SetValue(m.cfg.Since.Format(dateLayout))
	} else {
		m.filterInputs[0].SetValue("")
	}
	if m.cfg.Last > 0 {
		m.filterInputs[1].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[1].SetValue("")
	}
	m.filterInputs[2].SetValue(strconv.Itoa(m.topN()))
	m.filterInputs[3].SetValue(strings.Join(m.cfg.Columns, ","))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.freqTable.setSize(m.width, bodyHeight)
	m.dupTable.setSize(m.width, bodyHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
	promptWidth := lipgloss.Width(m.numberInput.Prompt)
	m.numberInput.Width = maxInt(10, modalInnerWidth(m.width)-promptWidth)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.focusActiveTable()
}

func (m *Model) activeTable() *dataTable {
	switch m.activeTab {
	case tabFrequencies:
		return &m.freqTable
	case tabDuplicates:
		return &m.dupTable
	}
	return nil
}

func (m *Model) focusActiveTable() {
	m.freqTable.model.Blur()
	m.dupTable.model.Blur()
	if t := m.activeTable(); t != nil {
		t.model.Focus()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format(dateLayout)
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	columns := m.cfg.Columns
	if len(columns) == 0 {
		columns = model.MainColumns
	}
	summary := fmt.Sprintf("Settings: since=%s  last=%s  top=%d  columns=%s", since, last, m.topN(), strings.Join(columns, ","))
	if m.loading {
		summary += "  (reloading)"
	}
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Numbers: /  Top: -/=  Settings: s  Reload: r  Quit: q")
}

func (m *Model) renderFilterHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel  quit: ctrl+c")
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.renderFilterHelp()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	switch m.activeTab {
	case tabFrequencies:
		if len(m.report.Frequencies) == 0 {
			return fitLines("No frequencies found.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.freqTable.model.View()), m.width, height)
	case tabDuplicates:
		if len(m.report.Duplicates) == 0 {
			return fitLines("No full duplicate combinations detected.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.dupTable.model.View()), m.width, height)
	}
	return fitLines(m.overview.View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(m.table, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.report = stats.Report{}
		m.overview.SetContent("Failed to compute statistics.")
		return
	}
	m.errMsg = ""
	m.report = report
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.freqTable.apply(frequencyColumns(), frequencyRows(report), width, bodyHeight, true)
	m.dupTable.apply(duplicateColumns(), duplicateRows(report.Duplicates), width, bodyHeight, true)
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" && m.report.Frequencies == nil {
		m.overview.SetContent("Failed to compute statistics.")
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, width))
}

func renderOverview(report stats.Report, width int) string {
	if report.Draws == 0 {
		return "No draws found."
	}
	cards := renderSummaryCards(report, width)
	lines := []string{
		hotStyle.Render(fmt.Sprintf("Hot numbers:  %s", stats.FormatNumbers(report.Hot))),
		coldStyle.Render(fmt.Sprintf("Cold numbers: %s", stats.FormatNumbers(report.Cold))),
	}
	if report.HasTrend {
		lines = append(lines,
			fmt.Sprintf("Trend score for %s: %s", stats.FormatNumbers(report.Numbers), cardValueStyle.Render(stats.FormatScore(report.TrendScore))),
			headerStyle.Render("Share of past observations; not a probability."),
		)
	} else {
		lines = append(lines, headerStyle.Render("Press / to score your numbers."))
	}
	bars := renderBars(report, width)
	return strings.TrimRight(cards+"\n\n"+strings.Join(lines, "\n")+"\n\n"+bars, "\n")
}

func renderSummaryCards(report stats.Report, width int) string {
	cards := []string{
		metricCard("Draws", humanize.Comma(int64(report.Draws))),
		metricCard("First draw", report.FirstDraw.Format(dateLayout)),
		metricCard("Last draw", report.LastDraw.Format(dateLayout)),
		metricCard("Distinct", strconv.Itoa(report.Summary.Distinct)),
		metricCard("Mean count", fmt.Sprintf("%.1f", report.Summary.Mean)),
		metricCard("Std dev", fmt.Sprintf("%.2f", report.Summary.StdDev)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderBars(report stats.Report, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderFrequencyBars(&buf, report.Frequencies, report.Hot, report.Cold, width, true); err != nil {
		return fmt.Sprintf("Failed to render frequencies: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func frequencyColumns() []table.Column {
	return []table.Column{
		{Title: "Number", Width: 6},
		{Title: "Count", Width: 8},
		{Title: "Share", Width: 8},
		{Title: "Status", Width: 6},
	}
}

func frequencyRows(report stats.Report) []table.Row {
	hot := make(map[int]bool, len(report.Hot))
	for _, n := range report.Hot {
		hot[n] = true
	}
	cold := make(map[int]bool, len(report.Cold))
	for _, n := range report.Cold {
		cold[n] = true
	}
	total := report.Frequencies.Total()
	entries := stats.SortedByNumber(report.Frequencies)
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		status := ""
		switch {
		case hot[e.Number]:
			status = "hot"
		case cold[e.Number]:
			status = "cold"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(e.Number),
			humanize.Comma(int64(e.Count)),
			stats.FormatScore(float64(e.Count) / float64(total)),
			status,
		})
	}
	return rows
}

func duplicateColumns() []table.Column {
	return []table.Column{
		{Title: "Combination", Width: 20},
		{Title: "Times", Width: 5},
	}
}

func duplicateRows(dups []model.DuplicateEntry) []table.Row {
	rows := make([]table.Row, 0, len(dups))
	for _, d := range dups {
		rows = append(rows, table.Row{
			stats.FormatCombination(d.Numbers, d.Bonus),
			strconv.Itoa(d.Count),
		})
	}
	return rows
}

func newDataTable() dataTable {
	t := table.New(table.WithHeight(1))
	t.SetStyles(tableStyles())
	return dataTable{model: t}
}

func (d *dataTable) apply(cols []table.Column, rows []table.Row, width, height int, force bool) {
	viewportHeight := maxInt(1, height-1)
	if !force &&
		d.layout.width == width &&
		d.layout.height == viewportHeight &&
		d.layout.rowCount == len(rows) &&
		d.layout.colCount == len(cols) {
		return
	}
	d.model.SetColumns(cols)
	d.model.SetRows(rows)
	d.layout.rowCount = len(rows)
	d.layout.colCount = len(cols)
	d.setSize(width, height)
}

func (d *dataTable) setSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if d.layout.width == width && d.layout.height == viewportHeight {
		return
	}
	d.layout.width = width
	d.layout.height = viewportHeight
	d.model.SetWidth(width)
	d.model.SetHeight(viewportHeight)
	viewportHeight = d.adjustHeight(height)
	if d.layout.height != viewportHeight {
		d.layout.height = viewportHeight
		d.model.SetHeight(viewportHeight)
	}
}

func (d *dataTable) adjustHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := d.model.Height()
	viewHeight := lipgloss.Height(d.model.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	d.model.SetHeight(height)
	viewHeight = lipgloss.Height(d.model.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	sinceInput := strings.TrimSpace(m.filterInputs[0].Value())
	var since *time.Time
	if sinceInput != "" {
		parsed, err := time.ParseInLocation(dateLayout, sinceInput, time.UTC)
		if err != nil {
			return fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		since = &parsed
	}

	lastInput := strings.TrimSpace(m.filterInputs[1].Value())
	last := 0
	if lastInput != "" {
		parsed, err := strconv.Atoi(lastInput)
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		last = parsed
	}

	topInput := strings.TrimSpace(m.filterInputs[2].Value())
	top := 0
	if topInput != "" {
		parsed, err := strconv.Atoi(topInput)
		if err != nil || parsed < 1 {
			return fmt.Errorf("invalid top value (use integer >= 1)")
		}
		top = parsed
	}

	var columns []string
	for _, part := range strings.Split(m.filterInputs[3].Value(), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !m.table.HasColumn(part) {
			return fmt.Errorf("unknown column %q", part)
		}
		columns = append(columns, part)
	}

	m.cfg = model.StatsConfig{
		Since:   since,
		Last:    last,
		Columns: columns,
		TopN:    top,
		Numbers: m.cfg.Numbers,
	}
	return nil
}

func (m *Model) startNumberInput() (tea.Model, tea.Cmd) {
	m.numberInputMode = true
	m.numberInputError = ""
	m.numberInput.SetValue(stats.FormatNumbers(m.cfg.Numbers))
	return m, m.numberInput.Focus()
}

func (m *Model) updateNumberInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.numberInputMode = false
		m.numberInputError = ""
		return m, nil
	case tea.KeyEnter:
		numbers, err := parseNumberInput(m.numberInput.Value())
		if err != nil {
			m.numberInputError = invalidNumbersMsg
			return m, nil
		}
		m.cfg.Numbers = numbers
		m.numberInputMode = false
		m.numberInputError = ""
		m.refreshReport()
		return m, nil
	}
	var cmd tea.Cmd
	m.numberInput, cmd = m.numberInput.Update(msg)
	return m, cmd
}

// parseNumberInput accepts an empty string to clear the selection.
func parseNumberInput(input string) ([]int, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	numbers, err := source.ParseNumbers(input)
	if err != nil {
		return nil, err
	}
	for _, n := range numbers {
		if n < 1 {
			return nil, fmt.Errorf("%w: %d is not a drawable number", source.ErrMalformed, n)
		}
	}
	return numbers, nil
}

func (m *Model) renderNumberModal() string {
	title := cardValueStyle.Render("Score Numbers")
	body := []string{
		title,
		m.numberInput.View(),
		headerStyle.Render("Separate numbers with commas or spaces. Leave empty to clear."),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	if m.numberInputError != "" {
		body = append(body, errorStyle.Render(m.numberInputError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
