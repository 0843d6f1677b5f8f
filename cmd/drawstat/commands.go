package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/drawstat/internal/charts"
	"github.com/verte-zerg/drawstat/internal/config"
	"github.com/verte-zerg/drawstat/internal/generator"
	"github.com/verte-zerg/drawstat/internal/model"
	"github.com/verte-zerg/drawstat/internal/server"
	"github.com/verte-zerg/drawstat/internal/source"
	"github.com/verte-zerg/drawstat/internal/stats"
	"github.com/verte-zerg/drawstat/internal/statsui"
	"github.com/verte-zerg/drawstat/internal/store"
)

var (
	statsWatch bool
	freqBars   bool

	pickCount  int
	pickWeight float64

	chartOut   string
	chartTitle string

	serveAddr string
	importDB  string
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show interactive stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsWatch, "watch", false, "reload when a local source file changes")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	kind, path := source.Classify(s.location)
	if statsWatch && kind == source.KindHTTP {
		return fmt.Errorf("--watch requires a local source file")
	}
	ctx := cmd.Context()
	table, err := loadTable(ctx, s.location)
	if err != nil {
		return err
	}

	load := func(ctx context.Context) (model.DrawTable, error) {
		return loadTable(ctx, s.location)
	}
	ui := statsui.NewModel(table, load, s.stats)
	program := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithContext(ctx))

	if statsWatch {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			err := source.Watch(watchCtx, path, func() {
				program.Send(statsui.ReloadMsg{})
			})
			if err != nil {
				logger.WithError(err).Debug("file watch stopped")
			}
		}()
	}

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newFreqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Show how often each number was drawn",
		Args:  cobra.NoArgs,
		RunE:  runFreqCmd,
	}
	cmd.Flags().BoolVar(&freqBars, "bars", false, "render counts as horizontal bars")
	return cmd
}

func runFreqCmd(cmd *cobra.Command, _ []string) error {
	report, _, err := loadReport(cmd)
	if err != nil {
		return err
	}
	if freqBars {
		return stats.RenderFrequencyBars(cmd.OutOrStdout(), report.Frequencies, report.Hot, report.Cold, 0, false)
	}
	return stats.RenderFrequencyTable(cmd.OutOrStdout(), report.Frequencies)
}

func newHotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hot",
		Short: "List the most frequently drawn numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, _, err := loadReport(cmd)
			if err != nil {
				return err
			}
			return stats.RenderRanking(cmd.OutOrStdout(), report.Hot, report.Frequencies)
		},
	}
}

func newColdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cold",
		Short: "List the least frequently drawn numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, _, err := loadReport(cmd)
			if err != nil {
				return err
			}
			return stats.RenderRanking(cmd.OutOrStdout(), report.Cold, report.Frequencies)
		},
	}
}

func newDupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dups",
		Short: "List full combinations drawn more than once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, _, err := loadReport(cmd)
			if err != nil {
				return err
			}
			return stats.RenderDuplicates(cmd.OutOrStdout(), report.Duplicates)
		},
	}
}

func newTrendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trend <numbers>",
		Short: "Score numbers by their share of past observations",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTrendCmd,
	}
}

func runTrendCmd(cmd *cobra.Command, args []string) error {
	numbers, err := source.ParseNumbers(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("invalid numbers: %w", err)
	}
	report, _, err := loadReport(cmd)
	if err != nil {
		return err
	}
	score, err := stats.TrendScore(numbers, report.Frequencies)
	if err != nil {
		return fmt.Errorf("failed to compute trend score: %w", err)
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Trend score for %s: %s\n", stats.FormatNumbers(numbers), stats.FormatScore(score)); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "(share of %s past observations; not a probability)\n", humanize.Comma(int64(report.Frequencies.Total())))
	return err
}

func newPickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Generate quick picks annotated with their trend score",
		Args:  cobra.NoArgs,
		RunE:  runPickCmd,
	}
	cmd.Flags().IntVar(&pickCount, "count", defaultPicks, "number of picks")
	cmd.Flags().Float64Var(&pickWeight, "weight", 0, "bias toward frequently drawn numbers (0 = uniform)")
	return cmd
}

func runPickCmd(cmd *cobra.Command, _ []string) error {
	report, s, err := loadReport(cmd)
	if err != nil {
		return err
	}
	applyFloatConfig(cmd, "weight", &pickWeight, s.file.Game.Weight)
	if pickCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	rules := model.PowerballRules()
	if s.file.Game.MainMax != nil {
		rules.MainMax = *s.file.Game.MainMax
	}
	if s.file.Game.BonusMax != nil {
		rules.BonusMax = *s.file.Game.BonusMax
	}

	gen := generator.New()
	out := cmd.OutOrStdout()
	for i := 0; i < pickCount; i++ {
		pick, err := gen.PickWeighted(rules, report.Frequencies, pickWeight)
		if err != nil {
			return fmt.Errorf("failed to generate pick: %w", err)
		}
		var numbers [5]int
		copy(numbers[:], pick.Numbers)
		trend := "n/a"
		if score, err := stats.TrendScore(pick.Numbers, report.Frequencies); err == nil {
			trend = stats.FormatScore(score)
		} else if !errors.Is(err, stats.ErrInvalidState) {
			return fmt.Errorf("failed to compute trend score: %w", err)
		}
		if _, err := fmt.Fprintf(out, "%s  trend %s\n", stats.FormatCombination(numbers, pick.Bonus), trend); err != nil {
			return err
		}
	}
	return nil
}

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Write an HTML bar chart of number frequencies",
		Args:  cobra.NoArgs,
		RunE:  runChartCmd,
	}
	cmd.Flags().StringVarP(&chartOut, "out", "o", defaultChartOut, "output HTML file")
	cmd.Flags().StringVar(&chartTitle, "title", "", "chart title")
	return cmd
}

func runChartCmd(cmd *cobra.Command, _ []string) error {
	report, _, err := loadReport(cmd)
	if err != nil {
		return err
	}
	if report.Draws == 0 {
		return fmt.Errorf("no draws to chart")
	}
	chartCfg := charts.DefaultChartConfig()
	if chartTitle != "" {
		chartCfg.Title = chartTitle
	}
	chartCfg.Subtitle = fmt.Sprintf("%s draws, %s to %s",
		humanize.Comma(int64(report.Draws)),
		report.FirstDraw.Format(dateLayout),
		report.LastDraw.Format(dateLayout))
	if err := charts.WriteFrequencyChart(chartOut, report.Frequencies, report.Hot, chartCfg); err != nil {
		return err
	}
	logger.WithField("path", chartOut).Info("wrote frequency chart")
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve statistics over a JSON API",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "addr", &serveAddr, s.file.Server.Addr)

	load := func(ctx context.Context) (model.DrawTable, error) {
		table, err := loadTable(ctx, s.location)
		if err != nil {
			return model.DrawTable{}, err
		}
		return table.Window(s.stats.Since, s.stats.Last), nil
	}
	srv := server.New(load, s.stats.Columns, logger)
	return srv.ListenAndServe(cmd.Context(), serveAddr)
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <csv>",
		Short: "Archive draws from a CSV file or URL into SQLite",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importDB, "db", "", "archive path (default: $XDG_DATA_HOME/drawstat/draws.db)")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "db", &importDB, s.file.Source.Archive)
	if importDB == "" {
		importDB = config.DefaultArchivePath()
	}
	if kind, _ := source.Classify(args[0]); kind == source.KindArchive {
		return fmt.Errorf("import expects a CSV file or URL, got archive %s", args[0])
	}

	ctx := cmd.Context()
	table, err := loadTable(ctx, args[0])
	if err != nil {
		return err
	}
	st, err := store.Open(importDB)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.WithError(cerr).Warn("failed to close archive")
		}
	}()

	added, err := st.InsertDraws(ctx, table.Records)
	if err != nil {
		return fmt.Errorf("failed to archive draws: %w", err)
	}
	total, err := st.CountDraws(ctx)
	if err != nil {
		return fmt.Errorf("failed to count archived draws: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Archived %s new draws (%s total) in %s\n",
		humanize.Comma(int64(added)), humanize.Comma(int64(total)), importDB)
	return err
}
