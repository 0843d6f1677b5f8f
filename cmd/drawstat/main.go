// Package main provides the CLI entrypoint for drawstat.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/drawstat/internal/config"
	"github.com/verte-zerg/drawstat/internal/model"
	"github.com/verte-zerg/drawstat/internal/source"
	"github.com/verte-zerg/drawstat/internal/stats"
)

const (
	defaultTop      = stats.DefaultTopN
	defaultAddr     = "127.0.0.1:8080"
	defaultChartOut = "frequencies.html"
	defaultPicks    = 5
	dateLayout      = "2006-01-02"
)

var (
	reportSource  string
	reportSince   string
	reportLast    int
	reportTop     int
	reportNumbers string
	reportColumns []string
	verbose       bool

	logger = logrus.New()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "drawstat",
		Short:             "Powerball draw history statistics",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setupCmd,
		RunE:              runReportCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&reportSource, "source", source.DefaultURL, "CSV URL, local CSV file, or sqlite:<path>")
	flags.StringVar(&reportSince, "since", "", "only draws on or after this date (YYYY-MM-DD)")
	flags.IntVar(&reportLast, "last", 0, "limit to the last N draws")
	flags.IntVar(&reportTop, "top", defaultTop, "size of the hot and cold lists")
	flags.StringVar(&reportNumbers, "numbers", "", "numbers to score, e.g. \"5,8,15,22,30\"")
	flags.StringSliceVar(&reportColumns, "columns", nil, "columns to count (default: num1..num5)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newFreqCmd())
	rootCmd.AddCommand(newHotCmd())
	rootCmd.AddCommand(newColdCmd())
	rootCmd.AddCommand(newDupsCmd())
	rootCmd.AddCommand(newTrendCmd())
	rootCmd.AddCommand(newPickCmd())
	rootCmd.AddCommand(newChartCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newImportCmd())

	return rootCmd
}

func setupCmd(_ *cobra.Command, _ []string) error {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	return nil
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	report, _, err := loadReport(cmd)
	if err != nil {
		return err
	}
	return stats.RenderReport(cmd.OutOrStdout(), report)
}

// settings are the resolved options shared by every command.
type settings struct {
	location string
	stats    model.StatsConfig
	file     config.FileConfig
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyEnv(&fileCfg)
	applyStringConfig(cmd, "source", &reportSource, fileCfg.Source.Location)
	applyStringConfig(cmd, "since", &reportSince, fileCfg.Report.Since)
	applyIntConfig(cmd, "last", &reportLast, fileCfg.Report.Last)
	applyIntConfig(cmd, "top", &reportTop, fileCfg.Report.Top)
	applyStringConfig(cmd, "numbers", &reportNumbers, fileCfg.Report.Numbers)
	applyStringSliceConfig(cmd, "columns", &reportColumns, fileCfg.Report.Columns)

	cfg, err := buildStatsConfig(reportSince, reportLast, reportTop, reportNumbers, reportColumns)
	if err != nil {
		return settings{}, err
	}
	return settings{location: reportSource, stats: cfg, file: fileCfg}, nil
}

func buildStatsConfig(since string, last, top int, numbers string, columns []string) (model.StatsConfig, error) {
	if last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if top <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--top must be > 0")
	}
	cfg := model.StatsConfig{Last: last, TopN: top}

	if since = strings.TrimSpace(since); since != "" {
		parsed, err := time.ParseInLocation(dateLayout, since, time.UTC)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	if strings.TrimSpace(numbers) != "" {
		parsed, err := source.ParseNumbers(numbers)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --numbers value: %w", err)
		}
		cfg.Numbers = parsed
	}
	for _, c := range columns {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		cfg.Columns = append(cfg.Columns, c)
	}
	return cfg, nil
}

func loadTable(ctx context.Context, location string) (model.DrawTable, error) {
	kind, target := source.Classify(location)
	logger.WithFields(logrus.Fields{"kind": kind, "source": target}).Debug("loading draws")
	table, err := source.Load(ctx, location)
	if err != nil {
		return model.DrawTable{}, fmt.Errorf("failed to load draws: %w", err)
	}
	logger.WithField("draws", table.Len()).Debug("loaded draws")
	return table, nil
}

func loadReport(cmd *cobra.Command) (stats.Report, settings, error) {
	s, err := resolveSettings(cmd)
	if err != nil {
		return stats.Report{}, settings{}, err
	}
	table, err := loadTable(cmd.Context(), s.location)
	if err != nil {
		return stats.Report{}, settings{}, err
	}
	report, err := stats.BuildReport(table, s.stats)
	if err != nil {
		return stats.Report{}, settings{}, fmt.Errorf("failed to build report: %w", err)
	}
	return report, s, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), (*value)...)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# drawstat configuration
# Uncomment a value to enable it. CLI flags override config values.
# DRAWSTAT_SOURCE and DRAWSTAT_ARCHIVE (also read from .env) override [source].

[source]
# location = %q   # CSV URL, local CSV file, or sqlite:<path>
# archive = %q    # SQLite archive written by drawstat import

[report]
# top = %d                # Size of the hot and cold lists
# columns = ["num1", "num2", "num3", "num4", "num5"]
# numbers = "5, 8, 15, 22, 30"
# last = 0                # Limit to the last N draws (0 = all)
# since = "2015-10-07"    # Only draws on or after this date

[game]
# main-max = %d           # Highest main number
# bonus-max = %d          # Highest Powerball number
# weight = 0.0            # Default frequency weight for drawstat pick

[server]
# addr = %q
`,
		source.DefaultURL,
		config.DefaultArchivePath(),
		defaultTop,
		model.PowerballRules().MainMax,
		model.PowerballRules().BonusMax,
		defaultAddr,
	)
}
