package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/drawstat/internal/config"
)

const fixtureCSV = `Draw Date,Winning Numbers,Multiplier
01/08/2020,05 08 15 22 30 03,2
01/01/2020,05 12 23 34 45 10,2
01/04/2020,05 12 23 34 45 10,3
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draws.csv")
	if err := os.WriteFile(path, []byte(fixtureCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv(config.EnvSource, "")
	t.Setenv(config.EnvArchive, "")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReportCommand(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t)
	out, err := runCLI(t, "--source", path, "--numbers", "5,8")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{
		"Draws: 3 (2020-01-01 to 2020-01-08)",
		"Hot numbers: 5, 12, 23, 34, 45",
		"Trend score for 5, 8: 26.67%",
		"05 12 23 34 45 + 10",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestHotCommand(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t)
	out, err := runCLI(t, "hot", "--source", path, "--top", "2")
	if err != nil {
		t.Fatalf("hot: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got:\n%s", out)
	}
	if got := strings.Join(strings.Fields(lines[1]), " "); got != "1 5 3 20.00%" {
		t.Fatalf("unexpected first row: %q", got)
	}
	if got := strings.Join(strings.Fields(lines[2]), " "); got != "2 12 2 13.33%" {
		t.Fatalf("unexpected second row: %q", got)
	}
}

func TestTrendCommand(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t)
	out, err := runCLI(t, "trend", "--source", path, "5", "8")
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if !strings.HasPrefix(out, "Trend score for 5, 8: 26.67%\n") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := runCLI(t, "trend", "--source", path, "five"); err == nil {
		t.Fatalf("expected error for malformed numbers")
	}
}

func TestTrendCommandUnknownColumn(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t)
	if _, err := runCLI(t, "trend", "--source", path, "--columns", "num9", "5"); err == nil {
		t.Fatalf("expected error for unknown column")
	}
}

func TestImportIsIdempotent(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t)
	db := filepath.Join(t.TempDir(), "archive.db")

	out, err := runCLI(t, "import", path, "--db", db)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.HasPrefix(out, "Archived 3 new draws (3 total)") {
		t.Fatalf("unexpected first import output: %q", out)
	}
	out, err = runCLI(t, "import", path, "--db", db)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if !strings.HasPrefix(out, "Archived 0 new draws (3 total)") {
		t.Fatalf("unexpected second import output: %q", out)
	}

	out, err = runCLI(t, "dups", "--source", "sqlite:"+db)
	if err != nil {
		t.Fatalf("dups from archive: %v", err)
	}
	if !strings.Contains(out, "05 12 23 34 45 + 10") {
		t.Fatalf("expected duplicate from archive, got:\n%s", out)
	}
}

func TestPickCommand(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t)
	out, err := runCLI(t, "pick", "--source", path, "--count", "3", "--weight", "2")
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 picks, got:\n%s", out)
	}
	for _, line := range lines {
		if !strings.Contains(line, " + ") || !strings.Contains(line, "trend ") {
			t.Fatalf("unexpected pick line: %q", line)
		}
	}
}

func TestStatsWatchRequiresLocalSource(t *testing.T) {
	isolateEnv(t)
	_, err := runCLI(t, "stats", "--watch", "--source", "https://example.com/draws.csv")
	if err == nil || !strings.Contains(err.Error(), "--watch") {
		t.Fatalf("expected --watch error, got %v", err)
	}
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	isolateEnv(t)
	path := writeFixture(t)
	cfgPath := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "[source]\nlocation = \"" + filepath.ToSlash(path) + "\"\n\n[report]\ntop = 1\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, err := runCLI(t, "cold")
	if err != nil {
		t.Fatalf("cold: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected a single ranked row, got:\n%s", out)
	}
	if got := strings.Join(strings.Fields(lines[1]), " "); got != "1 8 1 6.67%" {
		t.Fatalf("unexpected cold row: %q", got)
	}
}

func TestBuildStatsConfig(t *testing.T) {
	cfg, err := buildStatsConfig("2020-01-04", 10, 3, "5, 8", []string{" Powerball ", ""})
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	if cfg.Since == nil || cfg.Since.Format(dateLayout) != "2020-01-04" {
		t.Fatalf("unexpected since: %v", cfg.Since)
	}
	if cfg.Last != 10 || cfg.TopN != 3 {
		t.Fatalf("unexpected last/top: %d/%d", cfg.Last, cfg.TopN)
	}
	if len(cfg.Numbers) != 2 || cfg.Numbers[0] != 5 || cfg.Numbers[1] != 8 {
		t.Fatalf("unexpected numbers: %v", cfg.Numbers)
	}
	if len(cfg.Columns) != 1 || cfg.Columns[0] != "powerball" {
		t.Fatalf("unexpected columns: %v", cfg.Columns)
	}

	bad := []struct {
		since   string
		last    int
		top     int
		numbers string
	}{
		{since: "01/04/2020", top: 5},
		{last: -1, top: 5},
		{top: 0},
		{top: 5, numbers: "5,x"},
	}
	for _, tt := range bad {
		if _, err := buildStatsConfig(tt.since, tt.last, tt.top, tt.numbers, nil); err == nil {
			t.Fatalf("expected error for %+v", tt)
		}
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	meta, err := toml.Decode(defaultConfigTemplate(), &cfg)
	if err != nil {
		t.Fatalf("decode template: %v", err)
	}
	if len(meta.Undecoded()) != 0 {
		t.Fatalf("unexpected keys: %v", meta.Undecoded())
	}
	if cfg.Source.Location != nil || cfg.Report.Top != nil || cfg.Server.Addr != nil {
		t.Fatalf("template should leave every value commented out: %+v", cfg)
	}
}
