package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/drawstat/internal/model"
	"github.com/verte-zerg/drawstat/internal/store"
)

const sqlitePrefix = "sqlite:"

// Kind classifies a source location.
type Kind int

// Source kinds.
const (
	KindHTTP Kind = iota
	KindFile
	KindArchive
)

func (k Kind) String() string {
	switch k {
	case KindHTTP:
		return "http"
	case KindArchive:
		return "archive"
	default:
		return "file"
	}
}

// Classify reports how a location will be loaded and the path or URL to use.
func Classify(location string) (Kind, string) {
	location = strings.TrimSpace(location)
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return KindHTTP, location
	case strings.HasPrefix(lower, sqlitePrefix):
		return KindArchive, location[len(sqlitePrefix):]
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".db", ".sqlite", ".sqlite3":
		return KindArchive, location
	}
	return KindFile, location
}

// Load reads draws from an HTTP URL, a local CSV file or a SQLite archive.
func Load(ctx context.Context, location string) (model.DrawTable, error) {
	if strings.TrimSpace(location) == "" {
		return model.DrawTable{}, fmt.Errorf("source location is empty")
	}
	kind, target := Classify(location)
	switch kind {
	case KindHTTP:
		return Fetch(ctx, target)
	case KindArchive:
		return LoadArchive(ctx, target)
	default:
		return LoadFile(target)
	}
}

// LoadFile parses a local CSV file.
func LoadFile(path string) (model.DrawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.DrawTable{}, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only file.
			_ = cerr
		}
	}()
	table, err := ParseCSV(file)
	if err != nil {
		return model.DrawTable{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return table, nil
}

// LoadArchive reads every draw from an existing SQLite archive.
func LoadArchive(ctx context.Context, path string) (model.DrawTable, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return model.DrawTable{}, fmt.Errorf("draw archive not found: %s (create it with: drawstat import)", path)
		}
		return model.DrawTable{}, fmt.Errorf("failed to stat draw archive: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return model.DrawTable{}, fmt.Errorf("failed to open draw archive: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			_ = cerr
		}
	}()
	return st.ListDraws(ctx)
}
