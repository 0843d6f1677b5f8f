// Package store handles the SQLite draw archive.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/drawstat/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const dateLayout = "2006-01-02"

// Store wraps SQLite access for archived draws.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS draws (
			draw_date TEXT PRIMARY KEY,
			num1 INTEGER NOT NULL,
			num2 INTEGER NOT NULL,
			num3 INTEGER NOT NULL,
			num4 INTEGER NOT NULL,
			num5 INTEGER NOT NULL,
			powerball INTEGER NOT NULL,
			multiplier INTEGER
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertDraws stores draws not already archived and returns how many were added.
// A draw is identified by its date.
func (s *Store) InsertDraws(ctx context.Context, records []model.DrawRecord) (added int, err error) {
	if len(records) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO draws (draw_date, num1, num2, num3, num4, num5, powerball, multiplier)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(draw_date) DO NOTHING`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	for _, r := range records {
		var multiplier any
		if r.Multiplier > 0 {
			multiplier = r.Multiplier
		}
		res, err := stmt.ExecContext(ctx,
			r.DrawDate.Format(dateLayout),
			r.Numbers[0], r.Numbers[1], r.Numbers[2], r.Numbers[3], r.Numbers[4],
			r.Bonus,
			multiplier,
		)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// ListDraws returns every archived draw in ascending date order. The
// multiplier column is part of the schema only when every draw has one.
func (s *Store) ListDraws(ctx context.Context) (model.DrawTable, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT draw_date, num1, num2, num3, num4, num5, powerball, multiplier
		FROM draws
		ORDER BY draw_date ASC`)
	if err != nil {
		return model.DrawTable{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.DrawRecord
	for rows.Next() {
		var rec model.DrawRecord
		var drawDate string
		var multiplier sql.NullInt64
		if err := rows.Scan(&drawDate, &rec.Numbers[0], &rec.Numbers[1], &rec.Numbers[2], &rec.Numbers[3], &rec.Numbers[4], &rec.Bonus, &multiplier); err != nil {
			return model.DrawTable{}, err
		}
		parsed, err := time.ParseInLocation(dateLayout, drawDate, time.UTC)
		if err != nil {
			return model.DrawTable{}, err
		}
		rec.DrawDate = parsed
		if multiplier.Valid {
			rec.Multiplier = int(multiplier.Int64)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return model.DrawTable{}, err
	}
	return model.DrawTable{Columns: model.ColumnsFor(records), Records: records}, nil
}

// CountDraws returns the number of archived draws.
func (s *Store) CountDraws(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM draws`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
