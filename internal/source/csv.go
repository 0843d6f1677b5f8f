// Package source loads historical draws into a DrawTable.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/drawstat/internal/model"
)

// ErrMalformed reports input text that cannot be parsed into draws or numbers.
var ErrMalformed = errors.New("malformed input")

const (
	headerDrawDate       = "draw date"
	headerWinningNumbers = "winning numbers"
	headerMultiplier     = "multiplier"
)

var dateLayouts = []string{"01/02/2006", "2006-01-02", "2006-01-02T15:04:05"}

// ParseCSV reads draws from CSV. Two layouts are accepted: the NY Open Data
// export ("Draw Date", "Winning Numbers", optional "Multiplier") and a split
// layout with draw_date, num1..num5 and powerball columns. Records are sorted
// ascending by draw date.
func ParseCSV(r io.Reader) (model.DrawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.DrawTable{}, fmt.Errorf("%w: empty csv", ErrMalformed)
		}
		return model.DrawTable{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	idx := headerIndex(header)
	parse, err := rowParser(idx)
	if err != nil {
		return model.DrawTable{}, err
	}

	var table model.DrawTable
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return model.DrawTable{}, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		if blankRow(row) {
			continue
		}
		rec, err := parse(row)
		if err != nil {
			return model.DrawTable{}, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		table.Records = append(table.Records, rec)
	}
	table.Columns = model.ColumnsFor(table.Records)
	sort.SliceStable(table.Records, func(i, j int) bool {
		return table.Records[i].DrawDate.Before(table.Records[j].DrawDate)
	})
	return table, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		key = strings.ReplaceAll(key, "_", " ")
		idx[key] = i
	}
	return idx
}

func rowParser(idx map[string]int) (func([]string) (model.DrawRecord, error), error) {
	dateCol, ok := idx[headerDrawDate]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q column", ErrMalformed, "Draw Date")
	}
	multCol, hasMultiplier := idx[headerMultiplier]

	if winCol, ok := idx[headerWinningNumbers]; ok {
		return func(row []string) (model.DrawRecord, error) {
			rec, err := baseRecord(row, dateCol, multCol, hasMultiplier)
			if err != nil {
				return rec, err
			}
			fields := strings.Fields(cell(row, winCol))
			if len(fields) != len(model.CombinationColumns) {
				return rec, fmt.Errorf("expected %d winning numbers, got %d", len(model.CombinationColumns), len(fields))
			}
			values, err := parseInts(fields)
			if err != nil {
				return rec, err
			}
			return rec, setCombination(&rec, values)
		}, nil
	}

	cols := make([]int, 0, len(model.CombinationColumns))
	for _, name := range model.CombinationColumns {
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q or %q column", ErrMalformed, "Winning Numbers", name)
		}
		cols = append(cols, i)
	}
	return func(row []string) (model.DrawRecord, error) {
		rec, err := baseRecord(row, dateCol, multCol, hasMultiplier)
		if err != nil {
			return rec, err
		}
		fields := make([]string, len(cols))
		for i, c := range cols {
			fields[i] = cell(row, c)
		}
		values, err := parseInts(fields)
		if err != nil {
			return rec, err
		}
		return rec, setCombination(&rec, values)
	}, nil
}

func baseRecord(row []string, dateCol, multCol int, hasMultiplier bool) (model.DrawRecord, error) {
	var rec model.DrawRecord
	date, err := parseDate(cell(row, dateCol))
	if err != nil {
		return rec, err
	}
	rec.DrawDate = date
	if hasMultiplier {
		if raw := cell(row, multCol); raw != "" {
			m, err := strconv.Atoi(raw)
			if err != nil || m <= 0 {
				return rec, fmt.Errorf("invalid multiplier %q", raw)
			}
			rec.Multiplier = m
		}
	}
	return rec, nil
}

// setCombination stores five distinct main numbers followed by the bonus.
func setCombination(rec *model.DrawRecord, values []int) error {
	seen := make(map[int]struct{}, 5)
	for _, v := range values[:5] {
		if _, ok := seen[v]; ok {
			return fmt.Errorf("main number %d drawn twice", v)
		}
		seen[v] = struct{}{}
	}
	copy(rec.Numbers[:], values[:5])
	rec.Bonus = values[5]
	return nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid draw date %q", raw)
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		out[i] = v
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
