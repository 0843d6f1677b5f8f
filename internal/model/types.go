// Package model defines shared data structures.
package model

import "time"

// Column identifiers exposed by a DrawTable.
const (
	ColumnNum1       = "num1"
	ColumnNum2       = "num2"
	ColumnNum3       = "num3"
	ColumnNum4       = "num4"
	ColumnNum5       = "num5"
	ColumnPowerball  = "powerball"
	ColumnMultiplier = "multiplier"
)

// MainColumns lists the five main-number columns in drawing order.
var MainColumns = []string{ColumnNum1, ColumnNum2, ColumnNum3, ColumnNum4, ColumnNum5}

// CombinationColumns lists the columns that make up a full winning combination.
var CombinationColumns = []string{ColumnNum1, ColumnNum2, ColumnNum3, ColumnNum4, ColumnNum5, ColumnPowerball}

// DrawRecord is one historical drawing.
type DrawRecord struct {
	DrawDate   time.Time
	Numbers    [5]int
	Bonus      int
	Multiplier int
}

// Value returns the value stored under a column identifier.
func (r DrawRecord) Value(column string) (int, bool) {
	switch column {
	case ColumnNum1:
		return r.Numbers[0], true
	case ColumnNum2:
		return r.Numbers[1], true
	case ColumnNum3:
		return r.Numbers[2], true
	case ColumnNum4:
		return r.Numbers[3], true
	case ColumnNum5:
		return r.Numbers[4], true
	case ColumnPowerball:
		return r.Bonus, true
	case ColumnMultiplier:
		return r.Multiplier, r.Multiplier > 0
	}
	return 0, false
}

// DrawTable is an ordered collection of draws sorted ascending by date.
// Columns holds the schema: the column identifiers every record exposes.
type DrawTable struct {
	Columns []string
	Records []DrawRecord
}

// StandardColumns returns the schema of a table without a multiplier column.
func StandardColumns() []string {
	return append([]string(nil), CombinationColumns...)
}

// ColumnsFor returns the schema for records. The multiplier column is included
// only when every record carries a multiplier; older draws leave it blank.
func ColumnsFor(records []DrawRecord) []string {
	cols := StandardColumns()
	if len(records) == 0 {
		return cols
	}
	for _, r := range records {
		if r.Multiplier <= 0 {
			return cols
		}
	}
	return append(cols, ColumnMultiplier)
}

// HasColumn reports whether the table schema contains name.
func (t DrawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (t DrawTable) Len() int {
	return len(t.Records)
}

// Window returns the draws on or after since, limited to the last N.
// A nil since or non-positive last disables the respective filter.
func (t DrawTable) Window(since *time.Time, last int) DrawTable {
	records := t.Records
	if since != nil {
		filtered := make([]DrawRecord, 0, len(records))
		for _, r := range records {
			if r.DrawDate.Before(*since) {
				continue
			}
			filtered = append(filtered, r)
		}
		records = filtered
	}
	if last > 0 && len(records) > last {
		records = records[len(records)-last:]
	}
	return DrawTable{Columns: t.Columns, Records: records}
}

// FrequencyMap maps a drawn number to its occurrence count.
type FrequencyMap map[int]int

// Total returns the sum of all counts.
func (f FrequencyMap) Total() int {
	total := 0
	for _, c := range f {
		total += c
	}
	return total
}

// DuplicateEntry is a full combination that occurred more than once.
type DuplicateEntry struct {
	Numbers [5]int `json:"numbers"`
	Bonus   int    `json:"bonus"`
	Count   int    `json:"count"`
}

// StatsConfig defines filters and options for a report.
type StatsConfig struct {
	Since   *time.Time
	Last    int
	Columns []string
	TopN    int
	Numbers []int
}

// GameRules describes the number pools of a game.
type GameRules struct {
	MainCount int
	MainMax   int
	BonusMax  int
}

// PowerballRules returns the current Powerball matrix (5 of 69, 1 of 26).
func PowerballRules() GameRules {
	return GameRules{MainCount: 5, MainMax: 69, BonusMax: 26}
}
