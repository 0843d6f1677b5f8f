package stats

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/drawstat/internal/model"
)

var (
	// ErrInvalidInput reports a caller contract violation such as an unknown column.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidState reports an operation that is undefined for the given data.
	ErrInvalidState = errors.New("invalid state")
)

// ComputeFrequencies tallies the values of the given columns across all records
// into one combined map. An empty table yields an empty map.
func ComputeFrequencies(table model.DrawTable, columns []string) (model.FrequencyMap, error) {
	if err := requireColumns(table, columns); err != nil {
		return nil, err
	}
	freqs := make(model.FrequencyMap)
	for _, rec := range table.Records {
		for _, col := range columns {
			v, ok := rec.Value(col)
			if !ok {
				return nil, fmt.Errorf("%w: column %q not readable", ErrInvalidInput, col)
			}
			freqs[v]++
		}
	}
	return freqs, nil
}

func requireColumns(table model.DrawTable, columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("%w: no columns given", ErrInvalidInput)
	}
	for _, col := range columns {
		if !table.HasColumn(col) {
			return fmt.Errorf("%w: unknown column %q", ErrInvalidInput, col)
		}
	}
	return nil
}
