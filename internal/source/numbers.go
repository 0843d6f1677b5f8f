package source

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseNumbers parses a user-supplied list such as "5, 8, 15, 22, 30".
// Commas and whitespace both separate entries.
func ParseNumbers(input string) ([]int, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no numbers given", ErrMalformed)
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrMalformed, f)
		}
		out = append(out, v)
	}
	return out, nil
}
