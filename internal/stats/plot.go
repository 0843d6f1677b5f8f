package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/drawstat/internal/model"
)

const (
	barFill             = "#"
	axisSeparator       = " | "
	minBarWidth         = 10
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

const (
	hotColor  = "\x1b[31m"
	coldColor = "\x1b[36m"
)

// RenderFrequencyBars prints a horizontal bar per number, scaled to the widest count.
// A non-positive totalWidth uses the terminal width. Numbers in hot and cold are colored
// when color output is enabled.
func RenderFrequencyBars(w io.Writer, freqs model.FrequencyMap, hot, cold []int, totalWidth int, forceColor bool) error {
	if len(freqs) == 0 {
		_, err := fmt.Fprintln(w, "No frequencies found.")
		return err
	}
	entries := SortedByNumber(freqs)
	maxCount := 0
	labelWidth := 0
	countWidth := 0
	for _, e := range entries {
		if e.Count > maxCount {
			maxCount = e.Count
		}
		if l := len(strconv.Itoa(e.Number)); l > labelWidth {
			labelWidth = l
		}
		if l := len(strconv.Itoa(e.Count)); l > countWidth {
			countWidth = l
		}
	}
	if totalWidth <= 0 {
		totalWidth = terminalWidth()
	}
	barWidth := BarWidthFor(totalWidth, labelWidth, countWidth)
	useColor := shouldUseColor(w, forceColor)
	hotSet := toSet(hot)
	coldSet := toSet(cold)

	for _, e := range entries {
		length := 0
		if maxCount > 0 {
			length = e.Count * barWidth / maxCount
		}
		if length == 0 && e.Count > 0 {
			length = 1
		}
		bar := strings.Repeat(barFill, length)
		if useColor {
			if _, ok := hotSet[e.Number]; ok {
				bar = hotColor + bar + colorReset
			} else if _, ok := coldSet[e.Number]; ok {
				bar = coldColor + bar + colorReset
			}
		}
		if _, err := fmt.Fprintf(w, "%*d%s%s %*d\n", labelWidth, e.Number, axisSeparator, bar, countWidth, e.Count); err != nil {
			return err
		}
	}
	return nil
}

// BarWidthFor computes the bar width that fits within the total available width.
func BarWidthFor(totalWidth, labelWidth, countWidth int) int {
	width := totalWidth - labelWidth - len(axisSeparator) - countWidth - 1
	if width < minBarWidth {
		width = minBarWidth
	}
	return width
}

func toSet(numbers []int) map[int]struct{} {
	set := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		set[n] = struct{}{}
	}
	return set
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
