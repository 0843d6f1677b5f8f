package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Number", "Count", "Share"}
	rows := [][]string{
		{"7", "1,204", "12.50%"},
		{"69", "8", "0.08%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Number  Count   Share" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "7       1,204  12.50%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "69          8   0.08%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil lines, got %v", lines)
	}
}
