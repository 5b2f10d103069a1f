package stats

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChartShape(t *testing.T) {
	lines := Chart([]float64{10, 20, 40, 30, 60}, 8, 3)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "60"+axisSeparator) {
		t.Fatalf("expected max label on top row, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "10"+axisSeparator) {
		t.Fatalf("expected min label on bottom row, got %q", lines[2])
	}
	for _, line := range lines {
		plot := strings.SplitN(line, axisSeparator, 2)[1]
		if got := utf8.RuneCountInString(plot); got != 8 {
			t.Fatalf("expected 8 plot cells, got %d in %q", got, line)
		}
	}
}

func TestChartEmpty(t *testing.T) {
	if lines := Chart(nil, 10, 3); lines != nil {
		t.Fatalf("expected no lines, got %v", lines)
	}
}

func TestChartFlatSeries(t *testing.T) {
	lines := Chart([]float64{5}, 4, 2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	joined := strings.Join(lines, "")
	if !strings.ContainsFunc(joined, func(r rune) bool { return r > 0x2800 && r <= 0x28FF }) {
		t.Fatalf("expected plotted dots, got %q", joined)
	}
}

func TestChartWidthFor(t *testing.T) {
	sepWidth := utf8.RuneCountInString(axisSeparator)
	if got := ChartWidthFor(80, 3); got != 80-3-sepWidth {
		t.Fatalf("unexpected width %d", got)
	}
	if got := ChartWidthFor(5, 3); got != minChartWidth {
		t.Fatalf("expected min width %d, got %d", minChartWidth, got)
	}
}
