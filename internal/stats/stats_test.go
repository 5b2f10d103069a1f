package stats

import (
	"strings"
	"testing"
	"time"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	same := MovingAverage([]float64{1, 5}, 1)
	if same[0] != 1 || same[1] != 5 {
		t.Fatalf("expected passthrough for window 1, got %v", same)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	line := Sparkline([]float64{0, 50, 100})
	runes := []rune(line)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %q", line)
	}
	if runes[0] != '▁' || runes[2] != '█' {
		t.Fatalf("expected min and max blocks, got %q", line)
	}
	flat := Sparkline([]float64{7, 7, 7})
	if flat != strings.Repeat("▅", 3) {
		t.Fatalf("expected flat sparkline, got %q", flat)
	}
}

func TestFloats(t *testing.T) {
	got := Floats([]int{1, 2})
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected conversion: %v", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := map[time.Duration]string{
		0:                                   "0:00.0",
		1500 * time.Millisecond:             "0:01.5",
		75 * time.Second:                    "1:15.0",
		-time.Second:                        "0:00.0",
		10*time.Minute + 99*time.Millisecond: "10:00.0",
	}
	for d, want := range cases {
		if got := FormatElapsed(d); got != want {
			t.Fatalf("FormatElapsed(%v): expected %q, got %q", d, want, got)
		}
	}
}
