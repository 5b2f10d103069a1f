package stats

import (
	"fmt"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	minChartWidth       = 10
	terminalWidthBackup = 80
	axisSeparator       = " │ "
)

// Chart draws values as a braille line chart of width x height cells. Each
// line is prefixed with a right-aligned axis label; the top row carries the
// maximum and the bottom row the minimum.
func Chart(values []float64, width, height int) []string {
	if len(values) == 0 || height <= 0 {
		return nil
	}
	width = max(width, 1)
	scaled := resample(values, width)
	minVal, maxVal := bounds(scaled)
	if math.Abs(maxVal-minVal) < 1e-9 {
		minVal--
		maxVal++
	}

	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	dotRows := height * 4
	prevX, prevY := -1, -1
	for x, v := range scaled {
		pos := (v - minVal) / (maxVal - minVal)
		py := int(math.Round((1 - pos) * float64(dotRows-1)))
		py = max(0, min(py, dotRows-1))
		px := x * 2
		if prevX < 0 {
			setDot(cells, px, py)
		} else {
			drawLine(prevX, prevY, px, py, func(dx, dy int) { setDot(cells, dx, dy) })
		}
		prevX, prevY = px, py
	}

	top := fmt.Sprintf("%.0f", maxVal)
	bottom := fmt.Sprintf("%.0f", minVal)
	labelWidth := max(len(top), len(bottom))
	lines := make([]string, 0, height)
	for y, row := range cells {
		label := ""
		switch y {
		case 0:
			label = top
		case height - 1:
			label = bottom
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%*s%s", labelWidth, label, axisSeparator)
		for _, mask := range row {
			b.WriteRune(rune(0x2800 + int(mask)))
		}
		lines = append(lines, b.String())
	}
	return lines
}

// ChartWidthFor returns the plot width that fits totalWidth columns once the
// axis is drawn. A non-positive totalWidth falls back to the terminal size.
func ChartWidthFor(totalWidth, labelWidth int) int {
	if totalWidth <= 0 {
		totalWidth = terminalWidth()
	}
	return max(totalWidth-labelWidth-len([]rune(axisSeparator)), minChartWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := range out {
			start := i * len(values) / width
			end := max((i+1)*len(values)/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

// drawLine walks a Bresenham line between two dot coordinates.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func setDot(cells [][]uint8, x, y int) {
	cy, cx := y/4, x/2
	if x < 0 || y < 0 || cy >= len(cells) || cx >= len(cells[cy]) {
		return
	}
	cells[cy][cx] |= dotMask[x%2][y%4]
}

// dotMask maps a dot inside a 2x4 braille cell to its bit.
var dotMask = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
