package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typerpunk/internal/engine"
	"github.com/verte-zerg/typerpunk/internal/stats"
)

const (
	contentRatio   = 0.70
	chartHeight    = 4
	smoothingWidth = 3
	randomLabel    = "Random"
)

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(int(float64(m.width)*contentRatio), 1)
}

func (m *Model) viewMenu(snap engine.Snapshot) string {
	category := snap.Category
	if category == "" {
		category = randomLabel
	}
	lines := []string{
		titleStyle.Render("typerpunk"),
		"",
		fmt.Sprintf("Category  ‹ %s ›", currentWordStyle.Render(category)),
	}
	if m.errMsg != "" {
		lines = append(lines, "", errorStyle.Render(m.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) viewTyping(snap engine.Snapshot) string {
	cursorIndex := -1
	if len(snap.Input) < len(snap.Target) {
		cursorIndex = len(snap.Input)
	}
	styled := buildStyledRunes(snap.Target, snap.Input, snap.Diff, cursorIndex)
	width := m.contentWidth()
	if width == 0 {
		return renderStyledRunes(styled) + "\n" + renderFooter(snap)
	}
	text := lipgloss.NewStyle().Width(width).Render(wrapStyledRunes(styled, width))
	m.progress.Width = width
	bar := m.progress.ViewAs(min(snap.Progress/100, 1))
	return lipgloss.JoinVertical(lipgloss.Left, text, "", bar, renderFooter(snap))
}

// renderFooter shows the live statistics line under the passage.
func renderFooter(snap engine.Snapshot) string {
	segments := []string{
		fmt.Sprintf("%.0f WPM", snap.WPM),
		fmt.Sprintf("Acc %.1f%%", snap.Accuracy),
		fmt.Sprintf("Live %.1f%%", snap.LiveAccuracy),
		fmt.Sprintf("Streak %d", snap.Diff.CurrentStreak),
		stats.FormatElapsed(snap.Elapsed),
		fmt.Sprintf("Progress %.0f%%", snap.Progress),
	}
	return footerStyle.Render(strings.Join(segments, " · "))
}

func (m *Model) viewEndScreen(snap engine.Snapshot) string {
	cards := []string{
		metricCard("WPM", fmt.Sprintf("%.1f", snap.WPM)),
		metricCard("Accuracy", fmt.Sprintf("%.1f%%", snap.Accuracy)),
		metricCard("Time", stats.FormatElapsed(snap.Elapsed)),
		metricCard("Best streak", fmt.Sprintf("%d", snap.Diff.BestStreak)),
	}
	var summary string
	if m.width > 0 && m.width < 60 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}

	lines := []string{titleStyle.Render("Passage complete"), "", summary}
	if snap.Passage.Attribution != "" {
		lines = append(lines, "", cardTitleStyle.Render("by "+snap.Passage.Attribution))
	}
	if history := renderHistory(snap.History, m.contentWidth()); history != "" {
		lines = append(lines, "", history)
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// renderHistory draws the per-second WPM samples as a sparkline and, when
// there are enough samples, a smoothed braille chart.
func renderHistory(history []int, width int) string {
	if len(history) == 0 {
		return ""
	}
	values := stats.Floats(history)
	parts := []string{footerStyle.Render("WPM/s " + stats.Sparkline(values))}
	if len(values) < 2 {
		return strings.Join(parts, "\n")
	}
	smoothed := stats.MovingAverage(values, smoothingWidth)
	chartWidth := stats.ChartWidthFor(width, 4)
	parts = append(parts, footerStyle.Render(strings.Join(stats.Chart(smoothed, chartWidth, chartHeight), "\n")))
	return strings.Join(parts, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}
