package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typerpunk/internal/engine"
)

func styleRunes(target, input []rune, cursorIndex int) []styledRune {
	return buildStyledRunes(target, input, engine.Diff(input, target), cursorIndex)
}

func TestBuildStyledRunesCursor(t *testing.T) {
	target := []rune("ab")
	input := []rune("a")

	runes := styleRunes(target, input, len(input))
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined current-word style at cursor")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	runes := styleRunes([]rune("a"), []rune("a"), -1)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	runes := styleRunes([]rune("ab"), []rune("ax"), -1)
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected passage rune in incorrect style")
	}
}

func TestBuildStyledRunesFollowsDiff(t *testing.T) {
	diff := engine.DiffState{ErrorPositions: []int{0}}
	runes := buildStyledRunes([]rune("ab"), []rune("ab"), diff, -1)
	if runes[0].s != incorrectStyle.Render("a") {
		t.Fatalf("expected recorded error to be styled incorrect")
	}
	if runes[1].s != correctStyle.Render("b") {
		t.Fatalf("expected unrecorded index to be styled correct")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	target := []rune("one two")
	input := []rune("o")

	runes := styleRunes(target, input, len(input))
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	runes := styleRunes([]rune("a b"), []rune("ax"), 2)
	if runes[1].s != incorrectStyle.Render(string(wrongSpace)) {
		t.Fatalf("expected dot for wrong space")
	}
	if !runes[1].isSpace {
		t.Fatalf("wrong space must stay a wrap point")
	}
}

func TestBuildStyledRunesOverflow(t *testing.T) {
	runes := styleRunes([]rune("ab"), []rune("abc d"), -1)
	if len(runes) != 5 {
		t.Fatalf("expected passage plus 3 overflow runes, got %d", len(runes))
	}
	if runes[2].s != overflowStyle.Render("c") {
		t.Fatalf("expected overflow style for extra rune")
	}
	if runes[3].s != overflowStyle.Render(string(wrongSpace)) {
		t.Fatalf("expected visible marker for extra space")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	plain := func(text string) []styledRune {
		out := make([]styledRune, 0, len(text))
		for _, r := range text {
			out = append(out, newStyledRune(string(r), r, r == ' '))
		}
		return out
	}

	got := wrapStyledRunes(plain("one two three"), 8)
	if got != "one two\nthree" {
		t.Fatalf("unexpected wrap: %q", got)
	}
	got = wrapStyledRunes(plain("abcdefghij"), 4)
	if got != "abcd\nefgh\nij" {
		t.Fatalf("unexpected hard wrap: %q", got)
	}
	got = wrapStyledRunes(plain("日本 語"), 5)
	if got != "日本\n語" {
		t.Fatalf("unexpected wide-rune wrap: %q", got)
	}
	if lipgloss.Width(wrapStyledRunes(plain("short"), 0)) != 5 {
		t.Fatalf("expected no wrapping for zero width")
	}
	if strings.Contains(wrapStyledRunes(plain("a b"), 10), "\n") {
		t.Fatalf("expected single line")
	}
}
