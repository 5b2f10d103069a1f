package tui

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typerpunk/internal/engine"
)

// wrongSpace replaces a passage space that was typed as something else.
const wrongSpace = '•'

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes renders the passage with the correctness recorded in diff.
// Characters typed past the end of the passage are appended struck through.
func buildStyledRunes(targetRunes, inputRunes []rune, diff engine.DiffState, cursorIndex int) []styledRune {
	currentWord := wordForCursor(findWords(targetRunes), cursorIndex)

	out := make([]styledRune, 0, max(len(targetRunes), len(inputRunes)))
	for i, target := range targetRunes {
		displayed := target
		style := pendingStyle
		switch {
		case i < len(inputRunes):
			style = correctStyle
			if diff.IsError(i) {
				style = incorrectStyle
				if unicode.IsSpace(target) {
					displayed = wrongSpace
				}
			}
		case !unicode.IsSpace(target) && currentWord != nil && currentWord.contains(i):
			style = currentWordStyle
		}
		if i == cursorIndex {
			style = style.Underline(true)
		}
		out = append(out, newStyledRune(style.Render(string(displayed)), displayed, unicode.IsSpace(target)))
	}
	for _, extra := range inputRunes[min(len(inputRunes), len(targetRunes)):] {
		displayed := extra
		if unicode.IsSpace(extra) {
			displayed = wrongSpace
		}
		out = append(out, newStyledRune(overflowStyle.Render(string(displayed)), displayed, unicode.IsSpace(extra)))
	}
	return out
}

func newStyledRune(rendered string, r rune, isSpace bool) styledRune {
	return styledRune{
		s:       rendered,
		width:   runewidth.RuneWidth(r),
		isSpace: isSpace,
	}
}

type wordRange struct {
	start int
	end   int
}

func (w wordRange) contains(i int) bool {
	return i >= w.start && i < w.end
}

func findWords(targetRunes []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range targetRunes {
		if unicode.IsSpace(r) {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(targetRunes)})
	}
	return words
}

// wordForCursor returns the word under the cursor, or the next word when the
// cursor sits on whitespace.
func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 || cursorIndex < 0 {
		return nil
	}
	for i, w := range words {
		if cursorIndex < w.end {
			return &words[i]
		}
	}
	return nil
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines at the last space that fits within width,
// falling back to a hard break for words longer than a line.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, width)
	lineWidth := 0
	lastSpace := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpace >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpace]))
				line = append([]styledRune{}, line[lastSpace+1:]...)
			} else {
				out.WriteString(renderStyledRunes(line))
				line = line[:0]
			}
			out.WriteRune('\n')
			lineWidth, lastSpace = measure(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpace = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func measure(line []styledRune) (width, lastSpace int) {
	lastSpace = -1
	for i, item := range line {
		width += item.width
		if item.isSpace {
			lastSpace = i
		}
	}
	return width, lastSpace
}
