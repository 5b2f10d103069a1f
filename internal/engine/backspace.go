package engine

import "unicode"

// WordStart returns the index where the last word of input begins. A
// whitespace run closes the preceding word once; leading whitespace keeps the
// boundary at 0.
func WordStart(input []rune) int {
	start := 0
	inWord := false
	for i, r := range input {
		if unicode.IsSpace(r) {
			if inWord {
				start = i + 1
			}
			inWord = false
			continue
		}
		inWord = true
	}
	return start
}

// Backspace applies a single-character deletion and returns the new input
// length. d must be the diff of input. Deleting inside the current word is
// always allowed; crossing into an earlier word requires a mismatch before
// the word start. ok is false when the buffer must not change.
func Backspace(input []rune, d DiffState) (int, bool) {
	if len(input) == 0 {
		return 0, false
	}
	pos := len(input) - 1
	start := WordStart(input)
	if pos >= start || d.HasErrorBefore(start) {
		return pos, true
	}
	return len(input), false
}

// WordDelete truncates input to the start of the current word. When the
// current word is empty it instead jumps back to the start of the word
// holding the nearest earlier mismatch. d must be the diff of input.
func WordDelete(input []rune, d DiffState) (int, bool) {
	start := WordStart(input)
	if start < len(input) {
		return start, true
	}
	pos, ok := d.LastErrorBefore(start)
	if !ok {
		return len(input), false
	}
	return WordStart(input[:pos]), true
}
