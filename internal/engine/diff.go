package engine

import "sort"

// DiffState is the correctness of an input buffer against a passage.
// ErrorPositions only holds indexes below min(len(input), len(passage));
// characters typed past the end of the passage are counted in ExtraCount
// and IncorrectCount.
type DiffState struct {
	ErrorPositions []int
	CurrentStreak  int
	BestStreak     int
	CorrectCount   int
	IncorrectCount int
	ExtraCount     int
}

// Diff recomputes the full diff state. Comparison is per code point.
func Diff(input, target []rune) DiffState {
	var d DiffState
	n := min(len(input), len(target))
	for i := 0; i < n; i++ {
		if input[i] == target[i] {
			d.CorrectCount++
			d.CurrentStreak++
			d.BestStreak = max(d.BestStreak, d.CurrentStreak)
			continue
		}
		d.IncorrectCount++
		d.CurrentStreak = 0
		d.ErrorPositions = append(d.ErrorPositions, i)
	}
	if extra := len(input) - len(target); extra > 0 {
		d.ExtraCount = extra
		d.IncorrectCount += extra
		d.CurrentStreak = 0
	}
	return d
}

// IsError reports whether index i is a recorded mismatch.
func (d DiffState) IsError(i int) bool {
	idx := sort.SearchInts(d.ErrorPositions, i)
	return idx < len(d.ErrorPositions) && d.ErrorPositions[idx] == i
}

// HasErrorBefore reports whether any mismatch sits at an index below pos.
func (d DiffState) HasErrorBefore(pos int) bool {
	return len(d.ErrorPositions) > 0 && d.ErrorPositions[0] < pos
}

// LastErrorBefore returns the greatest mismatch index below pos.
func (d DiffState) LastErrorBefore(pos int) (int, bool) {
	idx := sort.SearchInts(d.ErrorPositions, pos)
	if idx == 0 {
		return 0, false
	}
	return d.ErrorPositions[idx-1], true
}

// Accuracy is the point-in-time accuracy of the buffer, 100 when empty.
func (d DiffState) Accuracy() float64 {
	total := d.CorrectCount + d.IncorrectCount
	if total == 0 {
		return 100
	}
	return float64(d.CorrectCount) / float64(total) * 100
}
