package engine

import (
	"math"
	"time"
)

// charsPerWord is the conventional word length used for WPM.
const charsPerWord = 5

// Ledger counts forward keystrokes. It only grows: corrections never remove
// an incorrect keystroke.
type Ledger struct {
	Total     int
	Incorrect int
}

// Record adds one keystroke.
func (l *Ledger) Record(correct bool) {
	l.Total++
	if !correct {
		l.Incorrect++
	}
}

// Accuracy is the cumulative keystroke accuracy, 100 when nothing was typed.
func (l Ledger) Accuracy() float64 {
	if l.Total == 0 {
		return 100
	}
	return float64(l.Total-l.Incorrect) / float64(l.Total) * 100
}

// WPM converts correct characters over elapsed time to words per minute.
func WPM(correct int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(correct) / charsPerWord / elapsed.Minutes()
}

// Timer measures a session from the first keystroke to completion.
type Timer struct {
	start   time.Time
	stop    time.Time
	started bool
	stopped bool
}

// Start records the start instant once.
func (t *Timer) Start(now time.Time) {
	if t.started {
		return
	}
	t.start = now
	t.started = true
}

// Stop freezes the elapsed time.
func (t *Timer) Stop(now time.Time) {
	if !t.started || t.stopped {
		return
	}
	t.stop = now
	t.stopped = true
}

// Started reports whether the first keystroke happened.
func (t *Timer) Started() bool {
	return t.started
}

// Elapsed returns the running or frozen duration.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	switch {
	case !t.started:
		return 0
	case t.stopped:
		return t.stop.Sub(t.start)
	default:
		if now.Before(t.start) {
			return 0
		}
		return now.Sub(t.start)
	}
}

// Reset clears the timer.
func (t *Timer) Reset() {
	*t = Timer{}
}

// sampleHistory appends one rounded WPM sample per whole elapsed second.
func sampleHistory(history []int, elapsed time.Duration, wpm float64) []int {
	seconds := int(elapsed / time.Second)
	for len(history) < seconds {
		history = append(history, int(math.Round(wpm)))
	}
	return history
}
