package engine

import (
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/typerpunk/internal/corpus"
	"github.com/verte-zerg/typerpunk/internal/model"
)

// Source picks passage indexes.
type Source interface {
	Intn(n int) int
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCategory preselects a category. Unknown categories are ignored.
func WithCategory(name string) Option {
	return func(s *Session) {
		if s.corpus.HasCategory(name) {
			s.category = name
		}
	}
}

// Session is a single-user typing session. It is not safe for concurrent use;
// the host loop owns it and feeds it one event at a time.
type Session struct {
	corpus     *corpus.Corpus
	src        Source
	now        func() time.Time
	categories []string

	state    State
	category string
	exit     bool

	passage    model.Passage
	hasPassage bool
	target     []rune
	input      []rune

	diff    DiffState
	ledger  Ledger
	timer   Timer
	history []int
}

// New creates a session in the main menu.
func New(c *corpus.Corpus, src Source, opts ...Option) *Session {
	s := &Session{
		corpus:     c,
		src:        src,
		now:        time.Now,
		categories: c.Categories(),
		state:      StateMainMenu,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle applies one event. Events that do not apply to the current state are
// ignored.
func (s *Session) Handle(ev Event) error {
	switch s.state {
	case StateMainMenu:
		return s.handleMenu(ev)
	case StateTyping:
		return s.handleTyping(ev)
	case StateEndScreen:
		return s.handleEndScreen(ev)
	}
	return nil
}

func (s *Session) handleMenu(ev Event) error {
	switch ev.Kind {
	case KindConfirm:
		return s.start()
	case KindCancel:
		s.exit = true
	case KindCategoryLeft:
		s.cycleCategory(-1)
	case KindCategoryRight:
		s.cycleCategory(1)
	}
	return nil
}

func (s *Session) handleTyping(ev Event) error {
	switch ev.Kind {
	case KindChar:
		return s.insert(ev)
	case KindBackspace:
		if n, ok := Backspace(s.input, s.diff); ok {
			s.truncate(n)
		}
	case KindWordDelete:
		if n, ok := WordDelete(s.input, s.diff); ok {
			s.truncate(n)
		}
	case KindCancel:
		s.toMenu()
	}
	return nil
}

func (s *Session) handleEndScreen(ev Event) error {
	switch ev.Kind {
	case KindConfirm:
		return s.start()
	case KindCancel:
		s.toMenu()
	}
	return nil
}

func (s *Session) start() error {
	if s.corpus.Len() == 0 {
		return ErrEmptyCorpus
	}
	pool := s.corpus.Pool(s.category)
	if len(pool) == 0 {
		pool = s.corpus.Pool("")
	}
	idx := pool[s.src.Intn(len(pool))]
	s.reset()
	s.passage = s.corpus.Passage(idx)
	s.hasPassage = true
	s.target = []rune(s.passage.Content)
	s.state = StateTyping
	return nil
}

func (s *Session) toMenu() {
	s.reset()
	s.passage = model.Passage{}
	s.hasPassage = false
	s.target = nil
	s.state = StateMainMenu
}

func (s *Session) reset() {
	s.input = nil
	s.diff = DiffState{}
	s.ledger = Ledger{}
	s.timer.Reset()
	s.history = nil
}

func (s *Session) insert(ev Event) error {
	if ev.Modified {
		return nil
	}
	if !utf8.ValidString(ev.Text) {
		return ErrInvalidText
	}
	for _, r := range ev.Text {
		if unicode.IsControl(r) {
			continue
		}
		s.timer.Start(s.now())
		pos := len(s.input)
		s.ledger.Record(pos < len(s.target) && s.target[pos] == r)
		s.input = append(s.input, r)
		s.update()
		if s.state != StateTyping {
			return nil
		}
	}
	return nil
}

func (s *Session) truncate(n int) {
	s.input = s.input[:n]
	s.update()
}

// update recomputes the diff and checks the completion predicate.
func (s *Session) update() {
	s.diff = Diff(s.input, s.target)
	if Complete(string(s.input), s.passage.Content) {
		now := s.now()
		s.timer.Stop(now)
		s.history = sampleHistory(s.history, s.timer.Elapsed(now), s.WPM())
		s.state = StateEndScreen
	}
}

func (s *Session) cycleCategory(step int) {
	n := len(s.categories)
	if n == 0 {
		return
	}
	// Position 0 is "no category"; i+1 maps to categories[i].
	pos := 0
	if idx := slices.Index(s.categories, s.category); idx >= 0 {
		pos = idx + 1
	}
	pos = ((pos+step)%(n+1) + n + 1) % (n + 1)
	if pos == 0 {
		s.category = ""
		return
	}
	s.category = s.categories[pos-1]
}

// Complete is the completion predicate: input matches content ignoring
// surrounding whitespace.
func Complete(input, content string) bool {
	return strings.TrimSpace(input) == strings.TrimSpace(content)
}

// Tick samples the WPM history. The host calls it periodically.
func (s *Session) Tick() {
	if s.state == StateMainMenu || !s.timer.Started() {
		return
	}
	s.history = sampleHistory(s.history, s.Elapsed(), s.WPM())
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// ShouldExit reports whether the host loop should terminate.
func (s *Session) ShouldExit() bool { return s.exit }

// Category returns the selected category, empty for random.
func (s *Session) Category() string { return s.category }

// Categories returns the category cycle list.
func (s *Session) Categories() []string { return slices.Clone(s.categories) }

// Passage returns the active passage; ok is false in the main menu.
func (s *Session) Passage() (model.Passage, bool) { return s.passage, s.hasPassage }

// Input returns the typed text.
func (s *Session) Input() string { return string(s.input) }

// Diff returns the current diff state.
func (s *Session) Diff() DiffState { return s.diff }

// Ledger returns the cumulative keystroke ledger.
func (s *Session) Ledger() Ledger { return s.ledger }

// History returns one WPM sample per whole elapsed second.
func (s *Session) History() []int { return slices.Clone(s.history) }

// IsFinished reports whether the active passage was completed.
func (s *Session) IsFinished() bool { return s.state == StateEndScreen }

// Elapsed is the time since the first keystroke, frozen at completion.
func (s *Session) Elapsed() time.Duration { return s.timer.Elapsed(s.now()) }

// WPM is computed from correctly typed characters.
func (s *Session) WPM() float64 { return WPM(s.diff.CorrectCount, s.Elapsed()) }

// Accuracy is the cumulative ledger accuracy.
func (s *Session) Accuracy() float64 { return s.ledger.Accuracy() }

// LiveAccuracy is the point-in-time accuracy of the buffer.
func (s *Session) LiveAccuracy() float64 { return s.diff.Accuracy() }

// Progress is typed code points over passage code points, in percent and
// unclamped.
func (s *Session) Progress() float64 {
	if len(s.input) == 0 || len(s.target) == 0 {
		return 0
	}
	return float64(len(s.input)) / float64(len(s.target)) * 100
}

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	State        State
	Category     string
	Passage      model.Passage
	HasPassage   bool
	Target       []rune
	Input        []rune
	Diff         DiffState
	Ledger       Ledger
	WPM          float64
	Accuracy     float64
	LiveAccuracy float64
	Elapsed      time.Duration
	Progress     float64
	History      []int
}

// Snapshot copies the renderable state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:        s.state,
		Category:     s.category,
		Passage:      s.passage,
		HasPassage:   s.hasPassage,
		Target:       slices.Clone(s.target),
		Input:        slices.Clone(s.input),
		Diff:         s.diff,
		Ledger:       s.ledger,
		WPM:          s.WPM(),
		Accuracy:     s.Accuracy(),
		LiveAccuracy: s.LiveAccuracy(),
		Elapsed:      s.Elapsed(),
		Progress:     s.Progress(),
		History:      s.History(),
	}
}
