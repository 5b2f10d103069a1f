package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typerpunk/internal/corpus"
	"github.com/verte-zerg/typerpunk/internal/engine"
	"github.com/verte-zerg/typerpunk/internal/logging"
	"github.com/verte-zerg/typerpunk/internal/model"
)

type zeroSource struct{}

func (zeroSource) Intn(int) int { return 0 }

func newTestModel(passages ...model.Passage) (*Model, *engine.Session) {
	session := engine.New(corpus.New(passages), zeroSource{})
	return NewModel(session, logging.Discard()), session
}

func sendKeys(m *Model, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func TestModelFlow(t *testing.T) {
	m, session := newTestModel(model.Passage{Content: "hi", Attribution: "tester", Category: "greet"})

	sendKeys(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "greet", session.Category())
	assert.Contains(t, m.View(), "greet")

	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, engine.StateTyping, session.State())
	assert.NotEmpty(t, m.sessionID)

	sendKeys(m, runes("h"), runes("i"))
	require.Equal(t, engine.StateEndScreen, session.State())
	view := m.View()
	assert.Contains(t, view, "Passage complete")
	assert.Contains(t, view, "by tester")

	sendKeys(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, engine.StateMainMenu, session.State())
	assert.Empty(t, m.sessionID)

	cmd := sendKeys(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(model.Passage{Content: "hi"})
	cmd := sendKeys(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelEmptyCorpusShowsError(t *testing.T) {
	m, session := newTestModel()
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, engine.StateMainMenu, session.State())
	assert.Contains(t, m.View(), "No passages available")
}

func TestModelTickReschedules(t *testing.T) {
	m, _ := newTestModel(model.Passage{Content: "hi"})
	_, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd)
}

func TestModelTypingViewWithSize(t *testing.T) {
	m, _ := newTestModel(model.Passage{Content: "the quick brown fox"})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter}, runes("the"))

	view := m.View()
	assert.Equal(t, 20, len(strings.Split(view, "\n")))
	assert.Contains(t, view, "Progress 16%")
}

func TestRenderFooter(t *testing.T) {
	out := renderFooter(engine.Snapshot{
		WPM:          72.4,
		Accuracy:     97.8,
		LiveAccuracy: 100,
		Diff:         engine.DiffState{CurrentStreak: 12},
		Elapsed:      61500 * time.Millisecond,
		Progress:     50,
	})
	for _, want := range []string{"72 WPM", "Acc 97.8%", "Live 100.0%", "Streak 12", "1:01.5", "Progress 50%"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderHistory(t *testing.T) {
	assert.Empty(t, renderHistory(nil, 40))
	one := renderHistory([]int{30}, 40)
	assert.Contains(t, one, "WPM/s")
	assert.NotContains(t, one, "\n")

	many := renderHistory([]int{30, 40, 50, 45}, 40)
	assert.Equal(t, 1+chartHeight, len(strings.Split(many, "\n")))
}
