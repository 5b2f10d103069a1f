// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/typerpunk/internal/engine"
)

const tickInterval = 100 * time.Millisecond

type tickMsg time.Time

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	overflowStyle    = incorrectStyle.Strikethrough(true)
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle        = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model hosts an engine.Session in a Bubble Tea program.
type Model struct {
	session *engine.Session
	logger  *slog.Logger

	sessionID string
	errMsg    string

	help     help.Model
	progress progress.Model

	width  int
	height int
}

// NewModel constructs the typing TUI around session.
func NewModel(session *engine.Session, logger *slog.Logger) *Model {
	return &Model{
		session:  session,
		logger:   logger,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		m.session.Tick()
		return m, tick()
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		m.handle(Classify(msg))
		if m.session.ShouldExit() {
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handle(ev engine.Event) {
	if ev.Kind == engine.KindNone {
		return
	}
	prev := m.session.State()
	err := m.session.Handle(ev)
	switch {
	case errors.Is(err, engine.ErrInvalidText):
		m.logger.Warn("invalid text rejected", "session", m.sessionID, "err", err)
	case errors.Is(err, engine.ErrEmptyCorpus):
		m.errMsg = "No passages available. Import some with `typerpunk import FILE`."
		m.logger.Error("cannot start session", "err", err)
	case err != nil:
		m.logger.Error("event failed", "kind", ev.Kind.String(), "err", err)
	default:
		m.errMsg = ""
	}
	if next := m.session.State(); next != prev {
		m.logTransition(prev, next)
	}
}

func (m *Model) logTransition(prev, next engine.State) {
	switch next {
	case engine.StateTyping:
		m.sessionID = uuid.NewString()
		passage, _ := m.session.Passage()
		m.logger.Info("session started",
			"session", m.sessionID,
			"category", m.session.Category(),
			"passage_category", passage.Category,
			"runes", len([]rune(passage.Content)),
		)
	case engine.StateEndScreen:
		m.logger.Info("session finished",
			"session", m.sessionID,
			"wpm", m.session.WPM(),
			"accuracy", m.session.Accuracy(),
			"elapsed", m.session.Elapsed(),
			"best_streak", m.session.Diff().BestStreak,
		)
	case engine.StateMainMenu:
		if prev == engine.StateTyping {
			m.logger.Info("session abandoned", "session", m.sessionID)
		}
		m.sessionID = ""
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.session.Snapshot()
	var content string
	switch snap.State {
	case engine.StateTyping:
		content = m.viewTyping(snap)
	case engine.StateEndScreen:
		content = m.viewEndScreen(snap)
	default:
		content = m.viewMenu(snap)
	}
	helpLine := footerStyle.Render(m.help.ShortHelpView(helpBindings(snap.State)))
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + helpLine
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, helpLine)
}
