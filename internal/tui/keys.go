package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typerpunk/internal/engine"
)

type keyMap struct {
	Quit          key.Binding
	Confirm       key.Binding
	Cancel        key.Binding
	CategoryLeft  key.Binding
	CategoryRight key.Binding
	WordDelete    key.Binding
	Backspace     key.Binding
}

// Terminals that cannot send ctrl+backspace deliver it as ctrl+h, so ctrl+h
// and ctrl+w both map to word deletion.
var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "start"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	CategoryLeft: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev category"),
	),
	CategoryRight: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next category"),
	),
	WordDelete: key.NewBinding(
		key.WithKeys("alt+backspace", "ctrl+w", "ctrl+h"),
		key.WithHelp("ctrl+w", "delete word"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace", "delete"),
		key.WithHelp("⌫", "delete char"),
	),
}

// Classify maps a raw key press to an engine event. It never looks at the
// session, so the same key always produces the same event.
func Classify(msg tea.KeyMsg) engine.Event {
	switch {
	case key.Matches(msg, keys.WordDelete):
		return engine.Event{Kind: engine.KindWordDelete}
	case key.Matches(msg, keys.Backspace):
		return engine.Event{Kind: engine.KindBackspace}
	case key.Matches(msg, keys.Confirm):
		return engine.Event{Kind: engine.KindConfirm}
	case key.Matches(msg, keys.Cancel):
		return engine.Event{Kind: engine.KindCancel}
	case key.Matches(msg, keys.CategoryLeft):
		return engine.Event{Kind: engine.KindCategoryLeft}
	case key.Matches(msg, keys.CategoryRight):
		return engine.Event{Kind: engine.KindCategoryRight}
	}
	switch msg.Type {
	case tea.KeyRunes:
		return engine.Event{Kind: engine.KindChar, Text: string(msg.Runes), Modified: msg.Alt}
	case tea.KeySpace:
		return engine.Event{Kind: engine.KindChar, Text: " ", Modified: msg.Alt}
	default:
		return engine.Event{}
	}
}

func helpBindings(state engine.State) []key.Binding {
	switch state {
	case engine.StateMainMenu:
		return []key.Binding{keys.Confirm, keys.CategoryLeft, keys.CategoryRight, withHelp(keys.Cancel, "quit")}
	case engine.StateTyping:
		return []key.Binding{keys.WordDelete, keys.Cancel}
	default:
		return []key.Binding{withHelp(keys.Confirm, "next passage"), withHelp(keys.Cancel, "menu")}
	}
}

func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}
