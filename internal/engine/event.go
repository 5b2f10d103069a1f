package engine

// Kind classifies an input event.
type Kind int

const (
	// KindNone is an event the engine ignores.
	KindNone Kind = iota
	KindChar
	KindBackspace
	KindWordDelete
	KindConfirm
	KindCancel
	KindCategoryLeft
	KindCategoryRight
)

func (k Kind) String() string {
	switch k {
	case KindChar:
		return "char"
	case KindBackspace:
		return "backspace"
	case KindWordDelete:
		return "word-delete"
	case KindConfirm:
		return "confirm"
	case KindCancel:
		return "cancel"
	case KindCategoryLeft:
		return "category-left"
	case KindCategoryRight:
		return "category-right"
	default:
		return "none"
	}
}

// Event is a classified key press. Text is set for KindChar; Modified marks
// characters typed with a modifier that must not be inserted.
type Event struct {
	Kind     Kind
	Text     string
	Modified bool
}

// Char returns a printable character event.
func Char(text string) Event {
	return Event{Kind: KindChar, Text: text}
}
