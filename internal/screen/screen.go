package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzi/internal/ui/layout"
)

// Screen is one page of the terminal UI. The router owns a stack of them
// and only the top one receives messages.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep on the stack.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body, without the header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens that want their own footer.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that handle Esc themselves, for
// example to confirm before leaving. The app then forwards Esc instead of
// popping the screen.
type EscapeHandler interface {
	HandlesEscape() bool
}
