// Package app is the root bubbletea model of the terminal UI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	practicesvc "github.com/abhisek/hanzi/internal/practice"
	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/screens/home"
	"github.com/abhisek/hanzi/internal/screens/practice"
	"github.com/abhisek/hanzi/internal/session"
	"github.com/abhisek/hanzi/internal/ui/layout"
)

// Options choose the first screen and the practice defaults.
type Options struct {
	// StartMode, when set, opens a practice run directly instead of the
	// home menu.
	StartMode session.Mode
	DeckRef   string
	QueueSize int
}

// AppModel is the root model. Every Update runs on the bubbletea event
// loop, which makes it the only place the practice service is mutated.
type AppModel struct {
	svc     *practicesvc.Service
	router  *router.Router
	initCmd tea.Cmd
	width   int
	height  int
}

func newAppModel(ctx context.Context, svc *practicesvc.Service, opts Options) AppModel {
	m := AppModel{
		svc:    svc,
		router: router.New(home.New(ctx, svc, home.Options{DeckRef: opts.DeckRef, QueueSize: opts.QueueSize})),
	}
	if opts.StartMode != "" {
		m.initCmd = m.router.Push(practice.New(ctx, svc, practice.Options{
			Mode:      opts.StartMode,
			DeckRef:   opts.DeckRef,
			QueueSize: opts.QueueSize,
		}))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.svc.InSession() {
				if _, err := m.svc.EndSession(context.Background()); err != nil {
					slog.Error("saving session on quit", "error", err)
				}
			}
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}
	agg := m.svc.Aggregator()
	header := layout.RenderHeader(title, agg.Streak(), agg.StreakDays(m.svc.Now()), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the program and blocks until it exits.
func Run(ctx context.Context, svc *practicesvc.Service, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, svc, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
