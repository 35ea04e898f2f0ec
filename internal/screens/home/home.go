package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/mastery"
	practicesvc "github.com/abhisek/hanzi/internal/practice"
	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/screens/history"
	"github.com/abhisek/hanzi/internal/screens/practice"
	"github.com/abhisek/hanzi/internal/session"
	"github.com/abhisek/hanzi/internal/spacedrep"
	"github.com/abhisek/hanzi/internal/ui/components"
	"github.com/abhisek/hanzi/internal/ui/layout"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

const (
	itemDeck = iota
	itemActive
	itemHistory
	itemQuit
)

// Options are the practice defaults the home screen starts runs with.
type Options struct {
	DeckRef   string
	QueueSize int
}

// HomeScreen is the main menu.
type HomeScreen struct {
	svc  *practicesvc.Service
	opts Options
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(ctx context.Context, svc *practicesvc.Service, opts Options) *HomeScreen {
	start := func(mode session.Mode) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: practice.New(ctx, svc, practice.Options{
					Mode:      mode,
					DeckRef:   opts.DeckRef,
					QueueSize: opts.QueueSize,
				})}
			}
		}
	}

	items := make([]components.MenuItem, itemQuit+1)
	items[itemDeck] = components.MenuItem{Label: "Deck review", Key: "d", Action: start(session.ModeDeck)}
	items[itemActive] = components.MenuItem{Label: "Active practice", Key: "a", Action: start(session.ModeActive)}
	items[itemHistory] = components.MenuItem{Label: "History", Key: "h", Action: func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: history.New(svc)} }
	}}
	items[itemQuit] = components.MenuItem{Label: "Quit", Key: "q", Action: func() tea.Cmd { return tea.Quit }}

	return &HomeScreen{svc: svc, opts: opts, menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// View recomputes the counts on every render so they are current after a
// session pops back here.
func (h *HomeScreen) View(width, height int) string {
	now := h.svc.Now()
	d := h.svc.Collection().Lookup(h.opts.DeckRef)
	if d == nil {
		d = h.svc.Collection().Default()
	}
	counts := d.Counts(now)
	chars := h.svc.ActiveChars(h.opts.DeckRef)

	h.menu.Items[itemDeck].Hint = fmt.Sprintf("%s · %d due · %d new",
		d.Name, counts[spacedrep.ReviewDue], counts[spacedrep.ReviewNew])
	h.menu.Items[itemActive].Hint = layout.Plural(len(chars), "character")
	h.menu.Items[itemActive].Disabled = len(chars) == 0

	var sections []string
	sections = append(sections,
		theme.Title.Width(width).Render("汉字"),
		theme.Subtitle.Width(width).Render("Learn Chinese characters, one stroke at a time"),
		layout.Center(width, h.renderStats()),
		layout.Center(width, theme.Card.Render(h.menu.View())),
	)
	return "\n" + strings.Join(sections, "\n\n")
}

func (h *HomeScreen) renderStats() string {
	bands := h.svc.Tracker().BandCounts()
	agg := h.svc.Aggregator()
	parts := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Render("★ " + layout.Plural(agg.StreakDays(h.svc.Now()), "day")),
	}
	for _, b := range []mastery.Band{mastery.BandWeak, mastery.BandMedium, mastery.BandStrong} {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.BandColor(b)).Render(fmt.Sprintf("%s %d", b, bands[b])))
	}
	return strings.Join(parts, "   ")
}
