package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func press(s string) tea.KeyPressMsg {
	switch s {
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

type picked string

func testMenu() Menu {
	pick := func(name string) func() tea.Cmd {
		return func() tea.Cmd { return func() tea.Msg { return picked(name) } }
	}
	return NewMenu([]MenuItem{
		{Label: "Deck review", Key: "d", Action: pick("deck")},
		{Label: "Active practice", Key: "a", Action: pick("active"), Disabled: true},
		{Label: "History", Key: "h", Action: pick("history")},
	})
}

func TestMenu_SkipsDisabledAndWraps(t *testing.T) {
	m := testMenu()
	assert.Equal(t, 0, m.Selected)

	m, _ = m.Update(press("down"))
	assert.Equal(t, 2, m.Selected)
	m, _ = m.Update(press("down"))
	assert.Equal(t, 0, m.Selected)
	m, _ = m.Update(press("up"))
	assert.Equal(t, 2, m.Selected)
}

func TestMenu_Activate(t *testing.T) {
	m := testMenu()
	m, cmd := m.Update(press("enter"))
	if assert.NotNil(t, cmd) {
		assert.Equal(t, picked("deck"), cmd())
	}

	m, cmd = m.Update(press("h"))
	if assert.NotNil(t, cmd) {
		assert.Equal(t, picked("history"), cmd())
	}
	assert.Equal(t, 2, m.Selected)

	_, cmd = m.Update(press("a"))
	assert.Nil(t, cmd, "disabled item must not fire")
}

func TestMenu_FirstEnabledSelected(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "x", Disabled: true}, {Label: "y"}})
	assert.Equal(t, 1, m.Selected)
	assert.Contains(t, m.View(), "▸ y")
}
