package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/hanzi/internal/screen"
)

type initMsg string

// fakeScreen records the messages it was sent and answers Init with its
// title so tests can see which screen was initialised.
type fakeScreen struct {
	title string
	got   []tea.Msg
	next  screen.Screen
}

func (s *fakeScreen) Init() tea.Cmd {
	return func() tea.Msg { return initMsg(s.title) }
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	if s.next != nil {
		return s.next, nil
	}
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.title }
func (s *fakeScreen) Title() string        { return s.title }

func screenNamed(title string) *fakeScreen { return &fakeScreen{title: title} }

func TestRouter_PracticeFlow(t *testing.T) {
	home := screenNamed("home")
	r := New(home)

	cmd := r.Update(PushScreenMsg{Screen: screenNamed("practice")})
	assert.Equal(t, initMsg("practice"), cmd())
	assert.Equal(t, 2, r.Depth())

	cmd = r.Update(ReplaceScreenMsg{Screen: screenNamed("summary")})
	assert.Equal(t, initMsg("summary"), cmd())
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "summary", r.View(80, 24))

	assert.Nil(t, r.Update(PopScreenMsg{}))
	assert.Equal(t, "home", r.Active().Title())
}

func TestRouter_RootIsNeverPopped(t *testing.T) {
	r := New(screenNamed("home"))
	for range 3 {
		r.Pop()
	}
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "home", r.Active().Title())
}

func TestRouter_PopClearsSlot(t *testing.T) {
	r := New(screenNamed("home"))
	r.Push(screenNamed("history"))
	r.Pop()
	assert.Nil(t, r.stack[:2][1])
}

func TestRouter_ForwardsOtherMessages(t *testing.T) {
	home := screenNamed("home")
	top := screenNamed("practice")
	r := New(home)
	r.Push(top)

	r.Update(initMsg("tick"))
	assert.Equal(t, []tea.Msg{initMsg("tick")}, top.got)
	assert.Empty(t, home.got)
}

func TestRouter_KeepsScreenReturnedByUpdate(t *testing.T) {
	replacement := screenNamed("replacement")
	r := New(&fakeScreen{title: "original", next: replacement})
	r.Update(initMsg("x"))
	assert.Same(t, replacement, r.Active())
}

func TestRouter_Empty(t *testing.T) {
	r := &Router{}
	assert.Nil(t, r.Active())
	assert.Equal(t, "", r.View(10, 10))
	assert.Nil(t, r.Update(initMsg("x")))

	cmd := r.Replace(screenNamed("first"))
	assert.Equal(t, initMsg("first"), cmd())
	assert.Equal(t, 1, r.Depth())
}
