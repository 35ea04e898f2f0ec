package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzi/internal/screen"
)

type stubScreen struct{}

func newStub() *stubScreen { return &stubScreen{} }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "stub" }
func (s *stubScreen) Title() string                           { return "Stub" }
