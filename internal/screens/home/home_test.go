package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzi/internal/deck"
	practicesvc "github.com/abhisek/hanzi/internal/practice"
	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/store"
)

func newHome(t *testing.T, terms ...string) *HomeScreen {
	t.Helper()
	ctx := context.Background()
	svc, err := practicesvc.Open(ctx, practicesvc.Deps{
		Blobs: store.NewMemoryBlobStore(),
		Clock: func() time.Time { return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, term := range terms {
		if _, err := svc.AddCard(ctx, svc.Collection().Default().ID, deck.CardInput{Term: term}); err != nil {
			t.Fatalf("AddCard: %v", err)
		}
	}
	return New(ctx, svc, Options{QueueSize: 5})
}

func TestHomeScreen_View(t *testing.T) {
	h := newHome(t, "你好")
	view := h.View(100, 30)
	for _, want := range []string{"Deck review", "1 new", "2 characters", "History"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHomeScreen_ActiveDisabledWithoutCharacters(t *testing.T) {
	h := newHome(t)
	h.View(100, 30)
	if !h.menu.Items[itemActive].Disabled {
		t.Error("expected active practice disabled with no characters")
	}
}

func TestHomeScreen_StartDeckReview(t *testing.T) {
	h := newHome(t, "水")
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want PushScreenMsg", cmd())
	}
	if msg.Screen == nil {
		t.Error("expected a practice screen")
	}
}

func TestHomeScreen_History(t *testing.T) {
	h := newHome(t, "水")
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok || msg.Screen.Title() != "History" {
		t.Error("expected the history screen to be pushed")
	}
}
