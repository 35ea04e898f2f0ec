package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/hanzi/internal/store"
)

func TestRecentSessionRows(t *testing.T) {
	ev := func(id int, action string) store.SessionEvent {
		return store.SessionEvent{ID: id, SessionEventData: store.SessionEventData{SessionID: id, Action: action}}
	}
	events := []store.SessionEvent{
		ev(4, "start"), ev(3, "end"), ev(3, "start"), ev(2, "end"), ev(2, "start"), ev(1, "end"),
	}

	got := recentSessionRows(events, 2)
	if assert.Len(t, got, 2) {
		assert.Equal(t, 3, got[0].SessionID)
		assert.Equal(t, 2, got[1].SessionID)
	}
	assert.Len(t, recentSessionRows(events, 10), 3)
	assert.Empty(t, recentSessionRows(nil, 5))
}
