package practice

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/hanzi/internal/deck"
	practicesvc "github.com/abhisek/hanzi/internal/practice"
	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/sentence"
	"github.com/abhisek/hanzi/internal/session"
	"github.com/abhisek/hanzi/internal/store"
)

type stubGenerator struct {
	pair *sentence.Pair
}

func (g *stubGenerator) Generate(context.Context, sentence.Input) (*sentence.Pair, error) {
	return g.pair, nil
}

func newService(t *testing.T, gen sentence.Generator, terms ...string) *practicesvc.Service {
	t.Helper()
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	svc, err := practicesvc.Open(context.Background(), practicesvc.Deps{
		Blobs:     store.NewMemoryBlobStore(),
		Generator: gen,
		Clock:     func() time.Time { return now },
		Rand:      rand.New(rand.NewPCG(1, 2)),
	})
	require.NoError(t, err)
	for _, term := range terms {
		_, err := svc.AddCard(context.Background(), svc.Collection().Default().ID, deck.CardInput{Term: term, Definition: "def " + term})
		require.NoError(t, err)
	}
	return svc
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

// run executes cmd and returns its message, or nil.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestDeckMode_RevealAndGrade(t *testing.T) {
	svc := newService(t, nil, "水")
	s := New(context.Background(), svc, Options{Mode: session.ModeDeck})
	s.Init()

	require.True(t, svc.InSession())
	assert.Equal(t, phasePrompt, s.phase)
	assert.Equal(t, "Deck Review", s.Title())

	s.Update(key("space"))
	assert.Equal(t, phaseRevealed, s.phase)
	assert.Contains(t, s.View(100, 30), "def 水")

	_, cmd := s.Update(key("4"))
	assert.IsType(t, endMsg{}, run(cmd))
	assert.False(t, svc.Collection().AllCards()[0].SRS.IsNew())

	_, cmd = s.Update(endMsg{})
	msg, ok := run(cmd).(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Session Summary", msg.Screen.Title())
	assert.False(t, svc.InSession())
}

func TestDeckMode_IgnoresNonQualityKeys(t *testing.T) {
	svc := newService(t, nil, "水")
	s := New(context.Background(), svc, Options{Mode: session.ModeDeck})
	s.Init()
	s.Update(key("space"))

	_, cmd := s.Update(key("9"))
	assert.Nil(t, cmd)
	assert.Equal(t, phaseRevealed, s.phase)
}

func TestActiveMode_WrongThenOverride(t *testing.T) {
	svc := newService(t, nil, "水")
	s := New(context.Background(), svc, Options{Mode: session.ModeActive, QueueSize: 1})
	s.Init()
	require.Equal(t, 1, s.queue.Len())

	s.input.Model.SetValue("火")
	_, cmd := s.Update(key("enter"))
	assert.Equal(t, phaseGrading, s.phase)

	s.Update(run(cmd))
	assert.Equal(t, phaseFeedback, s.phase)
	assert.False(t, s.lastCorrect)
	assert.Zero(t, svc.Aggregator().Streak())

	s.Update(key("o"))
	assert.True(t, s.overridden)
	assert.Equal(t, 1, svc.Aggregator().Streak())
	assert.Zero(t, svc.Aggregator().Current().Correct)

	_, cmd = s.Update(key("enter"))
	assert.IsType(t, endMsg{}, run(cmd))
}

func TestActiveMode_CorrectAnswer(t *testing.T) {
	svc := newService(t, nil, "水")
	s := New(context.Background(), svc, Options{Mode: session.ModeActive, QueueSize: 1})
	s.Init()

	s.input.Model.SetValue("水")
	_, cmd := s.Update(key("enter"))
	s.Update(run(cmd))

	assert.True(t, s.lastCorrect)
	assert.Equal(t, 1, svc.Aggregator().Current().Correct)
	assert.Equal(t, 2.0, svc.Tracker().Get("水").Alpha)
}

func TestActiveMode_StaleResultDropped(t *testing.T) {
	svc := newService(t, nil, "水火")
	s := New(context.Background(), svc, Options{Mode: session.ModeActive, QueueSize: 2})
	s.Init()
	require.Equal(t, 2, s.queue.Len())

	s.input.Model.SetValue(s.currentChar().String())
	_, cmd := s.Update(key("enter"))
	stale := run(cmd).(gradedMsg)

	s.Update(stale)
	s.Update(key("enter"))
	require.Equal(t, phasePrompt, s.phase)

	s.Update(stale)
	assert.Equal(t, phasePrompt, s.phase)
	assert.Equal(t, 1, svc.Aggregator().Current().CardsStudied)
}

func TestActiveMode_Sentence(t *testing.T) {
	gen := &stubGenerator{pair: &sentence.Pair{Native: "水很好。", Gloss: "The water is good."}}
	svc := newService(t, gen, "水")
	s := New(context.Background(), svc, Options{Mode: session.ModeActive, QueueSize: 1})
	s.Init()

	_, cmd := s.Update(key("tab"))
	assert.True(t, s.sentenceLoading)

	s.Update(run(cmd))
	assert.False(t, s.sentenceLoading)
	require.NotNil(t, s.sentence)
	assert.Contains(t, s.View(100, 30), "The water is good.")
	assert.Contains(t, svc.SentenceInput("").Avoid, "水很好。")
}

func TestActiveMode_NoGenerator(t *testing.T) {
	svc := newService(t, nil, "水")
	s := New(context.Background(), svc, Options{Mode: session.ModeActive, QueueSize: 1})
	s.Init()

	_, cmd := s.Update(key("tab"))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, s.sentenceErr)
}

func TestQuitConfirm(t *testing.T) {
	svc := newService(t, nil, "水")
	s := New(context.Background(), svc, Options{Mode: session.ModeDeck})
	s.Init()
	assert.True(t, s.HandlesEscape())

	s.Update(key("esc"))
	assert.True(t, s.quitConfirm)
	s.Update(key("n"))
	assert.False(t, s.quitConfirm)

	s.Update(key("esc"))
	_, cmd := s.Update(key("y"))
	assert.IsType(t, endMsg{}, run(cmd))
}

func TestEmptyQueue(t *testing.T) {
	svc := newService(t, nil)
	s := New(context.Background(), svc, Options{Mode: session.ModeDeck})
	s.Init()

	assert.Equal(t, phaseEmpty, s.phase)
	assert.False(t, svc.InSession())
	assert.False(t, s.HandlesEscape())

	_, cmd := s.Update(key("x"))
	assert.IsType(t, router.PopScreenMsg{}, run(cmd))
}

func TestMaskTerm(t *testing.T) {
	assert.Equal(t, "＿好", maskTerm("你好", "你"))
	assert.Equal(t, "水", maskTerm("水", "火"))
}
