package session

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/hanzi/internal/deck"
	"github.com/abhisek/hanzi/internal/hanzi"
	"github.com/abhisek/hanzi/internal/mastery"
)

func testBuilder() *Builder {
	return NewBuilder(rand.New(rand.NewPCG(7, 11)))
}

func addCards(t *testing.T, c *deck.Collection, d *deck.Deck, terms ...string) {
	t.Helper()
	for _, term := range terms {
		_, err := c.AddCard(d.ID, deck.CardInput{Term: term}, t0)
		require.NoError(t, err)
	}
}

func terms(cards []*deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Term
	}
	return out
}

func TestActivePool_FallsBackToSelected(t *testing.T) {
	c := deck.NewCollection()
	addCards(t, c, c.Default(), "一", "二")
	other, _ := c.AddDeck(deck.DeckInput{Name: "other"})
	addCards(t, c, other, "三")

	pool := testBuilder().ActivePool(c, c.Default().ID)
	assert.Equal(t, []string{"一", "二"}, terms(pool))

	assert.Empty(t, testBuilder().ActivePool(c, "missing"))
}

func TestActivePool_UnionOfActiveAndSelected(t *testing.T) {
	c := deck.NewCollection()
	addCards(t, c, c.Default(), "一")
	a, _ := c.AddDeck(deck.DeckInput{Name: "a"})
	addCards(t, c, a, "二", "三")
	b, _ := c.AddDeck(deck.DeckInput{Name: "b"})
	addCards(t, c, b, "四")
	inactive, _ := c.AddDeck(deck.DeckInput{Name: "inactive"})
	addCards(t, c, inactive, "五")
	c.SetActive(a.ID, true)
	c.SetActive(b.ID, true)

	pool := testBuilder().ActivePool(c, c.Default().ID)
	assert.ElementsMatch(t, []string{"一", "二", "三", "四"}, terms(pool))

	// Selecting an active deck does not count it twice.
	pool = testBuilder().ActivePool(c, a.ID)
	assert.ElementsMatch(t, []string{"二", "三", "四"}, terms(pool))
}

func TestActiveQueue_IsPermutationOfPool(t *testing.T) {
	c := deck.NewCollection()
	addCards(t, c, c.Default(), "一", "二", "三", "四", "五", "六")
	q := testBuilder().ActiveQueue(c, c.Default().ID)
	assert.ElementsMatch(t, []string{"一", "二", "三", "四", "五", "六"}, terms(q))
}

func TestDeckQueue(t *testing.T) {
	c := deck.NewCollection()
	addCards(t, c, c.Default(), "一", "二")
	assert.Len(t, testBuilder().DeckQueue(c.Default(), t0), 2)
	assert.Nil(t, testBuilder().DeckQueue(nil, t0))
}

func TestActiveChars(t *testing.T) {
	pool := []*deck.Card{{Term: "你好！"}, {Term: "好人"}}
	got := ActiveChars(pool, []hanzi.Char{"人", "大"})
	assert.Equal(t, []hanzi.Char{"你", "好", "人", "大"}, got)
}

func TestCharacterQueue_Deduplicates(t *testing.T) {
	tr := mastery.NewTracker(nil, mastery.WithRand(rand.New(rand.NewPCG(3, 4))))
	tr.StartSession()
	q := testBuilder().CharacterQueue(tr, []hanzi.Char{"甲", "甲", "乙"}, 2)
	assert.ElementsMatch(t, []hanzi.Char{"甲", "乙"}, q)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeActive, ParseMode("active"))
	assert.Equal(t, ModeDeck, ParseMode("deck"))
	assert.Equal(t, ModeDeck, ParseMode("bogus"))
}
