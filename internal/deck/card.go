package deck

import (
	"time"

	"github.com/abhisek/hanzi/internal/hanzi"
	"github.com/abhisek/hanzi/internal/spacedrep"
)

// Card is one study item. The term is usually a character or a word.
type Card struct {
	ID         string          `json:"id"`
	Term       string          `json:"term"`
	Definition string          `json:"definition"`
	CreatedAt  time.Time       `json:"created_at"`
	Tags       []string        `json:"tags,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	SRS        spacedrep.State `json:"srs"`
}

// ReviewState implements spacedrep.Scheduled.
func (c *Card) ReviewState() spacedrep.State {
	return c.SRS
}

// Chars returns the distinct characters in the card's term.
func (c *Card) Chars() []hanzi.Char {
	return hanzi.Distinct(hanzi.Split(c.Term))
}
