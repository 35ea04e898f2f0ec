package practice

import (
	"context"
	"errors"

	"github.com/abhisek/hanzi/internal/deck"
	"github.com/abhisek/hanzi/internal/hanzi"
	"github.com/abhisek/hanzi/internal/sentence"
	"github.com/abhisek/hanzi/internal/session"
)

// ErrNoGenerator is returned by NextSentence when no generator is set.
var ErrNoGenerator = errors.New("sentence generation is not configured")

// Queue is the prompt list for a session. Deck mode fills Cards; active
// mode fills Chars and, for reference, the shuffled active Cards.
type Queue struct {
	Mode  session.Mode
	Cards []*deck.Card
	Chars []hanzi.Char
}

// Len is the number of prompts.
func (q Queue) Len() int {
	if q.Mode == session.ModeActive {
		return len(q.Chars)
	}
	return len(q.Cards)
}

// StudyQueue builds the queue for mode. deckRef is a deck id or name; an
// unknown reference selects the default deck. count only applies to
// active mode.
func (s *Service) StudyQueue(mode session.Mode, deckRef string, count int) Queue {
	selected := s.selectDeck(deckRef)
	if mode != session.ModeActive {
		return Queue{Mode: session.ModeDeck, Cards: s.builder.DeckQueue(selected, s.now())}
	}
	return Queue{
		Mode:  session.ModeActive,
		Cards: s.builder.ActiveQueue(s.decks, selected.ID),
		Chars: s.builder.CharacterQueue(s.tracker, s.ActiveChars(deckRef), count),
	}
}

// ActiveChars is the distinct practice character set for the active pool
// around deckRef, including standalone characters.
func (s *Service) ActiveChars(deckRef string) []hanzi.Char {
	selected := s.selectDeck(deckRef)
	return session.ActiveChars(s.builder.ActivePool(s.decks, selected.ID), s.singles)
}

// LogitBias returns the sentence-generation weight of each active character.
func (s *Service) LogitBias(deckRef string) map[hanzi.Char]int {
	return s.tracker.LogitBias(s.ActiveChars(deckRef))
}

func (s *Service) selectDeck(ref string) *deck.Deck {
	if d := s.decks.Lookup(ref); d != nil {
		return d
	}
	return s.decks.Default()
}

// SentenceInput snapshots what the generator needs. It lets callers run
// generation off the mutation goroutine and hand the pair to
// RememberSentence afterwards.
func (s *Service) SentenceInput(deckRef string) sentence.Input {
	chars := s.ActiveChars(deckRef)
	return sentence.Input{
		Allowed: chars,
		Bias:    s.tracker.LogitBias(chars),
		Avoid:   s.history.Items(),
	}
}

// RememberSentence adds p to the list of sentences not to repeat.
func (s *Service) RememberSentence(p *sentence.Pair) {
	if p != nil {
		s.history.Add(p.Native)
	}
}

// Generator returns the configured sentence generator, or nil.
func (s *Service) Generator() sentence.Generator { return s.generator }

// NextSentence generates a sentence over the active set synchronously.
func (s *Service) NextSentence(ctx context.Context, deckRef string) (*sentence.Pair, error) {
	if s.generator == nil {
		return nil, ErrNoGenerator
	}
	p, err := s.generator.Generate(ctx, s.SentenceInput(deckRef))
	if err != nil {
		return nil, err
	}
	s.RememberSentence(p)
	return p, nil
}
