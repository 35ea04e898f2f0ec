// Package sentence produces practice sentences built from the characters a
// learner is currently studying.
package sentence

import (
	"context"

	"github.com/abhisek/hanzi/internal/hanzi"
)

// Pair is a generated sentence and its English gloss.
type Pair struct {
	Native string
	Gloss  string

	// Outside lists characters of Native that are not in the allowed set.
	// It is empty when the constraint could be met.
	Outside []hanzi.Char
}

// Input describes what the sentence may contain.
type Input struct {
	// Allowed is the active character set. Punctuation is always allowed.
	Allowed []hanzi.Char

	// Bias hints how strongly each character should be featured; higher
	// weights belong to weaker characters.
	Bias map[hanzi.Char]int

	// Avoid holds sentences already shown, oldest first.
	Avoid []string
}

// Generator produces a sentence pair for the given input.
type Generator interface {
	Generate(ctx context.Context, input Input) (*Pair, error)
}
