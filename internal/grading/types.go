// Package grading talks to the remote stroke classifier and character
// recognizer and turns their answers into per-stroke verdicts.
package grading

import (
	"context"

	"github.com/abhisek/hanzi/internal/hanzi"
)

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one pen-down to pen-up path.
type Stroke []Point

// ErrorType names a stroke error reported by the classifier.
type ErrorType string

const (
	ErrorExtra       ErrorType = "EXTRA"
	ErrorBroken      ErrorType = "BROKEN"
	ErrorMissing     ErrorType = "MISSING"
	ErrorOrientation ErrorType = "ORIENTATION"
	ErrorOrder       ErrorType = "ORDER"
)

// StrokeError is one problem found in a written character.
// WrittenIndices are read as 1-based positions in the submitted strokes:
// written stroke i is out of order when i+1 is listed in an ORDER error.
type StrokeError struct {
	Type           ErrorType `json:"type"`
	Description    string    `json:"description,omitempty"`
	WrittenIndices []int     `json:"written_indices,omitempty"`
	ReferenceIndex *int      `json:"reference_index,omitempty"`
}

// Classification is the classifier's answer. Mapping[i] is the 1-based
// reference stroke matched by written stroke i, or 0 for no match.
type Classification struct {
	Accuracy float64       `json:"accuracy"`
	Mapping  []int         `json:"mapping"`
	Errors   []StrokeError `json:"errors"`
	Fitness  float64       `json:"fitness"`
}

// Classifier matches written strokes against a reference character.
type Classifier interface {
	Classify(ctx context.Context, char hanzi.Char, strokes []Stroke) (*Classification, error)
}

// Recognizer guesses which character the strokes depict. ok is false
// when the service has no guess.
type Recognizer interface {
	Recognize(ctx context.Context, strokes []Stroke) (char hanzi.Char, ok bool, err error)
}
