package spacedrep

import (
	"fmt"
	"strconv"
	"strings"
)

// Quality grades how well a card was recalled, on the SM-2 0-5 scale.
type Quality int

const (
	QualityBlackout            Quality = 0 // total blank
	QualityIncorrectRecognized Quality = 1 // wrong, but the answer looked familiar
	QualityIncorrectEasy       Quality = 2 // wrong, but the answer seemed easy once shown
	QualityHard                Quality = 3 // correct with serious difficulty
	QualityGood                Quality = 4 // correct after hesitation
	QualityEasy                Quality = 5 // perfect recall
)

// Correct reports whether q counts as a successful recall.
func (q Quality) Correct() bool { return q >= QualityHard }

func (q Quality) clamp() Quality {
	switch {
	case q < QualityBlackout:
		return QualityBlackout
	case q > QualityEasy:
		return QualityEasy
	}
	return q
}

func (q Quality) String() string {
	switch q {
	case QualityBlackout:
		return "blackout"
	case QualityIncorrectRecognized:
		return "incorrect"
	case QualityIncorrectEasy:
		return "incorrect-easy"
	case QualityHard:
		return "hard"
	case QualityGood:
		return "good"
	case QualityEasy:
		return "easy"
	}
	return fmt.Sprintf("quality(%d)", int(q))
}

// ParseQuality accepts a digit 0-5 or one of again, blackout, hard, good, easy.
func ParseQuality(s string) (Quality, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "again", "blackout":
		return QualityBlackout, nil
	case "hard":
		return QualityHard, nil
	case "good":
		return QualityGood, nil
	case "easy":
		return QualityEasy, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 5 {
		return 0, fmt.Errorf("invalid quality %q: want 0-5 or again/hard/good/easy", s)
	}
	return Quality(n), nil
}

const (
	// DefaultEaseFactor is the ease factor of a card that was never reviewed.
	DefaultEaseFactor = 2.5

	// MinEaseFactor is the floor the ease factor never drops below.
	MinEaseFactor = 1.3

	firstInterval  = 1
	secondInterval = 6
)
