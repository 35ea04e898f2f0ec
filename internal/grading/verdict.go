package grading

// Verdict grades one written stroke.
type Verdict int

const (
	Incorrect Verdict = iota
	Correct
	WrongOrder
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case WrongOrder:
		return "wrong_order"
	default:
		return "incorrect"
	}
}

// Verdicts derives one verdict per written stroke. A stroke with no
// mapping entry, or one mapped to 0, is incorrect. A matched stroke whose
// 1-based index appears in an ORDER error is out of order.
func Verdicts(c *Classification, strokeCount int) []Verdict {
	out := make([]Verdict, strokeCount)
	if c == nil {
		return out
	}

	misordered := make(map[int]bool)
	for _, e := range c.Errors {
		if e.Type != ErrorOrder {
			continue
		}
		for _, idx := range e.WrittenIndices {
			misordered[idx] = true
		}
	}

	for i := range out {
		switch {
		case i >= len(c.Mapping) || c.Mapping[i] == 0:
			out[i] = Incorrect
		case misordered[i+1]:
			out[i] = WrongOrder
		default:
			out[i] = Correct
		}
	}
	return out
}

// AllCorrect reports whether every stroke is correct. An attempt with no
// strokes is not correct.
func AllCorrect(verdicts []Verdict) bool {
	if len(verdicts) == 0 {
		return false
	}
	for _, v := range verdicts {
		if v != Correct {
			return false
		}
	}
	return true
}

// VerdictStrings renders verdicts for event logging.
func VerdictStrings(verdicts []Verdict) []string {
	out := make([]string, len(verdicts))
	for i, v := range verdicts {
		out[i] = v.String()
	}
	return out
}
