package sentence

import (
	"fmt"
	"unicode/utf8"

	"github.com/abhisek/hanzi/internal/hanzi"
)

// Validator checks a generated pair.
type Validator interface {
	Name() string
	Validate(p *Pair, input Input) *ValidationError
}

// ValidationError describes why a pair failed validation.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator rejects empty or oversized output.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Pair, _ Input) *ValidationError {
	switch {
	case p.Native == "":
		return &ValidationError{Validator: v.Name(), Message: "native is empty", Retryable: true}
	case p.Gloss == "":
		return &ValidationError{Validator: v.Name(), Message: "gloss is empty", Retryable: true}
	case utf8.RuneCountInString(p.Native) > 60:
		return &ValidationError{Validator: v.Name(), Message: "native exceeds 60 characters", Retryable: true}
	}
	return nil
}

// CharsetValidator requires Native to use only allowed characters and
// punctuation. It records the offending characters on the pair.
type CharsetValidator struct{}

func (v *CharsetValidator) Name() string { return "charset" }

func (v *CharsetValidator) Validate(p *Pair, input Input) *ValidationError {
	p.Outside = outside(p.Native, input.Allowed)
	if len(p.Outside) == 0 {
		return nil
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("uses characters outside the allowed set: %s", hanzi.Join(p.Outside)),
		Retryable: true,
	}
}

// outside returns the distinct non-punctuation characters of s that are
// not in allowed. An empty allowed set permits everything.
func outside(s string, allowed []hanzi.Char) []hanzi.Char {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[hanzi.Char]bool, len(allowed))
	for _, c := range allowed {
		set[c] = true
	}
	var out []hanzi.Char
	for _, c := range hanzi.Distinct(hanzi.Split(s)) {
		if !set[c] && !hanzi.IsPunct(c) {
			out = append(out, c)
		}
	}
	return out
}
