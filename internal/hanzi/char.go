// Package hanzi defines the character unit the rest of the app keys on.
package hanzi

import (
	"errors"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// ErrNotSingleChar is returned when input is not exactly one character.
var ErrNotSingleChar = errors.New("input must be exactly one character")

// Char is one user-perceived character: a single extended grapheme cluster.
// Two Chars are the same character only if their bytes are identical.
type Char string

// String returns the character text.
func (c Char) String() string { return string(c) }

// ParseChar returns s as a Char if it is exactly one grapheme cluster.
func ParseChar(s string) (Char, error) {
	s = strings.TrimSpace(s)
	if s == "" || uniseg.GraphemeClusterCount(s) != 1 {
		return "", ErrNotSingleChar
	}
	return Char(s), nil
}

// Split segments s into characters, dropping whitespace clusters.
func Split(s string) []Char {
	var out []Char
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		if isSpace(cluster) {
			continue
		}
		out = append(out, Char(cluster))
	}
	return out
}

// Distinct removes duplicates, keeping the first occurrence of each character.
func Distinct(chars []Char) []Char {
	seen := make(map[Char]bool, len(chars))
	out := make([]Char, 0, len(chars))
	for _, c := range chars {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Join renders characters back into a single string.
func Join(chars []Char) string {
	var b strings.Builder
	for _, c := range chars {
		b.WriteString(string(c))
	}
	return b.String()
}

// IsPunct reports whether c is punctuation or a symbol (CJK or ASCII).
func IsPunct(c Char) bool {
	for _, r := range string(c) {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return c != ""
}

func isSpace(cluster string) bool {
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
