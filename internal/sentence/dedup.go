package sentence

import (
	"fmt"
	"strings"
)

// buildDedup formats prior sentences for the prompt, keeping the most
// recent max. Returns "None" if there are none.
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, s := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}

// History is a bounded list of recently shown sentences.
type History struct {
	max   int
	items []string
}

func NewHistory(max int) *History {
	return &History{max: max}
}

// Add appends s, dropping the oldest entry when full.
func (h *History) Add(s string) {
	h.items = append(h.items, s)
	if h.max > 0 && len(h.items) > h.max {
		h.items = h.items[len(h.items)-h.max:]
	}
}

// Items returns a copy, oldest first.
func (h *History) Items() []string {
	return append([]string(nil), h.items...)
}
