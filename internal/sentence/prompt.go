package sentence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/hanzi/internal/hanzi"
)

const systemPrompt = `You write short practice sentences for a learner of written Chinese.

Rules:
- Write one natural sentence in simplified Chinese, between 4 and 20 characters long.
- Use only characters from the allowed list, plus Chinese punctuation. If that is impossible, use as few other characters as you can.
- Prefer characters with a higher focus weight; feature at least one of the highest-weighted characters.
- Give an accurate, natural English translation as the gloss.
- Do not repeat any sentence from the "already shown" list.`

// buildUserMessage lists the allowed characters, grouped by focus weight.
func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Allowed characters: %s\n", hanzi.Join(input.Allowed))

	if groups := biasGroups(input); len(groups) > 0 {
		b.WriteString("\nFocus weights (higher means practise more):\n")
		for _, g := range groups {
			fmt.Fprintf(&b, "%d: %s\n", g.weight, hanzi.Join(g.chars))
		}
	}

	b.WriteString("\nAlready shown:\n")
	b.WriteString(buildDedup(input.Avoid, cfg.MaxPriorSentences))

	return b.String()
}

type biasGroup struct {
	weight int
	chars  []hanzi.Char
}

// biasGroups buckets the allowed characters by weight, heaviest first.
// Characters without a weight are left out.
func biasGroups(input Input) []biasGroup {
	byWeight := make(map[int][]hanzi.Char)
	for _, c := range input.Allowed {
		if w, ok := input.Bias[c]; ok {
			byWeight[w] = append(byWeight[w], c)
		}
	}

	groups := make([]biasGroup, 0, len(byWeight))
	for w, chars := range byWeight {
		groups = append(groups, biasGroup{weight: w, chars: chars})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].weight > groups[j].weight })
	return groups
}
