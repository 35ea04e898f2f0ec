package mastery

import (
	"sort"

	"github.com/abhisek/hanzi/internal/hanzi"
)

// fallbackWeight is given to every character when none is urgent.
const fallbackWeight = 0.1

type weighted struct {
	char   hanzi.Char
	weight float64
}

func (t *Tracker) pool(active []hanzi.Char) []weighted {
	var pool []weighted
	for _, c := range active {
		if w := t.Urgency(c).Weight(); w > 0 {
			pool = append(pool, weighted{char: c, weight: w})
		}
	}
	if len(pool) == 0 {
		for _, c := range active {
			pool = append(pool, weighted{char: c, weight: fallbackWeight})
		}
	}
	return pool
}

// Sample draws one active character, weighted by urgency. It returns false
// only when active is empty.
func (t *Tracker) Sample(active []hanzi.Char) (hanzi.Char, bool) {
	return t.draw(t.pool(active))
}

func (t *Tracker) draw(pool []weighted) (hanzi.Char, bool) {
	if len(pool) == 0 {
		return "", false
	}
	var total float64
	for _, p := range pool {
		total += p.weight
	}
	r := t.rng.Float64() * total
	for _, p := range pool {
		r -= p.weight
		if r <= 0 {
			return p.char, true
		}
	}
	return pool[len(pool)-1].char, true
}

// maxDrawsPerSlot bounds the rejection loop while filling the queue.
const maxDrawsPerSlot = 50

// StudyQueue builds up to count practice prompts from the active set.
// Every HIGH urgency character is included once regardless of count. The
// remaining slots are filled by weighted draws that avoid repeats until each
// distinct character has appeared. The result is shuffled.
func (t *Tracker) StudyQueue(active []hanzi.Char, count int) []hanzi.Char {
	active = hanzi.Distinct(active)
	if len(active) == 0 {
		return nil
	}

	var high []*Record
	for _, c := range active {
		if t.Urgency(c) == UrgencyHigh {
			high = append(high, t.Get(c))
		}
	}
	sort.SliceStable(high, func(i, j int) bool {
		ei, ej := high[i].ExpectedValue(), high[j].ExpectedValue()
		if ei != ej {
			return ei < ej
		}
		return high[i].Char < high[j].Char
	})

	queue := make([]hanzi.Char, 0, max(count, len(high)))
	used := make(map[hanzi.Char]bool, len(active))
	for _, r := range high {
		queue = append(queue, r.Char)
		used[r.Char] = true
	}

	pool := t.pool(active)
	for len(queue) < count {
		c, ok := t.nextDraw(pool, used)
		if !ok {
			break
		}
		queue = append(queue, c)
		used[c] = true
	}

	t.rng.Shuffle(len(queue), func(i, j int) { queue[i], queue[j] = queue[j], queue[i] })
	return queue
}

// nextDraw samples until it finds an unused character, or accepts any once
// every character in the pool has been used.
func (t *Tracker) nextDraw(pool []weighted, used map[hanzi.Char]bool) (hanzi.Char, bool) {
	var unused []weighted
	for _, p := range pool {
		if !used[p.char] {
			unused = append(unused, p)
		}
	}
	if len(unused) == 0 {
		return t.draw(pool)
	}
	for i := 0; i < maxDrawsPerSlot; i++ {
		c, ok := t.draw(pool)
		if !ok {
			return "", false
		}
		if !used[c] {
			return c, true
		}
	}
	return t.draw(unused)
}
