package quizflow

import "math/rand"

// Bag deals indexes 0..n-1 in a shuffled order without replacement. When the
// bag runs dry it refills and reshuffles, so every item is seen once per
// cycle. The rand source is injected so tests can seed it deterministically.
type Bag struct {
	order []int
	pos   int
	rng   *rand.Rand
}

// NewBag creates a bag over n items using the given random source
func NewBag(n int, rng *rand.Rand) *Bag {
	b := &Bag{order: make([]int, n), rng: rng}
	for i := range b.order {
		b.order[i] = i
	}
	b.reshuffle()
	return b
}

// Draw deals up to count indexes, refilling and reshuffling when the bag
// empties mid-draw. An empty bag always deals nothing.
func (b *Bag) Draw(count int) []int {
	if len(b.order) == 0 || count <= 0 {
		return nil
	}

	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		if b.pos == len(b.order) {
			b.reshuffle()
		}
		out = append(out, b.order[b.pos])
		b.pos++
	}
	return out
}

// Remaining reports how many items are left before the next reshuffle
func (b *Bag) Remaining() int {
	return len(b.order) - b.pos
}

func (b *Bag) reshuffle() {
	b.rng.Shuffle(len(b.order), func(i, j int) {
		b.order[i], b.order[j] = b.order[j], b.order[i]
	})
	b.pos = 0
}
