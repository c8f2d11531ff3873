package cards

import (
	"math/rand"
)

// DeckSize is the number of cards in one standard deck
const DeckSize = 52

// Standard returns one standard deck in rank-major order
func Standard() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, rank := range Ranks {
		for _, suit := range Suits {
			deck = append(deck, New(rank, suit))
		}
	}
	return deck
}

// NewDeck returns count standard decks merged into one unshuffled slice.
// A count below one is treated as one.
func NewDeck(count int) []Card {
	if count < 1 {
		count = 1
	}
	base := Standard()
	deck := make([]Card, 0, DeckSize*count)
	for range count {
		deck = append(deck, base...)
	}
	return deck
}

// Shuffle scrambles cards in place and returns them. Each pass makes one move
// per card: an element at a uniformly chosen index is pulled out and appended
// to the end. A nil rng uses the process-wide source.
func Shuffle[T any](cards []T, times int, rng *rand.Rand) []T {
	n := len(cards)
	if n < 2 {
		return cards
	}
	for range times {
		for range n {
			var j int
			if rng != nil {
				j = rng.Intn(n)
			} else {
				j = rand.Intn(n)
			}
			moved := cards[j]
			copy(cards[j:], cards[j+1:])
			cards[n-1] = moved
		}
	}
	return cards
}

// Count returns the number of occurrences of each card in a slice
func Count(cards []Card) map[Card]int {
	counts := make(map[Card]int, len(cards))
	for _, c := range cards {
		counts[c]++
	}
	return counts
}
