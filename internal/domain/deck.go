package domain

import (
	"fmt"
	"math/rand"
)

// NewDeck returns an ordered 52-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range Suits {
		for r := 0; r <= 12; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// DrawCards draws n cards uniformly at random from a full deck minus the
// already-held cards. Draws within one session are without replacement, so a
// press-your-luck hand can never hold duplicate cards.
func DrawCards(rng *rand.Rand, held []Card, n int) ([]Card, error) {
	if n <= 0 {
		return nil, fmt.Errorf("draw count must be positive, got %d", n)
	}

	heldSet := make(map[Card]bool, len(held))
	for _, c := range held {
		heldSet[c] = true
	}

	remaining := make([]Card, 0, 52-len(held))
	for _, c := range NewDeck() {
		if !heldSet[c] {
			remaining = append(remaining, c)
		}
	}
	if n > len(remaining) {
		return nil, fmt.Errorf("cannot draw %d cards, only %d remain", n, len(remaining))
	}

	rng.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})

	drawn := make([]Card, n)
	copy(drawn, remaining[:n])
	return drawn, nil
}
