package domain

import (
	"math/rand"
	"testing"
)

func TestNewDeck_FiftyTwoUniqueCards(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 52 {
		t.Fatalf("Expected 52 cards, got %d", len(deck))
	}

	seen := make(map[Card]bool, 52)
	for _, c := range deck {
		if seen[c] {
			t.Fatalf("Duplicate card %v in deck", c)
		}
		seen[c] = true
	}
}

func TestDrawCards_WithoutReplacement(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	held, err := DrawCards(rng, nil, 5)
	if err != nil {
		t.Fatalf("DrawCards returned error: %v", err)
	}
	if len(held) != 5 {
		t.Fatalf("Expected 5 cards, got %d", len(held))
	}

	more, err := DrawCards(rng, held, 5)
	if err != nil {
		t.Fatalf("DrawCards returned error: %v", err)
	}

	seen := make(map[Card]bool)
	for _, c := range append(append([]Card{}, held...), more...) {
		if seen[c] {
			t.Fatalf("Card %v drawn twice", c)
		}
		seen[c] = true
	}
}

func TestDrawCards_SeededDeterminism(t *testing.T) {
	first, err := DrawCards(rand.New(rand.NewSource(7)), nil, 5)
	if err != nil {
		t.Fatalf("DrawCards returned error: %v", err)
	}
	second, err := DrawCards(rand.New(rand.NewSource(7)), nil, 5)
	if err != nil {
		t.Fatalf("DrawCards returned error: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Seeded draws diverged at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestDrawCards_ExhaustedDeck(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	held := NewDeck()

	if _, err := DrawCards(rng, held[:50], 3); err == nil {
		t.Fatal("Expected error drawing 3 cards with 2 remaining")
	}
	if _, err := DrawCards(rng, nil, 0); err == nil {
		t.Fatal("Expected error for non-positive draw count")
	}
}
