package domain

import "fmt"

// Suit identifiers. Each suit doubles as a skill category: actions and jobs
// declare a relevant suit, and cards of that suit drawn into a hand express
// the character's training in the matching skill.
const (
	SuitSpades   = "S"
	SuitHearts   = "H"
	SuitClubs    = "C"
	SuitDiamonds = "D"
)

// Suits lists every valid suit identifier.
var Suits = []string{SuitSpades, SuitHearts, SuitClubs, SuitDiamonds}

// Card is a single playing card. Rank runs 0..12 with 0 = two and 12 = ace.
type Card struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
}

// Rank aliases for the face cards.
const (
	RankJack  = 9
	RankQueen = 10
	RankKing  = 11
	RankAce   = 12
)

// ValidSuit reports whether s is one of the four suit identifiers.
func ValidSuit(s string) bool {
	switch s {
	case SuitSpades, SuitHearts, SuitClubs, SuitDiamonds:
		return true
	}
	return false
}

func (c Card) String() string {
	ranks := []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	if c.Rank < 0 || c.Rank >= len(ranks) {
		return fmt.Sprintf("?%s", c.Suit)
	}
	return ranks[c.Rank] + c.Suit
}
