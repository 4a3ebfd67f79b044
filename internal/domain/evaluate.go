package domain

import (
	"errors"
	"fmt"
	"sort"
)

// Mode selects how a session draws and validates its hand.
type Mode string

const (
	// ModePoker draws a fixed 5-card hand evaluated by standard poker rules.
	ModePoker Mode = "poker"
	// ModePressYourLuck draws 1 card at a time up to 10, at the player's risk.
	ModePressYourLuck Mode = "press_your_luck"
)

// Hand size limits per mode.
const (
	PokerHandSize        = 5
	MaxPressYourLuckSize = 10
)

// ErrHandSize is returned when a hand's size does not match its session mode.
var ErrHandSize = errors.New("hand size does not match mode")

// Hand rank names, weakest to strongest.
const (
	RankHighCard      = "high_card"
	RankPair          = "pair"
	RankTwoPair       = "two_pair"
	RankThreeOfAKind  = "three_of_a_kind"
	RankStraight      = "straight"
	RankFlush         = "flush"
	RankFullHouse     = "full_house"
	RankFourOfAKind   = "four_of_a_kind"
	RankStraightFlush = "straight_flush"
	RankRoyalFlush    = "royal_flush"
)

// baseHandScores maps a rank name to its base score.
var baseHandScores = map[string]int{
	RankHighCard:      50,
	RankPair:          75,
	RankTwoPair:       100,
	RankThreeOfAKind:  150,
	RankStraight:      200,
	RankFlush:         225,
	RankFullHouse:     250,
	RankFourOfAKind:   300,
	RankStraightFlush: 400,
	RankRoyalFlush:    500,
}

// BaseHandScore returns the base score for a rank name, or 0 if unknown.
func BaseHandScore(rankName string) int {
	return baseHandScores[rankName]
}

// HandResult is the evaluated outcome of a drawn hand.
type HandResult struct {
	RankName    string `json:"rank_name"`
	BaseScore   int    `json:"base_score"`
	SuitMatches int    `json:"suit_matches"`
}

// ValidateHandSize checks a hand's length against the session mode.
func ValidateHandSize(mode Mode, size int) error {
	switch mode {
	case ModePoker:
		if size != PokerHandSize {
			return fmt.Errorf("%w: poker requires exactly %d cards, got %d", ErrHandSize, PokerHandSize, size)
		}
	case ModePressYourLuck:
		if size < 1 || size > MaxPressYourLuckSize {
			return fmt.Errorf("%w: press-your-luck requires 1-%d cards, got %d", ErrHandSize, MaxPressYourLuckSize, size)
		}
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	return nil
}

// EvaluateHand scores a hand against the session's relevant suit.
//
// For poker mode the classification is standard 5-card poker. For
// press-your-luck hands the rank is the best sub-pattern present among the
// drawn cards: of-a-kind sets and two pair from rank counts, flush when any
// suit holds 5+ cards, straight when 5 consecutive ranks are present. The
// result is a pure function of (hand, relevantSuit).
func EvaluateHand(mode Mode, hand []Card, relevantSuit string) (HandResult, error) {
	if err := ValidateHandSize(mode, len(hand)); err != nil {
		return HandResult{}, err
	}

	rankName := classify(hand)
	matches := 0
	for _, c := range hand {
		if c.Suit == relevantSuit {
			matches++
		}
	}

	return HandResult{
		RankName:    rankName,
		BaseScore:   baseHandScores[rankName],
		SuitMatches: matches,
	}, nil
}

func classify(hand []Card) string {
	rankCounts := make(map[int]int)
	suitRanks := make(map[string][]int)
	for _, c := range hand {
		rankCounts[c.Rank]++
		suitRanks[c.Suit] = append(suitRanks[c.Suit], c.Rank)
	}

	var pairs, triples, quads int
	for _, n := range rankCounts {
		switch {
		case n >= 4:
			quads++
		case n == 3:
			triples++
		case n == 2:
			pairs++
		}
	}

	flush := false
	straightFlush := false
	royalFlush := false
	for _, ranks := range suitRanks {
		if len(ranks) < 5 {
			continue
		}
		flush = true
		if top, ok := straightHigh(ranks); ok {
			straightFlush = true
			if top == RankAce {
				royalFlush = true
			}
		}
	}

	allRanks := make([]int, 0, len(rankCounts))
	for r := range rankCounts {
		allRanks = append(allRanks, r)
	}
	_, straight := straightHigh(allRanks)

	switch {
	case royalFlush:
		return RankRoyalFlush
	case straightFlush:
		return RankStraightFlush
	case quads > 0:
		return RankFourOfAKind
	case triples > 0 && (pairs > 0 || triples > 1):
		return RankFullHouse
	case flush:
		return RankFlush
	case straight:
		return RankStraight
	case triples > 0:
		return RankThreeOfAKind
	case pairs > 1:
		return RankTwoPair
	case pairs == 1:
		return RankPair
	default:
		return RankHighCard
	}
}

// straightHigh reports whether ranks contain 5 consecutive distinct values
// and returns the high rank of the best run. The ace plays low in the wheel
// (A-2-3-4-5), in which case the reported high card is the five.
func straightHigh(ranks []int) (int, bool) {
	distinct := make(map[int]bool, len(ranks))
	for _, r := range ranks {
		distinct[r] = true
	}

	sorted := make([]int, 0, len(distinct))
	for r := range distinct {
		sorted = append(sorted, r)
	}
	// Ace counts as below the two as well.
	if distinct[RankAce] {
		sorted = append(sorted, -1)
	}
	sort.Ints(sorted)

	best, run := 0, 1
	found := false
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+1 {
			run++
			if run >= 5 && (!found || sorted[i] > best) {
				best = sorted[i]
				found = true
			}
		} else {
			run = 1
		}
	}
	return best, found
}
