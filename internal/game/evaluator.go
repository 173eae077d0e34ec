package game

import (
	"slices"

	"github.com/lox/blackjack/internal/deck"
)

const (
	// Target is the total every hand plays towards
	Target = 21

	// Bust is the best value of a hand whose every total exceeds 21. It
	// compares greater than any live total.
	Bust = 99

	// softAceBonus is what an ace adds when counted as eleven instead of one
	softAceBonus = 10
)

// PossibleTotals returns every total the cards can make, sorted ascending
// with duplicates removed. Each revealed ace branches into a low (1) and a
// high (11) total. Face-down cards add nothing and never branch.
// An empty hand has the single total 0.
func PossibleTotals(cards []deck.Card) []int {
	totals := []int{0}

	for _, card := range cards {
		next := make([]int, 0, len(totals)*2)
		for _, t := range totals {
			next = append(next, t+card.Contribution())
			if card.IsAce() && card.IsFaceUp() {
				next = append(next, t+card.Contribution()+softAceBonus)
			}
		}
		slices.Sort(next)
		totals = slices.Compact(next)
	}

	return totals
}

// BestValue returns the highest total that does not exceed 21, or Bust
func BestValue(cards []deck.Card) int {
	best := Bust
	for _, t := range PossibleTotals(cards) {
		if t <= Target {
			best = t
		}
	}
	return best
}

// PeekValue returns the best value the cards would have if every one of
// them were face up. The dealer uses it to check the hole card for a
// blackjack without showing it.
func PeekValue(cards []deck.Card) int {
	exposed := make([]deck.Card, len(cards))
	copy(exposed, cards)
	for i := range exposed {
		exposed[i].Reveal()
	}
	return BestValue(exposed)
}

// DisplayTotals returns the totals worth showing to a player: every total
// up to 21, or the lowest total when the hand has busted.
func DisplayTotals(cards []deck.Card) []int {
	totals := PossibleTotals(cards)

	live := make([]int, 0, len(totals))
	for _, t := range totals {
		if t <= Target {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return totals[:1]
	}
	return live
}

// IsBust reports whether a best value represents a busted hand
func IsBust(value int) bool {
	return value > Target
}
