package game

import (
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Hand is the ordered set of cards a participant holds for one round.
// Cards are only ever added; Reset clears the hand between rounds.
type Hand struct {
	cards []deck.Card
}

// Add appends a card to the hand
func (h *Hand) Add(card deck.Card) {
	h.cards = append(h.cards, card)
}

// Reset empties the hand for the next round
func (h *Hand) Reset() {
	h.cards = h.cards[:0]
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// RevealAll turns every card in the hand face up
func (h *Hand) RevealAll() {
	for i := range h.cards {
		h.cards[i].Reveal()
	}
}

// HasHidden reports whether any card is still face down
func (h *Hand) HasHidden() bool {
	for _, c := range h.cards {
		if !c.IsFaceUp() {
			return true
		}
	}
	return false
}

// Totals returns every possible total of the visible cards
func (h *Hand) Totals() []int {
	return PossibleTotals(h.cards)
}

// Best returns the best total of the visible cards, or Bust
func (h *Hand) Best() int {
	return BestValue(h.cards)
}

// Peek returns the best total as if every card were face up
func (h *Hand) Peek() int {
	return PeekValue(h.cards)
}

// IsPair reports whether the hand is two cards of equal base value
func (h *Hand) IsPair() bool {
	return len(h.cards) == 2 && h.cards[0].Value() == h.cards[1].Value()
}

// Snapshot captures the hand for display and decision making. Face-down
// cards are masked, so observers learn nothing about them.
func (h *Hand) Snapshot() HandSnapshot {
	cards := h.Cards()
	for i := range cards {
		cards[i] = cards[i].Masked()
	}
	return HandSnapshot{
		Cards:  cards,
		Totals: DisplayTotals(h.cards),
		Best:   h.Best(),
	}
}

// String returns the cards separated by spaces
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// HandSnapshot is a read-only copy of a hand at one point in a round
type HandSnapshot struct {
	Cards  []deck.Card
	Totals []int // totals up to 21, or the lowest total once bust
	Best   int
}

// Upcard returns the first face-up card, used to show the dealer's
// visible card to deciders.
func (s HandSnapshot) Upcard() (deck.Card, bool) {
	for _, c := range s.Cards {
		if c.IsFaceUp() {
			return c, true
		}
	}
	return deck.Card{}, false
}

// IsSoft reports whether the best total counts an ace as eleven
func (s HandSnapshot) IsSoft() bool {
	if IsBust(s.Best) {
		return false
	}
	low := PossibleTotals(s.Cards)[0]
	return s.Best != low
}
