package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in shoe-building order
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are low (1) and kings high (13).
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= Two && r <= Ten {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Valid reports whether r is in [Ace, King]
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Value returns the base blackjack value: the rank capped at ten
func (r Rank) Value() int {
	return min(int(r), 10)
}

// Card is a single playing card. Rank and suit are fixed at creation;
// only the visibility changes, and only from face-down to face-up.
type Card struct {
	id     int
	suit   Suit
	rank   Rank
	faceUp bool
}

// NewCard creates a face-down card
func NewCard(suit Suit, rank Rank) Card {
	return Card{suit: suit, rank: rank}
}

// FaceUp creates a card that is already revealed
func FaceUp(suit Suit, rank Rank) Card {
	return Card{suit: suit, rank: rank, faceUp: true}
}

func (c Card) ID() int    { return c.id }
func (c Card) Suit() Suit { return c.suit }
func (c Card) Rank() Rank { return c.rank }

// Value returns the base value of the card regardless of visibility
func (c Card) Value() int {
	return c.rank.Value()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.rank == Ace
}

// IsFaceUp reports whether the card has been revealed
func (c Card) IsFaceUp() bool {
	return c.faceUp
}

// Reveal turns the card face up. Revealing twice is a no-op.
func (c *Card) Reveal() {
	c.faceUp = true
}

// Contribution is what the card adds to a hand total: its base value
// when face up, nothing while it is hidden.
func (c Card) Contribution() int {
	if !c.faceUp {
		return 0
	}
	return c.Value()
}

// Same reports whether two cards are the same physical card from a shoe
func (c Card) Same(other Card) bool {
	return c.id == other.id && c.suit == other.suit && c.rank == other.rank
}

// noSuit marks a masked card
const noSuit Suit = -1

// Masked returns the card as an observer at the table sees it. A
// face-down card keeps its id but carries no rank or suit.
func (c Card) Masked() Card {
	if c.faceUp {
		return c
	}
	return Card{id: c.id, suit: noSuit}
}

// String returns the string representation of a card (e.g., "A♠"), or a
// hidden marker while the card is face down.
func (c Card) String() string {
	if !c.faceUp {
		return "??"
	}
	return fmt.Sprintf("%s%s", c.rank, c.suit)
}

// Code returns the card in parseable notation ("AS", "10H") whatever its visibility
func (c Card) Code() string {
	return c.rank.String() + suitLetters[c.suit]
}

var suitLetters = map[Suit]string{
	Spades:   "S",
	Hearts:   "H",
	Diamonds: "D",
	Clubs:    "C",
}

// ParseCard parses a single card such as "AS", "10h", "Td" or "kc".
// Parsed cards are face up.
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	rankPart, suitPart := s[:len(s)-1], s[len(s)-1:]

	var suit Suit
	switch suitPart {
	case "S":
		suit = Spades
	case "H":
		suit = Hearts
	case "D":
		suit = Diamonds
	case "C":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	var rank Rank
	switch rankPart {
	case "A", "1":
		rank = Ace
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		if len(rankPart) != 1 || rankPart[0] < '2' || rankPart[0] > '9' {
			return Card{}, fmt.Errorf("invalid rank in card %q", s)
		}
		rank = Rank(rankPart[0] - '0')
	}

	return FaceUp(suit, rank), nil
}

// ParseCards parses a whitespace or comma separated list of cards
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		card, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
