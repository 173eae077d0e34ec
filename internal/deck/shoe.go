package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

// CardsPerDeck is the size of one standard deck
const CardsPerDeck = 52

var (
	// ErrEmptyShoe is returned when drawing from a shoe with no cards left.
	// Callers that poll NeedsReshuffle between rounds never see it.
	ErrEmptyShoe = errors.New("shoe is empty")

	// ErrInvalidShoe is returned for impossible deck counts or shuffle limits
	ErrInvalidShoe = errors.New("invalid shoe configuration")
)

// Shoe is a multi-deck stack of cards dealt from the top. Cards are
// created face down; the dealer decides which ones to reveal.
type Shoe struct {
	cards        []Card // top of the shoe is the end of the slice
	decks        int
	shuffleLimit int
	drawn        int
	reshuffle    bool
	nextID       int
	rng          *rand.Rand
	stacked      []Card // non-nil for stacked shoes; rebuilt in the same order
}

// NewShoe creates a shuffled shoe of the given number of decks. The shoe
// flags itself for reshuffling once fewer than shuffleLimit+1 cards remain.
func NewShoe(rng *rand.Rand, decks, shuffleLimit int) (*Shoe, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: rng is required", ErrInvalidShoe)
	}
	if decks < 1 {
		return nil, fmt.Errorf("%w: need at least one deck, got %d", ErrInvalidShoe, decks)
	}
	if shuffleLimit < 0 || shuffleLimit >= decks*CardsPerDeck {
		return nil, fmt.Errorf("%w: shuffle limit %d out of range [0, %d)",
			ErrInvalidShoe, shuffleLimit, decks*CardsPerDeck)
	}

	s := &Shoe{
		cards:        make([]Card, 0, decks*CardsPerDeck),
		decks:        decks,
		shuffleLimit: shuffleLimit,
		rng:          rng,
	}
	s.Rebuild()
	return s, nil
}

// NewStackedShoe creates an unshuffled shoe that deals the given cards in
// order, first card first. Rebuild restores the same sequence. The cards
// are turned face down and given shoe-unique ids.
func NewStackedShoe(cards []Card, shuffleLimit int) (*Shoe, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: stacked shoe needs cards", ErrInvalidShoe)
	}
	if shuffleLimit < 0 || shuffleLimit >= len(cards) {
		return nil, fmt.Errorf("%w: shuffle limit %d out of range [0, %d)",
			ErrInvalidShoe, shuffleLimit, len(cards))
	}

	s := &Shoe{
		shuffleLimit: shuffleLimit,
		stacked:      make([]Card, len(cards)),
	}
	copy(s.stacked, cards)
	s.Rebuild()
	return s, nil
}

// Rebuild discards the remaining cards, regenerates a full shoe, shuffles
// it and clears the reshuffle flag.
func (s *Shoe) Rebuild() {
	s.cards = s.cards[:0]
	s.drawn = 0
	s.reshuffle = false

	if s.stacked != nil {
		// Deal order is reversed so that stacked[0] sits on top.
		for i := len(s.stacked) - 1; i >= 0; i-- {
			s.cards = append(s.cards, s.newCard(s.stacked[i].suit, s.stacked[i].rank))
		}
		return
	}

	for range s.decks {
		for _, suit := range Suits {
			for rank := Ace; rank <= King; rank++ {
				s.cards = append(s.cards, s.newCard(suit, rank))
			}
		}
	}

	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

func (s *Shoe) newCard(suit Suit, rank Rank) Card {
	s.nextID++
	return Card{id: s.nextID, suit: suit, rank: rank}
}

// Draw removes and returns the top card. The returned card is face down.
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrEmptyShoe
	}

	top := len(s.cards) - 1
	card := s.cards[top]
	s.cards = s.cards[:top]
	s.drawn++

	if len(s.cards) < s.shuffleLimit+1 {
		s.reshuffle = true
	}
	return card, nil
}

// NeedsReshuffle reports whether the shoe has crossed its shuffle limit.
// Drawing never rebuilds on its own; the caller rebuilds between rounds.
func (s *Shoe) NeedsReshuffle() bool {
	return s.reshuffle
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Drawn returns the number of cards dealt since the last rebuild
func (s *Shoe) Drawn() int {
	return s.drawn
}

// Size returns the number of cards in a full shoe
func (s *Shoe) Size() int {
	if s.stacked != nil {
		return len(s.stacked)
	}
	return s.decks * CardsPerDeck
}

// Decks returns the number of decks in the shoe (zero for stacked shoes)
func (s *Shoe) Decks() int {
	return s.decks
}

// ShuffleLimit returns the reshuffle threshold
func (s *Shoe) ShuffleLimit() int {
	return s.shuffleLimit
}

// CardsWithin returns how many of a full shoe's lowest cards, aces
// counted as one, can be taken before their values add up to more than
// total.
func (s *Shoe) CardsWithin(total int) int {
	values := make([]int, 0, s.Size())
	if s.stacked != nil {
		for _, c := range s.stacked {
			values = append(values, c.Value())
		}
	} else {
		for rank := Ace; rank <= King; rank++ {
			for range s.decks * len(Suits) {
				values = append(values, rank.Value())
			}
		}
	}
	slices.Sort(values)

	n, sum := 0, 0
	for _, v := range values {
		if sum+v > total {
			break
		}
		sum += v
		n++
	}
	return n
}

// Contains reports whether the given physical card is still in the shoe
func (s *Shoe) Contains(card Card) bool {
	for _, c := range s.cards {
		if c.Same(card) {
			return true
		}
	}
	return false
}
