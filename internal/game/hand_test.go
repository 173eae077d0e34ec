package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
)

func handOf(cards ...deck.Card) *Hand {
	h := &Hand{}
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

func TestHandRevealAll(t *testing.T) {
	h := handOf(deck.FaceUp(deck.Clubs, deck.King), hidden("7D"))
	assert.True(t, h.HasHidden())
	assert.Equal(t, 10, h.Best())
	assert.Equal(t, "K♣ ??", h.String())

	h.RevealAll()
	assert.False(t, h.HasHidden())
	assert.Equal(t, 17, h.Best())
	assert.Equal(t, "K♣ 7♦", h.String())
}

func TestHandCardsIsACopy(t *testing.T) {
	h := handOf(hidden("7D"))
	cards := h.Cards()
	cards[0].Reveal()
	assert.True(t, h.HasHidden())
}

func TestHandReset(t *testing.T) {
	h := handOf(deck.MustParseCards("AS KS")...)
	h.Reset()
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, 0, h.Best())
}

func TestHandIsPair(t *testing.T) {
	assert.True(t, handOf(deck.MustParseCards("8S 8H")...).IsPair())
	assert.True(t, handOf(deck.MustParseCards("KS 10H")...).IsPair(), "pairs compare base value")
	assert.False(t, handOf(deck.MustParseCards("8S 9H")...).IsPair())
	assert.False(t, handOf(deck.MustParseCards("8S 8H 8D")...).IsPair())
}

func TestSnapshot(t *testing.T) {
	s := handOf(deck.MustParseCards("AS 6H")...).Snapshot()
	assert.Equal(t, []int{7, 17}, s.Totals)
	assert.Equal(t, 17, s.Best)
	assert.True(t, s.IsSoft())

	up, ok := s.Upcard()
	assert.True(t, ok)
	assert.Equal(t, "AS", up.Code())

	hard := handOf(deck.MustParseCards("10S 7H")...).Snapshot()
	assert.False(t, hard.IsSoft())

	busted := handOf(deck.MustParseCards("10S 7H 9D")...).Snapshot()
	assert.False(t, busted.IsSoft())
	assert.Equal(t, Bust, busted.Best)
}

func TestSnapshotMasksHoleCard(t *testing.T) {
	hole := hidden("AD")
	h := handOf(deck.FaceUp(deck.Clubs, deck.King), hole)

	s := h.Snapshot()
	require.Len(t, s.Cards, 2)
	assert.Equal(t, "KC", s.Cards[0].Code())
	assert.Equal(t, hole.ID(), s.Cards[1].ID())
	assert.False(t, s.Cards[1].Rank().Valid(), "rank of a face-down card is not exposed")
	assert.False(t, s.Cards[1].IsAce())
	assert.Equal(t, []int{10}, s.Totals)
	assert.Equal(t, 10, s.Best)

	h.RevealAll()
	s = h.Snapshot()
	assert.Equal(t, "AD", s.Cards[1].Code())
	assert.Equal(t, Target, s.Best)
}
