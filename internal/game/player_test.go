package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
)

func TestPlaceBet(t *testing.T) {
	tests := []struct {
		name    string
		balance int
		amount  int
		wantErr bool
	}{
		{"valid", 100, 10, false},
		{"whole balance", 100, 100, false},
		{"below minimum", 100, 4, true},
		{"above maximum", 1000, 501, true},
		{"above balance", 50, 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(tt.balance)
			err := p.PlaceBet(tt.amount, 5, 500)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidBet)
				assert.Equal(t, tt.balance, p.Balance(), "refused bet leaves balance alone")
				assert.Equal(t, 0, p.Bet())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.balance-tt.amount, p.Balance())
			assert.Equal(t, tt.amount, p.Bet())
			assert.GreaterOrEqual(t, p.Balance(), 0)
		})
	}
}

func TestLegalActions(t *testing.T) {
	t.Run("first decision offers double", func(t *testing.T) {
		p := NewPlayer(100)
		require.NoError(t, p.PlaceBet(10, 1, 500))
		p.Hand.Add(deck.FaceUp(deck.Spades, deck.Six))
		p.Hand.Add(deck.FaceUp(deck.Hearts, deck.Five))
		assert.Equal(t, ActionSet{Hit, Stand, Double}, p.LegalActions(1))
	})

	t.Run("pair offers split", func(t *testing.T) {
		p := NewPlayer(100)
		require.NoError(t, p.PlaceBet(10, 1, 500))
		p.Hand.Add(deck.FaceUp(deck.Spades, deck.Eight))
		p.Hand.Add(deck.FaceUp(deck.Hearts, deck.Eight))
		assert.Equal(t, ActionSet{Hit, Stand, Double, Split}, p.LegalActions(1))
	})

	t.Run("later decisions only hit or stand", func(t *testing.T) {
		p := NewPlayer(100)
		require.NoError(t, p.PlaceBet(10, 1, 500))
		p.Hand.Add(deck.FaceUp(deck.Spades, deck.Eight))
		p.Hand.Add(deck.FaceUp(deck.Hearts, deck.Eight))
		assert.Equal(t, ActionSet{Hit, Stand}, p.LegalActions(2))
	})

	t.Run("no double without a second stake", func(t *testing.T) {
		p := NewPlayer(15)
		require.NoError(t, p.PlaceBet(10, 1, 500))
		p.Hand.Add(deck.FaceUp(deck.Spades, deck.Six))
		p.Hand.Add(deck.FaceUp(deck.Hearts, deck.Five))
		assert.Equal(t, ActionSet{Hit, Stand}, p.LegalActions(1))
	})
}

func TestDoubleDownDebitsStake(t *testing.T) {
	p := NewPlayer(100)
	require.NoError(t, p.PlaceBet(30, 1, 500))
	require.NoError(t, p.doubleDown())
	assert.Equal(t, 60, p.Bet())
	assert.Equal(t, 40, p.Balance())

	require.ErrorIs(t, p.doubleDown(), ErrIllegalAction)
}

func TestDealerPolicy(t *testing.T) {
	tests := []struct {
		cards string
		want  Action
	}{
		{"10S 6H", Hit},
		{"10S 7H", Stand},
		{"AS 6H", Stand}, // soft 17 stands
		{"AS 5H", Hit},
		{"10S 6H 9D", Stand},
		{"10S 10H", Stand},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			d := NewDealer()
			for _, c := range deck.MustParseCards(tt.cards) {
				d.Hand.Add(c)
			}
			assert.Equal(t, tt.want, d.ChooseAction())
		})
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range []Action{Hit, Stand, Double, Split} {
		got, err := ParseAction(a.Shortcut())
		require.NoError(t, err)
		assert.Equal(t, a, got)

		got, err = ParseAction(" " + a.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseAction("surrender")
	assert.ErrorIs(t, err, ErrIllegalAction)
}

func TestOutcomePayout(t *testing.T) {
	tests := []struct {
		outcome Outcome
		bet     int
		payout  int
	}{
		{Blackjack, 10, 25},
		{Blackjack, 5, 12},
		{Win, 10, 20},
		{Lose, 10, 0},
		{Push, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			got, err := tt.outcome.Payout(tt.bet)
			require.NoError(t, err)
			assert.Equal(t, tt.payout, got)
			assert.True(t, tt.outcome.Terminal())
		})
	}

	_, err := Continue.Payout(10)
	assert.ErrorIs(t, err, ErrUnreachableOutcome)
	assert.False(t, Continue.Terminal())
}

func TestParseOutcome(t *testing.T) {
	for _, o := range []Outcome{Blackjack, Win, Lose, Push} {
		got, err := ParseOutcome(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}

	_, err := ParseOutcome("continue")
	assert.ErrorIs(t, err, ErrUnreachableOutcome)
}
