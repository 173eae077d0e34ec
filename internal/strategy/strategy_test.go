package strategy

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

var quiet = log.New(io.Discard)

func snapshot(cards string) game.HandSnapshot {
	h := &game.Hand{}
	for _, c := range deck.MustParseCards(cards) {
		h.Add(c)
	}
	return h.Snapshot()
}

func dealerShowing(upcard string) game.HandSnapshot {
	h := &game.Hand{}
	h.Add(deck.MustParseCards(upcard)[0])
	h.Add(deck.NewCard(deck.Clubs, deck.Nine))
	return h.Snapshot()
}

func request(player, upcard string, legal game.ActionSet) game.ActionRequest {
	return game.ActionRequest{
		Legal:     legal,
		Player:    snapshot(player),
		Dealer:    dealerShowing(upcard),
		DrawCount: 1,
		Bet:       10,
		Balance:   100,
	}
}

var (
	opening   = game.ActionSet{game.Hit, game.Stand, game.Double}
	hitStand  = game.ActionSet{game.Hit, game.Stand}
	pairLegal = game.ActionSet{game.Hit, game.Stand, game.Double, game.Split}
)

func TestBasicStrategy(t *testing.T) {
	tests := []struct {
		name   string
		player string
		upcard string
		legal  game.ActionSet
		want   game.Action
	}{
		{"hard 17 stands", "10S 7H", "AD", opening, game.Stand},
		{"hard 16 hits a ten", "10S 6H", "KD", opening, game.Hit},
		{"hard 16 stands on a six", "10S 6H", "6D", opening, game.Stand},
		{"hard 12 hits a three", "10S 2H", "3D", opening, game.Hit},
		{"hard 12 stands on a four", "10S 2H", "4D", opening, game.Stand},
		{"11 doubles against a ten", "6S 5H", "QD", opening, game.Double},
		{"11 hits an ace", "6S 5H", "AD", opening, game.Hit},
		{"11 hits when double is gone", "6S 5H", "9D", hitStand, game.Hit},
		{"10 hits a ten", "6S 4H", "10D", opening, game.Hit},
		{"9 doubles on a five", "5S 4H", "5D", opening, game.Double},
		{"8 hits", "5S 3H", "6D", opening, game.Hit},
		{"soft 19 stands", "AS 8H", "6D", opening, game.Stand},
		{"soft 18 doubles on a four", "AS 7H", "4D", opening, game.Double},
		{"soft 18 stands when double is gone", "AS 7H", "4D", hitStand, game.Stand},
		{"soft 18 stands on a seven", "AS 7H", "7D", opening, game.Stand},
		{"soft 18 hits a nine", "AS 7H", "9D", opening, game.Hit},
		{"soft 17 doubles on a three", "AS 6H", "3D", opening, game.Double},
		{"soft 17 hits a two", "AS 6H", "2D", opening, game.Hit},
		{"soft 13 doubles on a five", "AS 2H", "5D", opening, game.Double},
		{"soft 13 hits a four", "AS 2H", "4D", opening, game.Hit},
		{"pairs play as totals", "8S 8H", "10D", pairLegal, game.Hit},
	}

	s := NewBasicStrategy(quiet)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ChooseAction(context.Background(), request(tt.player, tt.upcard, tt.legal))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, tt.legal.Contains(got))
		})
	}
}

func TestDealerMimic(t *testing.T) {
	s := NewDealerMimic(quiet)

	got, err := s.ChooseAction(context.Background(), request("10S 6H", "7D", opening))
	require.NoError(t, err)
	assert.Equal(t, game.Hit, got)

	got, err = s.ChooseAction(context.Background(), request("10S 7H", "7D", opening))
	require.NoError(t, err)
	assert.Equal(t, game.Stand, got)

	got, err = s.ChooseAction(context.Background(), request("AS 6H", "7D", opening))
	require.NoError(t, err)
	assert.Equal(t, game.Stand, got, "soft 17 stands like the dealer")
}

func TestAlwaysStandLogsDecision(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	action, err := NewAlwaysStand(logger).ChooseAction(context.Background(), request("10S 2H", "6D", opening))
	require.NoError(t, err)
	assert.Equal(t, game.Stand, action)
	assert.Contains(t, buf.String(), "always-stand decision")
	assert.Contains(t, buf.String(), "total=12")
}

func TestRandomNeverSplits(t *testing.T) {
	s := NewRandom(randutil.New(3), quiet)
	seen := make(map[game.Action]bool)
	for range 200 {
		got, err := s.ChooseAction(context.Background(), request("8S 8H", "7D", pairLegal))
		require.NoError(t, err)
		seen[got] = true
	}
	assert.False(t, seen[game.Split])
	assert.True(t, seen[game.Hit])
	assert.True(t, seen[game.Stand])
	assert.True(t, seen[game.Double])
}

func TestFlatBettor(t *testing.T) {
	req := game.BetRequest{MinBet: 5, MaxBet: 100, Balance: 1000}

	tests := []struct {
		amount  int
		balance int
		want    int
	}{
		{10, 1000, 10},
		{1, 1000, 5},
		{500, 1000, 100},
		{50, 30, 30},
	}
	for _, tt := range tests {
		req.Balance = tt.balance
		got, err := FlatBettor{Amount: tt.amount}.PlaceBet(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"basic", "dealer", "random", "stand"}, Names())

	for _, name := range Names() {
		d, err := New(name, randutil.New(1), quiet)
		require.NoError(t, err)
		assert.NotNil(t, d)
	}

	_, err := New("martingale", nil, quiet)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestStrategiesFinishRounds(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			e, err := game.NewEngine(game.DefaultConfig(), game.WithRNG(randutil.New(77)))
			require.NoError(t, err)
			d, err := New(name, randutil.New(78), quiet)
			require.NoError(t, err)

			for range 50 {
				res, err := e.PlayRound(context.Background(), FlatBettor{Amount: 10}, d)
				require.NoError(t, err)
				assert.True(t, res.Outcome.Terminal())
			}
		})
	}
}
