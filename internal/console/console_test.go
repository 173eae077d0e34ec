package console

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

func newStackedEngine(t *testing.T, player, dealer, rest string, opts ...game.TestEngineOption) *game.Engine {
	t.Helper()
	cards, err := game.StackedDeal(player, dealer, rest)
	require.NoError(t, err)
	e, err := game.NewTestEngine(cards, opts...)
	require.NoError(t, err)
	return e
}

func newTestShell(input string, opts ...Option) (*Shell, *bytes.Buffer) {
	var out bytes.Buffer
	return NewShell(NewScannerReader(strings.NewReader(input), &out), &out, opts...), &out
}

func TestNewLineReaderFallsBackForFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.WriteFile(path, []byte("10\n"), 0o644))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out bytes.Buffer
	reader, err := NewLineReader(f, &out, "")
	require.NoError(t, err)
	require.IsType(t, &ScannerReader{}, reader)

	reader.SetPrompt("bet> ")
	line, err := reader.Readline()
	require.NoError(t, err)
	assert.Equal(t, "10", line)
	assert.Equal(t, "bet> ", out.String())
}

func TestShellPlaysRound(t *testing.T) {
	engine := newStackedEngine(t, "10S 8H", "10C 6D", "AH")
	shell, out := newTestShell("10\ns\nquit\n")

	require.NoError(t, shell.Run(context.Background(), engine))

	assert.Equal(t, 1010, engine.Player().Balance())
	assert.Contains(t, out.String(), "Welcome to blackjack!")
	assert.Contains(t, out.String(), "Round 1")
	assert.Contains(t, out.String(), "You win 10.")
	assert.Contains(t, out.String(), "Thanks for playing! You leave with 1010 tokens.")
}

func TestShellRepromptsForBet(t *testing.T) {
	engine := newStackedEngine(t, "10S 8H", "10C 6D", "AH")
	shell, out := newTestShell("abc\n0\n600\n10\ns\nq\n")

	require.NoError(t, shell.Run(context.Background(), engine))

	assert.Contains(t, out.String(), `"abc" is not a number`)
	assert.Equal(t, 2, strings.Count(out.String(), "Bet must be between 1 and 500"))
	assert.Equal(t, 1010, engine.Player().Balance())
}

func TestShellDefaultBet(t *testing.T) {
	shell, _ := newTestShell("\n20\n\n")
	req := game.BetRequest{MinBet: 5, MaxBet: 100, Balance: 50}
	ctx := context.Background()

	amount, err := shell.PlaceBet(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 5, amount, "first default is the minimum bet")

	amount, err = shell.PlaceBet(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 20, amount)

	amount, err = shell.PlaceBet(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 20, amount, "an empty line repeats the last bet")
}

func TestShellDefaultBetClampedToBalance(t *testing.T) {
	shell, _ := newTestShell("40\n\n")
	ctx := context.Background()

	_, err := shell.PlaceBet(ctx, game.BetRequest{MinBet: 5, MaxBet: 100, Balance: 500})
	require.NoError(t, err)

	amount, err := shell.PlaceBet(ctx, game.BetRequest{MinBet: 5, MaxBet: 100, Balance: 30})
	require.NoError(t, err)
	assert.Equal(t, 5, amount, "last bet no longer affordable")
}

func TestShellRejectsIllegalAction(t *testing.T) {
	shell, out := newTestShell("x\ndouble\n\nh\n")

	action, err := shell.ChooseAction(context.Background(), game.ActionRequest{
		Legal:  game.ActionSet{game.Hit, game.Stand},
		Player: game.HandSnapshot{Totals: []int{15}},
		Bet:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, game.Hit, action)
	assert.Contains(t, out.String(), "Unknown action: x")
	assert.Contains(t, out.String(), "You can't double now")
	assert.Contains(t, out.String(), "hit (h), stand (s)")
}

func TestShellSplitDeclined(t *testing.T) {
	engine := newStackedEngine(t, "8S 8H", "10C 7D", "")
	shell, out := newTestShell("10\nsp\ns\nq\n")

	require.NoError(t, shell.Run(context.Background(), engine))

	assert.Contains(t, out.String(), "Splitting is not supported")
	assert.Contains(t, out.String(), "You lose 10.")
	assert.Equal(t, 990, engine.Player().Balance())
}

func TestShellEndOfInputQuits(t *testing.T) {
	engine := newStackedEngine(t, "10S 8H", "10C 6D", "AH")
	shell, out := newTestShell("")

	require.NoError(t, shell.Run(context.Background(), engine))
	assert.Contains(t, out.String(), "Thanks for playing! You leave with 1000 tokens.")
}

func TestShellGoesBroke(t *testing.T) {
	engine := newStackedEngine(t, "10S 6H", "10C 7D", "", game.WithBalance(10))
	shell, out := newTestShell("10\ns\n")

	require.NoError(t, shell.Run(context.Background(), engine))
	assert.Zero(t, engine.Player().Balance())
	assert.Contains(t, out.String(), "Game over.")
}

func TestShellCancelledContext(t *testing.T) {
	engine := newStackedEngine(t, "10S 8H", "10C 6D", "AH")
	shell, out := newTestShell("10\ns\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, shell.Run(ctx, engine))
	assert.Equal(t, 1000, engine.Player().Balance())
	assert.Contains(t, out.String(), "Thanks for playing!")
}

func TestShellHelp(t *testing.T) {
	engine := newStackedEngine(t, "10S 8H", "10C 6D", "AH")
	shell, out := newTestShell("help\n10\n?\ns\nq\n")

	require.NoError(t, shell.Run(context.Background(), engine))
	assert.Equal(t, 2, strings.Count(out.String(), "Game Actions:"))
	assert.Contains(t, out.String(), `shortcut "sp"`)
	assert.Equal(t, 1010, engine.Player().Balance())
}

func TestShellPeekedBlackjack(t *testing.T) {
	engine := newStackedEngine(t, "10S 8H", "AC KD", "")
	shell, out := newTestShell("10\nq\n")

	require.NoError(t, shell.Run(context.Background(), engine))
	assert.Contains(t, out.String(), "Dealer checks the hole card...")
	assert.Contains(t, out.String(), "Dealer has blackjack. You lose 10.")
}

func TestPauseWaitsForClock(t *testing.T) {
	mock := quartz.NewMock(t)
	shell, _ := newTestShell("", WithClock(mock), WithDelay(time.Second))

	done := make(chan struct{})
	go func() {
		shell.pause()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("pause returned before the clock advanced")
	case <-time.After(20 * time.Millisecond):
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			t.Fatal("pause never finished")
		default:
		}
		mock.Advance(time.Second).MustWait(ctx)
		time.Sleep(time.Millisecond)
	}
}

func TestPauseSkipsWithoutDelay(t *testing.T) {
	shell, _ := newTestShell("", WithClock(quartz.NewMock(t)))
	shell.pause()
}

func TestPauseStopsOnCancel(t *testing.T) {
	shell, _ := newTestShell("", WithClock(quartz.NewMock(t)), WithDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	shell.ctx = ctx
	shell.pause()
}

func TestRenderHand(t *testing.T) {
	styles := NewStyles(NewRenderer(io.Discard, false))

	var hand game.Hand
	hand.Add(deck.FaceUp(deck.Spades, deck.Ace))
	hand.Add(deck.FaceUp(deck.Hearts, deck.Seven))
	line := styles.RenderHand("You", hand.Snapshot())
	assert.Contains(t, line, "A♠ 7♥")
	assert.Contains(t, line, "8/18")
	assert.NotContains(t, line, "bust")

	var dealer game.Hand
	dealer.Add(deck.FaceUp(deck.Clubs, deck.King))
	dealer.Add(deck.NewCard(deck.Diamonds, deck.Nine))
	line = styles.RenderHand("Dealer", dealer.Snapshot())
	assert.Contains(t, line, "K♣ ??")
	assert.True(t, strings.HasSuffix(line, "10"))

	var busted game.Hand
	for _, c := range deck.MustParseCards("KS QH 5D") {
		busted.Add(c)
	}
	assert.Contains(t, styles.RenderHand("You", busted.Snapshot()), "25 bust")
}

func TestRenderResult(t *testing.T) {
	styles := NewStyles(NewRenderer(io.Discard, false))

	tests := []struct {
		result game.RoundResult
		want   string
	}{
		{game.RoundResult{Outcome: game.Blackjack, Bet: 10, Net: 15}, "Blackjack! You win 15."},
		{game.RoundResult{Outcome: game.Win, Bet: 20, Net: 20}, "You win 20."},
		{game.RoundResult{Outcome: game.Push, Bet: 10}, "Push. Your 10 is returned."},
		{game.RoundResult{Outcome: game.Lose, Bet: 10, Net: -10}, "You lose 10."},
		{game.RoundResult{Outcome: game.Lose, Bet: 10, Net: -10, DealerBlackjack: true}, "Dealer has blackjack. You lose 10."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.RenderResult(tt.result))
		})
	}
}
