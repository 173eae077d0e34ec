// Package console is the interactive terminal front end. A Shell places
// bets and chooses actions for a human player and renders round events.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/game"
)

// ErrQuit is returned when the player asks to leave the table
var ErrQuit = errors.New("player quit")

// Command is a non-game command available at every prompt
type Command struct {
	Name        string
	Aliases     []string
	Description string
}

var commands = []Command{
	{Name: "help", Aliases: []string{"?"}, Description: "Show available commands"},
	{Name: "quit", Aliases: []string{"q", "exit"}, Description: "Leave the table"},
}

func completions() []string {
	names := make([]string, 0, 8)
	for _, a := range []game.Action{game.Hit, game.Stand, game.Double, game.Split} {
		names = append(names, a.String())
	}
	for _, c := range commands {
		names = append(names, c.Name)
	}
	return names
}

// Shell is a human Bettor and Decider that also renders the round as it
// happens. Subscribe it to the engine's event bus, or let Run do it.
type Shell struct {
	in      LineReader
	out     io.Writer
	styles  *Styles
	logger  *log.Logger
	clock   quartz.Clock
	delay   time.Duration
	ctx     context.Context
	lastBet int
}

// Option configures a Shell
type Option func(*Shell)

// WithStyles overrides the default colourless styles
func WithStyles(styles *Styles) Option {
	return func(s *Shell) { s.styles = styles }
}

// WithLogger sets the logger for diagnostics
func WithLogger(logger *log.Logger) Option {
	return func(s *Shell) { s.logger = logger }
}

// WithClock sets the clock used for the dealer's pauses
func WithClock(clock quartz.Clock) Option {
	return func(s *Shell) { s.clock = clock }
}

// WithDelay sets the pause before each dealer card is shown
func WithDelay(d time.Duration) Option {
	return func(s *Shell) { s.delay = d }
}

// NewShell creates a shell reading from in and writing to out
func NewShell(in LineReader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		in:     in,
		out:    out,
		logger: log.New(io.Discard),
		clock:  quartz.NewReal(),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.styles == nil {
		s.styles = NewStyles(NewRenderer(out, false))
	}
	return s
}

// Run plays rounds until the player quits, goes broke or ctx is cancelled.
// Quitting and cancellation are a clean exit and return nil.
func (s *Shell) Run(ctx context.Context, engine *game.Engine) error {
	s.ctx = ctx
	defer func() { s.ctx = context.Background() }()

	bus := engine.EventBus()
	bus.Subscribe(s)
	defer bus.Unsubscribe(s)

	cfg := engine.Config()
	s.println(s.styles.Success.Render("Welcome to blackjack!"))
	s.println(s.styles.Info.Render(fmt.Sprintf("%d decks, bets %d to %d. Type 'help' for commands.",
		cfg.Decks, cfg.MinBet, cfg.MaxBet)))

	for {
		if !engine.CanPlay() {
			s.println(s.styles.Warning.Render(fmt.Sprintf(
				"You have %d tokens left, below the minimum bet of %d. Game over.",
				engine.Player().Balance(), cfg.MinBet)))
			return nil
		}
		if engine.NeedsReshuffle() {
			engine.Reshuffle()
		}

		_, err := engine.PlayRound(ctx, s, s)
		switch {
		case err == nil:
		case errors.Is(err, ErrQuit), errors.Is(err, context.Canceled):
			s.println(s.styles.Info.Render(fmt.Sprintf(
				"Thanks for playing! You leave with %d tokens.", engine.Player().Balance())))
			return nil
		default:
			return err
		}
	}
}

// PlaceBet prompts for a stake. An empty line repeats the last bet.
func (s *Shell) PlaceBet(ctx context.Context, req game.BetRequest) (int, error) {
	if req.LastErr != nil {
		s.println(s.styles.Error.Render(req.LastErr.Error()))
	}

	most := min(req.MaxBet, req.Balance)
	def := s.lastBet
	if def < req.MinBet || def > most {
		def = req.MinBet
	}

	for {
		line, err := s.readLine(ctx, fmt.Sprintf("Bet %d-%d [%d]> ", req.MinBet, most, def))
		if err != nil {
			return 0, err
		}
		if handled, err := s.command(line); handled {
			if err != nil {
				return 0, err
			}
			continue
		}

		amount := def
		if line != "" {
			amount, err = strconv.Atoi(line)
			if err != nil {
				s.println(s.styles.Error.Render(fmt.Sprintf("%q is not a number", line)))
				continue
			}
		}
		if amount < req.MinBet || amount > most {
			s.println(s.styles.Error.Render(fmt.Sprintf("Bet must be between %d and %d", req.MinBet, most)))
			continue
		}

		s.lastBet = amount
		return amount, nil
	}
}

// ChooseAction prompts for the next action until a legal one is entered
func (s *Shell) ChooseAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	if req.LastErr != nil && !errors.Is(req.LastErr, game.ErrSplitUnsupported) {
		s.println(s.styles.Error.Render(req.LastErr.Error()))
	}
	s.println(s.styles.RenderActions(req.Legal))

	prompt := fmt.Sprintf("%s %d> ", formatTotals(req.Player.Totals), req.Bet)
	for {
		line, err := s.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		if line == "" {
			continue
		}
		if handled, err := s.command(line); handled {
			if err != nil {
				return 0, err
			}
			continue
		}

		action, err := game.ParseAction(line)
		if err != nil {
			s.println(s.styles.Error.Render(fmt.Sprintf("Unknown action: %s. Type 'help' for available commands.", line)))
			continue
		}
		if !req.Legal.Contains(action) {
			s.println(s.styles.Error.Render(fmt.Sprintf("You can't %s now", action)))
			continue
		}
		return action, nil
	}
}

// OnEvent renders round events
func (s *Shell) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		s.println("")
		s.println(s.styles.Info.Render(fmt.Sprintf("Round %d", e.RoundsStarted)) + "  " +
			s.styles.Balance.Render(fmt.Sprintf("Balance: %d", e.Balance)))
	case game.HandsEvent:
		if e.Phase == game.PhaseDealerReveal || e.Phase == game.PhaseDealerTurn {
			s.pause()
		}
		s.println(s.styles.RenderHand("Dealer", e.Dealer))
		s.println(s.styles.RenderHand("You", e.Player))
	case game.PlayerActionEvent:
		if e.Action == game.Double {
			s.println(s.styles.Info.Render(fmt.Sprintf("Doubled to %d", e.Bet)))
		}
	case game.SplitDeclinedEvent:
		s.println(s.styles.Warning.Render("Splitting is not supported at this table, choose another action"))
	case game.DealerPeekEvent:
		s.println(s.styles.Warning.Render("Dealer checks the hole card..."))
	case game.RoundEndEvent:
		s.println(s.styles.RenderResult(e.Result))
	case game.ShoeReshuffledEvent:
		s.println(s.styles.Info.Render(fmt.Sprintf("Shuffling a fresh shoe of %d cards", e.Cards)))
	}
}

// command handles help and quit. It reports whether line was a command.
func (s *Shell) command(line string) (bool, error) {
	name := strings.ToLower(line)
	for _, c := range commands {
		if name != c.Name && !slices.Contains(c.Aliases, name) {
			continue
		}
		switch c.Name {
		case "quit":
			return true, ErrQuit
		case "help":
			s.help()
		}
		return true, nil
	}
	return false, nil
}

func (s *Shell) help() {
	s.println(s.styles.Success.Render("Game Actions:"))
	for _, a := range []game.Action{game.Hit, game.Stand, game.Double, game.Split} {
		s.println(fmt.Sprintf("  %-10s - shortcut %q", a, a.Shortcut()))
	}
	s.println(s.styles.Warning.Render("Utility:"))
	for _, c := range commands {
		s.println(fmt.Sprintf("  %-10s - %s", c.Name, c.Description))
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine reads one trimmed line, giving up when ctx is cancelled. An
// interrupt or end of input quits.
func (s *Shell) readLine(ctx context.Context, prompt string) (string, error) {
	s.in.SetPrompt(s.styles.Prompt.Render(prompt))

	ch := make(chan lineResult, 1)
	go func() {
		line, err := s.in.Readline()
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		switch {
		case errors.Is(r.err, readline.ErrInterrupt), errors.Is(r.err, io.EOF):
			return "", ErrQuit
		case r.err != nil:
			s.logger.Error("Failed to read input", "error", r.err)
			return "", r.err
		}
		return strings.TrimSpace(r.line), nil
	}
}

// pause holds the dealer's cards back for the configured delay
func (s *Shell) pause() {
	if s.delay <= 0 {
		return
	}
	t := s.clock.NewTimer(s.delay, "console", "pause")
	defer t.Stop()

	select {
	case <-t.C:
	case <-s.ctx.Done():
	}
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}
