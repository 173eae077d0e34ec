package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/history"
	"github.com/lox/blackjack/internal/randutil"
)

// PlayCmd runs the interactive table
type PlayCmd struct {
	TableFlags `embed:""`

	Delay   *time.Duration `help:"Pause before each dealer card" env:"BLACKJACK_DELAY"`
	NoColor bool           `name:"no-color" help:"Disable colours" env:"NO_COLOR"`
	Seed    int64          `help:"Shoe RNG seed (0 for random)" env:"BLACKJACK_SEED"`
	History string         `type:"path" help:"Append settled rounds to this TOML file" env:"BLACKJACK_HISTORY"`
	Debug   bool           `short:"d" help:"Log engine decisions"`
}

func (cmd *PlayCmd) Run(globals *Globals) error {
	ctx, cancel := setupSignalHandler(func(sig os.Signal) {
		log.Debug("Received signal, leaving the table", "signal", sig)
	})
	defer cancel()

	return cmd.play(ctx, globals, os.Stdin, os.Stdout)
}

// play runs the table against in and out. A terminal stdin gets readline,
// anything else is read line by line.
func (cmd *PlayCmd) play(ctx context.Context, globals *Globals, in *os.File, out io.Writer) error {
	cfg, err := loadConfig(globals.Config, cmd.TableFlags)
	if err != nil {
		return err
	}
	cmd.apply(cfg)

	logger, closeLog, err := setupTableLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeLog(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	seed := randutil.Seed(cmd.Seed)
	logger.Info("Opening table",
		"seed", seed,
		"decks", cfg.Game.Decks,
		"tokens", cfg.Game.StartingBalance,
		"peek", cfg.Game.PeekRule)

	engine, err := game.NewEngine(cfg.Game,
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if cfg.History.File != "" {
		f, err := os.OpenFile(cfg.History.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open history file: %w", err)
		}
		defer f.Close()

		recorder := history.NewRecorder(f)
		engine.EventBus().Subscribe(recorder)
		defer func() {
			if err := recorder.Err(); err != nil {
				logger.Error("Round history incomplete", "file", cfg.History.File, "error", err)
			}
			logger.Info("Round history written", "file", cfg.History.File, "rounds", recorder.Written())
		}()
	}

	reader, err := console.NewLineReader(in, out, filepath.Join(os.TempDir(), "blackjack_history"))
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer reader.Close()

	styles := console.NewStyles(console.NewRenderer(out, cfg.Display.Color))
	shell := console.NewShell(reader, out,
		console.WithStyles(styles),
		console.WithLogger(logger),
		console.WithDelay(cfg.Display.Delay),
	)

	return shell.Run(ctx, engine)
}

// apply layers the display and logging flags over the file config
func (cmd *PlayCmd) apply(cfg *config.Config) {
	if cmd.Delay != nil {
		cfg.Display.Delay = *cmd.Delay
	}
	if cmd.NoColor {
		cfg.Display.Color = false
	}
	if cmd.History != "" {
		cfg.History.File = cmd.History
	}
	if cmd.Debug {
		cfg.Log.Level = "debug"
	}
}
