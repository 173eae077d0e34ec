// Package config loads table, display and logging settings from an HCL
// file. Every attribute is optional; anything left out keeps its default.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/game"
)

// Config is the resolved configuration
type Config struct {
	Game    game.Config
	Display Display
	Log     Log
	History History
}

// Display controls the interactive shell
type Display struct {
	Delay time.Duration // pause between dealing steps
	Color bool
}

// Log controls logging
type Log struct {
	Level string
	File  string // empty logs to stderr
}

// History controls round history recording
type History struct {
	File string // empty disables recording
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Game: game.DefaultConfig(),
		Display: Display{
			Delay: 700 * time.Millisecond,
			Color: true,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// fileConfig mirrors the HCL layout. Pointers distinguish "absent" from
// an explicit zero.
type fileConfig struct {
	Game    *gameBlock    `hcl:"game,block"`
	Display *displayBlock `hcl:"display,block"`
	Log     *logBlock     `hcl:"log,block"`
	History *historyBlock `hcl:"history,block"`
}

type gameBlock struct {
	Decks        *int    `hcl:"decks,optional"`
	ShuffleLimit *int    `hcl:"shuffle_limit,optional"`
	MinBet       *int    `hcl:"min_bet,optional"`
	MaxBet       *int    `hcl:"max_bet,optional"`
	Tokens       *int    `hcl:"tokens,optional"`
	PeekRule     *string `hcl:"peek_rule,optional"`
	MaxAttempts  *int    `hcl:"max_attempts,optional"`
}

type displayBlock struct {
	Delay *string `hcl:"delay,optional"`
	Color *bool   `hcl:"color,optional"`
}

type logBlock struct {
	Level *string `hcl:"level,optional"`
	File  *string `hcl:"file,optional"`
}

type historyBlock struct {
	File *string `hcl:"file,optional"`
}

// Load reads the configuration file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse reads configuration from HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if g := fc.Game; g != nil {
		setInt(&cfg.Game.Decks, g.Decks)
		setInt(&cfg.Game.ShuffleLimit, g.ShuffleLimit)
		setInt(&cfg.Game.MinBet, g.MinBet)
		setInt(&cfg.Game.MaxBet, g.MaxBet)
		setInt(&cfg.Game.StartingBalance, g.Tokens)
		setInt(&cfg.Game.MaxAttempts, g.MaxAttempts)
		if g.PeekRule != nil {
			rule, err := game.ParsePeekRule(*g.PeekRule)
			if err != nil {
				return nil, err
			}
			cfg.Game.PeekRule = rule
		}
	}

	if d := fc.Display; d != nil {
		if d.Delay != nil {
			delay, err := time.ParseDuration(*d.Delay)
			if err != nil {
				return nil, fmt.Errorf("display delay: %w", err)
			}
			cfg.Display.Delay = delay
		}
		if d.Color != nil {
			cfg.Display.Color = *d.Color
		}
	}

	if l := fc.Log; l != nil {
		setString(&cfg.Log.Level, l.Level)
		setString(&cfg.Log.File, l.File)
	}
	if h := fc.History; h != nil {
		setString(&cfg.History.File, h.File)
	}

	return cfg, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if c.Display.Delay < 0 {
		return fmt.Errorf("display delay must not be negative, got %s", c.Display.Delay)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}
