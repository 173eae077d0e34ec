package main

import (
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
)

// TableFlags override the table settings from the config file. Unset
// flags leave the file (or default) value alone.
type TableFlags struct {
	Tokens       *int    `help:"Starting balance" env:"BLACKJACK_TOKENS"`
	Decks        *int    `help:"Decks in the shoe" env:"BLACKJACK_DECKS"`
	MinBet       *int    `name:"min-bet" help:"Minimum bet" env:"BLACKJACK_MIN_BET"`
	MaxBet       *int    `name:"max-bet" help:"Maximum bet" env:"BLACKJACK_MAX_BET"`
	ShuffleLimit *int    `name:"shuffle-limit" help:"Reshuffle once no more than this many cards remain" env:"BLACKJACK_SHUFFLE_LIMIT"`
	PeekRule     *string `name:"peek-rule" help:"When the dealer checks for blackjack: before-play or after-reveal" env:"BLACKJACK_PEEK_RULE"`
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(filename string, flags TableFlags) (*config.Config, error) {
	cfg, err := config.Load(filename)
	if err != nil {
		return nil, err
	}
	if err := flags.apply(&cfg.Game); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f TableFlags) apply(cfg *game.Config) error {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cfg.StartingBalance, f.Tokens)
	set(&cfg.Decks, f.Decks)
	set(&cfg.MinBet, f.MinBet)
	set(&cfg.MaxBet, f.MaxBet)
	set(&cfg.ShuffleLimit, f.ShuffleLimit)

	if f.PeekRule != nil {
		rule, err := game.ParsePeekRule(*f.PeekRule)
		if err != nil {
			return err
		}
		cfg.PeekRule = rule
	}
	return nil
}
