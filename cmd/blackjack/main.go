package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/lox/blackjack/internal/strategy"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config string `short:"c" type:"path" env:"BLACKJACK_CONFIG" default:"blackjack.hcl" help:"HCL config file (missing file uses defaults)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play at the table"`
	Simulate SimulateCmd      `cmd:"" help:"Auto-play many rounds with a built-in strategy"`
	History  HistoryCmd       `cmd:"" help:"Summarise a round history file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-player blackjack against the house"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":    version,
			"strategies": strings.Join(strategy.Names(), ","),
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
