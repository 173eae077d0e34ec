package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd auto-plays sessions with a built-in strategy
type SimulateCmd struct {
	TableFlags `embed:""`

	Sessions int    `default:"100" help:"Independent sessions, each with its own shoe and balance"`
	Rounds   int    `default:"1000" help:"Maximum rounds per session"`
	Strategy string `default:"basic" enum:"${strategies}" help:"Player strategy (${enum})"`
	Bet      int    `default:"10" help:"Flat bet per round"`
	Seed     int64  `default:"0" help:"RNG seed (0 for random)" env:"BLACKJACK_SEED"`
	Workers  int    `default:"0" help:"Parallel sessions (0 for one per CPU)"`
	Report   string `type:"path" help:"Write a JSON report to this file"`
	JSONLogs bool   `name:"json-logs" help:"Log as JSON instead of pretty output"`
	Debug    bool   `short:"d" help:"Debug logging"`
}

func (cmd *SimulateCmd) Run(globals *Globals) error {
	cfg, err := loadConfig(globals.Config, cmd.TableFlags)
	if err != nil {
		return err
	}

	logger := setupSimLogger(cmd.Debug, cmd.JSONLogs)
	ctx, cancel := setupSignalHandler(func(sig os.Signal) {
		logger.Warn().Str("signal", sig.String()).Msg("Received signal, stopping simulation")
	})
	defer cancel()

	simCfg := simulator.Config{
		Game:     cfg.Game,
		Sessions: cmd.Sessions,
		Rounds:   cmd.Rounds,
		Strategy: cmd.Strategy,
		Bet:      cmd.Bet,
		Seed:     randutil.Seed(cmd.Seed),
		Workers:  cmd.Workers,
		Logger:   &logger,
	}
	sim, err := simulator.New(simCfg)
	if err != nil {
		return err
	}

	res, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	report := simulator.NewReport(simCfg, res)
	printReport(os.Stdout, report, res)

	if cmd.Report != "" {
		if err := report.Validate(); err != nil {
			return err
		}
		if err := fileutil.WriteJSONAtomic(cmd.Report, report, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info().Str("file", cmd.Report).Str("run_id", report.RunID).Msg("Report written")
	}
	return nil
}

func printReport(w io.Writer, r simulator.Report, res *simulator.Result) {
	roundsPerSec := float64(r.RoundsPlayed) / max(res.Duration.Seconds(), 1e-9)

	fmt.Fprintf(w, "\n=== RESULTS: %s strategy, flat bet %d ===\n", r.Strategy, r.Bet)
	fmt.Fprintf(w, "Seed: %d\n", r.Seed)
	fmt.Fprintf(w, "Sessions: %d (%d went broke)\n", r.Sessions, r.BrokeSessions)
	fmt.Fprintf(w, "Rounds played: %d\n", r.RoundsPlayed)
	fmt.Fprintf(w, "Reshuffles: %d\n", r.Reshuffles)
	fmt.Fprintf(w, "Performance: %.0f rounds/sec\n", roundsPerSec)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f tokens/round\n", r.Mean)
	fmt.Fprintf(w, "Median: %.4f tokens/round\n", r.Median)
	fmt.Fprintf(w, "Std Dev: %.4f tokens\n", r.StdDev)
	fmt.Fprintf(w, "Std Error: %.4f tokens\n", r.StdError)
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] tokens/round\n", r.CI95[0], r.CI95[1])
	fmt.Fprintf(w, "Return: %.3f%% of %d wagered\n", r.ReturnPct, r.Wagered)

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	total := max(r.Outcomes.Total(), 1)
	for _, row := range []struct {
		name  string
		count int
	}{
		{"Blackjack", r.Outcomes.Blackjack},
		{"Win", r.Outcomes.Win},
		{"Push", r.Outcomes.Push},
		{"Lose", r.Outcomes.Lose},
	} {
		fmt.Fprintf(w, "%-10s %8d  %5.1f%%\n", row.name, row.count, 100*float64(row.count)/float64(total))
	}
	fmt.Fprintf(w, "Doubles: %d, dealer blackjacks: %d\n", r.Doubles, r.DealerBlackjacks)
	fmt.Fprintf(w, "Biggest win: %d, biggest loss: %d\n", r.BiggestWin, r.BiggestLoss)
	fmt.Fprintln(w, strings.Repeat("=", 40))
}
