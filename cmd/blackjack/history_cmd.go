package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/blackjack/internal/history"
)

// HistoryCmd summarises a TOML round history written by play --history
type HistoryCmd struct {
	File string `arg:"" name:"file" type:"existingfile" help:"Round history file"`
	Last int    `default:"10" help:"Also list the last N rounds (0 = none)"`
}

func (cmd *HistoryCmd) Run() error {
	f, err := os.Open(filepath.Clean(cmd.File))
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := history.Decode(f)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no rounds found in %s", cmd.File)
	}

	stats, err := history.Summarize(records)
	if err != nil {
		return err
	}
	if err := stats.Validate(); err != nil {
		return err
	}

	w := os.Stdout
	first, last := records[0], records[len(records)-1]
	fmt.Fprintf(w, "=== %s ===\n", filepath.Base(cmd.File))
	fmt.Fprintf(w, "Rounds: %d (%s to %s)\n", stats.Rounds,
		first.Time.Format("2006-01-02 15:04"), last.Time.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Final balance: %d\n", last.Balance)
	fmt.Fprintf(w, "Net: %+d tokens on %d wagered (%.2f%%)\n", int(stats.SumNet), stats.Wagered, stats.Return())
	fmt.Fprintf(w, "Mean: %.3f tokens/round, std dev %.3f\n", stats.Mean(), stats.StdDev())
	fmt.Fprintf(w, "Outcomes: %d blackjack, %d win, %d push, %d lose\n",
		stats.Outcomes.Blackjack, stats.Outcomes.Win, stats.Outcomes.Push, stats.Outcomes.Lose)

	if cmd.Last > 0 {
		fmt.Fprintln(w)
		printRounds(w, records[max(0, len(records)-cmd.Last):])
	}
	return nil
}

func printRounds(w io.Writer, records []history.RoundRecord) {
	for _, rec := range records {
		fmt.Fprintf(w, "%s  %-9s %+5d  you %-14s (%2d)  dealer %-14s (%2d)  %s\n",
			rec.Time.Format("15:04:05"),
			rec.Outcome,
			rec.Net(),
			strings.Join(rec.Player, " "), rec.PlayerTotal,
			strings.Join(rec.Dealer, " "), rec.DealerTotal,
			strings.Join(rec.Actions, ","))
	}
}
