package history

import (
	"fmt"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/statistics"
)

// Summarize aggregates recorded rounds
func Summarize(records []RoundRecord) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}
	for i, rec := range records {
		outcome, err := game.ParseOutcome(rec.Outcome)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i+1, rec.Round, err)
		}
		stats.Add(statistics.RoundResult{
			Net:             rec.Net(),
			Bet:             rec.Bet,
			Outcome:         outcome,
			Doubled:         rec.Doubled,
			SplitRequested:  rec.SplitRequested,
			DealerBlackjack: rec.DealerBlackjack,
		})
	}
	return stats, nil
}
