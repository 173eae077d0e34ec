// Package history records settled rounds as TOML so sessions can be
// reviewed and summarised later.
package history

import "time"

// RoundRecord is one settled round
type RoundRecord struct {
	Round           string    `toml:"round"`
	Time            time.Time `toml:"time"`
	Bet             int       `toml:"bet"`
	Outcome         string    `toml:"outcome"`
	Payout          int       `toml:"payout"`
	Balance         int       `toml:"balance"`
	Player          []string  `toml:"player"`
	Dealer          []string  `toml:"dealer"`
	PlayerTotal     int       `toml:"player_total"`
	DealerTotal     int       `toml:"dealer_total"`
	Actions         []string  `toml:"actions"`
	Doubled         bool      `toml:"doubled,omitempty"`
	SplitRequested  bool      `toml:"split_requested,omitempty"`
	DealerBlackjack bool      `toml:"dealer_blackjack,omitempty"`
}

// Net returns the tokens won or lost in the round
func (r RoundRecord) Net() int {
	return r.Payout - r.Bet
}

// File is the on-disk layout: one [[round]] table per record, so records
// can be appended to an existing file.
type File struct {
	Rounds []RoundRecord `toml:"round"`
}
