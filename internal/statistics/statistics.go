// Package statistics aggregates the results of many blackjack rounds.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// RoundResult is the part of a settled round the statistics care about
type RoundResult struct {
	Net             int // payout minus stake, in tokens
	Bet             int // final stake, doubled if the player doubled
	Outcome         game.Outcome
	Doubled         bool
	SplitRequested  bool
	DealerBlackjack bool
}

// FromGame converts a settled game round
func FromGame(r game.RoundResult) RoundResult {
	return RoundResult{
		Net:             r.Net,
		Bet:             r.Bet,
		Outcome:         r.Outcome,
		Doubled:         r.Doubled,
		SplitRequested:  r.SplitRequested,
		DealerBlackjack: r.DealerBlackjack,
	}
}

// OutcomeCounts tallies settled rounds by outcome
type OutcomeCounts struct {
	Blackjack int `json:"blackjack"`
	Win       int `json:"win"`
	Lose      int `json:"lose"`
	Push      int `json:"push"`
}

// Total returns the number of rounds counted
func (c OutcomeCounts) Total() int {
	return c.Blackjack + c.Win + c.Lose + c.Push
}

// Statistics tracks net token results per round
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // every net result, for median/percentiles
	Wagered int       // total tokens staked, doubles included

	Outcomes OutcomeCounts

	// Doubled rounds tracked separately; DoubleNet + PlainNet == SumNet
	Doubles          int
	DoubleNet        float64
	PlainNet         float64
	SplitRequests    int
	DealerBlackjacks int

	BiggestWin  int
	BiggestLoss int // most negative net, stored as a negative number
}

// Add incorporates a settled round
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Net)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)
	s.Wagered += result.Bet

	switch result.Outcome {
	case game.Blackjack:
		s.Outcomes.Blackjack++
	case game.Win:
		s.Outcomes.Win++
	case game.Lose:
		s.Outcomes.Lose++
	case game.Push:
		s.Outcomes.Push++
	}

	if result.Doubled {
		s.Doubles++
		s.DoubleNet += net
	} else {
		s.PlainNet += net
	}
	if result.SplitRequested {
		s.SplitRequests++
	}
	if result.DealerBlackjack {
		s.DealerBlackjacks++
	}

	if result.Net > s.BiggestWin {
		s.BiggestWin = result.Net
	}
	if result.Net < s.BiggestLoss {
		s.BiggestLoss = result.Net
	}
}

// Merge folds another set of statistics into this one
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Wagered += other.Wagered

	s.Outcomes.Blackjack += other.Outcomes.Blackjack
	s.Outcomes.Win += other.Outcomes.Win
	s.Outcomes.Lose += other.Outcomes.Lose
	s.Outcomes.Push += other.Outcomes.Push

	s.Doubles += other.Doubles
	s.DoubleNet += other.DoubleNet
	s.PlainNet += other.PlainNet
	s.SplitRequests += other.SplitRequests
	s.DealerBlackjacks += other.DealerBlackjacks

	s.BiggestWin = max(s.BiggestWin, other.BiggestWin)
	s.BiggestLoss = min(s.BiggestLoss, other.BiggestLoss)
}

// Mean returns the mean net tokens per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Return returns the net result as a percentage of tokens wagered. A
// negative value is the house edge the player faced.
func (s *Statistics) Return() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return s.SumNet / float64(s.Wagered) * 100
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks that doubled and plain rounds account for the total
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.SumNet-s.DoubleNet-s.PlainNet) <= 1e-6
}

// Validate checks the aggregates are internally consistent
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: total=%.2f, doubled=%.2f, plain=%.2f",
			s.SumNet, s.DoubleNet, s.PlainNet)
	}
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid round count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match round count (%d)",
			len(s.Values), s.Rounds)
	}
	if total := s.Outcomes.Total(); total != s.Rounds {
		return fmt.Errorf("outcome total (%d) does not match round count (%d)", total, s.Rounds)
	}
	if s.Doubles > s.Rounds {
		return fmt.Errorf("doubles (%d) exceed round count (%d)", s.Doubles, s.Rounds)
	}
	return nil
}
