package history

import (
	"io"
	"sync"
	"time"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Recorder subscribes to an engine's event bus and writes a record for
// every settled round. Write errors are kept and reported by Err; the
// game carries on.
type Recorder struct {
	mu      sync.Mutex
	w       io.Writer
	actions []string
	err     error
	written int
}

// NewRecorder creates a recorder writing to w
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case game.RoundStartEvent:
		r.actions = r.actions[:0]
	case game.PlayerActionEvent:
		r.actions = append(r.actions, e.Action.String())
	case game.RoundEndEvent:
		rec := NewRecord(e.Result, r.actions, e.Timestamp())
		if r.err != nil {
			return
		}
		if err := Encode(r.w, rec); err != nil {
			r.err = err
			return
		}
		r.written++
	}
}

// Err returns the first write error, if any
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Written returns the number of records written
func (r *Recorder) Written() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written
}

// NewRecord builds a record from a settled round
func NewRecord(res game.RoundResult, actions []string, at time.Time) RoundRecord {
	return RoundRecord{
		Round:           res.RoundID,
		Time:            at.UTC(),
		Bet:             res.Bet,
		Outcome:         res.Outcome.String(),
		Payout:          res.Payout,
		Balance:         res.Balance,
		Player:          codes(res.Player.Cards),
		Dealer:          codes(res.Dealer.Cards),
		PlayerTotal:     res.Player.Best,
		DealerTotal:     res.Dealer.Best,
		Actions:         append([]string{}, actions...),
		Doubled:         res.Doubled,
		SplitRequested:  res.SplitRequested,
		DealerBlackjack: res.DealerBlackjack,
	}
}

func codes(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Code()
	}
	return out
}
