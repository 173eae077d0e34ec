// Package strategy provides automatic bettors and deciders for unattended
// play and simulation.
package strategy

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// ErrUnknownStrategy is returned by New for unregistered names
var ErrUnknownStrategy = errors.New("unknown strategy")

type factory func(rng *rand.Rand, logger *log.Logger) game.Decider

var registry = map[string]factory{
	"basic":  func(_ *rand.Rand, logger *log.Logger) game.Decider { return NewBasicStrategy(logger) },
	"dealer": func(_ *rand.Rand, logger *log.Logger) game.Decider { return NewDealerMimic(logger) },
	"random": func(rng *rand.Rand, logger *log.Logger) game.Decider { return NewRandom(rng, logger) },
	"stand":  func(_ *rand.Rand, logger *log.Logger) game.Decider { return NewAlwaysStand(logger) },
}

// Names returns the registered strategy names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the named decider. rng is only used by randomised strategies.
func New(name string, rng *rand.Rand, logger *log.Logger) (game.Decider, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownStrategy, name, Names())
	}
	return f(rng, logger), nil
}

// pick returns want if it is legal, otherwise the first legal fallback
func pick(legal game.ActionSet, want game.Action, fallbacks ...game.Action) game.Action {
	if legal.Contains(want) {
		return want
	}
	for _, a := range fallbacks {
		if legal.Contains(a) {
			return a
		}
	}
	return game.Stand
}

// withoutSplit drops Split, which the engine always declines
func withoutSplit(legal game.ActionSet) game.ActionSet {
	return slices.DeleteFunc(slices.Clone(legal), func(a game.Action) bool { return a == game.Split })
}
