package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// RenderCard renders a single card, coloured by suit
func (s *Styles) RenderCard(c deck.Card) string {
	switch {
	case !c.IsFaceUp():
		return s.Hidden.Render(c.String())
	case c.Suit().IsRed():
		return s.RedCard.Render(c.String())
	default:
		return s.BlackCard.Render(c.String())
	}
}

// RenderHand renders a labelled hand with its possible totals, e.g.
// "Dealer  K♣ ??  10" or "You     A♠ 7♥  8/18".
func (s *Styles) RenderHand(label string, hand game.HandSnapshot) string {
	cards := make([]string, len(hand.Cards))
	for i, c := range hand.Cards {
		cards[i] = s.RenderCard(c)
	}

	line := s.Label.Render(label) + strings.Join(cards, " ") + "  " + s.Total.Render(formatTotals(hand.Totals))
	if game.IsBust(hand.Best) && len(hand.Cards) > 0 {
		line += " " + s.Error.Render("bust")
	}
	return line
}

func formatTotals(totals []int) string {
	parts := make([]string, len(totals))
	for i, t := range totals {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, "/")
}

// RenderResult describes how a round settled
func (s *Styles) RenderResult(res game.RoundResult) string {
	switch res.Outcome {
	case game.Blackjack:
		return s.Success.Render(fmt.Sprintf("Blackjack! You win %d.", res.Net))
	case game.Win:
		return s.Success.Render(fmt.Sprintf("You win %d.", res.Net))
	case game.Push:
		return s.Info.Render(fmt.Sprintf("Push. Your %d is returned.", res.Bet))
	case game.Lose:
		if res.DealerBlackjack {
			return s.Error.Render(fmt.Sprintf("Dealer has blackjack. You lose %d.", res.Bet))
		}
		return s.Error.Render(fmt.Sprintf("You lose %d.", res.Bet))
	default:
		return s.Warning.Render(res.Outcome.String())
	}
}

// RenderActions lists the legal actions with their shortcuts
func (s *Styles) RenderActions(legal game.ActionSet) string {
	parts := make([]string, len(legal))
	for i, a := range legal {
		parts[i] = fmt.Sprintf("%s (%s)", a, a.Shortcut())
	}
	return s.Info.Render(strings.Join(parts, ", "))
}
