package rules

import "github.com/primus-game/primus/internal/game/cards"

// IsValidCard reports whether candidate may be played on top. Wild cards and
// cards flagged AlwaysPlayable match anything; otherwise color or rank must
// match.
func IsValidCard(top, candidate cards.Card) bool {
	return candidate.IsNativeWild() ||
		candidate.HasEffect(cards.AlwaysPlayable) ||
		candidate.Color() == top.Color() ||
		candidate.Rank() == top.Rank()
}

// IsValidDefense reports whether candidate answers the penalty carried by top.
// Defense is rank for rank: a +2 only stops a +2 and a +4 only stops a +4.
func IsValidDefense(top, candidate cards.Card) bool {
	switch top.Rank() {
	case cards.DrawTwo, cards.WildDrawFour:
		return candidate.Rank() == top.Rank()
	default:
		return false
	}
}
