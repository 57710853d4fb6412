// Package strategy holds the decision policies used by bot players.
package strategy

import (
	"math/rand/v2"

	"github.com/primus-game/primus/internal/game/cards"
)

// CardStrategy picks the card to play among the possible ones. The second
// result is false when the bot should draw instead.
type CardStrategy interface {
	ChooseCard(possible []cards.Card) (cards.Card, bool)
}

// ColorStrategy picks the color a wild card is bound to. It never returns
// cards.Wild.
type ColorStrategy interface {
	ChooseColor(hand []cards.Card) cards.Color
}

// OpponentView is a read-only window on another player's hand.
type OpponentView interface {
	ID() int
	Hand() []cards.Card
	CardCount() int
}

// maxBy returns the first element with the highest score.
func maxBy[S int | int64](possible []cards.Card, score func(cards.Card) S) (cards.Card, bool) {
	if len(possible) == 0 {
		return cards.Card{}, false
	}
	best := possible[0]
	bestScore := score(best)
	for _, c := range possible[1:] {
		if s := score(c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, true
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
