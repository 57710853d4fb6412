package strategy

import (
	"math/rand/v2"

	"github.com/primus-game/primus/internal/game/cards"
)

// Random plays a uniformly chosen card.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random strategy. A nil rng uses the global source.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// ChooseCard implements CardStrategy.
func (r *Random) ChooseCard(possible []cards.Card) (cards.Card, bool) {
	if len(possible) == 0 {
		return cards.Card{}, false
	}
	return possible[intN(r.rng, len(possible))], true
}

func (r *Random) String() string { return "Random" }

// Aggressive plays its most damaging card first.
type Aggressive struct{}

// NewAggressive creates an Aggressive strategy.
func NewAggressive() *Aggressive {
	return &Aggressive{}
}

const (
	priorityUltimate = 100
	priorityHigh     = 50
	priorityMedium   = 20
	priorityLow      = 1
)

// ChooseCard implements CardStrategy. Ties go to the earliest card.
func (a *Aggressive) ChooseCard(possible []cards.Card) (cards.Card, bool) {
	return maxBy(possible, aggressiveScore)
}

func (a *Aggressive) String() string { return "Aggressive" }

func aggressiveScore(c cards.Card) int {
	switch c.Rank() {
	case cards.WildDrawFour:
		return priorityUltimate
	case cards.DrawTwo:
		return priorityHigh
	case cards.WildCard:
		return priorityMedium
	default:
		return priorityLow
	}
}
