package strategy

import (
	"github.com/primus-game/primus/internal/game/cards"
)

const (
	scoreSkipReverse    int64 = 10
	scoreDrawTwo        int64 = 15
	scoreWild           int64 = 25
	scoreDefendableMove int64 = -1_000_000
	scoreNormalCard     int64 = 1

	// urgencyBase is the hand size below which attacks get more valuable.
	urgencyBase = 10
)

// Cheater peeks at a victim's hand and plays whatever hurts the victim most.
type Cheater struct {
	victim OpponentView
}

// NewCheater creates a Cheater watching victim.
func NewCheater(victim OpponentView) *Cheater {
	if victim == nil {
		panic("strategy: cheater needs a victim")
	}
	return &Cheater{victim: victim}
}

// ChooseCard implements CardStrategy.
func (c *Cheater) ChooseCard(possible []cards.Card) (cards.Card, bool) {
	analysis := analyzeHand(c.victim)
	return maxBy(possible, func(card cards.Card) int64 {
		return analysis.score(card)
	})
}

func (c *Cheater) String() string { return "Cheater" }

type victimAnalysis struct {
	colors map[cards.Color]int
	ranks  map[cards.Rank]int
	total  int
}

func analyzeHand(victim OpponentView) victimAnalysis {
	hand := victim.Hand()
	a := victimAnalysis{
		colors: make(map[cards.Color]int),
		ranks:  make(map[cards.Rank]int),
		total:  victim.CardCount(),
	}
	for _, card := range hand {
		if !card.IsNativeWild() {
			a.colors[card.Color()]++
		}
		a.ranks[card.Rank()]++
	}
	return a
}

func (a victimAnalysis) score(card cards.Card) int64 {
	switch {
	case card.IsNativeWild():
		if card.Rank() != cards.WildDrawFour {
			return scoreWild
		}
		if a.ranks[cards.WildDrawFour] > 0 {
			return scoreDefendableMove
		}
		return scoreWild * a.urgency()
	case card.Rank() == cards.DrawTwo:
		if a.ranks[cards.DrawTwo] > 0 {
			return scoreDefendableMove
		}
		return scoreDrawTwo * a.urgency()
	case card.Rank() == cards.Skip || card.Rank() == cards.Reverse:
		return scoreSkipReverse
	default:
		return max(0, scoreNormalCard*int64(a.total-a.colors[card.Color()]))
	}
}

// urgency grows as the victim gets close to emptying their hand.
func (a victimAnalysis) urgency() int64 {
	return int64(max(1, urgencyBase-a.total))
}
