package strategy

import (
	"math/rand/v2"

	"github.com/primus-game/primus/internal/game/cards"
)

// DefaultColor is chosen when a hand gives no hint.
const DefaultColor = cards.Red

// RandomColor picks one of the concrete colors uniformly.
type RandomColor struct {
	rng *rand.Rand
}

// NewRandomColor creates a RandomColor strategy. A nil rng uses the global
// source.
func NewRandomColor(rng *rand.Rand) *RandomColor {
	return &RandomColor{rng: rng}
}

// ChooseColor implements ColorStrategy.
func (r *RandomColor) ChooseColor([]cards.Card) cards.Color {
	colors := cards.Colors()
	return colors[intN(r.rng, len(colors))]
}

func (r *RandomColor) String() string { return "RandomColor" }

// MostFrequentColor picks the color the hand holds most of.
type MostFrequentColor struct{}

// NewMostFrequentColor creates a MostFrequentColor strategy.
func NewMostFrequentColor() *MostFrequentColor {
	return &MostFrequentColor{}
}

// ChooseColor implements ColorStrategy. Wild cards are not counted; ties go
// to the color listed first by cards.Colors.
func (m *MostFrequentColor) ChooseColor(hand []cards.Card) cards.Color {
	counts := make(map[cards.Color]int, 4)
	for _, c := range hand {
		if c.Color().IsConcrete() && !c.IsNativeWild() {
			counts[c.Color()]++
		}
	}

	best, bestCount := DefaultColor, 0
	for _, color := range cards.Colors() {
		if counts[color] > bestCount {
			best, bestCount = color, counts[color]
		}
	}
	return best
}

func (m *MostFrequentColor) String() string { return "MostFrequentColor" }
