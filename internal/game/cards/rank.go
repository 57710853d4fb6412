package cards

import (
	"fmt"
	"strings"
)

// Rank is the face value of a card.
type Rank int

const (
	Zero Rank = iota
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Skip
	Reverse
	DrawTwo
	WildCard
	WildDrawFour
)

type rankInfo struct {
	name  string
	label string
}

var rankInfos = map[Rank]rankInfo{
	Zero:         {"ZERO", "0"},
	One:          {"ONE", "1"},
	Two:          {"TWO", "2"},
	Three:        {"THREE", "3"},
	Four:         {"FOUR", "4"},
	Five:         {"FIVE", "5"},
	Six:          {"SIX", "6"},
	Seven:        {"SEVEN", "7"},
	Eight:        {"EIGHT", "8"},
	Nine:         {"NINE", "9"},
	Skip:         {"SKIP", "Skip"},
	Reverse:      {"REVERSE", "Reverse"},
	DrawTwo:      {"DRAW_TWO", "+2"},
	WildCard:     {"WILD", "Wild"},
	WildDrawFour: {"WILD_DRAW_FOUR", "+4 Wild"},
}

func (r Rank) String() string {
	if info, ok := rankInfos[r]; ok {
		return info.name
	}
	return fmt.Sprintf("RANK_%d", int(r))
}

// Label is the short text printed on the card face.
func (r Rank) Label() string {
	if info, ok := rankInfos[r]; ok {
		return info.label
	}
	return r.String()
}

// IsNumeral reports whether r is one of Zero..Nine.
func (r Rank) IsNumeral() bool {
	return r >= Zero && r <= Nine
}

// Ranks returns every rank in declaration order.
func Ranks() []Rank {
	out := make([]Rank, 0, len(rankInfos))
	for r := Zero; r <= WildDrawFour; r++ {
		out = append(out, r)
	}
	return out
}

// ParseRank resolves a rank by its name (DRAW_TWO) or its numeral (7).
func ParseRank(s string) (Rank, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for r, info := range rankInfos {
		if info.name == name || (r.IsNumeral() && info.label == name) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}

// defaultPenalty is the draw penalty a rank carries unless overridden.
func (r Rank) defaultPenalty() int {
	switch r {
	case DrawTwo:
		return 2
	case WildDrawFour:
		return 4
	default:
		return 0
	}
}

// labelEffects are the effects the rank label already names when printed.
func (r Rank) labelEffects() Effects {
	switch r {
	case Skip:
		return EffectSet(SkipNext)
	case Reverse:
		return EffectSet(ReverseTurn)
	default:
		return 0
	}
}
