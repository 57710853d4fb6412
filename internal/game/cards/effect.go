package cards

import (
	"fmt"
	"strings"
)

// Effect is a rule side effect triggered when a card is played.
type Effect uint8

const (
	ReverseTurn Effect = 1 << iota
	SkipNext
	ChangeColor
	AlwaysPlayable
)

var effectNames = []struct {
	effect Effect
	name   string
}{
	{ReverseTurn, "REVERSE_TURN"},
	{SkipNext, "SKIP_NEXT"},
	{ChangeColor, "CHANGE_COLOR"},
	{AlwaysPlayable, "ALWAYS_PLAYABLE"},
}

func (e Effect) String() string {
	for _, en := range effectNames {
		if en.effect == e {
			return en.name
		}
	}
	return fmt.Sprintf("EFFECT_%d", uint8(e))
}

// ParseEffect resolves an effect by name, case-insensitively.
func ParseEffect(s string) (Effect, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, en := range effectNames {
		if en.name == name {
			return en.effect, nil
		}
	}
	return 0, fmt.Errorf("unknown effect %q", s)
}

// Effects is a set of Effect values.
type Effects uint8

// EffectSet builds a set from the given effects.
func EffectSet(effects ...Effect) Effects {
	var set Effects
	for _, e := range effects {
		set |= Effects(e)
	}
	return set
}

// Has reports whether e is in the set.
func (s Effects) Has(e Effect) bool {
	return s&Effects(e) != 0
}

// With returns the union of s and the given effects.
func (s Effects) With(effects ...Effect) Effects {
	return s | EffectSet(effects...)
}

// List returns the members of the set in a stable order.
func (s Effects) List() []Effect {
	var out []Effect
	for _, en := range effectNames {
		if s.Has(en.effect) {
			out = append(out, en.effect)
		}
	}
	return out
}

func (s Effects) String() string {
	list := s.List()
	names := make([]string, len(list))
	for i, e := range list {
		names[i] = e.String()
	}
	return strings.Join(names, "|")
}
