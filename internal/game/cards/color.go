package cards

import (
	"fmt"
	"strings"
)

// Color is the suit-like attribute cards are matched on.
type Color int

const (
	Red Color = iota
	Blue
	Green
	Yellow
	// Wild marks a card with no bound color. Native wild cards sit in a hand
	// with this color until they are played.
	Wild
)

var colorNames = map[Color]string{
	Red:    "RED",
	Blue:   "BLUE",
	Green:  "GREEN",
	Yellow: "YELLOW",
	Wild:   "WILD",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("COLOR_%d", int(c))
}

// IsConcrete reports whether c is one of the four playable colors.
func (c Color) IsConcrete() bool {
	return c >= Red && c <= Yellow
}

// Colors returns the concrete colors in declaration order.
func Colors() []Color {
	return []Color{Red, Blue, Green, Yellow}
}

// ParseColor resolves a color name. BLACK is accepted as an alias of WILD.
func ParseColor(s string) (Color, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "BLACK" {
		return Wild, nil
	}
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}
