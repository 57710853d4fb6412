// Package cards defines the immutable card value shared by every part of the
// engine.
package cards

import (
	"fmt"
	"strings"
)

// Card is an immutable playing card. Two cards are equal when color, rank,
// draw penalty and effects all match, so Card values can be compared with ==
// and used as map keys.
type Card struct {
	color   Color
	rank    Rank
	penalty int
	effects Effects
}

// Option customizes a card built with New.
type Option func(*Card)

// WithPenalty overrides the rank's default draw penalty. Negative values
// clamp to zero.
func WithPenalty(n int) Option {
	return func(c *Card) {
		c.penalty = max(0, n)
	}
}

// WithEffects adds effects to the card.
func WithEffects(effects ...Effect) Option {
	return func(c *Card) {
		c.effects = c.effects.With(effects...)
	}
}

// New builds a card. The penalty defaults from the rank (DrawTwo draws 2,
// WildDrawFour draws 4). Effects come only from WithEffects, so a Skip
// built without SkipNext does not skip.
func New(color Color, rank Rank, opts ...Option) Card {
	c := Card{
		color:   color,
		rank:    rank,
		penalty: rank.defaultPenalty(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Color returns the color the card is currently bound to.
func (c Card) Color() Color { return c.color }

// Rank returns the card's rank.
func (c Card) Rank() Rank { return c.rank }

// DrawPenalty returns how many cards this card forces the next player to draw.
func (c Card) DrawPenalty() int { return c.penalty }

// Effects returns the card's effect set.
func (c Card) Effects() Effects { return c.effects }

// HasEffect reports whether the card carries e.
func (c Card) HasEffect(e Effect) bool { return c.effects.Has(e) }

// IsNativeWild reports whether the card was printed without a color. The
// answer does not change when the card is recolored.
func (c Card) IsNativeWild() bool {
	return c.rank == WildCard || c.rank == WildDrawFour || c.HasEffect(ChangeColor)
}

// WithColor returns the card bound to color. The receiver is returned as-is
// when it already has that color. The color is not validated.
func (c Card) WithColor(color Color) Card {
	if c.color == color {
		return c
	}
	c.color = color
	return c
}

func (c Card) String() string {
	var sb strings.Builder
	sb.WriteString(c.color.String())
	sb.WriteByte(' ')
	sb.WriteString(c.rank.Label())
	if c.penalty > 0 && c.penalty != c.rank.defaultPenalty() {
		fmt.Fprintf(&sb, " (+%d)", c.penalty)
	}
	if extra := c.effects &^ c.rank.labelEffects(); extra != 0 {
		fmt.Fprintf(&sb, " [%s]", extra)
	}
	return sb.String()
}
