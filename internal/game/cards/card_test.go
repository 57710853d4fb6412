package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDerivesPenaltyFromRank(t *testing.T) {
	tests := []struct {
		rank    Rank
		penalty int
		effects Effects
	}{
		{Five, 0, 0},
		{Skip, 0, 0},
		{Reverse, 0, 0},
		{DrawTwo, 2, 0},
		{WildCard, 0, 0},
		{WildDrawFour, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.rank.String(), func(t *testing.T) {
			c := New(Red, tt.rank)
			assert.Equal(t, tt.penalty, c.DrawPenalty())
			assert.Equal(t, tt.effects, c.Effects())
		})
	}
}

func TestNewOptions(t *testing.T) {
	c := New(Green, Seven, WithPenalty(10), WithEffects(ReverseTurn, AlwaysPlayable))

	assert.Equal(t, 10, c.DrawPenalty())
	assert.True(t, c.HasEffect(ReverseTurn))
	assert.True(t, c.HasEffect(AlwaysPlayable))
	assert.False(t, c.HasEffect(SkipNext))

	assert.Equal(t, 0, New(Green, DrawTwo, WithPenalty(-3)).DrawPenalty())
}

func TestIsNativeWild(t *testing.T) {
	assert.True(t, New(Wild, WildCard).IsNativeWild())
	assert.True(t, New(Wild, WildDrawFour).IsNativeWild())
	assert.True(t, New(Red, Three, WithEffects(ChangeColor)).IsNativeWild())
	assert.False(t, New(Wild, Three).IsNativeWild(), "displaying the wild marker is not the same as being wild")
	assert.False(t, New(Blue, DrawTwo).IsNativeWild())
}

func TestWithColor(t *testing.T) {
	t.Run("same color returns the same value", func(t *testing.T) {
		c := New(Blue, Four)
		assert.Equal(t, c, c.WithColor(Blue))
	})

	t.Run("recolor keeps data driven properties", func(t *testing.T) {
		original := New(Wild, WildDrawFour, WithEffects(SkipNext))
		blue := original.WithColor(Blue)

		assert.Equal(t, Blue, blue.Color())
		assert.Equal(t, Wild, original.Color(), "original must not change")
		assert.Equal(t, 4, blue.DrawPenalty())
		assert.True(t, blue.HasEffect(SkipNext))
		assert.True(t, blue.IsNativeWild())
		assert.NotEqual(t, original, blue)
		assert.Equal(t, original, blue.WithColor(Wild))
	})
}

func TestStructuralEquality(t *testing.T) {
	assert.Equal(t, New(Red, Five), New(Red, Five))
	assert.NotEqual(t, New(Red, Five), New(Red, Five, WithPenalty(1)))
	assert.NotEqual(t, New(Red, Five), New(Red, Five, WithEffects(SkipNext)))

	counts := map[Card]int{}
	counts[New(Red, Five)]++
	counts[New(Red, Five)]++
	assert.Equal(t, 2, counts[New(Red, Five)])
}

func TestParse(t *testing.T) {
	c, err := ParseColor(" yellow ")
	require.NoError(t, err)
	assert.Equal(t, Yellow, c)

	c, err = ParseColor("black")
	require.NoError(t, err)
	assert.Equal(t, Wild, c)

	_, err = ParseColor("purple")
	assert.Error(t, err)

	r, err := ParseRank("draw_two")
	require.NoError(t, err)
	assert.Equal(t, DrawTwo, r)

	r, err = ParseRank("7")
	require.NoError(t, err)
	assert.Equal(t, Seven, r)

	_, err = ParseRank("ELEVEN")
	assert.Error(t, err)

	e, err := ParseEffect("skip_next")
	require.NoError(t, err)
	assert.Equal(t, SkipNext, e)

	_, err = ParseEffect("TELEPORT")
	assert.Error(t, err)
}

func TestEffectsString(t *testing.T) {
	assert.Equal(t, "REVERSE_TURN|SKIP_NEXT", EffectSet(SkipNext, ReverseTurn).String())
	assert.Equal(t, "", Effects(0).String())
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "RED +2", New(Red, DrawTwo).String())
	assert.Equal(t, "BLUE +2 (+4)", New(Blue, DrawTwo, WithPenalty(4)).String())
	assert.Equal(t, "GREEN 0 [REVERSE_TURN]", New(Green, Zero, WithEffects(ReverseTurn)).String())
	assert.Equal(t, "RED Skip", New(Red, Skip, WithEffects(SkipNext)).String())
}
