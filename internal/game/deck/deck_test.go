package deck

import (
	"math/rand/v2"
	"testing"

	"github.com/primus-game/primus/internal/game/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func noShuffle([]cards.Card) {}

func countCards(cs []cards.Card) map[cards.Card]int {
	out := make(map[cards.Card]int, len(cs))
	for _, c := range cs {
		out[c]++
	}
	return out
}

func drainDeck(t *testing.T, d *Deck) []cards.Card {
	t.Helper()
	var drawn []cards.Card
	for !d.IsEmpty() {
		c, err := d.Draw()
		require.NoError(t, err)
		drawn = append(drawn, c)
	}
	return drawn
}

func TestNewRejectsEmptySpec(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptySpec)

	_, err = New(Spec{})
	assert.ErrorIs(t, err, ErrEmptySpec)
}

func TestDeckConservation(t *testing.T) {
	for _, v := range Variants() {
		t.Run(string(v), func(t *testing.T) {
			spec, err := VariantSpec(v)
			require.NoError(t, err)

			d, err := New(spec, WithRand(rand.New(rand.NewPCG(1, 2))), WithLogger(zaptest.NewLogger(t)))
			require.NoError(t, err)
			assert.Equal(t, 108, d.Len())

			drawn := drainDeck(t, d)
			assert.Equal(t, countCards(spec.Cards()), countCards(drawn))

			_, err = d.Draw()
			assert.ErrorIs(t, err, ErrDeckEmpty)
		})
	}
}

func TestDrawTakesFromTail(t *testing.T) {
	spec := Spec{
		{Color: cards.Red, Rank: cards.One, Quantity: 1},
		{Color: cards.Blue, Rank: cards.Two, Quantity: 1},
	}
	d, err := New(spec, WithShuffler(noShuffle))
	require.NoError(t, err)

	c, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, cards.New(cards.Blue, cards.Two), c)
	assert.Equal(t, 1, d.Len())
}

func TestDrawStartCard(t *testing.T) {
	t.Run("skips unsafe cards", func(t *testing.T) {
		spec := Spec{
			{Color: cards.Wild, Rank: cards.WildCard, Quantity: 1},
			{Color: cards.Red, Rank: cards.DrawTwo, Quantity: 1},
			{Color: cards.Red, Rank: cards.Skip, Quantity: 1, Effects: cards.EffectSet(cards.SkipNext)},
			{Color: cards.Red, Rank: cards.Zero, Quantity: 1, Effects: cards.EffectSet(cards.ReverseTurn)},
			{Color: cards.Blue, Rank: cards.Seven, Quantity: 1},
			{Color: cards.Green, Rank: cards.Three, Quantity: 1},
		}
		d, err := New(spec, WithShuffler(noShuffle), WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)

		c, err := d.DrawStartCard()
		require.NoError(t, err)
		assert.Equal(t, cards.New(cards.Blue, cards.Seven), c)
		assert.Equal(t, 5, d.Len())
	})

	t.Run("falls back to first card", func(t *testing.T) {
		spec := Spec{
			{Color: cards.Red, Rank: cards.DrawTwo, Quantity: 1},
			{Color: cards.Wild, Rank: cards.WildDrawFour, Quantity: 1},
		}
		d, err := New(spec, WithShuffler(noShuffle), WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)

		c, err := d.DrawStartCard()
		require.NoError(t, err)
		assert.Equal(t, cards.New(cards.Red, cards.DrawTwo), c)
		assert.Equal(t, 1, d.Len())
	})

	t.Run("penalty override on a numeral is unsafe", func(t *testing.T) {
		three := 3
		spec := Spec{
			{Color: cards.Red, Rank: cards.Four, Quantity: 1, Penalty: &three},
			{Color: cards.Red, Rank: cards.Five, Quantity: 1},
		}
		d, err := New(spec, WithShuffler(noShuffle))
		require.NoError(t, err)

		c, err := d.DrawStartCard()
		require.NoError(t, err)
		assert.Equal(t, cards.Five, c.Rank())
	})
}

func TestRefillFrom(t *testing.T) {
	spec := Spec{{Color: cards.Red, Rank: cards.One, Quantity: 1}}
	d, err := New(spec, WithShuffler(noShuffle), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	drainDeck(t, d)

	pile := NewDiscardPile()
	assert.Equal(t, 0, d.RefillFrom(pile), "empty pile recycles nothing")

	pile.Add(cards.New(cards.Red, cards.Two))
	assert.Equal(t, 0, d.RefillFrom(pile), "single card pile recycles nothing")
	assert.True(t, d.IsEmpty())

	pile.Add(cards.New(cards.Red, cards.Three))
	pile.Add(cards.New(cards.Blue, cards.Three))
	top, err := pile.Peek()
	require.NoError(t, err)

	assert.Equal(t, 2, d.RefillFrom(pile))
	assert.Equal(t, 2, d.Len())

	after, err := pile.Peek()
	require.NoError(t, err)
	assert.Equal(t, top, after, "refill must not disturb the top card")
	assert.Equal(t, 1, pile.Len())

	assert.ElementsMatch(t,
		[]cards.Card{cards.New(cards.Red, cards.Two), cards.New(cards.Red, cards.Three)},
		drainDeck(t, d),
	)
}

func TestReloadReplacesContent(t *testing.T) {
	d, err := New(Spec{{Color: cards.Red, Rank: cards.One, Quantity: 3}}, WithShuffler(noShuffle))
	require.NoError(t, err)
	_, _ = d.Draw()

	require.NoError(t, d.Reload(Spec{{Color: cards.Blue, Rank: cards.Two, Quantity: 5}}))
	assert.Equal(t, 5, d.Len())
	assert.ErrorIs(t, d.Reload(nil), ErrEmptySpec)
}
