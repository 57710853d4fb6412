// Package deck holds the draw pile, the discard pile and the deck
// specification loader.
package deck

import (
	"errors"
	"math/rand/v2"

	"github.com/primus-game/primus/internal/game/cards"
	"go.uber.org/zap"
)

var (
	// ErrEmptySpec is returned when a specification expands to no cards.
	ErrEmptySpec = errors.New("deck spec produced no cards")
	// ErrDeckEmpty is returned when drawing from an empty deck.
	ErrDeckEmpty = errors.New("deck is empty")
)

// Shuffler reorders cards in place.
type Shuffler func([]cards.Card)

// Option configures a Deck.
type Option func(*Deck)

// WithRand shuffles with the given source.
func WithRand(rng *rand.Rand) Option {
	return func(d *Deck) {
		if rng != nil {
			d.shuffler = func(cs []cards.Card) {
				rng.Shuffle(len(cs), func(i, j int) { cs[i], cs[j] = cs[j], cs[i] })
			}
		}
	}
}

// WithShuffler replaces the shuffle algorithm. Tests use it to keep the
// spec order.
func WithShuffler(s Shuffler) Option {
	return func(d *Deck) {
		if s != nil {
			d.shuffler = s
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Deck) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Deck is the draw pile. Cards are drawn from the tail of the slice.
type Deck struct {
	cards    []cards.Card
	shuffler Shuffler
	logger   *zap.Logger
}

// New builds a shuffled deck from spec.
func New(spec Spec, opts ...Option) (*Deck, error) {
	d := &Deck{
		shuffler: func(cs []cards.Card) {
			rand.Shuffle(len(cs), func(i, j int) { cs[i], cs[j] = cs[j], cs[i] })
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.Reload(spec); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload discards the current content and rebuilds the deck from spec.
func (d *Deck) Reload(spec Spec) error {
	loaded := spec.Cards()
	if len(loaded) == 0 {
		return ErrEmptySpec
	}
	d.cards = loaded
	d.Shuffle()
	d.logger.Debug("deck loaded", zap.Int("cards", len(d.cards)))
	return nil
}

// Shuffle reorders the remaining cards.
func (d *Deck) Shuffle() {
	d.shuffler(d.cards)
}

// Len returns the number of cards left.
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty reports whether no cards are left.
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (cards.Card, error) {
	if len(d.cards) == 0 {
		return cards.Card{}, ErrDeckEmpty
	}
	idx := len(d.cards) - 1
	card := d.cards[idx]
	d.cards = d.cards[:idx]
	return card, nil
}

// DrawStartCard removes the first card, in deck order, that can open the
// discard pile without triggering anything. When no such card exists the
// first card is used anyway.
func (d *Deck) DrawStartCard() (cards.Card, error) {
	if len(d.cards) == 0 {
		return cards.Card{}, ErrDeckEmpty
	}
	for i, c := range d.cards {
		if isSafeStart(c) {
			return d.removeAt(i), nil
		}
	}
	card := d.removeAt(0)
	d.logger.Warn("no safe start card in deck, using first card",
		zap.Stringer("card", card),
	)
	return card, nil
}

// RefillFrom moves everything below the discard pile's top card back into
// the deck and reshuffles. It returns the number of recycled cards.
func (d *Deck) RefillFrom(pile *DiscardPile) int {
	recycled := pile.ExtractAllExceptTop()
	if len(recycled) == 0 {
		return 0
	}
	d.cards = append(d.cards, recycled...)
	d.Shuffle()
	d.logger.Debug("deck refilled from discard pile",
		zap.Int("recycled", len(recycled)),
		zap.Int("cards", len(d.cards)),
	)
	return len(recycled)
}

func (d *Deck) removeAt(i int) cards.Card {
	card := d.cards[i]
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return card
}

func isSafeStart(c cards.Card) bool {
	return !c.IsNativeWild() &&
		c.DrawPenalty() == 0 &&
		!c.HasEffect(cards.SkipNext) &&
		!c.HasEffect(cards.ReverseTurn)
}
