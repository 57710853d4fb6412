package deck

import (
	"errors"

	"github.com/primus-game/primus/internal/game/cards"
)

// ErrPileEmpty is returned when peeking an empty discard pile.
var ErrPileEmpty = errors.New("discard pile is empty")

// DiscardPile is the stack of played cards. The last element is the top.
type DiscardPile struct {
	cards []cards.Card
}

// NewDiscardPile creates an empty pile.
func NewDiscardPile() *DiscardPile {
	return &DiscardPile{cards: make([]cards.Card, 0, 32)}
}

// Add puts card on top of the pile.
func (p *DiscardPile) Add(card cards.Card) {
	p.cards = append(p.cards, card)
}

// Peek returns the top card.
func (p *DiscardPile) Peek() (cards.Card, error) {
	if len(p.cards) == 0 {
		return cards.Card{}, ErrPileEmpty
	}
	return p.cards[len(p.cards)-1], nil
}

// ExtractAllExceptTop removes and returns every card but the top one, oldest
// first. A pile with at most one card is left untouched.
func (p *DiscardPile) ExtractAllExceptTop() []cards.Card {
	if len(p.cards) <= 1 {
		return nil
	}
	top := len(p.cards) - 1
	batch := make([]cards.Card, top)
	copy(batch, p.cards[:top])
	p.cards = append(p.cards[:0], p.cards[top])
	return batch
}

// IsEmpty reports whether the pile has no cards.
func (p *DiscardPile) IsEmpty() bool {
	return len(p.cards) == 0
}

// Len returns the number of cards on the pile.
func (p *DiscardPile) Len() int {
	return len(p.cards)
}
