package rules

import "github.com/primus-game/primus/internal/game/cards"

// Sanctioner accumulates pending forced draws.
type Sanctioner struct {
	amount int
}

// NewSanctioner creates an inactive sanctioner.
func NewSanctioner() *Sanctioner {
	return &Sanctioner{}
}

// Active reports whether a penalty is waiting to be resolved.
func (s *Sanctioner) Active() bool {
	return s.amount > 0
}

// Amount returns the number of cards the next non-defending player draws.
func (s *Sanctioner) Amount() int {
	return s.amount
}

// Accumulate adds the card's draw penalty. Cards without one are ignored.
func (s *Sanctioner) Accumulate(card cards.Card) {
	if p := card.DrawPenalty(); p > 0 {
		s.amount += p
	}
}

// Reset clears the pending penalty.
func (s *Sanctioner) Reset() {
	s.amount = 0
}
