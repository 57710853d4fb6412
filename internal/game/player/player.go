// Package player implements the participants seated at a Primus table.
package player

import (
	"fmt"
	"slices"

	"github.com/primus-game/primus/internal/game/cards"
	"github.com/primus-game/primus/internal/game/strategy"
	"go.uber.org/zap"
)

// Player is a seated participant. The game owns the turn order; a player
// only owns its hand.
type Player interface {
	ID() int
	Name() string
	IsBot() bool
	// Hand returns a copy of the cards currently held.
	Hand() []cards.Card
	CardCount() int
	AddCards(cs ...cards.Card)
	// NotifyMoveResult tells the player whether card was accepted. An
	// accepted card leaves the hand; a card that is not held panics.
	NotifyMoveResult(card cards.Card, accepted bool)
}

// Matches reports whether held, a card in a hand, is the card played.
// Native wild cards are held unbound and get a color only when played, so
// they match whatever color they were bound to.
func Matches(held, played cards.Card) bool {
	if held == played {
		return true
	}
	return played.IsNativeWild() && held.WithColor(played.Color()) == played
}

// Holds reports whether p holds card, accounting for wild binding.
func Holds(p Player, card cards.Card) bool {
	return indexOf(p.Hand(), card) >= 0
}

func indexOf(hand []cards.Card, played cards.Card) int {
	if i := slices.Index(hand, played); i >= 0 {
		return i
	}
	return slices.IndexFunc(hand, func(held cards.Card) bool {
		return Matches(held, played)
	})
}

// hand is the card storage shared by humans and bots.
type hand struct {
	cards []cards.Card
}

func (h *hand) snapshot() []cards.Card {
	return slices.Clone(h.cards)
}

func (h *hand) add(cs []cards.Card) {
	h.cards = append(h.cards, cs...)
}

// lookup returns the held form of a played card.
func (h *hand) lookup(played cards.Card) (cards.Card, bool) {
	i := indexOf(h.cards, played)
	if i < 0 {
		return cards.Card{}, false
	}
	return h.cards[i], true
}

// remove drops the first occurrence of card and reports whether it was held.
func (h *hand) remove(card cards.Card) bool {
	i := indexOf(h.cards, card)
	if i < 0 {
		return false
	}
	h.cards = slices.Delete(h.cards, i, i+1)
	return true
}

// Human is a participant whose moves come from outside the engine.
type Human struct {
	id     int
	name   string
	hand   hand
	logger *zap.Logger
}

// NewHuman creates a human participant.
func NewHuman(id int, name string, logger *zap.Logger) *Human {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.Int("player_id", id))
	logger.Debug("human player created", zap.String("name", name))
	return &Human{id: id, name: name, logger: logger}
}

func (h *Human) ID() int            { return h.id }
func (h *Human) Name() string       { return h.name }
func (h *Human) IsBot() bool        { return false }
func (h *Human) Hand() []cards.Card { return h.hand.snapshot() }
func (h *Human) CardCount() int     { return len(h.hand.cards) }
func (h *Human) String() string     { return fmt.Sprintf("Human{id=%d, name=%s}", h.id, h.name) }

// AddCards implements Player.
func (h *Human) AddCards(cs ...cards.Card) {
	h.logger.Debug("cards received", zap.Int("count", len(cs)))
	h.hand.add(cs)
}

// NotifyMoveResult implements Player.
func (h *Human) NotifyMoveResult(card cards.Card, accepted bool) {
	if !accepted {
		h.logger.Warn("move rejected", zap.Stringer("card", card))
		return
	}
	if !h.hand.remove(card) {
		h.logger.Error("accepted card is not in hand",
			zap.Stringer("card", card),
			zap.Stringers("hand", h.hand.cards))
		panic(fmt.Sprintf("player %d: accepted card %s is not in hand", h.id, card))
	}
	h.logger.Info("card played", zap.Stringer("card", card))
}

// Bot is a participant that decides its own moves through strategies.
type Bot struct {
	id        int
	name      string
	hand      hand
	rejected  map[cards.Card]struct{}
	cardPick  strategy.CardStrategy
	colorPick strategy.ColorStrategy
	logger    *zap.Logger
}

// NewBot creates a bot. Both strategies are required.
func NewBot(id int, name string, cs strategy.CardStrategy, color strategy.ColorStrategy, logger *zap.Logger) *Bot {
	if cs == nil || color == nil {
		panic("player: bot needs a card and a color strategy")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		id:        id,
		name:      name,
		rejected:  make(map[cards.Card]struct{}),
		cardPick:  cs,
		colorPick: color,
		logger:    logger.With(zap.Int("player_id", id)),
	}
}

func (b *Bot) ID() int            { return b.id }
func (b *Bot) Name() string       { return b.name }
func (b *Bot) IsBot() bool        { return true }
func (b *Bot) Hand() []cards.Card { return b.hand.snapshot() }
func (b *Bot) CardCount() int     { return len(b.hand.cards) }

func (b *Bot) String() string {
	return fmt.Sprintf("Bot{id=%d, name=%s, cards=%v, colors=%v}", b.id, b.name, b.cardPick, b.colorPick)
}

// AddCards implements Player. A new card may make a rejected one worth
// retrying, so the rejection memory is cleared.
func (b *Bot) AddCards(cs ...cards.Card) {
	b.hand.add(cs)
	clear(b.rejected)
}

// PlayCard picks the next card to try. The second result is false when the
// bot wants to draw (or accept a pending penalty) instead. Native wild cards
// come back bound to a concrete color.
func (b *Bot) PlayCard() (cards.Card, bool) {
	card, ok := b.cardPick.ChooseCard(b.possibleMoves())
	if !ok {
		return cards.Card{}, false
	}
	if card.IsNativeWild() {
		card = card.WithColor(b.colorPick.ChooseColor(b.hand.cards))
	}
	return card, true
}

func (b *Bot) possibleMoves() []cards.Card {
	moves := make([]cards.Card, 0, len(b.hand.cards))
	for _, c := range b.hand.cards {
		if _, skip := b.rejected[c]; !skip {
			moves = append(moves, c)
		}
	}
	return moves
}

// NotifyMoveResult implements Player.
func (b *Bot) NotifyMoveResult(card cards.Card, accepted bool) {
	if !accepted {
		if held, ok := b.hand.lookup(card); ok {
			b.rejected[held] = struct{}{}
		}
		return
	}
	if !b.hand.remove(card) {
		panic(fmt.Sprintf("player %d: accepted card %s is not in hand", b.id, card))
	}
	clear(b.rejected)
	b.logger.Debug("card played", zap.Stringer("card", card))
}

// opponent is a read-only window on a live player.
type opponent struct {
	p Player
}

// Watch exposes p to strategies without letting them change its hand.
func Watch(p Player) strategy.OpponentView {
	if p == nil {
		return nil
	}
	return opponent{p: p}
}

func (o opponent) ID() int            { return o.p.ID() }
func (o opponent) Hand() []cards.Card { return o.p.Hand() }
func (o opponent) CardCount() int     { return o.p.CardCount() }
