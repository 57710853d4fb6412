// Package game ties the deck, the rules and the seated players into a
// Primus match.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/primus-game/primus/internal/game/cards"
	"github.com/primus-game/primus/internal/game/deck"
	"github.com/primus-game/primus/internal/game/player"
	"github.com/primus-game/primus/internal/game/rules"
	"go.uber.org/zap"
)

// HandSize is the number of cards dealt to every player.
const HandSize = 7

var (
	// ErrNotInitialized is the panic value of operations used before Init.
	ErrNotInitialized = errors.New("game is not initialized")
	// ErrDeckExhausted is returned when neither the deck nor the discard
	// pile can supply a card. The match cannot continue.
	ErrDeckExhausted = errors.New("no cards left to draw")
	// ErrGameOver is returned by ExecuteTurn once a winner was found.
	ErrGameOver = errors.New("game is over")
	// ErrNoSeats is returned when a match is set up without players.
	ErrNoSeats = errors.New("no seats configured")
)

// Option configures a Game.
type Option func(*Game)

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.base = logger
		}
	}
}

// WithRand makes shuffles, random variants and random bots deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithShuffler replaces the deck shuffle.
func WithShuffler(s deck.Shuffler) Option {
	return func(g *Game) { g.shuffler = s }
}

// WithVariant selects the bundled deck. VariantRandom picks a new one for
// every match.
func WithVariant(v deck.Variant) Option {
	return func(g *Game) { g.configured = v }
}

// WithSpec plays with a custom deck instead of a bundled variant.
func WithSpec(spec deck.Spec) Option {
	return func(g *Game) { g.spec = spec }
}

// WithSeats sets the table built at every Init.
func WithSeats(seats []SeatConfig) Option {
	return func(g *Game) { g.seats = append([]SeatConfig(nil), seats...) }
}

// WithRoster replaces seat construction entirely. It is called at every
// Init and must return fresh players with empty hands.
func WithRoster(roster func() ([]player.Player, error)) Option {
	return func(g *Game) { g.roster = roster }
}

// Game is a single table. It is not safe for concurrent use; one turn loop
// drives it.
type Game struct {
	base       *zap.Logger
	logger     *zap.Logger
	rng        *rand.Rand
	shuffler   deck.Shuffler
	configured deck.Variant
	spec       deck.Spec
	seats      []SeatConfig
	roster     func() ([]player.Player, error)

	matchID    uuid.UUID
	status     Status
	variant    deck.Variant
	deck       *deck.Deck
	pile       *deck.DiscardPile
	scheduler  *rules.Scheduler
	sanctioner *rules.Sanctioner
	players    []player.Player
	byID       map[int]player.Player
}

// New creates a game. Nothing is dealt until Init.
func New(opts ...Option) (*Game, error) {
	g := &Game{
		base:       zap.NewNop(),
		configured: deck.VariantStandard,
		seats:      DefaultSeats(),
		sanctioner: rules.NewSanctioner(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.base
	if g.spec == nil && g.configured != deck.VariantRandom {
		if _, err := deck.VariantSpec(g.configured); err != nil {
			return nil, err
		}
	}
	if g.roster == nil && len(g.seats) == 0 {
		return nil, ErrNoSeats
	}
	return g, nil
}

// MatchID identifies the current match. It changes at every Init.
func (g *Game) MatchID() string {
	return g.matchID.String()
}

// Status reports the lifecycle stage.
func (g *Game) Status() Status {
	return g.status
}

// Variant is the deck variant of the current match.
func (g *Game) Variant() deck.Variant {
	return g.variant
}

// Init starts a new match: fresh deck, empty discard pile, new players
// with seven cards each and a safe start card on the pile.
func (g *Game) Init() error {
	g.matchID = uuid.New()
	g.logger = g.base.With(zap.String("match_id", g.matchID.String()))
	logger := g.logger
	logger.Info("initializing game")

	g.status = StatusUninitialized
	g.sanctioner.Reset()

	spec, err := g.selectDeck()
	if err != nil {
		return err
	}
	d, err := deck.New(spec, g.deckOptions(logger)...)
	if err != nil {
		return fmt.Errorf("build deck: %w", err)
	}
	g.deck = d
	g.pile = deck.NewDiscardPile()

	players, err := g.buildRoster()
	if err != nil {
		return err
	}
	ids := make([]int, len(players))
	byID := make(map[int]player.Player, len(players))
	for i, p := range players {
		ids[i] = p.ID()
		byID[p.ID()] = p
	}
	scheduler, err := rules.NewScheduler(ids, logger)
	if err != nil {
		return fmt.Errorf("seat players: %w", err)
	}
	g.players, g.byID, g.scheduler = players, byID, scheduler
	logger.Info("players seated", zap.Ints("seating", ids))

	for _, p := range g.players {
		dealt := make([]cards.Card, 0, HandSize)
		for range HandSize {
			c, err := g.drawCard()
			if err != nil {
				return fmt.Errorf("deal to player %d: %w", p.ID(), err)
			}
			dealt = append(dealt, c)
		}
		p.AddCards(dealt...)
	}

	start, err := g.deck.DrawStartCard()
	if err != nil {
		return fmt.Errorf("draw start card: %w", ErrDeckExhausted)
	}
	g.pile.Add(start)

	g.status = StatusInPlay
	logger.Info("game initialized",
		zap.String("variant", string(g.variant)),
		zap.Stringer("start_card", start),
		zap.Int("deck_size", g.deck.Len()),
	)
	return nil
}

func (g *Game) selectDeck() (deck.Spec, error) {
	if g.spec != nil {
		g.variant = ""
		return g.spec, nil
	}
	g.variant = g.configured
	if g.variant == deck.VariantRandom {
		g.variant = deck.RandomVariant(g.rng)
	}
	spec, err := deck.VariantSpec(g.variant)
	if err != nil {
		return nil, err
	}
	g.logger.Info("selected deck variant",
		zap.String("variant", string(g.variant)),
		zap.String("description", g.variant.Description()),
	)
	return spec, nil
}

func (g *Game) deckOptions(logger *zap.Logger) []deck.Option {
	opts := []deck.Option{deck.WithLogger(logger)}
	if g.rng != nil {
		opts = append(opts, deck.WithRand(g.rng))
	}
	if g.shuffler != nil {
		opts = append(opts, deck.WithShuffler(g.shuffler))
	}
	return opts
}

func (g *Game) buildRoster() ([]player.Player, error) {
	if g.roster != nil {
		players, err := g.roster()
		if err != nil {
			return nil, fmt.Errorf("build roster: %w", err)
		}
		if len(players) == 0 {
			return nil, ErrNoSeats
		}
		return players, nil
	}

	factory := player.NewFactory(g.rng, g.logger)
	players := make([]player.Player, len(g.seats))
	// cheaters may watch a later seat, so they are created last
	for pass := range 2 {
		for i, seat := range g.seats {
			isCheater := seat.Kind == player.KindCheater
			if isCheater != (pass == 1) {
				continue
			}
			var victim player.Player
			if isCheater {
				victim = g.victimFor(players, seat, i+1)
			}
			p, err := factory.Create(seat.Kind, i+1, seat.Name, victim, player.WithColorKind(seat.Color))
			if err != nil {
				return nil, fmt.Errorf("build roster: %w", err)
			}
			players[i] = p
		}
	}
	return players, nil
}

func (g *Game) victimFor(players []player.Player, seat SeatConfig, self int) player.Player {
	if seat.Victim > 0 && seat.Victim <= len(players) && seat.Victim != self {
		return players[seat.Victim-1]
	}
	for _, p := range players {
		if p != nil && !p.IsBot() {
			return p
		}
	}
	// an all-bot table: watch the first other seat
	for _, p := range players {
		if p != nil && p.ID() != self {
			return p
		}
	}
	return nil
}

func (g *Game) ensureInitialized() {
	if g.status == StatusUninitialized {
		g.logger.Error("operation on uninitialized game")
		panic(ErrNotInitialized)
	}
}

// CurrentParticipant returns the player whose turn it is.
func (g *Game) CurrentParticipant() player.Player {
	g.ensureInitialized()
	return g.byID[g.scheduler.Current()]
}

// NextParticipant advances the turn and returns the new current player.
// The first call of a match activates the first seat.
func (g *Game) NextParticipant() player.Player {
	g.ensureInitialized()
	id := g.scheduler.Next()
	g.logger.Debug("turn advanced", zap.Int("player_id", id))
	return g.byID[id]
}

// Participant looks a player up by id.
func (g *Game) Participant(id int) (player.Player, bool) {
	p, ok := g.byID[id]
	return p, ok
}

// Setup describes the seats in seating order.
func (g *Game) Setup() []SeatInfo {
	g.ensureInitialized()
	seats := make([]SeatInfo, 0, len(g.players))
	for _, id := range g.scheduler.Seating() {
		p := g.byID[id]
		seats = append(seats, SeatInfo{ID: p.ID(), Name: p.Name(), Human: !p.IsBot()})
	}
	return seats
}

// ExecuteTurn resolves the current player's action. A nil card draws one
// card, or accepts the pending penalty when one is active. The result is
// false when the move breaks the rules; the same player should try again.
// A card the player does not hold is a broken invariant and panics.
//
// A native wild still bound to cards.Wild is rejected like any other illegal
// move, during a penalty too. Callers bind it with WithColor first.
func (g *Game) ExecuteTurn(card *cards.Card) (bool, error) {
	g.ensureInitialized()
	if g.status == StatusFinished {
		return false, ErrGameOver
	}
	active := g.CurrentParticipant()
	logger := g.logger.With(zap.Int("player_id", active.ID()))

	if card != nil && !player.Holds(active, *card) {
		logger.Error("played card is not in hand",
			zap.Stringer("card", *card),
			zap.Stringers("hand", active.Hand()),
		)
		panic(fmt.Sprintf("game: player %d does not hold %s", active.ID(), *card))
	}

	if g.sanctioner.Active() {
		return g.handlePenalty(active, card, logger)
	}

	if card == nil {
		logger.Info("player draws a card")
		if err := g.drawFor(active, 1); err != nil {
			return false, err
		}
		return true, nil
	}

	top := g.topCard()
	if !isBound(*card) || !rules.IsValidCard(top, *card) {
		logger.Warn("invalid move",
			zap.Stringer("card", *card),
			zap.Stringer("top", top),
		)
		active.NotifyMoveResult(*card, false)
		return false, nil
	}
	logger.Info("card played", zap.Stringer("card", *card))
	g.accept(active, *card)
	return true, nil
}

// handlePenalty lets the active player either answer a pending penalty
// with a card of the same rank or take all the cards.
func (g *Game) handlePenalty(active player.Player, card *cards.Card, logger *zap.Logger) (bool, error) {
	if card == nil {
		amount := g.sanctioner.Amount()
		logger.Info("player accepts penalty", zap.Int("cards", amount))
		if err := g.drawFor(active, amount); err != nil {
			return false, err
		}
		g.sanctioner.Reset()
		return true, nil
	}

	if !isBound(*card) || !rules.IsValidDefense(g.topCard(), *card) {
		logger.Warn("invalid defense", zap.Stringer("card", *card))
		active.NotifyMoveResult(*card, false)
		return false, nil
	}
	logger.Info("player defends", zap.Stringer("card", *card))
	g.accept(active, *card)
	return true, nil
}

// accept moves card from the player's hand to the pile and applies its
// effects.
func (g *Game) accept(p player.Player, card cards.Card) {
	p.NotifyMoveResult(card, true)
	g.pile.Add(card)

	if card.HasEffect(cards.SkipNext) {
		g.logger.Debug("skipping next player", zap.Stringer("card", card))
		g.scheduler.Skip()
	}
	if card.HasEffect(cards.ReverseTurn) {
		g.logger.Debug("reversing turn order", zap.Stringer("card", card))
		g.scheduler.Reverse()
	}
	g.sanctioner.Accumulate(card)
}

// isBound reports whether a played card carries a concrete color. A wild
// card has to be bound before it reaches the pile.
func isBound(c cards.Card) bool {
	return c.Color() != cards.Wild
}

func (g *Game) topCard() cards.Card {
	top, err := g.pile.Peek()
	if err != nil {
		panic(fmt.Sprintf("game: %v", err))
	}
	return top
}

func (g *Game) drawFor(p player.Player, n int) error {
	drawn := make([]cards.Card, 0, n)
	for range n {
		c, err := g.drawCard()
		if err != nil {
			p.AddCards(drawn...)
			g.logger.Error("player cannot draw",
				zap.Int("player_id", p.ID()),
				zap.Error(err),
			)
			return fmt.Errorf("player %d: %w", p.ID(), err)
		}
		drawn = append(drawn, c)
	}
	p.AddCards(drawn...)
	return nil
}

// drawCard takes the top card, recycling the discard pile once when the
// deck runs dry.
func (g *Game) drawCard() (cards.Card, error) {
	if g.deck.IsEmpty() {
		g.logger.Info("deck is empty, refilling from discard pile")
		g.deck.RefillFrom(g.pile)
	}
	c, err := g.deck.Draw()
	if errors.Is(err, deck.ErrDeckEmpty) {
		return cards.Card{}, ErrDeckExhausted
	}
	return c, err
}

// Winner returns the first player, in seating order, with an empty hand.
// Finding one ends the match.
func (g *Game) Winner() (int, bool) {
	g.ensureInitialized()
	for _, p := range g.players {
		if p.CardCount() == 0 {
			if g.status != StatusFinished {
				g.status = StatusFinished
				g.logger.Info("winner found", zap.Int("player_id", p.ID()))
			}
			return p.ID(), true
		}
	}
	return 0, false
}

// PublicState is the state as seen by the first human seat, or by the
// current player when every seat is a bot.
func (g *Game) PublicState() State {
	g.ensureInitialized()
	for _, p := range g.players {
		if !p.IsBot() {
			return g.snapshot(p)
		}
	}
	return g.snapshot(g.CurrentParticipant())
}

// StateFor is the state as seen by the given seat.
func (g *Game) StateFor(id int) (State, bool) {
	g.ensureInitialized()
	p, ok := g.byID[id]
	if !ok {
		return State{}, false
	}
	return g.snapshot(p), true
}
