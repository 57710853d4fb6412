// Package controller runs the turn loop around a game: it asks bots for
// their moves, waits for human input and reports everything to the views.
package controller

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/primus-game/primus/internal/game"
	"github.com/primus-game/primus/internal/game/cards"
	"github.com/primus-game/primus/internal/game/player"
	"go.uber.org/zap"
)

// View renders the match. Calls come from the goroutine running Run.
type View interface {
	// Setup is called once per match, before the first turn.
	Setup(seats []game.SeatInfo)
	// Update is called whenever the table changed.
	Update(state game.State)
	// RequestMove asks the human player for a card or a draw; the answer
	// arrives through SubmitCard or SubmitDraw.
	RequestMove(state game.State)
	// InvalidMove reports a rejected card.
	InvalidMove(playerID int, card cards.Card)
	// GameOver announces the winner; the answer to the rematch question
	// arrives through SubmitRematch.
	GameOver(winner game.SeatInfo)
}

// mover is a participant that picks its own moves.
type mover interface {
	PlayCard() (cards.Card, bool)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBotDelay makes bots think for a random duration in [lo, hi] so a
// human can follow the table.
func WithBotDelay(lo, hi time.Duration) Option {
	return func(c *Controller) {
		c.delayMin, c.delayMax = lo, hi
	}
}

// WithRand sets the source of bot delays.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithView registers a view.
func WithView(v View) Option {
	return func(c *Controller) { c.views = append(c.views, v) }
}

// move is a human decision. A nil card draws.
type move struct {
	card *cards.Card
}

// Controller drives one game.
type Controller struct {
	game     *game.Game
	views    []View
	moves    chan move
	rematch  chan bool
	delayMin time.Duration
	delayMax time.Duration
	rng      *rand.Rand
	logger   *zap.Logger
}

// New creates a controller for g.
func New(g *game.Game, opts ...Option) *Controller {
	c := &Controller{
		game:    g,
		moves:   make(chan move, 1),
		rematch: make(chan bool, 1),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitCard hands the human's card to the waiting turn. It reports false
// when a move is already pending.
func (c *Controller) SubmitCard(card cards.Card) bool {
	return c.submit(move{card: &card})
}

// SubmitDraw hands a draw (or an accepted penalty) to the waiting turn.
func (c *Controller) SubmitDraw() bool {
	return c.submit(move{})
}

func (c *Controller) submit(m move) bool {
	select {
	case c.moves <- m:
		return true
	default:
		return false
	}
}

// SubmitRematch answers the game over prompt.
func (c *Controller) SubmitRematch(again bool) bool {
	select {
	case c.rematch <- again:
		return true
	default:
		return false
	}
}

// Run plays matches until the human declines a rematch or ctx ends. A
// cancelled context returns ctx.Err().
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := c.game.Init(); err != nil {
			return fmt.Errorf("start match: %w", err)
		}
		c.logger.Info("match started",
			zap.String("match_id", c.game.MatchID()),
			zap.String("variant", string(c.game.Variant())),
		)
		seats := c.game.Setup()
		for _, v := range c.views {
			v.Setup(seats)
		}
		c.broadcast()

		winner, err := c.playMatch(ctx)
		if err != nil {
			return err
		}
		info := c.seatInfo(seats, winner)
		select {
		case <-c.rematch:
		default:
		}
		c.logger.Info("match over", zap.Int("winner", winner), zap.String("name", info.Name))
		for _, v := range c.views {
			v.GameOver(info)
		}

		again, err := c.awaitRematch(ctx)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (c *Controller) seatInfo(seats []game.SeatInfo, id int) game.SeatInfo {
	for _, s := range seats {
		if s.ID == id {
			return s
		}
	}
	return game.SeatInfo{ID: id}
}

func (c *Controller) playMatch(ctx context.Context) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		p := c.game.NextParticipant()
		c.broadcast()

		if err := c.playTurn(ctx, p); err != nil {
			return 0, err
		}
		if id, ok := c.game.Winner(); ok {
			c.broadcast()
			return id, nil
		}
	}
}

// playTurn asks p for moves until one is accepted.
func (c *Controller) playTurn(ctx context.Context, p player.Player) error {
	if p.IsBot() {
		if err := c.sleep(ctx, c.botDelay()); err != nil {
			return err
		}
	}
	for {
		card, err := c.nextMove(ctx, p)
		if err != nil {
			return err
		}
		if card != nil && !player.Holds(p, *card) {
			c.logger.Warn("submitted card is not in hand",
				zap.Int("player_id", p.ID()),
				zap.Stringer("card", *card),
			)
			c.invalid(p.ID(), *card)
			continue
		}

		accepted, err := c.game.ExecuteTurn(card)
		if err != nil {
			return fmt.Errorf("execute turn: %w", err)
		}
		if accepted {
			c.broadcast()
			return nil
		}
		c.invalid(p.ID(), *card)
	}
}

func (c *Controller) nextMove(ctx context.Context, p player.Player) (*cards.Card, error) {
	if bot, ok := p.(mover); ok && p.IsBot() {
		card, ok := bot.PlayCard()
		if !ok {
			return nil, nil
		}
		return &card, nil
	}
	if p.IsBot() {
		return nil, fmt.Errorf("player %d: bot cannot pick moves", p.ID())
	}

	c.drain()
	state, _ := c.game.StateFor(p.ID())
	for _, v := range c.views {
		v.RequestMove(state)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case m := <-c.moves:
		return m.card, nil
	}
}

// drain drops a move submitted while no turn was waiting.
func (c *Controller) drain() {
	select {
	case <-c.moves:
	default:
	}
}

func (c *Controller) awaitRematch(ctx context.Context) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case again := <-c.rematch:
		return again, nil
	}
}

func (c *Controller) botDelay() time.Duration {
	span := c.delayMax - c.delayMin
	if span <= 0 {
		return c.delayMin
	}
	if c.rng == nil {
		return c.delayMin + rand.N(span+1)
	}
	return c.delayMin + time.Duration(c.rng.Int64N(int64(span)+1))
}

func (c *Controller) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Controller) broadcast() {
	state := c.game.PublicState()
	for _, v := range c.views {
		v.Update(state)
	}
}

func (c *Controller) invalid(id int, card cards.Card) {
	for _, v := range c.views {
		v.InvalidMove(id, card)
	}
}

// IsCancelled reports whether err ended Run through its context.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
