package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/primus-game/primus/internal/game"
	"github.com/primus-game/primus/internal/game/cards"
	"github.com/primus-game/primus/internal/game/deck"
	"github.com/primus-game/primus/internal/game/player"
	"github.com/primus-game/primus/internal/game/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	redFive  = cards.New(cards.Red, cards.Five)
	redTwo   = cards.New(cards.Red, cards.Two)
	blueNine = cards.New(cards.Blue, cards.Nine)
)

// table stacks a deck so that seat 1 holds seven Red Twos, seat 2 holds
// seven Green Ones and a Red Five opens the pile. Seat 1 wins in seven
// plays while seat 2 keeps drawing.
func table() deck.Spec {
	return deck.Spec{
		{Color: cards.Red, Rank: cards.Five, Quantity: 1},
		{Color: cards.Blue, Rank: cards.Nine, Quantity: 20},
		{Color: cards.Green, Rank: cards.One, Quantity: 7},
		{Color: cards.Red, Rank: cards.Two, Quantity: 7},
	}
}

func newGame(t *testing.T, roster func() ([]player.Player, error)) *game.Game {
	t.Helper()
	g, err := game.New(
		game.WithLogger(zaptest.NewLogger(t)),
		game.WithShuffler(func([]cards.Card) {}),
		game.WithSpec(table()),
		game.WithRoster(roster),
	)
	require.NoError(t, err)
	return g
}

func bot(t *testing.T, id int) *player.Bot {
	return player.NewBot(id, "bot", strategy.NewAggressive(), strategy.NewMostFrequentColor(), zaptest.NewLogger(t))
}

// recorder is a View that scripts the human seat.
type recorder struct {
	mu       sync.Mutex
	ctrl     *Controller
	setups   int
	updates  int
	invalid  []cards.Card
	winners  []game.SeatInfo
	script   []*cards.Card
	requests int
	rematch  []bool
	onMove   func()
}

func (r *recorder) Setup([]game.SeatInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setups++
}

func (r *recorder) Update(game.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
}

func (r *recorder) RequestMove(st game.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests++
	if r.onMove != nil {
		r.onMove()
		return
	}
	if len(r.script) == 0 {
		// default: play the first card of the hand
		r.ctrl.SubmitCard(st.Hand[0])
		return
	}
	next := r.script[0]
	r.script = r.script[1:]
	if next == nil {
		r.ctrl.SubmitDraw()
	} else {
		r.ctrl.SubmitCard(*next)
	}
}

func (r *recorder) InvalidMove(_ int, card cards.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalid = append(r.invalid, card)
}

func (r *recorder) GameOver(winner game.SeatInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.winners = append(r.winners, winner)
	again := false
	if len(r.rematch) > 0 {
		again, r.rematch = r.rematch[0], r.rematch[1:]
	}
	r.ctrl.SubmitRematch(again)
}

func TestRunBotsOnly(t *testing.T) {
	g := newGame(t, func() ([]player.Player, error) {
		return []player.Player{bot(t, 1), bot(t, 2)}, nil
	})
	rec := &recorder{}
	c := New(g, WithLogger(zaptest.NewLogger(t)), WithView(rec))
	rec.ctrl = c

	require.NoError(t, c.Run(context.Background()))
	require.Len(t, rec.winners, 1)
	assert.Equal(t, 1, rec.winners[0].ID)
	assert.Equal(t, 1, rec.setups)
	assert.Zero(t, rec.requests, "bots never ask the view")
	assert.NotEmpty(t, rec.invalid, "seat 2 tries its green cards before drawing")
	assert.Equal(t, game.StatusFinished, g.Status())
}

func TestRunHumanMoves(t *testing.T) {
	g := newGame(t, func() ([]player.Player, error) {
		return []player.Player{player.NewHuman(1, "You", zaptest.NewLogger(t)), bot(t, 2)}, nil
	})
	notHeld := blueNine
	rec := &recorder{script: []*cards.Card{&notHeld, &redTwo}}
	c := New(g, WithLogger(zaptest.NewLogger(t)), WithView(rec))
	rec.ctrl = c

	require.NoError(t, c.Run(context.Background()))

	require.Len(t, rec.winners, 1)
	assert.Equal(t, game.SeatInfo{ID: 1, Name: "You", Human: true}, rec.winners[0])
	assert.Equal(t, blueNine, rec.invalid[0], "a card outside the hand is refused by the controller")
	assert.Equal(t, 8, rec.requests, "one retry plus seven plays")
}

func TestRunRematch(t *testing.T) {
	g := newGame(t, func() ([]player.Player, error) {
		return []player.Player{bot(t, 1), bot(t, 2)}, nil
	})
	rec := &recorder{rematch: []bool{true, false}}
	c := New(g, WithView(rec))
	rec.ctrl = c

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, 2, rec.setups)
	assert.Len(t, rec.winners, 2)
}

func TestRunCancelledWhileWaitingForHuman(t *testing.T) {
	g := newGame(t, func() ([]player.Player, error) {
		return []player.Player{player.NewHuman(1, "You", nil), bot(t, 2)}, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{onMove: cancel}
	c := New(g, WithView(rec))
	rec.ctrl = c

	err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, IsCancelled(err))
}

func TestRunCancelledDuringBotDelay(t *testing.T) {
	g := newGame(t, func() ([]player.Player, error) {
		return []player.Player{bot(t, 1), bot(t, 2)}, nil
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := New(g, WithBotDelay(time.Hour, time.Hour))
	err := c.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubmitIsSingleSlot(t *testing.T) {
	c := New(nil)
	assert.True(t, c.SubmitCard(redFive))
	assert.False(t, c.SubmitDraw(), "a pending move blocks the slot")
	c.drain()
	assert.True(t, c.SubmitDraw())

	assert.True(t, c.SubmitRematch(true))
	assert.False(t, c.SubmitRematch(false))
}

func TestBotDelayRange(t *testing.T) {
	c := New(nil, WithBotDelay(10*time.Millisecond, 20*time.Millisecond))
	for range 100 {
		d := c.botDelay()
		assert.GreaterOrEqual(t, d, 10*time.Millisecond)
		assert.LessOrEqual(t, d, 20*time.Millisecond)
	}
	assert.Equal(t, 5*time.Millisecond, New(nil, WithBotDelay(5*time.Millisecond, 0)).botDelay())
}
