package game

import (
	"github.com/primus-game/primus/internal/game/cards"
	"github.com/primus-game/primus/internal/game/deck"
	"github.com/primus-game/primus/internal/game/player"
)

// Status is the lifecycle stage of a match.
type Status int

const (
	StatusUninitialized Status = iota
	StatusInPlay
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "UNINITIALIZED"
	case StatusInPlay:
		return "IN_PLAY"
	case StatusFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// State is a read-only snapshot of a match as seen from one seat. Hands of
// other seats are reduced to card counts.
type State struct {
	MatchID       string
	TopCard       cards.Card
	ViewerID      int
	Hand          []cards.Card
	CardCounts    map[int]int
	CurrentPlayer int
	PenaltyActive bool
	PendingDraw   int
	Clockwise     bool
	Variant       deck.Variant
	Status        Status
}

// SeatInfo describes a seat for the presentation layer.
type SeatInfo struct {
	ID    int
	Name  string
	Human bool
}

// SeatConfig describes a seat to create at Init. Seats get ids 1..n in
// order. Victim is the id of the seat a cheater watches; zero means the
// first human seat. Color selects how a bot binds wild cards; empty means
// random.
type SeatConfig struct {
	Name   string
	Kind   player.Kind
	Victim int
	Color  player.ColorKind
}

// DefaultSeats is the classic table: one human against the three bots.
func DefaultSeats() []SeatConfig {
	return []SeatConfig{
		{Name: "You", Kind: player.KindHuman},
		{Name: "Fortuitus", Kind: player.KindRandom},
		{Name: "Implacabilis", Kind: player.KindAggressive},
		{Name: "Fallax", Kind: player.KindCheater},
	}
}

func (g *Game) snapshot(viewer player.Player) State {
	top, _ := g.pile.Peek()
	counts := make(map[int]int, len(g.players))
	for _, p := range g.players {
		counts[p.ID()] = p.CardCount()
	}
	st := State{
		MatchID:       g.matchID.String(),
		TopCard:       top,
		CardCounts:    counts,
		CurrentPlayer: g.scheduler.Current(),
		PenaltyActive: g.sanctioner.Active(),
		PendingDraw:   g.sanctioner.Amount(),
		Clockwise:     g.scheduler.Clockwise(),
		Variant:       g.variant,
		Status:        g.status,
	}
	if viewer != nil {
		st.ViewerID = viewer.ID()
		st.Hand = viewer.Hand()
	}
	return st
}
