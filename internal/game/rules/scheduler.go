// Package rules contains the turn scheduler, the penalty accumulator and the
// move validator.
package rules

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrEmptyRoster is returned when a scheduler is built without seats.
	ErrEmptyRoster = errors.New("scheduler needs at least one player")
	// ErrDuplicateSeat is returned when a player id appears twice.
	ErrDuplicateSeat = errors.New("player seated twice")
)

// notStarted is the index before the first advance.
const notStarted = -1

// Scheduler sequences turns over a fixed seating order.
type Scheduler struct {
	seats     []int
	index     int
	clockwise bool
	logger    *zap.Logger
}

// NewScheduler creates a scheduler over the given seating order. The order is
// copied and never changes.
func NewScheduler(ids []int, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(ids) == 0 {
		logger.Error("failed to initialize scheduler: zero players provided")
		return nil, ErrEmptyRoster
	}
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateSeat, id)
		}
		seen[id] = struct{}{}
	}

	seats := make([]int, len(ids))
	copy(seats, ids)
	logger.Info("scheduler initialized", zap.Ints("seating", seats))

	return &Scheduler{
		seats:     seats,
		index:     notStarted,
		clockwise: true,
		logger:    logger,
	}, nil
}

// Current returns the player whose turn it is. Before the first advance this
// is the first seat.
func (s *Scheduler) Current() int {
	if s.index == notStarted {
		return s.seats[0]
	}
	return s.seats[s.index]
}

// Next advances to the following seat and returns it. The first call only
// activates the first seat.
func (s *Scheduler) Next() int {
	s.move()
	s.logger.Debug("turn passed", zap.Int("player_id", s.seats[s.index]))
	return s.seats[s.index]
}

// Skip burns one seat. It moves the index exactly like Next.
func (s *Scheduler) Skip() {
	s.move()
	s.logger.Debug("turn skipped", zap.Int("player_id", s.seats[s.index]))
}

// Reverse flips the direction of play without moving the index.
func (s *Scheduler) Reverse() {
	s.clockwise = !s.clockwise
	s.logger.Debug("direction reversed", zap.Bool("clockwise", s.clockwise))
}

// Clockwise reports the current direction of play.
func (s *Scheduler) Clockwise() bool {
	return s.clockwise
}

// Seating returns a copy of the seating order.
func (s *Scheduler) Seating() []int {
	out := make([]int, len(s.seats))
	copy(out, s.seats)
	return out
}

func (s *Scheduler) move() {
	if s.index == notStarted {
		s.index = 0
		return
	}
	n := len(s.seats)
	if s.clockwise {
		s.index = (s.index + 1) % n
	} else {
		s.index = (s.index - 1 + n) % n
	}
}
