package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestScheduler(t *testing.T, ids ...int) *Scheduler {
	t.Helper()
	s, err := NewScheduler(ids, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func TestNewSchedulerValidation(t *testing.T) {
	_, err := NewScheduler(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyRoster)

	_, err = NewScheduler([]int{1, 2, 1}, nil)
	assert.ErrorIs(t, err, ErrDuplicateSeat)
}

func TestSchedulerCurrentBeforeStart(t *testing.T) {
	s := newTestScheduler(t, 1, 2, 3)
	assert.Equal(t, 1, s.Current())
	assert.True(t, s.Clockwise())
}

func TestSchedulerClockwiseRoundTrip(t *testing.T) {
	s := newTestScheduler(t, 1, 2, 3)

	var got []int
	for i := 0; i < 4; i++ {
		got = append(got, s.Next())
	}
	assert.Equal(t, []int{1, 2, 3, 1}, got)
	assert.Equal(t, 1, s.Current())
}

func TestSchedulerReverseBeforeStart(t *testing.T) {
	s := newTestScheduler(t, 1, 2, 3)
	s.Reverse()

	got := []int{s.Next(), s.Next(), s.Next()}
	assert.Equal(t, []int{1, 3, 2}, got)
	assert.False(t, s.Clockwise())
}

func TestSchedulerReverseMidGame(t *testing.T) {
	s := newTestScheduler(t, 1, 2, 3, 4)
	s.Next()
	s.Next()
	s.Next() // player 3

	s.Reverse()
	assert.Equal(t, 3, s.Current(), "reverse must not move the index")
	assert.Equal(t, 2, s.Next())
	assert.Equal(t, 1, s.Next())
	assert.Equal(t, 4, s.Next())
}

func TestSchedulerSkip(t *testing.T) {
	s := newTestScheduler(t, 1, 2, 3)

	assert.Equal(t, 1, s.Next())
	s.Skip()
	assert.Equal(t, 3, s.Next(), "player 2 must be burned")
}

func TestSchedulerSkipBeforeStartActivatesFirstSeat(t *testing.T) {
	s := newTestScheduler(t, 1, 2, 3)
	s.Skip()
	assert.Equal(t, 1, s.Current())
	assert.Equal(t, 2, s.Next())
}

func TestSchedulerTwoPlayerReverse(t *testing.T) {
	s := newTestScheduler(t, 7, 9)
	assert.Equal(t, 7, s.Next())

	s.Reverse()
	assert.Equal(t, 9, s.Next(), "with two seats a reverse still hands the turn over")
	assert.Equal(t, 7, s.Next())
}

func TestSchedulerSeatingIsACopy(t *testing.T) {
	ids := []int{4, 5, 6}
	s := newTestScheduler(t, ids...)
	ids[0] = 99

	seating := s.Seating()
	assert.Equal(t, []int{4, 5, 6}, seating)

	seating[1] = 42
	assert.Equal(t, []int{4, 5, 6}, s.Seating())
}
