package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/primus-game/primus/internal/controller"
	"github.com/primus-game/primus/internal/game"
	"github.com/primus-game/primus/internal/game/cards"
	"go.uber.org/zap"
)

var errUsage = errors.New("type a card number, optionally followed by a color for wild cards, or 'd' to draw")

// prompt is what the terminal is waiting for.
type prompt int

const (
	promptNone prompt = iota
	promptMove
	promptRematch
)

// command is one parsed line of human input.
type command struct {
	draw bool
	card cards.Card
}

// parseCommand turns "3", "3 blue" or "d" into a command against hand.
func parseCommand(line string, hand []cards.Card) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{}, errUsage
	}
	if fields[0] == "d" || fields[0] == "draw" {
		return command{draw: true}, nil
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 || n > len(hand) {
		return command{}, errUsage
	}
	card := hand[n-1]
	if !card.IsNativeWild() {
		return command{card: card}, nil
	}
	if len(fields) < 2 {
		return command{}, fmt.Errorf("%s needs a color: red, blue, green or yellow", card)
	}
	color, err := cards.ParseColor(fields[1])
	if err != nil || !color.IsConcrete() {
		return command{}, fmt.Errorf("%q is not a color you can pick", fields[1])
	}
	return command{card: card.WithColor(color)}, nil
}

// terminal renders the match as text and feeds typed moves back to the
// controller.
type terminal struct {
	mu     sync.Mutex
	out    io.Writer
	ctrl   *controller.Controller
	names  map[int]string
	humans map[int]bool
	order  []int
	hand   []cards.Card
	prompt prompt
	logger *zap.Logger
}

func newTerminal(out io.Writer, logger *zap.Logger) *terminal {
	return &terminal{out: out, names: map[int]string{}, humans: map[int]bool{}, logger: logger}
}

func (t *terminal) Setup(seats []game.SeatInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.names)
	clear(t.humans)
	t.order = t.order[:0]
	fmt.Fprintln(t.out, "\n=== New match ===")
	for _, s := range seats {
		t.names[s.ID] = s.Name
		t.humans[s.ID] = s.Human
		t.order = append(t.order, s.ID)
		kind := "bot"
		if s.Human {
			kind = "human"
		}
		fmt.Fprintf(t.out, "  seat %d: %s (%s)\n", s.ID, s.Name, kind)
	}
}

func (t *terminal) Update(st game.State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hand = st.Hand
}

func (t *terminal) RequestMove(st game.State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hand = st.Hand
	t.prompt = promptMove

	fmt.Fprintf(t.out, "\nTop card: %s   (%s)\n", st.TopCard, direction(st.Clockwise))
	for _, id := range t.order {
		if id != st.ViewerID {
			fmt.Fprintf(t.out, "  %s holds %d cards\n", t.names[id], st.CardCounts[id])
		}
	}
	if st.PenaltyActive {
		fmt.Fprintf(t.out, "You are under attack: answer with the same card or type 'd' to draw %d.\n", st.PendingDraw)
	}
	fmt.Fprintln(t.out, "Your hand:")
	for i, c := range st.Hand {
		fmt.Fprintf(t.out, "  %2d) %s\n", i+1, c)
	}
	fmt.Fprint(t.out, "> ")
}

func (t *terminal) InvalidMove(id int, card cards.Card) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.humans[id] {
		fmt.Fprintf(t.out, "%s cannot be played now.\n", card)
	}
}

func (t *terminal) GameOver(winner game.SeatInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prompt = promptRematch
	fmt.Fprintf(t.out, "\n*** Winner: %s ***\nPlay again? [y/n] ", winner.Name)
}

func direction(clockwise bool) string {
	if clockwise {
		return "clockwise"
	}
	return "counter-clockwise"
}

// readInput forwards typed lines until in is closed or ctx ends.
func (t *terminal) readInput(ctx context.Context, in io.Reader, cancel context.CancelFunc) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		t.handleLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.logger.Warn("reading input failed", zap.Error(err))
	}
	// end of input ends the session
	cancel()
}

func (t *terminal) handleLine(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.prompt {
	case promptMove:
		cmd, err := parseCommand(line, t.hand)
		if err != nil {
			fmt.Fprintf(t.out, "%v\n> ", err)
			return
		}
		t.prompt = promptNone
		if cmd.draw {
			t.ctrl.SubmitDraw()
		} else {
			t.ctrl.SubmitCard(cmd.card)
		}
	case promptRematch:
		answer := strings.ToLower(strings.TrimSpace(line))
		t.prompt = promptNone
		t.ctrl.SubmitRematch(answer == "y" || answer == "yes")
	default:
		fmt.Fprintln(t.out, "Wait for your turn.")
	}
}
