package player

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/primus-game/primus/internal/game/strategy"
	"go.uber.org/zap"
)

// Kind names a seat type.
type Kind string

const (
	KindHuman Kind = "human"
	// KindRandom is Fortuitus, who plays whatever comes to hand.
	KindRandom Kind = "random"
	// KindAggressive is Implacabilis, who attacks first.
	KindAggressive Kind = "aggressive"
	// KindCheater is Fallax, who reads a victim's hand.
	KindCheater Kind = "cheater"
)

// ColorKind names the strategy a bot uses to bind wild cards.
type ColorKind string

const (
	ColorRandom       ColorKind = "random"
	ColorMostFrequent ColorKind = "most_frequent"
)

var (
	// ErrUnknownKind is returned for a seat kind the factory cannot build.
	ErrUnknownKind = errors.New("unknown player kind")
	// ErrUnknownColorKind is returned for an unknown color strategy name.
	ErrUnknownColorKind = errors.New("unknown color strategy")
	// ErrNoVictim is returned when a cheater is created without a victim.
	ErrNoVictim = errors.New("cheater needs a victim")
)

// Kinds lists every seat kind.
func Kinds() []Kind {
	return []Kind{KindHuman, KindRandom, KindAggressive, KindCheater}
}

// ParseKind resolves a kind name, ignoring case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// ParseColorKind resolves a color strategy name, ignoring case. An empty
// name means ColorRandom.
func ParseColorKind(s string) (ColorKind, error) {
	switch k := ColorKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return ColorRandom, nil
	case ColorRandom, ColorMostFrequent:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownColorKind, s)
	}
}

// CreateOption tunes a bot built by the factory.
type CreateOption func(*createOptions)

type createOptions struct {
	color ColorKind
}

// WithColorKind selects how the bot binds wild cards. Humans ignore it.
func WithColorKind(kind ColorKind) CreateOption {
	return func(o *createOptions) { o.color = kind }
}

// Factory builds participants. Bots created by the same factory share its
// random source.
type Factory struct {
	rng    *rand.Rand
	logger *zap.Logger
}

// NewFactory creates a factory. A nil rng uses the global source.
func NewFactory(rng *rand.Rand, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{rng: rng, logger: logger}
}

// Create builds a participant of the given kind. victim is only used by
// cheaters and must be non-nil for them.
func (f *Factory) Create(kind Kind, id int, name string, victim Player, opts ...CreateOption) (Player, error) {
	switch kind {
	case KindHuman:
		return NewHuman(id, name, f.logger), nil
	case KindRandom, KindAggressive, KindCheater:
	default:
		return nil, fmt.Errorf("seat %d: %w: %q", id, ErrUnknownKind, kind)
	}

	o := createOptions{color: ColorRandom}
	for _, opt := range opts {
		opt(&o)
	}
	color, err := f.colorStrategy(o.color)
	if err != nil {
		return nil, fmt.Errorf("seat %d: %w", id, err)
	}

	switch kind {
	case KindRandom:
		return f.Fortuitus(id, name, color), nil
	case KindAggressive:
		return f.Implacabilis(id, name, color), nil
	default:
		if victim == nil {
			return nil, fmt.Errorf("seat %d: %w", id, ErrNoVictim)
		}
		return f.Fallax(id, name, victim, color), nil
	}
}

func (f *Factory) colorStrategy(kind ColorKind) (strategy.ColorStrategy, error) {
	switch kind {
	case ColorRandom, "":
		return strategy.NewRandomColor(f.rng), nil
	case ColorMostFrequent:
		return strategy.NewMostFrequentColor(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownColorKind, kind)
	}
}

// Fortuitus creates a bot that plays random cards. A nil color strategy
// picks wild colors at random.
func (f *Factory) Fortuitus(id int, name string, color strategy.ColorStrategy) *Bot {
	return NewBot(id, name, strategy.NewRandom(f.rng), f.orRandom(color), f.logger)
}

// Implacabilis creates a bot that plays its strongest attack first.
func (f *Factory) Implacabilis(id int, name string, color strategy.ColorStrategy) *Bot {
	return NewBot(id, name, strategy.NewAggressive(), f.orRandom(color), f.logger)
}

// Fallax creates a bot that cheats by watching victim's hand.
func (f *Factory) Fallax(id int, name string, victim Player, color strategy.ColorStrategy) *Bot {
	return NewBot(id, name, strategy.NewCheater(Watch(victim)), f.orRandom(color), f.logger)
}

func (f *Factory) orRandom(color strategy.ColorStrategy) strategy.ColorStrategy {
	if color == nil {
		return strategy.NewRandomColor(f.rng)
	}
	return color
}
