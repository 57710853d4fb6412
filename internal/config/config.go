// Package config loads the Primus configuration from a YAML file, PRIMUS_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/primus-game/primus/internal/game/deck"
	"github.com/primus-game/primus/internal/game/player"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PRIMUS_LOGGING_LEVEL.
const EnvPrefix = "PRIMUS"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Game       GameConfig       `mapstructure:"game"`
	Controller ControllerConfig `mapstructure:"controller"`
}

// LoggingConfig selects the log level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig describes the table.
type GameConfig struct {
	Variant string `mapstructure:"variant"`
	// DeckFile, when set, replaces the bundled variant with a custom deck.
	DeckFile string `mapstructure:"deck_file"`
	// Seed makes a session reproducible. Zero means a random seed.
	Seed  uint64       `mapstructure:"seed"`
	Seats []SeatConfig `mapstructure:"seats"`
}

// SeatConfig describes one seat. Victim is the 1-based seat a cheater
// watches; zero means the first human. Color is the wild color strategy of a
// bot: random (default) or most_frequent.
type SeatConfig struct {
	Name   string `mapstructure:"name"`
	Kind   string `mapstructure:"kind"`
	Victim int    `mapstructure:"victim"`
	Color  string `mapstructure:"color"`
}

// ControllerConfig tunes the turn loop.
type ControllerConfig struct {
	BotDelayMin time.Duration `mapstructure:"bot_delay_min"`
	BotDelayMax time.Duration `mapstructure:"bot_delay_max"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.variant", string(deck.VariantRandom))
	v.SetDefault("game.deck_file", "")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.seats", []map[string]any{
		{"name": "You", "kind": string(player.KindHuman)},
		{"name": "Fortuitus", "kind": string(player.KindRandom)},
		{"name": "Implacabilis", "kind": string(player.KindAggressive)},
		{"name": "Fallax", "kind": string(player.KindCheater), "victim": 1},
	})

	v.SetDefault("controller.bot_delay_min", 500*time.Millisecond)
	v.SetDefault("controller.bot_delay_max", 1500*time.Millisecond)
}

// Load reads the configuration at path. An empty path, or a path that does
// not exist, falls back to defaults and environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the game cannot use.
func (c *Config) Validate() error {
	var errs []error

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q", c.Logging.Format))
	}

	if c.Game.DeckFile == "" {
		if _, err := deck.ParseVariant(c.Game.Variant); err != nil {
			errs = append(errs, fmt.Errorf("game.variant: %w", err))
		}
	}
	if len(c.Game.Seats) == 0 {
		errs = append(errs, errors.New("game.seats is empty"))
	}
	for i, seat := range c.Game.Seats {
		if _, err := player.ParseKind(seat.Kind); err != nil {
			errs = append(errs, fmt.Errorf("game.seats[%d]: %w", i, err))
		}
		if _, err := player.ParseColorKind(seat.Color); err != nil {
			errs = append(errs, fmt.Errorf("game.seats[%d].color: %w", i, err))
		}
		if seat.Victim < 0 || seat.Victim > len(c.Game.Seats) || seat.Victim == i+1 {
			errs = append(errs, fmt.Errorf("game.seats[%d].victim %d", i, seat.Victim))
		}
	}

	if c.Controller.BotDelayMin < 0 || c.Controller.BotDelayMax < c.Controller.BotDelayMin {
		errs = append(errs, fmt.Errorf("controller bot delay [%s, %s]",
			c.Controller.BotDelayMin, c.Controller.BotDelayMax))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
