package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/primus-game/primus/internal/config"
	"github.com/primus-game/primus/internal/controller"
	"github.com/primus-game/primus/internal/game"
	"github.com/primus-game/primus/internal/game/deck"
	"github.com/primus-game/primus/internal/game/player"
	"github.com/primus-game/primus/internal/logging"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting primus",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received shutdown signal", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	rng := newRand(cfg.Game.Seed)
	g, err := newGame(cfg.Game, rng, logger)
	if err != nil {
		logger.Fatal("failed to set up game", zap.Error(err))
	}

	term := newTerminal(os.Stdout, logger)
	ctrl := controller.New(g,
		controller.WithLogger(logger),
		controller.WithRand(rng),
		controller.WithBotDelay(cfg.Controller.BotDelayMin, cfg.Controller.BotDelayMax),
		controller.WithView(term),
	)
	term.ctrl = ctrl
	go term.readInput(ctx, os.Stdin, cancel)

	if err := ctrl.Run(ctx); err != nil && !controller.IsCancelled(err) {
		logger.Error("game stopped", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("primus stopped")
}

// newRand seeds the session. A zero seed picks one at random.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newGame(cfg config.GameConfig, rng *rand.Rand, logger *zap.Logger) (*game.Game, error) {
	seats := make([]game.SeatConfig, len(cfg.Seats))
	for i, s := range cfg.Seats {
		kind, err := player.ParseKind(s.Kind)
		if err != nil {
			return nil, err
		}
		color, err := player.ParseColorKind(s.Color)
		if err != nil {
			return nil, err
		}
		seats[i] = game.SeatConfig{Name: s.Name, Kind: kind, Victim: s.Victim, Color: color}
	}

	opts := []game.Option{
		game.WithLogger(logger),
		game.WithRand(rng),
		game.WithSeats(seats),
	}
	if cfg.DeckFile != "" {
		spec, err := deck.LoadSpecFile(cfg.DeckFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithSpec(spec))
	} else {
		variant, err := deck.ParseVariant(cfg.Variant)
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithVariant(variant))
	}
	return game.New(opts...)
}
