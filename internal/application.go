package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/store"
	"github.com/rocketscienceinc/tictactoe-history/internal/view"
	"github.com/rocketscienceinc/tictactoe-history/transport/terminal"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	return run(ctx, logger, conf, os.Stdin, os.Stdout)
}

func run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	gameStore := store.New(logger)
	session := terminal.New(logger, gameStore, labelsFromConfig(conf.Labels), out)

	log = log.With("session", gameStore.ID())

	log.Info("Starting game session")
	if err := session.Run(ctx, in); err != nil {
		return fmt.Errorf("game session error: %w", err)
	}

	log.Info("Game session finished", "moves", len(gameStore.History())-1)

	return nil
}

func labelsFromConfig(labels config.Labels) view.Labels {
	return view.Labels{
		Start:      labels.Start,
		Move:       labels.Move,
		Winner:     labels.Winner,
		NextPlayer: labels.NextPlayer,
	}
}
