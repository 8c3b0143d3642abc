package suite

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/store"
)

const maxWaitDuration = 10 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Store *store.Store
}

// New - returns a context bound to the test and a fresh store.
// Logs are discarded unless TEST_LOG is set.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	var out io.Writer = io.Discard
	if os.Getenv("TEST_LOG") != "" {
		out = os.Stdout
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return ctx, &Suite{
		T:      t,
		Logger: logger,
		Store:  store.New(logger),
	}
}

// PlayMoves - applies the cells in order and fails the test if any move has no effect.
func (that *Suite) PlayMoves(cells ...int) {
	that.Helper()

	for _, cell := range cells {
		changed, err := that.Store.ApplyMove(cell)
		if err != nil {
			that.Fatalf("move into cell %d failed: %v", cell, err)
		}
		if !changed {
			that.Fatalf("move into cell %d had no effect", cell)
		}
	}
}
