package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/internal/view"
)

const (
	actionMove = "move"
	actionJump = "jump"
	actionShow = "show"
	actionQuit = "quit"
	actionHelp = "help"
)

var errQuit = errors.New("quit requested")

type gameStore interface {
	Dispatch(action tictactoe.Action) (bool, error)
	State() tictactoe.State
	Subscribe(listener func()) func()
}

// Session renders the game as text and turns typed commands into store intents.
type Session struct {
	logger *slog.Logger
	store  gameStore
	labels view.Labels
	out    io.Writer

	handlers map[string]func(ctx context.Context, args []string) error
}

func New(logger *slog.Logger, store gameStore, labels view.Labels, out io.Writer) *Session {
	session := &Session{
		logger: logger.With("component", "terminal"),
		store:  store,
		labels: labels,
		out:    out,

		handlers: make(map[string]func(context.Context, []string) error),
	}

	session.handlers[actionMove] = session.handleMove
	session.handlers[actionJump] = session.handleJump
	session.handlers[actionShow] = session.handleShow
	session.handlers[actionHelp] = session.handleHelp
	session.handlers[actionQuit] = func(context.Context, []string) error { return errQuit }
	session.handlers["exit"] = session.handlers[actionQuit]

	return session
}

// Run - reads commands until EOF, quit or context cancellation.
func (that *Session) Run(ctx context.Context, in io.Reader) error {
	log := that.logger.With("method", "Run")

	// stops the reader once the session ends for any reason
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unsubscribe := that.store.Subscribe(that.render)
	defer unsubscribe()

	that.render()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("session canceled")
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				log.Info("input closed")
				return nil
			}

			if err := that.handleLine(ctx, line); err != nil {
				if errors.Is(err, errQuit) {
					log.Info("session finished by user")
					return nil
				}

				log.Debug("command failed", "line", line, "error", err)
				that.printf("error: %v\n", err)
			}
		}
	}
}

// handleLine - routes one input line to its handler. A bare number is a move.
func (that *Session) handleLine(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	if _, err := strconv.Atoi(fields[0]); err == nil {
		return that.handleMove(ctx, fields)
	}

	handler, ok := that.handlers[strings.ToLower(fields[0])]
	if !ok {
		return fmt.Errorf("%w: %q, type %q for the list", apperror.ErrUnknownAction, fields[0], actionHelp)
	}

	return handler(ctx, fields[1:])
}

func (that *Session) handleMove(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: move <cell>", apperror.ErrMalformedInput)
	}

	changed, err := view.Dispatch(that.store, map[string]any{"type": view.IntentSquareClick, "cell": args[0]})
	if err != nil {
		return err
	}

	if !changed {
		that.printf("cell %s can't be played now\n", args[0])
	}

	return nil
}

func (that *Session) handleJump(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: jump <step>", apperror.ErrMalformedInput)
	}

	_, err := view.Dispatch(that.store, map[string]any{"type": view.IntentHistoryJump, "step": args[0]})

	return err
}

func (that *Session) handleShow(_ context.Context, _ []string) error {
	that.render()
	return nil
}

func (that *Session) handleHelp(_ context.Context, _ []string) error {
	that.printf("commands: <cell> | move <cell> | jump <step> | show | quit\n")
	return nil
}

func (that *Session) render() {
	props := view.MapStateToProps(that.store.State(), that.labels)

	if _, err := io.WriteString(that.out, Render(props)); err != nil {
		that.logger.Error("failed to render", "error", err)
	}
}

func (that *Session) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
