package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/tictactoe-history/internal"
	"github.com/rocketscienceinc/tictactoe-history/internal/config"
)

const defaultConfigPath = "config.yml"

func main() {
	conf := config.MustLoad(configPath())

	// stdout belongs to the board
	logger, err := newLogger(os.Stderr, conf.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(2)
	}

	if err = app.RunApp(logger, conf); err != nil {
		logger.Error("game session failed", "error", err)
		os.Exit(1)
	}
}

// configPath - CONFIG_PATH overrides the config.yml of the working directory.
func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return defaultConfigPath
}

func newLogger(out io.Writer, levelName string) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", levelName, err)
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})), nil
}
