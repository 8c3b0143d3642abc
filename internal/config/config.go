package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Labels   Labels `yaml:"labels"`
}

// Labels holds the texts the view layer renders for the move list and the status line.
type Labels struct {
	Start      string `yaml:"start" env-default:"Game start"`
	Move       string `yaml:"move" env-default:"Move #"`
	Winner     string `yaml:"winner" env-default:"Winner: "`
	NextPlayer string `yaml:"next-player" env-default:"Next player: "`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}
