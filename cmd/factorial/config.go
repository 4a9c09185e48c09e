package main

import (
	"fmt"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds settings of the command.
// Values are read from an optional YAML file and overridden by
// environment variables, then by command-line flags.
type Config struct {
	LogLevel  string `yaml:"log_level" env:"FACTORIAL_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	Precision int    `yaml:"precision" env:"FACTORIAL_PRECISION" env-default:"64" env-description:"32 or 64 bit floats"`
	NoColor   bool   `yaml:"no_color" env:"FACTORIAL_NO_COLOR" env-description:"disable colored output"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("reading config %v: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("reading environment: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := c.level(); err != nil {
		return err
	}
	if c.Precision != 32 && c.Precision != 64 {
		return fmt.Errorf("precision %v: want 32 or 64", c.Precision)
	}
	return nil
}

func (c Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
