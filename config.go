package lox

import "github.com/caarlos0/env/v6"

// Config holds the small set of knobs the runtime reads from the
// environment: the REPL prompt and a debug switch that turns on the
// AST-printer trace of every top-level expression statement.
type Config struct {
	Prompt string `env:"LOX_PROMPT" envDefault:"> "`
	Debug  bool   `env:"LOX_DEBUG" envDefault:"false"`
}

// LoadConfig reads Config from the process environment, falling back to
// its struct-tag defaults for anything unset.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
