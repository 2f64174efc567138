package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are CLI defaults read from the environment. Flags override them.
type Settings struct {
	EndYear   int    `env:"POPPROBE_END_YEAR" envDefault:"2100"`
	Format    string `env:"POPPROBE_FORMAT" envDefault:"console"`
	Lang      string `env:"POPPROBE_LANG" envDefault:"en"`
	LogLevel  string `env:"POPPROBE_LOG_LEVEL" envDefault:"warn"`
	DBPath    string `env:"POPPROBE_DB_PATH"`
	Semantics string `env:"POPPROBE_SEMANTICS" envDefault:"parity"`
}

// LoadSettings loads Settings from environment variables.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
