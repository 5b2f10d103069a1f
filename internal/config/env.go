package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds settings read from the environment.
type EnvConfig struct {
	Category      string `env:"TYPERPUNK_CATEGORY"`
	Corpus        string `env:"TYPERPUNK_CORPUS"`
	DrillWordList string `env:"TYPERPUNK_DRILL_WORDLIST"`
	LogLevel      string `env:"TYPERPUNK_LOG_LEVEL"`
	LogFile       string `env:"TYPERPUNK_LOG_FILE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides file values with non-empty environment values.
func ApplyEnv(cfg *FileConfig) error {
	e, err := ParseEnv()
	if err != nil {
		return err
	}
	overrideString(&cfg.Practice.Category, e.Category)
	overrideString(&cfg.Practice.Corpus, e.Corpus)
	overrideString(&cfg.Drill.WordList, e.DrillWordList)
	overrideString(&cfg.Log.Level, e.LogLevel)
	overrideString(&cfg.Log.File, e.LogFile)
	return nil
}

func overrideString(target **string, value string) {
	if value == "" {
		return
	}
	v := value
	*target = &v
}
