package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/natefinch/atomic"
)

// CorpusConfig selects where training words are read from. If DatabasePath
// is set, words are read from the database with Query; otherwise from the
// text file at Path.
type CorpusConfig struct {
	Path         string `json:"corpus_path" env:"BABBLE_CORPUS_PATH"`
	DatabasePath string `json:"database_path" env:"BABBLE_CORPUS_DATABASE"`
	Query        string `json:"query" env:"BABBLE_CORPUS_QUERY"`
}

// GenerationConfig holds the word generation settings.
type GenerationConfig struct {
	Count         int    `json:"count" env:"BABBLE_COUNT"`
	MinLength     int    `json:"min_length" env:"BABBLE_MIN_LENGTH"`
	MaxLength     int    `json:"max_length" env:"BABBLE_MAX_LENGTH"` // exclusive
	Seed          uint64 `json:"seed" env:"BABBLE_SEED"`             // 0 picks a fresh seed per run
	RestartPolicy string `json:"restart_policy" env:"BABBLE_RESTART_POLICY"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel   string           `json:"log_level" env:"BABBLE_LOG_LEVEL"`
	OutputPath string           `json:"output_path" env:"BABBLE_OUTPUT_PATH"` // empty writes to stdout
	Corpus     CorpusConfig     `json:"corpus_config"`
	Generation GenerationConfig `json:"generation_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Corpus: CorpusConfig{
			Path:  "./data/names.txt",
			Query: "SELECT word FROM words;",
		},
		Generation: GenerationConfig{
			Count:         100,
			MinLength:     6,
			MaxLength:     10,
			RestartPolicy: "splice",
		},
	}
}

// LoadConfig reads the configuration from a JSON file at the given path and
// then applies BABBLE_* environment overrides. If the file doesn't exist, it
// creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		var data []byte
		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
			// Defaults are still usable without the file.
			fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err = json.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err = env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return config, nil
}

// parseLogLevel maps a config level name to a slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
