package main

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/CTAG07/Babble/pkg/bigram"
	"github.com/CTAG07/Babble/pkg/corpus"
	"github.com/natefinch/atomic"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	// Generated words go to stdout, so logs go to stderr.
	baseLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	config, err := LoadConfig("./config.json")
	if err != nil {
		baseLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))
	logger.Debug("Starting babble", "version", Version, "commit", Commit, "build_date", BuildDate)

	if err = run(context.Background(), config, logger, os.Stdout); err != nil {
		logger.Error("Babble failed", "error", err)
		os.Exit(1)
	}
}

// run loads the corpus, trains a table on it and writes the generated words
// to the configured output, or to stdout if none is set.
func run(ctx context.Context, config *Config, logger *slog.Logger, stdout io.Writer) error {
	policy, err := bigram.ParseRestartPolicy(config.Generation.RestartPolicy)
	if err != nil {
		return err
	}

	words, err := loadCorpus(ctx, config.Corpus, logger)
	if err != nil {
		return err
	}

	table := bigram.NewTable()
	table.IngestWords(words)
	logger.Info("Training completed",
		slog.Int("words_processed", len(words)),
		slog.Int("main_characters", table.Len()),
		slog.Int("unique_pairs", table.Pairs()),
		slog.Int("transitions", table.Total()),
	)

	seed := config.Generation.Seed
	if seed == 0 {
		if seed, err = newSeed(); err != nil {
			return err
		}
	}
	logger.Debug("Generator seeded", slog.Uint64("seed", seed))

	gen := bigram.NewGenerator(table, bigram.WithSeed(seed, seed), bigram.WithRestartPolicy(policy))
	gen.SetLogger(logger)

	generated, err := gen.RandomWordsWithRange(config.Generation.MinLength, config.Generation.MaxLength, config.Generation.Count)
	if err != nil {
		return fmt.Errorf("failed to generate words: %w", err)
	}

	return writeWords(config.OutputPath, generated, stdout)
}

// loadCorpus reads the training words from the configured database or text file.
func loadCorpus(ctx context.Context, cfg CorpusConfig, logger *slog.Logger) ([]string, error) {
	if cfg.DatabasePath == "" {
		logger.Info("Reading corpus file", "path", cfg.Path)
		return corpus.ReadFile(cfg.Path)
	}

	logger.Info("Reading corpus database", "path", cfg.DatabasePath)
	db, err := initDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()
	return corpus.ReadDB(ctx, db, cfg.Query)
}

// writeWords prints one word per line to stdout, or replaces the file at path
// atomically if path is set.
func writeWords(path string, words []string, stdout io.Writer) error {
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(w)
		sb.WriteByte('\n')
	}

	if path == "" {
		if _, err := io.WriteString(stdout, sb.String()); err != nil {
			return fmt.Errorf("failed to write words: %w", err)
		}
		return nil
	}
	if err := atomic.WriteFile(path, strings.NewReader(sb.String())); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// newSeed generates a random seed using crypto/rand.
func newSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
