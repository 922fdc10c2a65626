package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/CTAG07/Babble/pkg/bigram"
	"github.com/CTAG07/Babble/pkg/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNames = "Alice\nAnna\nBella\nCarla\nClara\nDiana\nElena\nElla\nFiona\nGreta\n"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupConfig writes a small corpus file and returns a config reading it.
func setupConfig(t *testing.T) *Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte(testNames), 0o644))

	config := DefaultConfig()
	config.Corpus.Path = path
	config.Generation.Count = 25
	config.Generation.Seed = 1234
	return config
}

func outputLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestRunWritesWordsToStdout(t *testing.T) {
	config := setupConfig(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), config, discardLogger(), &out))

	words := outputLines(out.String())
	require.Len(t, words, 25)
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		assert.True(t, n >= 6 && n < 10, "length %d of %q outside [6, 10)", n, w)
		assert.Equal(t, strings.ToLower(w), w)
	}
}

func TestRunIsReproducibleWithSeed(t *testing.T) {
	config := setupConfig(t)

	var first, second bytes.Buffer
	require.NoError(t, run(context.Background(), config, discardLogger(), &first))
	require.NoError(t, run(context.Background(), config, discardLogger(), &second))
	assert.Equal(t, first.String(), second.String())
}

func TestRunWritesOutputFile(t *testing.T) {
	config := setupConfig(t)
	config.OutputPath = filepath.Join(t.TempDir(), "words.txt")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), config, discardLogger(), &out))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(config.OutputPath)
	require.NoError(t, err)
	assert.Len(t, outputLines(string(data)), 25)
}

func TestRunFromDatabase(t *testing.T) {
	config := setupConfig(t)
	config.Corpus.DatabasePath = filepath.Join(t.TempDir(), "words.db")

	db, err := initDB(config.Corpus.DatabasePath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE words (word TEXT NOT NULL);`)
	require.NoError(t, err)
	for _, w := range strings.Fields(testNames) {
		_, err = db.Exec(`INSERT INTO words (word) VALUES (?);`, w)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), config, discardLogger(), &out))
	assert.Len(t, outputLines(out.String()), 25)
}

func TestRunErrors(t *testing.T) {
	t.Run("Missing corpus", func(t *testing.T) {
		config := setupConfig(t)
		config.Corpus.Path = filepath.Join(t.TempDir(), "missing.txt")
		err := run(context.Background(), config, discardLogger(), io.Discard)
		assert.ErrorIs(t, err, corpus.ErrCorpusRead)
	})

	t.Run("Empty corpus", func(t *testing.T) {
		config := setupConfig(t)
		require.NoError(t, os.WriteFile(config.Corpus.Path, []byte("\n\nx\n"), 0o644))
		err := run(context.Background(), config, discardLogger(), io.Discard)
		assert.ErrorIs(t, err, bigram.ErrEmptyModel)
	})

	t.Run("Unknown restart policy", func(t *testing.T) {
		config := setupConfig(t)
		config.Generation.RestartPolicy = "shorten"
		err := run(context.Background(), config, discardLogger(), io.Discard)
		assert.ErrorContains(t, err, "unknown restart policy")
	})

	t.Run("Invalid range", func(t *testing.T) {
		config := setupConfig(t)
		config.Generation.MinLength = 10
		err := run(context.Background(), config, discardLogger(), io.Discard)
		assert.ErrorIs(t, err, bigram.ErrInvalidRange)
	})
}
