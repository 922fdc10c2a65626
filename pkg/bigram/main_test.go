package bigram

import (
	"strings"
	"sync"
	"testing"
)

// testNames is a small lowercase corpus used across the generator tests.
var testNames = []string{
	"alice", "anna", "bella", "carla", "clara", "diana", "elena",
	"ella", "fiona", "greta", "hanna", "irene", "julia", "laura",
	"lena", "maria", "marta", "nina", "olga", "paula", "rita",
}

// setupTable builds a Table trained on words.
func setupTable(t *testing.T, words ...string) *Table {
	t.Helper()
	table := NewTable()
	table.IngestWords(words)
	return table
}

// setupGenerator is a convenience helper that trains a table on testNames and
// returns a seeded Generator over it.
func setupGenerator(t *testing.T, opts ...Option) (*Table, *Generator) {
	t.Helper()
	table := setupTable(t, testNames...)
	opts = append([]Option{WithSeed(1, 2)}, opts...)
	return table, NewGenerator(table, opts...)
}

var (
	benchmarkCorpus []string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus expands testNames into a larger word list by
// splicing names together.
func createBenchmarkCorpus() []string {
	corpusOnce.Do(func() {
		for _, a := range testNames {
			for _, b := range testNames {
				benchmarkCorpus = append(benchmarkCorpus, a+strings.ToUpper(b[:1])+b[1:])
			}
		}
	})
	return benchmarkCorpus
}
