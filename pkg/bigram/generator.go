package bigram

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
)

var (
	// ErrEmptyModel is returned when generating from a table with no transitions.
	ErrEmptyModel = errors.New("bigram: model has no transitions")
	// ErrInvalidLength is returned when a requested word length is below MinLength.
	ErrInvalidLength = errors.New("bigram: invalid word length")
	// ErrInvalidRange is returned when a length range is empty.
	ErrInvalidRange = errors.New("bigram: invalid length range")
	// ErrInvalidCount is returned when a negative number of words is requested.
	ErrInvalidCount = errors.New("bigram: invalid word count")
	// ErrDeadEnd is returned under RestartFail when the walk reaches a
	// character with no successor it can continue from.
	ErrDeadEnd = errors.New("bigram: walk reached a dead end")
)

// MinLength is the shortest word the generator can build: one first
// character and one last character.
const MinLength = 2

// preallocCap bounds how much memory is reserved up front for a word or a
// word list; longer results grow as they are built.
const preallocCap = 64

// RestartPolicy decides what happens when the walk reaches a character that
// has no successor it can continue from.
type RestartPolicy int

const (
	// RestartSplice re-draws the current character from the table's main
	// characters, up to Len() attempts in total, and if that still fails
	// inserts a fresh first character into the word. Words always have the requested length.
	RestartSplice RestartPolicy = iota
	// RestartTruncate stops the walk early and finishes the word from the
	// current character. Words may be shorter than requested.
	RestartTruncate
	// RestartFail aborts generation with ErrDeadEnd.
	RestartFail
)

// String returns the policy name accepted by ParseRestartPolicy.
func (p RestartPolicy) String() string {
	switch p {
	case RestartSplice:
		return "splice"
	case RestartTruncate:
		return "truncate"
	case RestartFail:
		return "fail"
	default:
		return fmt.Sprintf("RestartPolicy(%d)", int(p))
	}
}

// ParseRestartPolicy converts a policy name ("splice", "truncate" or "fail")
// into a RestartPolicy. An empty name selects RestartSplice.
func ParseRestartPolicy(name string) (RestartPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "splice":
		return RestartSplice, nil
	case "truncate":
		return RestartTruncate, nil
	case "fail":
		return RestartFail, nil
	default:
		return 0, fmt.Errorf("unknown restart policy %q", name)
	}
}

// Generator synthesizes words from a trained Table. It exclusively owns its
// random source and is not safe for concurrent use; give each goroutine its
// own Generator over the shared Table instead.
type Generator struct {
	table  *Table
	rng    *rand.Rand
	policy RestartPolicy
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source used for every draw.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithSeed uses a PCG source with the given seeds, which makes the output of
// the Generator reproducible for a given Table.
func WithSeed(seed1, seed2 uint64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewPCG(seed1, seed2)) }
}

// WithRestartPolicy sets how dead ends in the walk are handled.
// Default: RestartSplice
func WithRestartPolicy(p RestartPolicy) Option {
	return func(g *Generator) { g.policy = p }
}

// NewGenerator creates a Generator that reads from table. Without WithRand or
// WithSeed the Generator gets its own randomly seeded source.
func NewGenerator(table *Table, opts ...Option) *Generator {
	g := &Generator{
		table:  table,
		policy: RestartSplice,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// RandomWord builds one word of exactly length characters (fewer under
// RestartTruncate). The first character is drawn uniformly from the table's
// main characters, every middle character is drawn from the successors of
// the previous one that can themselves be continued from, and the last
// character is drawn from all successors of the previous one.
func (g *Generator) RandomWord(length int) (string, error) {
	if length < MinLength {
		return "", fmt.Errorf("%w: %d is below the minimum of %d", ErrInvalidLength, length, MinLength)
	}
	keys := g.table.Keys()
	if len(keys) == 0 {
		return "", ErrEmptyModel
	}

	word := make([]rune, 0, min(length, preallocCap))
	current := firstChar(keys, g.rng)
	word = append(word, current)

walk:
	for i := 0; i < length-2; i++ {
		next, ok := sampleContinuable(g.table, g.rng, current)
		if !ok {
			switch g.policy {
			case RestartFail:
				g.logger.Debug("Generation stopped at dead end",
					slog.String("char", string(current)),
					slog.Int("generated_length", len(word)),
				)
				return "", fmt.Errorf("%w: no continuation after %q", ErrDeadEnd, current)
			case RestartTruncate:
				g.logger.Debug("Generation truncated at dead end",
					slog.String("char", string(current)),
					slog.Int("generated_length", len(word)),
					slog.Int("requested_length", length),
				)
				break walk
			}
			next, ok = g.restart(keys, current)
		}
		if !ok {
			next = firstChar(keys, g.rng)
			g.logger.Debug("Spliced fresh first character into word",
				slog.String("after", string(current)),
				slog.String("char", string(next)),
				slog.Int("position", len(word)),
			)
		}
		current = next
		word = append(word, current)
	}

	last, ok := sampleAny(g.table, g.rng, current)
	if !ok {
		last = firstChar(keys, g.rng)
	}
	word = append(word, last)

	return string(word), nil
}

// restart re-draws the walk's current character from the table's main
// characters and samples a continuation from it, giving up after one attempt
// per main character. The first attempt, from stuck, has already failed.
func (g *Generator) restart(keys []rune, stuck rune) (rune, bool) {
	for attempt := 1; attempt < len(keys); attempt++ {
		from := firstChar(keys, g.rng)
		if next, ok := sampleContinuable(g.table, g.rng, from); ok {
			g.logger.Debug("Walk restarted from fresh character",
				slog.String("stuck_at", string(stuck)),
				slog.String("restart_from", string(from)),
				slog.Int("attempt", attempt),
			)
			return next, true
		}
	}
	return 0, false
}

// RandomWordWithRange draws a length uniformly from [minLen, maxLen) and builds a
// word of that length.
func (g *Generator) RandomWordWithRange(minLen, maxLen int) (string, error) {
	length, err := g.randomLength(minLen, maxLen)
	if err != nil {
		return "", err
	}
	return g.RandomWord(length)
}

// RandomWords builds count independent words of the given length. Duplicates
// are not removed.
func (g *Generator) RandomWords(length, count int) ([]string, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	words := make([]string, 0, min(count, preallocCap))
	for i := 0; i < count; i++ {
		w, err := g.RandomWord(length)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}

// RandomWordsWithRange builds count independent words, drawing a fresh length
// from [minLen, maxLen) for each one.
func (g *Generator) RandomWordsWithRange(minLen, maxLen, count int) ([]string, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if _, err := g.checkRange(minLen, maxLen); err != nil {
		return nil, err
	}
	words := make([]string, 0, min(count, preallocCap))
	for i := 0; i < count; i++ {
		w, err := g.RandomWordWithRange(minLen, maxLen)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}

func (g *Generator) randomLength(minLen, maxLen int) (int, error) {
	span, err := g.checkRange(minLen, maxLen)
	if err != nil {
		return 0, err
	}
	return minLen + g.rng.IntN(span), nil
}

func (g *Generator) checkRange(minLen, maxLen int) (int, error) {
	if maxLen <= minLen {
		return 0, fmt.Errorf("%w: [%d, %d) is empty", ErrInvalidRange, minLen, maxLen)
	}
	if minLen < MinLength {
		return 0, fmt.Errorf("%w: range [%d, %d) starts below the minimum of %d", ErrInvalidLength, minLen, maxLen, MinLength)
	}
	return maxLen - minLen, nil
}
