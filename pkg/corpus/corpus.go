// Package corpus loads training words for the bigram model. Every source
// yields one word per non-empty line or row, lowercased.
package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCorpusRead matches every *ReadError via errors.Is.
var ErrCorpusRead = errors.New("corpus: read failed")

// ReadError reports a failure to load training data from Source, which is a
// file path, "reader" or a SQL query.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("corpus: could not read %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrCorpusRead) match any ReadError.
func (e *ReadError) Is(target error) bool { return target == ErrCorpusRead }

// ReadFile reads the text file at path and returns its lines as words.
func ReadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Source: path, Err: err}
	}
	return splitWords(string(data)), nil
}

// ReadLines reads r to the end and returns its lines as words.
func ReadLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadError{Source: "reader", Err: err}
	}
	return splitWords(string(data)), nil
}

// ReadDB runs query, which must select a single text column, and returns the
// non-empty values as words.
func ReadDB(ctx context.Context, db *sql.DB, query string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &ReadError{Source: query, Err: err}
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	lower := cases.Lower(language.Und)
	var words []string
	for rows.Next() {
		var word sql.NullString
		if err = rows.Scan(&word); err != nil {
			return nil, &ReadError{Source: query, Err: err}
		}
		// Rows may hold several lines; treat them like a file.
		for _, line := range splitLines(word.String) {
			words = append(words, lower.String(line))
		}
	}
	if err = rows.Err(); err != nil {
		return nil, &ReadError{Source: query, Err: err}
	}
	return words, nil
}

// splitWords splits text on '\n' and '\r', drops empty lines and lowercases
// the rest.
func splitWords(text string) []string {
	lower := cases.Lower(language.Und)
	lines := splitLines(text)
	for i, line := range lines {
		lines[i] = lower.String(line)
	}
	return lines
}

func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}
