package bigram

import (
	"slices"
	"strconv"
	"strings"
)

// Transition represents a possible next character after a given main
// character, along with how many times that pair was observed.
type Transition struct {
	Char rune
	Freq int
}

// Table holds observed character-to-character transition counts. The outer
// key is the main character, the inner key is the character that followed it.
//
// A Table is only mutated by IngestWord and IngestWords; counts never shrink.
// Once training is done it may be read by any number of Generators at once.
type Table struct {
	chains map[rune]map[rune]int
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{chains: make(map[rune]map[rune]int)}
}

// IngestWord records every adjacent pair of code points in word. Words with
// fewer than two code points contribute nothing. No case folding is applied;
// callers are expected to normalize their input beforehand.
func (t *Table) IngestWord(word string) {
	var prev rune
	first := true
	for _, r := range word {
		if first {
			prev, first = r, false
			continue
		}
		next, ok := t.chains[prev]
		if !ok {
			next = make(map[rune]int)
			t.chains[prev] = next
		}
		next[r]++
		prev = r
	}
}

// IngestWords calls IngestWord for each word in order.
func (t *Table) IngestWords(words []string) {
	for _, w := range words {
		t.IngestWord(w)
	}
}

// Len returns the number of main characters in the table.
func (t *Table) Len() int {
	return len(t.chains)
}

// Has reports whether c has at least one recorded successor.
func (t *Table) Has(c rune) bool {
	_, ok := t.chains[c]
	return ok
}

// Keys returns every main character in ascending order.
func (t *Table) Keys() []rune {
	keys := make([]rune, 0, len(t.chains))
	for c := range t.chains {
		keys = append(keys, c)
	}
	slices.Sort(keys)
	return keys
}

// Successors returns the characters observed after c with their counts,
// ordered by character. It returns nil if c was never a main character.
func (t *Table) Successors(c rune) []Transition {
	next, ok := t.chains[c]
	if !ok {
		return nil
	}
	out := make([]Transition, 0, len(next))
	for r, freq := range next {
		out = append(out, Transition{Char: r, Freq: freq})
	}
	slices.SortFunc(out, func(a, b Transition) int {
		return int(a.Char) - int(b.Char)
	})
	return out
}

// Count returns how many times next was observed directly after c.
func (t *Table) Count(c, next rune) int {
	return t.chains[c][next]
}

// Pairs returns the number of distinct (main, successor) pairs.
func (t *Table) Pairs() int {
	n := 0
	for _, next := range t.chains {
		n += len(next)
	}
	return n
}

// Total returns the sum of all pair counts, i.e. the number of transitions
// ingested so far.
func (t *Table) Total() int {
	n := 0
	for _, next := range t.chains {
		for _, freq := range next {
			n += freq
		}
	}
	return n
}

// Equal reports whether both tables hold exactly the same pair counts.
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.chains) != len(other.chains) {
		return false
	}
	for c, next := range t.chains {
		otherNext, ok := other.chains[c]
		if !ok || len(next) != len(otherNext) {
			return false
		}
		for r, freq := range next {
			if otherNext[r] != freq {
				return false
			}
		}
	}
	return true
}

// String renders the table one main character per block, with its
// successors indented underneath:
//
//	a:
//	    b: 2
func (t *Table) String() string {
	var sb strings.Builder
	for _, c := range t.Keys() {
		sb.WriteString(string(c))
		sb.WriteString(":\n")
		for _, tr := range t.Successors(c) {
			sb.WriteString("    ")
			sb.WriteString(string(tr.Char))
			sb.WriteString(": ")
			sb.WriteString(strconv.Itoa(tr.Freq))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
