package bigram

import (
	"math/rand/v2"
)

// firstChar picks a main character uniformly at random. keys must not be empty.
func firstChar(keys []rune, rng *rand.Rand) rune {
	return keys[rng.IntN(len(keys))]
}

// sampleContinuable draws a successor of c weighted by frequency, considering
// only successors that are themselves main characters, so the walk can always
// take another step from the result. ok is false if c is not in the table or
// none of its successors can be continued from.
func sampleContinuable(t *Table, rng *rand.Rand, c rune) (next rune, ok bool) {
	choices := t.Successors(c)
	if len(choices) == 0 {
		return 0, false
	}

	candidates := choices[:0]
	totalFreq := 0
	for _, choice := range choices {
		if t.Has(choice.Char) {
			candidates = append(candidates, choice)
			totalFreq += choice.Freq
		}
	}
	return weightedChoice(candidates, totalFreq, rng)
}

// sampleAny draws a successor of c weighted by frequency over every observed
// successor, whether or not it can be continued from. ok is false only if c
// is not in the table.
func sampleAny(t *Table, rng *rand.Rand, c rune) (next rune, ok bool) {
	choices := t.Successors(c)
	totalFreq := 0
	for _, choice := range choices {
		totalFreq += choice.Freq
	}
	return weightedChoice(choices, totalFreq, rng)
}

// weightedChoice returns a character from choices with probability
// Freq/totalFreq.
func weightedChoice(choices []Transition, totalFreq int, rng *rand.Rand) (rune, bool) {
	if len(choices) == 0 || totalFreq <= 0 {
		return 0, false
	}
	randChoice := rng.IntN(totalFreq)
	for _, choice := range choices {
		randChoice -= choice.Freq
		if randChoice < 0 {
			return choice.Char, true
		}
	}
	return 0, false
}
