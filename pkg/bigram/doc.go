/*
Package bigram provides a small, in-memory toolkit for learning character
transition frequencies from a list of words and synthesizing new words from
them.

A Table accumulates how often each character follows another. A Generator
walks that table at random, weighting every step by the observed counts, to
produce words of a requested length. Generators own their random source, so a
seeded Generator is fully reproducible and several Generators may share one
trained Table across goroutines.
*/
package bigram
