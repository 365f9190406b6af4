// Package match implements word-boundary-safe, case-insensitive keyword
// occurrence counting over Spanish-language text.
//
// Counting rules:
//
//   - A hit is valid only when the runes adjacent to the matched span are
//     non-word runes (or the span touches a text edge). Word rune means
//     Unicode letter, Unicode digit, or underscore, so "socialismos" never
//     counts for "socialismo".
//   - Occurrences of the same keyword never overlap: counting is greedy
//     left to right, and a span is consumed only once it is boundary-valid.
//     "guerra es guerra" counts two for "guerra".
//   - Distinct keywords count independently even when their spans overlap,
//     so "clase política" and "políticos" are unrelated tallies.
//   - Multi-word keywords match as literal substrings of the folded text,
//     single internal spaces included.
//
// All keyword sets are compiled into one automaton; a text is scanned once
// no matter how many sets are counted.
package match

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Counter counts keyword occurrences for one or more keyword sets.
// Compile once, count many: a Counter is immutable and safe for
// concurrent use.
type Counter struct {
	sc       *scanner
	owners   [][]int // pattern index → keyword-set indexes credited per hit
	patterns int
	sets     int
}

// NewCounter compiles the given keyword sets. Set order is preserved:
// Counts returns one total per set, in this order. Keywords are folded at
// compile time; a keyword shared by several sets is compiled once and
// credits each owning set independently.
func NewCounter(sets [][]string) *Counter {
	c := &Counter{sets: len(sets)}

	var patterns []string
	index := make(map[string]int)
	for si, kws := range sets {
		for _, kw := range kws {
			folded := Fold(kw)
			if folded == "" {
				continue
			}
			pi, ok := index[folded]
			if !ok {
				pi = len(patterns)
				index[folded] = pi
				patterns = append(patterns, folded)
				c.owners = append(c.owners, nil)
			}
			c.owners[pi] = append(c.owners[pi], si)
		}
	}

	c.patterns = len(patterns)
	if c.patterns > 0 {
		c.sc = newScanner(patterns)
	}
	return c
}

// Counts scans text once and returns the occurrence total of every keyword
// set, indexed as the sets were given to NewCounter. Empty text returns
// all zeros.
func (c *Counter) Counts(text string) []int {
	out := make([]int, c.sets)
	if text == "" || c.patterns == 0 {
		return out
	}

	folded := Fold(text)
	next := make([]int, c.patterns) // per pattern: first start offset not yet consumed

	for _, m := range c.sc.scan([]byte(folded)) {
		if m.Start < next[m.Pattern] {
			continue // overlaps an occurrence already counted for this keyword
		}
		if !boundaryOK(folded, m.Start, m.End) {
			continue
		}
		next[m.Pattern] = m.End
		for _, set := range c.owners[m.Pattern] {
			out[set]++
		}
	}
	return out
}

// Count reports the occurrences of a single keyword set in text. It compiles
// a throwaway automaton; use a Counter when scoring more than one text.
func Count(text string, keywords []string) int {
	return NewCounter([][]string{keywords}).Counts(text)[0]
}

// Fold lowercases text for matching, Spanish-locale aware: Á→á, Ñ→ñ, Ü→ü.
// A Caser is stateful, so each call builds a fresh one.
func Fold(s string) string {
	return cases.Lower(language.Spanish).String(s)
}

// boundaryOK reports whether the span [start,end) in s sits on word
// boundaries: the rune before start and the rune at end must both be
// non-word runes, or absent.
func boundaryOK(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

// isWordRune mirrors the \w class over Unicode: letters, digits, underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
