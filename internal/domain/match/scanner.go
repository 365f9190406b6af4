package match

import (
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Match is one automaton hit with byte offsets into the scanned text.
type Match struct {
	Pattern int // index into the compiled pattern slice
	Start   int // byte offset, inclusive
	End     int // byte offset, exclusive
}

// scanner wraps a petar-dambovaliev/aho-corasick automaton compiled once
// from a pattern set. The automaton is immutable after construction and
// every scan drives its own iterator, so a scanner is safe for concurrent
// use.
type scanner struct {
	automaton aho.AhoCorasick
	patterns  []string
}

// newScanner compiles patterns into a DFA-backed automaton.
func newScanner(patterns []string) *scanner {
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	p := make([]string, len(patterns))
	copy(p, patterns)
	return &scanner{
		automaton: builder.Build(p),
		patterns:  p,
	}
}

// scan reports every overlapping occurrence of every pattern. Matches come
// back ordered by end offset, so occurrences of any single pattern arrive
// in ascending start order.
func (s *scanner) scan(text []byte) []Match {
	iter := s.automaton.IterOverlappingByte(text)
	var matches []Match
	for next := iter.Next(); next != nil; next = iter.Next() {
		m := *next
		matches = append(matches, Match{
			Pattern: m.Pattern(),
			Start:   m.Start(),
			End:     m.End(),
		})
	}
	return matches
}
