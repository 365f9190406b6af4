// Package score codes records against a dictionary taxonomy: one occurrence
// count per category, per-group totals, and the security-intensity
// composite.
package score

import (
	"github.com/corey/secframe/internal/domain/dictionary"
	"github.com/corey/secframe/internal/domain/match"
	"github.com/corey/secframe/internal/ports"
)

// Scorer applies one validated taxonomy to records. All keyword sets are
// compiled into a single automaton at construction; a Scorer is immutable
// and safe for concurrent use.
type Scorer struct {
	counter    *match.Counter
	categories []dictionary.Category
	composite  map[string]bool // group name → feeds the intensity composite
}

// NewScorer compiles a scorer for the given taxonomy.
func NewScorer(store *dictionary.Store) *Scorer {
	cats := store.Categories()
	sets := make([][]string, len(cats))
	for i, c := range cats {
		sets[i] = c.Keywords
	}

	composite := make(map[string]bool)
	for _, g := range store.Groups() {
		composite[g.Name] = g.Composite
	}

	return &Scorer{
		counter:    match.NewCounter(sets),
		categories: cats,
		composite:  composite,
	}
}

// Score codes one record. Categories holds every category in the taxonomy,
// zeros included; Groups holds every group's total the same way. Intensity
// is the sum of the composite groups' totals, fixed here and never
// recomputed downstream. A record without text scores zero everywhere.
// The input is copied, never mutated.
func (s *Scorer) Score(rec ports.Record) ports.ScoredRecord {
	counts := s.counter.Counts(rec.Body())

	categories := make(map[string]int, len(s.categories))
	groups := make(map[string]int, len(s.composite))
	for name := range s.composite {
		groups[name] = 0
	}

	for i, c := range s.categories {
		categories[c.Name] = counts[i]
		groups[c.Group] += counts[i]
	}

	intensity := 0
	for name, total := range groups {
		if s.composite[name] {
			intensity += total
		}
	}

	return ports.ScoredRecord{
		Record:     rec,
		Categories: categories,
		Groups:     groups,
		Intensity:  intensity,
	}
}

// ScoreAll codes records serially, one output per input, in input order.
func (s *Scorer) ScoreAll(records []ports.Record) []ports.ScoredRecord {
	out := make([]ports.ScoredRecord, len(records))
	for i, rec := range records {
		out[i] = s.Score(rec)
	}
	return out
}
