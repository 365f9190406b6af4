// Package dictionary holds the coding taxonomy: named groups of keyword
// categories that the scorer applies to every record. A taxonomy is
// validated once at construction; a Store that exists is safe to code with.
package dictionary

import (
	"fmt"
	"strings"
)

// Category is one named keyword list. Counts for its keywords are reported
// under the category's name and roll up into its group's total.
type Category struct {
	Name     string
	Label    string
	Group    string
	Keywords []string
}

// Group is an ordered set of categories reported together. Composite groups
// feed the security-intensity composite; non-composite groups are tracked
// and reported but excluded from it.
type Group struct {
	Name       string
	Label      string
	Composite  bool
	Categories []Category
}

// Store is a validated taxonomy. Group and category order is preserved from
// construction and used everywhere results are rendered.
type Store struct {
	groups []Group
	byName map[string]Category
	order  []string
}

// NewStore validates groups and builds a Store. It fails on the first
// structural problem: empty names, duplicate group or category names,
// empty keyword lists, blank keywords, or a keyword repeated within one
// category. Keywords are whitespace-trimmed.
func NewStore(groups []Group) (*Store, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("taxonomy has no groups")
	}

	s := &Store{
		groups: make([]Group, 0, len(groups)),
		byName: make(map[string]Category),
	}
	seenGroups := make(map[string]bool)
	seenCategories := make(map[string]string) // category name → group name

	for _, g := range groups {
		if g.Name == "" {
			return nil, fmt.Errorf("group with empty name")
		}
		if seenGroups[g.Name] {
			return nil, fmt.Errorf("duplicate group name %q", g.Name)
		}
		seenGroups[g.Name] = true

		if len(g.Categories) == 0 {
			return nil, fmt.Errorf("group %q has no categories", g.Name)
		}

		kept := Group{Name: g.Name, Label: g.Label, Composite: g.Composite}
		for _, c := range g.Categories {
			cat, err := convertCategory(c, g.Name)
			if err != nil {
				return nil, fmt.Errorf("group %q: %w", g.Name, err)
			}
			if prev, ok := seenCategories[cat.Name]; ok {
				return nil, fmt.Errorf("duplicate category name %q (in group %q and %q)", cat.Name, prev, g.Name)
			}
			seenCategories[cat.Name] = g.Name

			kept.Categories = append(kept.Categories, cat)
			s.byName[cat.Name] = cat
			s.order = append(s.order, cat.Name)
		}
		s.groups = append(s.groups, kept)
	}

	return s, nil
}

// convertCategory validates one category and normalizes its group binding.
func convertCategory(c Category, group string) (Category, error) {
	if c.Name == "" {
		return Category{}, fmt.Errorf("category with empty name")
	}
	if len(c.Keywords) == 0 {
		return Category{}, fmt.Errorf("category %q has no keywords", c.Name)
	}

	kws := make([]string, 0, len(c.Keywords))
	seen := make(map[string]bool)
	for i, kw := range c.Keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			return Category{}, fmt.Errorf("category %q: keyword %d is empty", c.Name, i)
		}
		if seen[kw] {
			return Category{}, fmt.Errorf("category %q: duplicate keyword %q", c.Name, kw)
		}
		seen[kw] = true
		kws = append(kws, kw)
	}

	return Category{Name: c.Name, Label: c.Label, Group: group, Keywords: kws}, nil
}

// Groups returns the taxonomy's groups in construction order.
func (s *Store) Groups() []Group {
	return s.groups
}

// Categories returns every category, flattened in reporting order
// (group order, then category order within the group).
func (s *Store) Categories() []Category {
	out := make([]Category, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

// CategoryNames returns the category names in reporting order.
func (s *Store) CategoryNames() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Category looks one category up by name.
func (s *Store) Category(name string) (Category, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// NumCategories is the total number of categories across all groups.
func (s *Store) NumCategories() int {
	return len(s.order)
}

// NumKeywords is the total number of keywords across all categories.
func (s *Store) NumKeywords() int {
	n := 0
	for _, g := range s.groups {
		for _, c := range g.Categories {
			n += len(c.Keywords)
		}
	}
	return n
}
