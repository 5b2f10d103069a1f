// Package corpus holds the reference passages offered for practice.
package corpus

import (
	"sort"

	"github.com/verte-zerg/typerpunk/internal/model"
)

// Corpus is an ordered, immutable collection of passages.
type Corpus struct {
	passages   []model.Passage
	categories []string
}

// New builds a corpus. Categories are the sorted set of non-empty passage
// categories; uncategorized passages are reachable only through random
// selection.
func New(passages []model.Passage) *Corpus {
	owned := make([]model.Passage, len(passages))
	copy(owned, passages)

	seen := map[string]struct{}{}
	categories := []string{}
	for _, p := range owned {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return &Corpus{passages: owned, categories: categories}
}

// Len returns the number of passages.
func (c *Corpus) Len() int {
	return len(c.passages)
}

// Passage returns the passage at index i.
func (c *Corpus) Passage(i int) model.Passage {
	return c.passages[i]
}

// Categories returns the category cycle list.
func (c *Corpus) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// HasCategory reports whether name is a known non-empty category.
func (c *Corpus) HasCategory(name string) bool {
	idx := sort.SearchStrings(c.categories, name)
	return idx < len(c.categories) && c.categories[idx] == name
}

// Pool returns passage indexes for a category. An empty category selects
// every passage.
func (c *Corpus) Pool(category string) []int {
	pool := make([]int, 0, len(c.passages))
	for i, p := range c.passages {
		if category == "" || p.Category == category {
			pool = append(pool, i)
		}
	}
	return pool
}
