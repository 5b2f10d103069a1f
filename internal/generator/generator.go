// Package generator provides the pseudo-random source used to pick passages
// and builds word drill passages.
package generator

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/typerpunk/internal/model"
)

// DrillCategory is the category assigned to generated drill passages.
const DrillCategory = "drill"

// Generator wraps a seeded pseudo-random source.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded from crypto/rand, falling back to the clock.
func New() *Generator {
	seed, err := NewSeed()
	if err != nil {
		seed = time.Now().UnixNano()
	}
	return NewWithSeed(seed)
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// NewSeed reads a seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Intn returns a value in [0, n).
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// DrillOptions shapes generated drill passages. CapsPct and PunctPct are
// per-word probabilities in [0, 1].
type DrillOptions struct {
	Words    int
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
}

// Drills builds count passages of opts.Words random words each.
func (g *Generator) Drills(words []string, count int, opts DrillOptions) []model.Passage {
	if len(words) == 0 || count <= 0 || opts.Words <= 0 {
		return nil
	}
	out := make([]model.Passage, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, model.Passage{
			Content:     g.drill(words, opts),
			Attribution: "Word drill",
			Category:    DrillCategory,
		})
	}
	return out
}

func (g *Generator) drill(words []string, opts DrillOptions) string {
	var b strings.Builder
	for i := 0; i < opts.Words; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		word := []rune(words[g.rnd.Intn(len(words))])
		if len(word) > 0 && g.chance(opts.CapsPct) {
			word[0] = unicode.ToUpper(word[0])
		}
		b.WriteString(string(word))
		if len(opts.PunctSet) > 0 && g.chance(opts.PunctPct) {
			b.WriteRune(opts.PunctSet[g.rnd.Intn(len(opts.PunctSet))])
		}
	}
	return b.String()
}

// chance draws only for positive probabilities so a zero setting leaves the
// word sequence of a seed unchanged.
func (g *Generator) chance(p float64) bool {
	return p > 0 && g.rnd.Float64() < p
}
