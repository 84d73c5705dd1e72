package names

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// Rand picks an index in [0, n) with probability 1/n each.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type sharedRand struct{}

func (sharedRand) IntN(n int) int { return rand.IntN(n) }

// SharedRand returns a Rand backed by the math/rand/v2 top-level generator.
// Unlike a *rand.Rand it is safe for concurrent use.
func SharedRand() Rand { return sharedRand{} }

// Generator accumulates filters and draws random names that satisfy them.
//
// Filters within one dimension are OR-ed, dimensions are AND-ed. The gender
// filter never applies to last names. A Generator is not safe for concurrent
// mutation; Clone it to derive variants.
type Generator struct {
	ds           *Dataset
	firstLetters []rune
	origins      []Origin
	kind         *Kind
	gender       *Gender
}

// New returns a Generator over the embedded dataset with no filters set.
// The dataset is decoded on the first terminal call; the Generator itself is
// not modified by it.
func New() *Generator {
	return &Generator{}
}

// NewFrom returns a Generator over ds with no filters set.
func NewFrom(ds *Dataset) *Generator {
	return &Generator{ds: ds}
}

// ByFirstLetter admits names whose text starts with r.
func (g *Generator) ByFirstLetter(r rune) *Generator {
	g.firstLetters = append(g.firstLetters, r)
	return g
}

// ByFirstLetters admits names whose text starts with any of rs.
func (g *Generator) ByFirstLetters(rs ...rune) *Generator {
	g.firstLetters = append(g.firstLetters, rs...)
	return g
}

// ByOrigin admits names tagged with o.
func (g *Generator) ByOrigin(o Origin) *Generator {
	g.origins = append(g.origins, o)
	return g
}

// ByOrigins admits names tagged with any of os.
func (g *Generator) ByOrigins(os ...Origin) *Generator {
	g.origins = append(g.origins, os...)
	return g
}

// OnlyFirstNames admits first names only, replacing any earlier kind filter.
func (g *Generator) OnlyFirstNames() *Generator { return g.withKind(First) }

// OnlyLastNames admits last names only, replacing any earlier kind filter.
func (g *Generator) OnlyLastNames() *Generator { return g.withKind(Last) }

// OnlyMasculine restricts first names to male ones. Last names are unaffected.
func (g *Generator) OnlyMasculine() *Generator { return g.withGender(Male) }

// OnlyFeminine restricts first names to female ones. Last names are unaffected.
func (g *Generator) OnlyFeminine() *Generator { return g.withGender(Female) }

// OnlyUnisex restricts first names to unisex ones. Last names are unaffected.
func (g *Generator) OnlyUnisex() *Generator { return g.withGender(Unisex) }

func (g *Generator) withKind(k Kind) *Generator {
	g.kind = &k
	return g
}

func (g *Generator) withGender(gd Gender) *Generator {
	g.gender = &gd
	return g
}

// Clone returns an independent copy sharing the same dataset.
func (g *Generator) Clone() *Generator {
	c := &Generator{
		ds:           g.ds,
		firstLetters: slices.Clone(g.firstLetters),
		origins:      slices.Clone(g.origins),
	}
	if g.kind != nil {
		c.withKind(*g.kind)
	}
	if g.gender != nil {
		c.withGender(*g.gender)
	}
	return c
}

// Matches reports whether n passes every active filter.
func (g *Generator) Matches(n Name) bool {
	if len(g.firstLetters) > 0 && !startsWithAny(n.Text, g.firstLetters) {
		return false
	}
	if len(g.origins) > 0 && !hasAnyOrigin(n.Origins, g.origins) {
		return false
	}
	if g.kind != nil && n.Kind != *g.kind {
		return false
	}
	if g.gender != nil && n.Kind == First && n.Gender != *g.gender {
		return false
	}
	return true
}

// Count returns the number of names the current filters admit.
func (g *Generator) Count() int {
	count := 0
	for _, n := range g.dataset().names {
		if g.Matches(n) {
			count++
		}
	}
	return count
}

// Candidates returns every admitted name in dataset order.
func (g *Generator) Candidates() []Name {
	var out []Name
	for _, n := range g.dataset().names {
		if g.Matches(n) {
			out = append(out, n.clone())
		}
	}
	return out
}

// Finish draws one admitted name uniformly at random.
// It returns false if no name passes the filters. The Generator is left
// unchanged, so Finish may be called repeatedly.
func (g *Generator) Finish(r Rand) (Name, bool) {
	records := g.dataset().names

	count := g.Count()
	if count == 0 {
		return Name{}, false
	}

	target := r.IntN(count)
	for _, n := range records {
		if !g.Matches(n) {
			continue
		}
		if target == 0 {
			return n.clone(), true
		}
		target--
	}
	// unreachable: target < count
	return Name{}, false
}

// FullName draws a first and a last name independently under the current
// filters, overriding any kind filter. ok is false unless both draws succeed.
func (g *Generator) FullName(r Rand) (first, last Name, ok bool) {
	first, okFirst := g.Clone().OnlyFirstNames().Finish(r)
	last, okLast := g.Clone().OnlyLastNames().Finish(r)
	if !okFirst || !okLast {
		return Name{}, Name{}, false
	}
	return first, last, true
}

func (g *Generator) dataset() *Dataset {
	if g.ds != nil {
		return g.ds
	}
	return Load()
}

func startsWithAny(s string, letters []rune) bool {
	for _, r := range letters {
		if strings.HasPrefix(s, string(r)) {
			return true
		}
	}
	return false
}
