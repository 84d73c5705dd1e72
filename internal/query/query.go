// Package query turns textual filter parameters, as received from CLI flags or
// URL query strings, into a configured names.Generator.
package query

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/namekit/pkg/names"
)

// ErrInvalidParams is returned when a parameter cannot be interpreted.
var ErrInvalidParams = errors.New("invalid name filter parameters")

// Any disables the kind or gender filter. An empty string does the same.
const Any = "any"

// Params holds raw filter values. Multi-valued fields are OR-ed.
// Letters and Origins also accept comma separated values, so "A,B" equals
// two separate entries.
type Params struct {
	Letters []string
	Origins []string
	Kind    string
	Gender  string
}

// Build validates p and returns a Generator over ds with the filters applied.
// A nil ds selects the embedded dataset.
func (p Params) Build(ds *names.Dataset) (*names.Generator, error) {
	g := names.New()
	if ds != nil {
		g = names.NewFrom(ds)
	}
	if err := p.Apply(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Apply validates p and adds its filters to g. On error g may already hold
// some of the filters and should be discarded.
func (p Params) Apply(g *names.Generator) error {
	var errs []error

	for _, l := range splitValues(p.Letters) {
		r, err := parseLetter(l)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		g.ByFirstLetter(r)
	}

	for _, tag := range splitValues(p.Origins) {
		o, err := names.ParseOrigin(strings.ToLower(tag))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		g.ByOrigin(o)
	}

	switch kind := strings.ToLower(strings.TrimSpace(p.Kind)); kind {
	case "", Any:
	default:
		k, err := names.ParseKind(kind)
		if err != nil {
			errs = append(errs, err)
			break
		}
		if k == names.First {
			g.OnlyFirstNames()
		} else {
			g.OnlyLastNames()
		}
	}

	switch gender := strings.ToLower(strings.TrimSpace(p.Gender)); gender {
	case "", Any:
	default:
		gd, err := names.ParseGender(gender)
		if err != nil {
			errs = append(errs, err)
			break
		}
		switch gd {
		case names.Male:
			g.OnlyMasculine()
		case names.Female:
			g.OnlyFeminine()
		case names.Unisex:
			g.OnlyUnisex()
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidParams}, errs...)...)
	}
	return nil
}

// parseLetter accepts exactly one code point after NFC normalization, so a
// decomposed "Ö" (O + combining diaeresis) matches the stored "Ö".
// Case is preserved: "a" and "A" are different letters.
func parseLetter(s string) (rune, error) {
	s = norm.NFC.String(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("letter %q must be a single character", s)
	}
	return r, nil
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
