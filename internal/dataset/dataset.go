// Package dataset compiles the human-edited YAML name list into the binary
// blob embedded by package names.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/namekit/pkg/names"
)

var (
	// ErrInvalidSource is returned when the YAML source is malformed or
	// contains invalid entries.
	ErrInvalidSource = errors.New("invalid name dataset source")

	// ErrCompile is returned when a parsed source cannot be written out.
	ErrCompile = errors.New("failed to compile name dataset")
)

type source struct {
	First []entry `yaml:"first"`
	Last  []entry `yaml:"last"`
}

type entry struct {
	Text    string   `yaml:"text"`
	Gender  string   `yaml:"gender"`
	Origins []string `yaml:"origins"`
}

type key struct {
	text string
	kind names.Kind
}

// Parse reads a YAML source and returns the records in file order: all first
// names, then all last names. Every invalid entry is reported, not just the
// first one.
func Parse(r io.Reader) ([]names.Name, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var src source
	if err := dec.Decode(&src); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Join(ErrInvalidSource, errors.New("empty source"))
		}
		return nil, errors.Join(ErrInvalidSource, err)
	}

	out := make([]names.Name, 0, len(src.First)+len(src.Last))
	seen := make(map[key]string, cap(out))
	var errs []error

	collect := func(section string, kind names.Kind, entries []entry) {
		for i, e := range entries {
			where := fmt.Sprintf("%s[%d]", section, i)
			n, err := e.name(kind)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s %q: %w", where, e.Text, err))
				continue
			}
			k := key{text: n.Text, kind: kind}
			if prev, dup := seen[k]; dup {
				errs = append(errs, fmt.Errorf("%s %q: duplicate of %s", where, n.Text, prev))
				continue
			}
			seen[k] = where
			out = append(out, n)
		}
	}
	collect("first", names.First, src.First)
	collect("last", names.Last, src.Last)

	if len(errs) > 0 {
		return nil, errors.Join(append([]error{ErrInvalidSource}, errs...)...)
	}
	return out, nil
}

func (e entry) name(kind names.Kind) (names.Name, error) {
	n := names.Name{
		Text: norm.NFC.String(strings.TrimSpace(e.Text)),
		Kind: kind,
	}
	if n.Text == "" {
		return names.Name{}, errors.New("empty text")
	}

	switch {
	case kind == names.Last && e.Gender != "":
		return names.Name{}, errors.New("last names cannot declare a gender")
	case kind == names.First && e.Gender == "":
		return names.Name{}, errors.New("missing gender")
	case kind == names.First:
		g, err := names.ParseGender(e.Gender)
		if err != nil {
			return names.Name{}, err
		}
		n.Gender = g
	}

	for _, tag := range e.Origins {
		o, err := names.ParseOrigin(tag)
		if err != nil {
			return names.Name{}, err
		}
		if !n.HasOrigin(o) {
			n.Origins = append(n.Origins, o)
		}
	}
	return n, nil
}

// Compile parses src and writes the encoded dataset to dst.
func Compile(src io.Reader, dst io.Writer) (names.Stats, error) {
	records, err := Parse(src)
	if err != nil {
		return names.Stats{}, err
	}
	if len(records) == 0 {
		return names.Stats{}, errors.Join(ErrInvalidSource, errors.New("no names defined"))
	}
	if err := names.Encode(dst, records); err != nil {
		return names.Stats{}, errors.Join(ErrCompile, err)
	}
	return names.NewDataset(records...).Stats(), nil
}
