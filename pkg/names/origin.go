package names

import (
	"errors"
	"fmt"
	"slices"
)

// Origin tags a name with a cultural, linguistic or geographic association.
//
// The numeric value is the wire code stored in the embedded dataset.
// New origins are appended at the end; existing values are never renumbered.
type Origin uint8

const (
	African Origin = iota
	American
	Arabic
	Aramaic
	Armenian
	Basque
	Biblical
	Celtic
	Chinese
	Czech
	Danish
	Dutch
	English
	Finnish
	French
	Gaelic
	German
	Greek
	Hawaiian
	Hebrew
	Hindi
	Hungarian
	Irish
	Italian
	Japanese
	Korean
	Latin
	Norse
	Persian
	Polish
	Portuguese
	Russian
	Sanskrit
	Scandinavian
	Scottish
	Slavic
	Spanish
	Swedish
	Turkish
	Ukrainian
	Vietnamese
	Welsh

	originCount
)

var originNames = [originCount]string{
	African:      "african",
	American:     "american",
	Arabic:       "arabic",
	Aramaic:      "aramaic",
	Armenian:     "armenian",
	Basque:       "basque",
	Biblical:     "biblical",
	Celtic:       "celtic",
	Chinese:      "chinese",
	Czech:        "czech",
	Danish:       "danish",
	Dutch:        "dutch",
	English:      "english",
	Finnish:      "finnish",
	French:       "french",
	Gaelic:       "gaelic",
	German:       "german",
	Greek:        "greek",
	Hawaiian:     "hawaiian",
	Hebrew:       "hebrew",
	Hindi:        "hindi",
	Hungarian:    "hungarian",
	Irish:        "irish",
	Italian:      "italian",
	Japanese:     "japanese",
	Korean:       "korean",
	Latin:        "latin",
	Norse:        "norse",
	Persian:      "persian",
	Polish:       "polish",
	Portuguese:   "portuguese",
	Russian:      "russian",
	Sanskrit:     "sanskrit",
	Scandinavian: "scandinavian",
	Scottish:     "scottish",
	Slavic:       "slavic",
	Spanish:      "spanish",
	Swedish:      "swedish",
	Turkish:      "turkish",
	Ukrainian:    "ukrainian",
	Vietnamese:   "vietnamese",
	Welsh:        "welsh",
}

var originsByName = func() map[string]Origin {
	m := make(map[string]Origin, originCount)
	for o, name := range originNames {
		m[name] = Origin(o)
	}
	return m
}()

// Origins returns every known origin ordered by wire code.
func Origins() []Origin {
	all := make([]Origin, originCount)
	for i := range all {
		all[i] = Origin(i)
	}
	return all
}

// ParseOrigin resolves the lower-case tag of an origin, e.g. "greek".
func ParseOrigin(s string) (Origin, error) {
	if o, ok := originsByName[s]; ok {
		return o, nil
	}
	return 0, errors.Join(ErrUnknownOrigin, fmt.Errorf("origin %q", s))
}

// Valid reports whether o is a known origin.
func (o Origin) Valid() bool { return o < originCount }

func (o Origin) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Origin(%d)", uint8(o))
	}
	return originNames[o]
}

func (o Origin) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, errors.Join(ErrUnknownOrigin, fmt.Errorf("origin code %d", uint8(o)))
	}
	return []byte(originNames[o]), nil
}

func (o *Origin) UnmarshalText(text []byte) error {
	v, err := ParseOrigin(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// hasAnyOrigin reports whether the two origin sets share at least one element.
func hasAnyOrigin(have, want []Origin) bool {
	for _, o := range want {
		if slices.Contains(have, o) {
			return true
		}
	}
	return false
}
