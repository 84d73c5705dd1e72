package names

import (
	"errors"
	"fmt"
	"slices"
)

// Gender classifies a first name. It carries no meaning for last names.
type Gender uint8

const (
	Unisex Gender = iota
	Female
	Male
)

// Kind tells whether a name is used as a first (given) or last (family) name.
type Kind uint8

const (
	First Kind = iota
	Last
)

// Name is a single record of the dataset.
//
// Records handed out by a Dataset are shared; treat Origins as read-only.
type Name struct {
	Text    string   `json:"text"`
	Origins []Origin `json:"origins"`
	Gender  Gender   `json:"gender"`
	Kind    Kind     `json:"kind"`
}

// String returns the name text.
func (n Name) String() string { return n.Text }

// HasOrigin reports whether the name is tagged with o.
func (n Name) HasOrigin(o Origin) bool { return slices.Contains(n.Origins, o) }

func (n Name) clone() Name {
	n.Origins = slices.Clone(n.Origins)
	return n
}

// ParseGender accepts "unisex", "female" or "male".
func ParseGender(s string) (Gender, error) {
	switch s {
	case "unisex":
		return Unisex, nil
	case "female":
		return Female, nil
	case "male":
		return Male, nil
	}
	return 0, errors.Join(ErrUnknownGender, fmt.Errorf("gender %q", s))
}

func (g Gender) Valid() bool { return g <= Male }

func (g Gender) String() string {
	switch g {
	case Unisex:
		return "unisex"
	case Female:
		return "female"
	case Male:
		return "male"
	}
	return fmt.Sprintf("Gender(%d)", uint8(g))
}

func (g Gender) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, errors.Join(ErrUnknownGender, fmt.Errorf("gender code %d", uint8(g)))
	}
	return []byte(g.String()), nil
}

func (g *Gender) UnmarshalText(text []byte) error {
	v, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ParseKind accepts "first" or "last".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "first":
		return First, nil
	case "last":
		return Last, nil
	}
	return 0, errors.Join(ErrUnknownKind, fmt.Errorf("kind %q", s))
}

func (k Kind) Valid() bool { return k <= Last }

func (k Kind) String() string {
	switch k {
	case First:
		return "first"
	case Last:
		return "last"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.Join(ErrUnknownKind, fmt.Errorf("kind code %d", uint8(k)))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
