package names

import (
	_ "embed"
	"fmt"
	"iter"
	"slices"
	"sync"
)

//go:generate go run ../../cmd/namegen compile --in ../../data/names.yaml --out data/names.bson.gz

//go:embed data/names.bson.gz
var embedded []byte

// Dataset is an immutable, ordered collection of names.
// It is safe for concurrent use.
type Dataset struct {
	names []Name
}

var defaultDataset = sync.OnceValue(func() *Dataset {
	ds, err := Decode(embedded)
	if err != nil {
		// The blob is compiled into the binary, so this is a build defect.
		panic(fmt.Sprintf("names: decode embedded dataset: %v", err))
	}
	return ds
})

// Load returns the dataset embedded in the binary.
// It is decoded on the first call and shared by every caller afterwards.
// Load panics if the embedded blob is corrupt.
func Load() *Dataset {
	return defaultDataset()
}

// NewDataset builds a dataset from the given names. The input is copied.
func NewDataset(names ...Name) *Dataset {
	records := make([]Name, len(names))
	for i, n := range names {
		records[i] = n.clone()
	}
	return &Dataset{names: records}
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.names) }

// All iterates over copies of the records in dataset order.
func (d *Dataset) All() iter.Seq[Name] {
	return func(yield func(Name) bool) {
		for _, n := range d.names {
			if !yield(n.clone()) {
				return
			}
		}
	}
}

// Names returns a copy of all records.
func (d *Dataset) Names() []Name {
	out := make([]Name, len(d.names))
	for i, n := range d.names {
		out[i] = n.clone()
	}
	return out
}

// Stats summarizes a dataset.
type Stats struct {
	Total    int            `json:"total"`
	ByKind   map[Kind]int   `json:"by_kind"`
	ByGender map[Gender]int `json:"by_gender"`
	ByOrigin map[Origin]int `json:"by_origin"`
}

// Stats counts records per kind, per first-name gender and per origin.
// Gender is only counted for first names.
func (d *Dataset) Stats() Stats {
	s := Stats{
		Total:    len(d.names),
		ByKind:   make(map[Kind]int, 2),
		ByGender: make(map[Gender]int, 3),
		ByOrigin: make(map[Origin]int),
	}
	for _, n := range d.names {
		s.ByKind[n.Kind]++
		if n.Kind == First {
			s.ByGender[n.Gender]++
		}
		for _, o := range n.Origins {
			s.ByOrigin[o]++
		}
	}
	return s
}

// UsedOrigins returns the origins carried by at least one record, ordered by
// wire code.
func (d *Dataset) UsedOrigins() []Origin {
	seen := make(map[Origin]struct{})
	for _, n := range d.names {
		for _, o := range n.Origins {
			seen[o] = struct{}{}
		}
	}
	out := make([]Origin, 0, len(seen))
	for o := range seen {
		out = append(out, o)
	}
	slices.Sort(out)
	return out
}
