// Package names picks random person names from a curated dataset embedded in
// the binary. Names are looked up, never synthesized: every result is a real
// record tagged with its kind (first or last), gender (first names only) and
// zero or more cultural origins.
//
// # Architecture
//
//   - The dataset is stored as a gzip-compressed BSON document under data/ and
//     embedded at build time. Load decodes it once, guarded by sync.OnceValue,
//     and every caller shares the same immutable *Dataset afterwards. A corrupt
//     blob is a build defect, so Load panics instead of returning an error.
//   - Generator is a mutable builder. Each filter call extends one dimension
//     and returns the same *Generator so calls can be chained.
//   - Terminal calls (Finish, FullName) scan the dataset, count the matches and
//     ask the injected Rand for a single index, which gives every match the
//     same probability regardless of dataset order.
//
// # Usage
//
//	import "github.com/dmitrymomot/namekit/pkg/names"
//
//	rnd := rand.New(rand.NewPCG(seed, 0))
//
//	name, ok := names.New().
//	    ByOrigin(names.Greek).
//	    OnlyFirstNames().
//	    OnlyFeminine().
//	    Finish(rnd)
//
//	first, last, ok := names.New().ByFirstLetter('A').FullName(rnd)
//
// # Filters
//
//   - ByFirstLetter / ByFirstLetters: text starts with any listed rune
//     (exact, case-sensitive code point comparison).
//   - ByOrigin / ByOrigins: at least one shared origin tag.
//   - OnlyFirstNames / OnlyLastNames: kind filter, last call wins.
//   - OnlyMasculine / OnlyFeminine / OnlyUnisex: gender filter, last call wins.
//     It only constrains first names; last names always pass it.
//
// # Error Handling
//
// A query without matches is not an error: Finish and FullName report it with
// a false boolean. Configuration calls never fail. Decode and Encode return
// errors wrapping ErrCorruptDataset, ErrUnsupportedVersion or ErrEncodeDataset.
//
// # Concurrency
//
// A *Dataset is safe for concurrent reads. A *Generator may be shared by
// goroutines that only call Finish, FullName, Count, Candidates or Matches;
// adding filters while others draw is a race, so Clone a shared template
// instead. Use SharedRand when many goroutines draw at once.
//
// # Data
//
// The embedded records and the Origin tag set are a curated list maintained
// in data/names.yaml. They are not a conversion of any earlier dataset, and
// the wire codes are stable only for this package's format version.
package names
