package names

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// FormatVersion is the version written into every encoded dataset.
const FormatVersion = 1

// The blob is a gzip stream wrapping a single BSON document. Enum values are
// stored as their numeric wire codes.
type wireDataset struct {
	Version int32      `bson:"version"`
	Names   []wireName `bson:"names"`
}

type wireName struct {
	Text    string  `bson:"text"`
	Origins []int32 `bson:"origins"`
	Gender  int32   `bson:"gender"`
	Kind    int32   `bson:"kind"`
}

// Encode writes names in the embedded dataset format.
func Encode(w io.Writer, names []Name) error {
	doc := wireDataset{
		Version: FormatVersion,
		Names:   make([]wireName, 0, len(names)),
	}
	for i, n := range names {
		if err := validate(n); err != nil {
			return errors.Join(ErrEncodeDataset, fmt.Errorf("record %d (%q): %w", i, n.Text, err))
		}
		origins := make([]int32, len(n.Origins))
		for j, o := range n.Origins {
			origins[j] = int32(o)
		}
		doc.Names = append(doc.Names, wireName{
			Text:    n.Text,
			Origins: origins,
			Gender:  int32(n.Gender),
			Kind:    int32(n.Kind),
		})
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return errors.Join(ErrEncodeDataset, err)
	}

	zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return errors.Join(ErrEncodeDataset, err)
	}
	if _, err := zw.Write(raw); err != nil {
		return errors.Join(ErrEncodeDataset, err)
	}
	if err := zw.Close(); err != nil {
		return errors.Join(ErrEncodeDataset, err)
	}
	return nil
}

// Decode parses a blob produced by Encode.
func Decode(blob []byte) (*Dataset, error) {
	zr, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, errors.Join(ErrCorruptDataset, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Join(ErrCorruptDataset, err)
	}

	var doc wireDataset
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrCorruptDataset, err)
	}
	if doc.Version != FormatVersion {
		return nil, errors.Join(ErrUnsupportedVersion, fmt.Errorf("got version %d, want %d", doc.Version, FormatVersion))
	}

	records := make([]Name, 0, len(doc.Names))
	for i, w := range doc.Names {
		n, err := w.name()
		if err != nil {
			return nil, errors.Join(ErrCorruptDataset, fmt.Errorf("record %d: %w", i, err))
		}
		records = append(records, n)
	}
	return &Dataset{names: records}, nil
}

func (w wireName) name() (Name, error) {
	n := Name{Text: w.Text}
	if w.Gender < 0 || w.Gender > int32(Male) {
		return Name{}, fmt.Errorf("gender code %d", w.Gender)
	}
	n.Gender = Gender(w.Gender)
	if w.Kind < 0 || w.Kind > int32(Last) {
		return Name{}, fmt.Errorf("kind code %d", w.Kind)
	}
	n.Kind = Kind(w.Kind)
	if len(w.Origins) > 0 {
		n.Origins = make([]Origin, len(w.Origins))
	}
	for i, code := range w.Origins {
		if code < 0 || code >= int32(originCount) {
			return Name{}, fmt.Errorf("origin code %d", code)
		}
		n.Origins[i] = Origin(code)
	}
	if err := validate(n); err != nil {
		return Name{}, err
	}
	return n, nil
}

func validate(n Name) error {
	if n.Text == "" {
		return errors.New("empty name text")
	}
	if !n.Gender.Valid() {
		return ErrUnknownGender
	}
	if !n.Kind.Valid() {
		return ErrUnknownKind
	}
	for _, o := range n.Origins {
		if !o.Valid() {
			return ErrUnknownOrigin
		}
	}
	return nil
}
