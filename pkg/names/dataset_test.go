package names_test

import (
	"bytes"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/namekit/pkg/names"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	ds := names.Load()
	require.NotNil(t, ds)
	assert.Positive(t, ds.Len())
	assert.Same(t, ds, names.Load(), "dataset must be decoded once and shared")

	for n := range ds.All() {
		assert.NotEmpty(t, n.Text)
		assert.True(t, utf8.ValidString(n.Text), "invalid utf-8 in %q", n.Text)
		assert.True(t, n.Kind.Valid())
		assert.True(t, n.Gender.Valid())
		if n.Kind == names.Last {
			assert.Equal(t, names.Unisex, n.Gender, "last name %q carries a gender", n.Text)
			assert.False(t, n.HasOrigin(names.Biblical), "last name %q is tagged biblical", n.Text)
		}
	}
}

func TestLoad_Concurrent(t *testing.T) {
	t.Parallel()

	const workers = 16
	results := make([]*names.Dataset, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = names.Load()
		}()
	}
	wg.Wait()

	for _, ds := range results {
		assert.Same(t, results[0], ds)
	}
}

func TestDataset_Names(t *testing.T) {
	t.Parallel()

	src := []names.Name{
		{Text: "Aaron", Origins: []names.Origin{names.Hebrew}, Gender: names.Male, Kind: names.First},
		{Text: "Smith", Origins: []names.Origin{names.English}, Kind: names.Last},
	}
	ds := names.NewDataset(src...)
	src[0].Origins[0] = names.Welsh

	got := ds.Names()
	require.Len(t, got, 2)
	assert.Equal(t, []names.Origin{names.Hebrew}, got[0].Origins, "NewDataset must copy its input")

	got[1].Origins[0] = names.Welsh
	assert.Equal(t, []names.Origin{names.English}, ds.Names()[1].Origins, "Names must return copies")
}

func TestDataset_All_StopsEarly(t *testing.T) {
	t.Parallel()

	seen := 0
	for range names.Load().All() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestDataset_All_YieldsCopies(t *testing.T) {
	t.Parallel()

	ds := names.NewDataset(names.Name{Text: "Cohen", Origins: []names.Origin{names.Hebrew}, Kind: names.Last})
	for n := range ds.All() {
		n.Origins[0] = names.Welsh
	}
	assert.Equal(t, []names.Origin{names.Hebrew}, ds.Names()[0].Origins)
}

func TestDataset_Stats(t *testing.T) {
	t.Parallel()

	s := sampleDataset().Stats()
	assert.Equal(t, 9, s.Total)
	assert.Equal(t, 5, s.ByKind[names.First])
	assert.Equal(t, 4, s.ByKind[names.Last])
	assert.Equal(t, 2, s.ByGender[names.Male])
	assert.Equal(t, 1, s.ByGender[names.Female])
	assert.Equal(t, 2, s.ByGender[names.Unisex], "last names are not counted per gender")
	assert.Equal(t, 2, s.ByOrigin[names.Hebrew])
	assert.Equal(t, 1, s.ByOrigin[names.Dutch])
	assert.Zero(t, s.ByOrigin[names.Japanese])
}

func TestDataset_UsedOrigins(t *testing.T) {
	t.Parallel()

	got := sampleDataset().UsedOrigins()
	assert.Equal(t, []names.Origin{
		names.Biblical, names.Dutch, names.English, names.German,
		names.Hebrew, names.Norse, names.Swedish,
	}, got)
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	src := sampleDataset().Names()
	var buf bytes.Buffer
	require.NoError(t, names.Encode(&buf, src))

	ds, err := names.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, src, ds.Names())
}

func TestEncode_InvalidRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  names.Name
	}{
		{name: "empty text", rec: names.Name{Kind: names.First}},
		{name: "bad gender", rec: names.Name{Text: "X", Gender: names.Gender(9)}},
		{name: "bad kind", rec: names.Name{Text: "X", Kind: names.Kind(9)}},
		{name: "bad origin", rec: names.Name{Text: "X", Origins: []names.Origin{names.Origin(200)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := names.Encode(&bytes.Buffer{}, []names.Name{tt.rec})
			require.Error(t, err)
			assert.ErrorIs(t, err, names.ErrEncodeDataset)
		})
	}
}

func gzipped(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	t.Run("not gzip", func(t *testing.T) {
		t.Parallel()
		_, err := names.Decode([]byte("definitely not a dataset"))
		assert.ErrorIs(t, err, names.ErrCorruptDataset)
	})

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, names.Encode(&buf, sampleDataset().Names()))
		blob := buf.Bytes()
		_, err := names.Decode(blob[:len(blob)/2])
		assert.ErrorIs(t, err, names.ErrCorruptDataset)
	})

	t.Run("not bson", func(t *testing.T) {
		t.Parallel()
		_, err := names.Decode(gzipped(t, []byte{1, 2, 3}))
		assert.ErrorIs(t, err, names.ErrCorruptDataset)
	})

	t.Run("empty document has version zero", func(t *testing.T) {
		t.Parallel()
		// Smallest valid BSON document: int32 length 5 followed by the terminator.
		_, err := names.Decode(gzipped(t, []byte{5, 0, 0, 0, 0}))
		assert.ErrorIs(t, err, names.ErrUnsupportedVersion)
	})
}
