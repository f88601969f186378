package jonx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonx-format/jonx/compress"
	"github.com/jonx-format/jonx/framer"
	"github.com/jonx-format/jonx/jsoncodec"
	"github.com/jonx-format/jonx/reader"
)

func sampleRecords() []Record {
	return []Record{
		{"id": 1, "city": "Springfield", "score": 9.5},
		{"id": 2, "city": "Shelbyville", "score": 7.25},
		{"id": 3, "city": "Ogdenville", "score": 8.0},
	}
}

func TestEncodeRecords_RoundTripViaOpen(t *testing.T) {
	data, err := EncodeRecords(sampleRecords())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sample.jonx")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	r, err := Open(path)
	require.NoError(t, err)

	col, err := r.GetColumn("city")
	require.NoError(t, err)
	assert.Equal(t, []any{"Springfield", "Shelbyville", "Ogdenville"}, col)

	info := r.Info()
	assert.Equal(t, 3, info.NumRows)
	assert.Equal(t, 3, info.NumColumns)
}

func TestEncodeRecords_HeterogeneousRecordErrors(t *testing.T) {
	records := []Record{
		{"a": 1, "b": 2},
		{"a": 1},
	}

	_, err := EncodeRecords(records)
	require.Error(t, err)
}

func TestEncodeRecords_Empty(t *testing.T) {
	data, err := EncodeRecords(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestEncodeRecordsWithOptions_RoundTripViaOpenWithOptions(t *testing.T) {
	data, err := EncodeRecordsWithOptions(sampleRecords(),
		framer.WithJSONCodec(jsoncodec.New()),
		framer.WithCompressor(compress.NewZstdCompressor()))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sample.jonx")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	r, err := OpenWithOptions(path,
		reader.WithJSONCodec(jsoncodec.New()),
		reader.WithDecompressor(compress.NewZstdCompressor()))
	require.NoError(t, err)

	n, err := r.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
