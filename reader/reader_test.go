package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonx-format/jonx/catalog"
	"github.com/jonx-format/jonx/compress"
	"github.com/jonx-format/jonx/framer"
	"github.com/jonx-format/jonx/jsoncodec"
)

var jc = jsoncodec.New()

func buildFile(t *testing.T, columns []framer.Column) []byte {
	t.Helper()
	comp := compress.NewZstdCompressor()
	data, err := framer.Encode(columns, jc, comp)
	require.NoError(t, err)

	return data
}

func sampleColumns() []framer.Column {
	return []framer.Column{
		{Name: "age", Type: catalog.Type{Kind: catalog.KindUint8}, Values: []any{uint8(30), uint8(10), uint8(20)}},
		{Name: "score", Type: catalog.Type{Kind: catalog.KindFloat64}, Values: []any{3.5, 1.25, 9.0}},
		{Name: "name", Type: catalog.Type{Kind: catalog.KindStr}, Values: []any{"carol", "alice", "bob"}},
		{Name: "nickname", Type: catalog.Type{Kind: catalog.KindStr, Nullable: true}, Values: []any{"c", nil, "b"}},
	}
}

func openSample(t *testing.T) *Reader {
	t.Helper()
	data := buildFile(t, sampleColumns())
	r, err := New(data, jc, compress.NewZstdCompressor())
	require.NoError(t, err)

	return r
}

func TestNew_ParsesSchema(t *testing.T) {
	r := openSample(t)
	info := r.Info()
	assert.Equal(t, framer.Version, info.Version)
	assert.Equal(t, 4, info.NumColumns)
	assert.Equal(t, []string{"age", "score", "name", "nickname"}, info.Fields)
	assert.Equal(t, "uint8", info.Types["age"])
	assert.Equal(t, "nullable<str>", info.Types["nickname"])
}

func TestGetColumn_Uint8(t *testing.T) {
	r := openSample(t)
	col, err := r.GetColumn("age")
	require.NoError(t, err)
	assert.Equal(t, []any{uint64(30), uint64(10), uint64(20)}, col)
}

func TestGetColumn_UnknownField(t *testing.T) {
	r := openSample(t)
	_, err := r.GetColumn("nope")
	require.Error(t, err)
}

func TestGetColumn_CachesResult(t *testing.T) {
	r := openSample(t)
	first, err := r.GetColumn("name")
	require.NoError(t, err)
	second, err := r.GetColumn("name")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetColumns_Multiple(t *testing.T) {
	r := openSample(t)
	cols, err := r.GetColumns([]string{"age", "name"})
	require.NoError(t, err)
	assert.Len(t, cols, 2)
	assert.Contains(t, cols, "age")
	assert.Contains(t, cols, "name")
}

func TestFindMin_UsesIndex(t *testing.T) {
	r := openSample(t)
	v, err := r.FindMin("age", true)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), v)
}

func TestFindMax_LinearFallback(t *testing.T) {
	r := openSample(t)
	v, err := r.FindMax("age", false)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), v)
}

func TestFindMin_StringColumn(t *testing.T) {
	r := openSample(t)
	v, err := r.FindMin("name", false)
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
}

func TestFindMin_NullableSkipsNulls(t *testing.T) {
	r := openSample(t)
	v, err := r.FindMin("nickname", false)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestSumAvg_Uint8(t *testing.T) {
	r := openSample(t)
	sum, err := r.Sum("age")
	require.NoError(t, err)
	assert.Equal(t, uint64(60), sum)

	avg, err := r.Avg("age")
	require.NoError(t, err)
	assert.Equal(t, 20.0, avg)
}

func TestSum_NonNumericErrors(t *testing.T) {
	r := openSample(t)
	_, err := r.Sum("name")
	require.Error(t, err)
}

func TestCount_NoArgReturnsN(t *testing.T) {
	r := openSample(t)
	n, err := r.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCount_WithField(t *testing.T) {
	r := openSample(t)
	n, err := r.Count("age")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestHasIndex(t *testing.T) {
	r := openSample(t)
	has, err := r.HasIndex("age")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = r.HasIndex("name")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestIsNumeric(t *testing.T) {
	r := openSample(t)
	ok, err := r.IsNumeric("score")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IsNumeric("name")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckSchema_Valid(t *testing.T) {
	r := openSample(t)
	report := r.CheckSchema()
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestValidate_AggregatesAcrossColumns(t *testing.T) {
	r := openSample(t)
	report := r.Validate()
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open("/nonexistent/path/to/jonx/file", jc, compress.NewZstdCompressor())
	require.Error(t, err)
}

func TestColumnStats_ReportsSizes(t *testing.T) {
	r := openSample(t)
	stats, err := r.ColumnStats("name")
	require.NoError(t, err)
	assert.Equal(t, compress.CompressionZstd, stats.Algorithm)
	assert.Positive(t, stats.OriginalSize)
	assert.Positive(t, stats.CompressedSize)
}

func TestColumnStats_UnknownField(t *testing.T) {
	r := openSample(t)
	_, err := r.ColumnStats("nope")
	require.Error(t, err)
}

func TestInfo_ReportsCompressedBytes(t *testing.T) {
	r := openSample(t)
	info := r.Info()
	assert.Positive(t, info.CompressedBytes)
}
