package codec

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonx-format/jonx/catalog"
	"github.com/jonx-format/jonx/jsoncodec"
)

var jc = jsoncodec.New()

func roundTrip(t *testing.T, typ catalog.Type, values []any) []any {
	t.Helper()

	b, err := Encode(typ, values, jc)
	require.NoError(t, err)

	out, err := Decode(typ, b, len(values), jc)
	require.NoError(t, err)

	return out
}

func TestEncodeDecode_Integers(t *testing.T) {
	typ := catalog.Type{Kind: catalog.KindUint8}
	values := []any{json.Number("0"), json.Number("1"), json.Number("255")}

	out := roundTrip(t, typ, values)
	assert.Equal(t, []any{uint64(0), uint64(1), uint64(255)}, out)
}

func TestEncodeDecode_SignedOutOfRangeErrors(t *testing.T) {
	typ := catalog.Type{Kind: catalog.KindInt8}
	_, err := Encode(typ, []any{json.Number("200")}, jc)
	require.Error(t, err)
}

func TestEncodeDecode_Float64(t *testing.T) {
	typ := catalog.Type{Kind: catalog.KindFloat64}
	values := []any{json.Number("1e300"), json.Number("-1.5")}

	out := roundTrip(t, typ, values)
	require.Len(t, out, 2)
	assert.InDelta(t, 1e300, out[0].(float64), 1e290)
	assert.InDelta(t, -1.5, out[1].(float64), 1e-9)
}

func TestEncodeDecode_Bool(t *testing.T) {
	typ := catalog.Type{Kind: catalog.KindBool}
	out := roundTrip(t, typ, []any{true, false, true})
	assert.Equal(t, []any{true, false, true}, out)
}

func TestEncodeDecode_Str(t *testing.T) {
	typ := catalog.Type{Kind: catalog.KindStr}
	out := roundTrip(t, typ, []any{"hello", "world"})
	assert.Equal(t, []any{"hello", "world"}, out)
}

func TestEncodeDecode_UUID(t *testing.T) {
	typ := catalog.Type{Kind: catalog.KindUUID}
	id := "550e8400-e29b-41d4-a716-446655440000"
	out := roundTrip(t, typ, []any{id})
	assert.Equal(t, []any{id}, out)
}

func TestEncodeDecode_Binary(t *testing.T) {
	typ := catalog.Type{Kind: catalog.KindBinary}
	out := roundTrip(t, typ, []any{[]byte("abc"), []byte{0, 1, 2}})
	require.Len(t, out, 2)
	assert.Equal(t, []byte("abc"), out[0])
	assert.Equal(t, []byte{0, 1, 2}, out[1])
}

func TestEncodeDecode_Enum(t *testing.T) {
	typ := catalog.Type{Kind: catalog.KindEnum}
	out := roundTrip(t, typ, []any{"A", "B", "A", "A"})
	assert.Equal(t, []any{"A", "B", "A", "A"}, out)
}

func TestEncodeDecode_JSON(t *testing.T) {
	typ := catalog.Type{Kind: catalog.KindJSON}
	values := []any{map[string]any{"a": json.Number("1")}, []any{json.Number("1"), "x"}}

	out := roundTrip(t, typ, values)
	require.Len(t, out, 2)
	m, ok := out[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), m["a"])
}

func TestEncodeDecode_NullableInt(t *testing.T) {
	typ := catalog.Type{Kind: catalog.KindUint8, Nullable: true}
	values := []any{nil, json.Number("1"), json.Number("2"), nil}

	out := roundTrip(t, typ, values)
	assert.Equal(t, []any{nil, uint64(1), uint64(2), nil}, out)
}

func TestEncodeDecode_NullableString(t *testing.T) {
	typ := catalog.Type{Kind: catalog.KindStr, Nullable: true}
	values := []any{"a", nil, "b"}

	out := roundTrip(t, typ, values)
	assert.Equal(t, []any{"a", nil, "b"}, out)
}

func TestEncodeDecode_NullableEnum(t *testing.T) {
	typ := catalog.Type{Kind: catalog.KindEnum, Nullable: true}
	values := []any{"x", nil, "x", "y"}

	out := roundTrip(t, typ, values)
	assert.Equal(t, []any{"x", nil, "x", "y"}, out)
}

func TestEncodeDecode_BlockLengthMismatch(t *testing.T) {
	typ := catalog.Type{Kind: catalog.KindUint32}
	b, err := Encode(typ, []any{json.Number("1"), json.Number("2")}, jc)
	require.NoError(t, err)

	_, err = Decode(typ, b, 3, jc)
	require.Error(t, err)
}
