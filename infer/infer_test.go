package infer

import (
	"fmt"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonx-format/jonx/catalog"
)

func num(s string) json.Number { return json.Number(s) }

func nums(ss ...string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = num(s)
	}

	return out
}

func TestColumn_IntegerNarrowing(t *testing.T) {
	tests := []struct {
		name string
		vals []any
		want catalog.Kind
	}{
		{"fits uint8", nums("1", "2", "255"), catalog.KindUint8},
		{"fits int8", nums("-1", "0", "127"), catalog.KindInt8},
		{"single value uint8", nums("0"), catalog.KindUint8},
		{"single value int8", nums("-1"), catalog.KindInt8},
		{"needs uint16", nums("0", "65535"), catalog.KindUint16},
		{"needs uint32", nums("0", "4294967295"), catalog.KindUint32},
		{"needs uint64", nums("0", "5000000000"), catalog.KindUint64},
		{"needs int16", nums("-32768", "100"), catalog.KindInt16},
		{"needs int64", nums("-9223372036854775808", "0"), catalog.KindInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := Column(tt.vals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, typ.Kind)
			assert.False(t, typ.Nullable)
		})
	}
}

func TestColumn_NullableWrapping(t *testing.T) {
	vals := []any{nil, num("1"), num("2")}
	typ, err := Column(vals)
	require.NoError(t, err)
	assert.Equal(t, catalog.KindUint8, typ.Kind)
	assert.True(t, typ.Nullable)
}

func TestColumn_AllNullIsNullableJSON(t *testing.T) {
	typ, err := Column([]any{nil, nil})
	require.NoError(t, err)
	assert.Equal(t, catalog.KindJSON, typ.Kind)
	assert.True(t, typ.Nullable)
}

func TestColumn_EmptyIsJSON(t *testing.T) {
	typ, err := Column([]any{})
	require.NoError(t, err)
	assert.Equal(t, catalog.KindJSON, typ.Kind)
	assert.False(t, typ.Nullable)
}

func TestColumn_Bool(t *testing.T) {
	typ, err := Column([]any{true, false, true})
	require.NoError(t, err)
	assert.Equal(t, catalog.KindBool, typ.Kind)
}

func TestColumn_Binary(t *testing.T) {
	typ, err := Column([]any{[]byte("a"), []byte("bc")})
	require.NoError(t, err)
	assert.Equal(t, catalog.KindBinary, typ.Kind)
}

func TestColumn_Floats(t *testing.T) {
	t.Run("float16 range with round-trip", func(t *testing.T) {
		typ, err := Column(nums("1.5", "-2.25", "100.125"))
		require.NoError(t, err)
		assert.Equal(t, catalog.KindFloat16, typ.Kind)
	})

	t.Run("mixed int and float literal forces float path", func(t *testing.T) {
		typ, err := Column(append(nums("1"), num("2.5")))
		require.NoError(t, err)
		assert.True(t, typ.Kind.IsFloat())
	})

	t.Run("out of float16 range falls to float32", func(t *testing.T) {
		typ, err := Column(nums("70000.0"))
		require.NoError(t, err)
		assert.Equal(t, catalog.KindFloat32, typ.Kind)
	})

	t.Run("beyond float32 range falls to float64", func(t *testing.T) {
		typ, err := Column(nums("1e300"))
		require.NoError(t, err)
		assert.Equal(t, catalog.KindFloat64, typ.Kind)
	})
}

func TestColumn_UUID(t *testing.T) {
	vals := []any{
		"550e8400-e29b-41d4-a716-446655440000",
		"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
	}
	typ, err := Column(vals)
	require.NoError(t, err)
	assert.Equal(t, catalog.KindUUID, typ.Kind)
}

func TestColumn_Date(t *testing.T) {
	typ, err := Column([]any{"2024-01-01", "2024-12-31"})
	require.NoError(t, err)
	assert.Equal(t, catalog.KindDate, typ.Kind)
}

func TestColumn_Datetime(t *testing.T) {
	typ, err := Column([]any{"2024-01-01T10:00:00Z", "2024-01-01T10:00:00.123+02:00"})
	require.NoError(t, err)
	assert.Equal(t, catalog.KindDatetime, typ.Kind)
}

func TestColumn_Enum(t *testing.T) {
	typ, err := Column([]any{"A", "B", "A", "A"})
	require.NoError(t, err)
	assert.Equal(t, catalog.KindEnum, typ.Kind)
}

func TestColumn_StringDict(t *testing.T) {
	// 291 distinct values (over enum's 256 cap) repeated enough that the
	// distinct/total ratio stays under string_dict's 0.30 ceiling.
	vals := make([]any, 0, 1290)
	for i := 0; i < 1000; i++ {
		vals = append(vals, "common")
	}
	for i := 0; i < 290; i++ {
		vals = append(vals, distinctString(i))
	}

	typ, err := Column(vals)
	require.NoError(t, err)
	assert.Equal(t, catalog.KindStringDict, typ.Kind)
}

func TestColumn_PlainString(t *testing.T) {
	// every value distinct -> ratio 1.0, over string_dict's 0.30 ceiling.
	vals := make([]any, 0, 1000)
	for i := 0; i < 1000; i++ {
		vals = append(vals, distinctString(i))
	}

	typ, err := Column(vals)
	require.NoError(t, err)
	assert.Equal(t, catalog.KindStr, typ.Kind)
}

func TestColumn_JSONFallback(t *testing.T) {
	vals := []any{map[string]any{"a": num("1")}, []any{num("1"), "x"}}
	typ, err := Column(vals)
	require.NoError(t, err)
	assert.Equal(t, catalog.KindJSON, typ.Kind)
}

func TestColumn_IntegerOverflowIsError(t *testing.T) {
	_, err := Column(append(nums("-1"), num("99999999999999999999999999999999")))
	require.Error(t, err)
}

func distinctString(i int) string {
	return fmt.Sprintf("id-%d", i)
}
