package jsoncodec

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoJSONCodec_MarshalUnmarshal(t *testing.T) {
	c := New()

	b, err := c.Marshal([]string{"a", "b", "c"})
	require.NoError(t, err)

	var out []string
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, []string{"a", "b", "c"}, out)
}

func TestGoJSONCodec_DecodeAny_PreservesIntegers(t *testing.T) {
	c := New()

	v, err := c.DecodeAny([]byte(`[1, 2, 255]`))
	require.NoError(t, err)

	arr, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, arr, 3)

	for i, want := range []string{"1", "2", "255"} {
		num, ok := arr[i].(json.Number)
		require.True(t, ok, "element %d should decode as json.Number", i)
		assert.Equal(t, want, num.String())
	}
}

func TestGoJSONCodec_DecodeAny_Null(t *testing.T) {
	c := New()

	v, err := c.DecodeAny([]byte(`null`))
	require.NoError(t, err)
	assert.Nil(t, v)
}
