package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdCompressor_DefaultLevel(t *testing.T) {
	c := NewZstdCompressor()
	assert.Equal(t, DefaultZstdLevel, c.Level())
}

func TestZstdCompressor_ExplicitLevel(t *testing.T) {
	c := NewZstdCompressorLevel(19)
	assert.Equal(t, 19, c.Level())
}

func TestZstdCompressor_RoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("jonx column block payload"), 200)

	for _, level := range []int{1, DefaultZstdLevel, 19} {
		c := NewZstdCompressorLevel(level)

		compressed, err := c.Compress(data)
		require.NoError(t, err)

		decompressed, err := c.Decompress(compressed)
		require.NoError(t, err)
		assert.Equal(t, data, decompressed)
	}
}

func TestPureZstdCompressor_RoundTrip(t *testing.T) {
	c := NewPureZstdCompressor()
	data := bytes.Repeat([]byte("jonx column block payload"), 200)

	compressed, err := c.Compress(data)
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

// Interoperability: gozstd and klauspost/compress/zstd both produce
// standard zstd frames, so either decoder must read the other's output.
func TestZstdCompressors_CrossDecode(t *testing.T) {
	data := []byte("cross-decoder interoperability payload")

	gozstdCompressed, err := NewZstdCompressor().Compress(data)
	require.NoError(t, err)

	decompressed, err := NewPureZstdCompressor().Decompress(gozstdCompressed)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}
