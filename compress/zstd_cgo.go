package compress

import (
	"github.com/valyala/gozstd"
)

// Compress compresses data at c.level using gozstd's cgo zstd binding.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, c.level), nil
}

// Decompress decompresses gozstd-compressed data. Level does not need to
// be known to decompress; zstd frames are self-describing.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
