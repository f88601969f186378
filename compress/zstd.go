package compress

// DefaultZstdLevel is the compression level jonx's framer uses for every
// column block (spec.md §6 fixes this exactly so independently-written
// encoders produce byte-identical files for the same input).
const DefaultZstdLevel = 7

// ZstdCompressor provides Zstandard compression via github.com/valyala/gozstd,
// parameterized by an explicit level rather than a package-wide default,
// since jonx's file format mandates one fixed level while other callers
// may prefer a faster/looser one.
//
// Performance characteristics:
//   - Compression: ~5-20 ns/byte (depending on compression level)
//   - Decompression: ~2-5 ns/byte
//   - Memory usage: moderate; gozstd manages its own internal buffer pools
type ZstdCompressor struct {
	level int
}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd compressor at DefaultZstdLevel.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{level: DefaultZstdLevel}
}

// NewZstdCompressorLevel creates a Zstd compressor at an explicit level,
// for callers that want a level other than DefaultZstdLevel.
func NewZstdCompressorLevel(level int) ZstdCompressor {
	return ZstdCompressor{level: level}
}

// Level reports the compression level this compressor was constructed with.
func (c ZstdCompressor) Level() int { return c.level }
