// Package compress provides compression and decompression codecs for jonx
// column blocks.
//
// A jonx file always compresses each column's block with Zstandard at a
// fixed level (spec.md §6 fixes level 7), so ZstdCompressor is the only
// codec the file format itself emits. The package also carries S2, LZ4,
// and a pure-Go zstd fallback as alternate Compressor/Decompressor
// implementations behind the same collaborator interface, grounded on the
// teacher's multi-algorithm compress package, for tooling built on top of
// jonx that wants a different space/speed tradeoff than the file format's.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported algorithms
//
//   - None (CompressionNone): bypasses compression, useful for
//     benchmarking overhead or already-incompressible data.
//   - Zstd (CompressionZstd): ZstdCompressor wraps
//     github.com/valyala/gozstd with an explicit, caller-chosen level;
//     the framer uses whatever Compressor it is given, and jonx's
//     EncodeRecords/Open construct it at DefaultZstdLevel (7).
//     PureZstdCompressor wraps github.com/klauspost/compress/zstd for
//     environments that want a pure-Go decoder instead.
//   - S2 (CompressionS2) and LZ4 (CompressionLZ4): faster, lower-ratio
//     alternatives. jonx's file format never emits them, but they
//     implement the same Codec interface so tooling built on this
//     package can swap algorithms without touching call sites.
//
// # Memory management
//
// PureZstdCompressor pools its encoders and decoders, and LZ4Compressor
// pools its block compressors (sync.Pool), since reuse after warmup avoids
// allocation. ZstdCompressor keeps no pool of its own and relies on
// gozstd's internal buffer pools. S2 and NoOp are stateless and need no
// pooling.
//
// # Thread safety
//
// All codec implementations are safe for concurrent use.
package compress
