package compress

// CompressionType identifies which compression algorithm produced a block.
// It is a closed, four-member enum the same shape as the teacher's
// format.CompressionType (adapted here into the compress package itself
// now that jonx's catalog package owns physical column types instead).
type CompressionType uint8

const (
	CompressionNone CompressionType = iota
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

func (t CompressionType) String() string {
	switch t {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
