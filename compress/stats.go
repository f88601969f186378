package compress

// NewCompressionStats builds a CompressionStats from known original and
// compressed sizes, computing Ratio eagerly rather than leaving callers
// to call CompressionRatio() themselves.
func NewCompressionStats(algorithm CompressionType, originalSize, compressedSize int64) CompressionStats {
	stats := CompressionStats{
		Algorithm:      algorithm,
		OriginalSize:   originalSize,
		CompressedSize: compressedSize,
	}
	stats.Ratio = stats.CompressionRatio()

	return stats
}
