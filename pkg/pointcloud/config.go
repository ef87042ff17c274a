package pointcloud

// Config carries the codec-level defaults of spec §6.4. Only
// DimStatsMinSample is read by the codec (through NewDimStats); the
// other fields report the codec's fixed behavior, and changing them
// has no effect.
type Config struct {
	// SigBitsEnforce8ByteRestriction reports that the sig-bits codec
	// refuses 8-byte (64-bit) interpretations rather than attempting to
	// pack them. The codec always refuses them, whatever this is set to.
	SigBitsEnforce8ByteRestriction bool

	// ZlibLevel reports the compression level used for Zlib-compressed
	// columns (the codec's fixed ZlibLevel constant).
	ZlibLevel int

	// RLERunCap reports the maximum count value in a single RLE run
	// entry, which the codec fixes at 255.
	RLERunCap int

	// DimStatsMinSample is the number of points after which a DimStats
	// built by NewDimStats freezes its recommendations.
	DimStatsMinSample int
}

// DefaultConfig returns the spec §6.4 defaults.
func DefaultConfig() Config {
	return Config{
		SigBitsEnforce8ByteRestriction: true,
		ZlibLevel:                      9,
		RLERunCap:                      255,
		DimStatsMinSample:              10000,
	}
}
