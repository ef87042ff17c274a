package codec

// DimStatsMinSample is the number of points after which a DimStats
// accumulator freezes its recommendations (spec §3, §6.4
// PCDIMSTATS_MIN_SAMPLE).
const DimStatsMinSample = 10000

// PerDimStats accumulates the run/common-bit samples used to choose
// a dimension's recommended compression.
type PerDimStats struct {
	TotalRuns              int
	TotalCommonBits        int
	RecommendedCompression ByteCompression
}

// DimStats samples early patches to recommend a per-dimension codec
// for future Dimensional encoding.
//
// Reference: spec §3 Dimension statistics, §4.7.
type DimStats struct {
	Schema      *Schema
	TotalPoints int
	TotalPatches int
	PerDim      []PerDimStats
	Frozen      bool

	// MinSample is the point count at which Update freezes the
	// accumulator. Defaults to DimStatsMinSample; callers may lower it
	// (e.g. for tests) or raise it via direct field assignment.
	MinSample int
}

// NewDimStats returns a zero-initialized chooser for schema.
//
// Reference: spec §4.7 make.
func NewDimStats(schema *Schema) *DimStats {
	return &DimStats{Schema: schema, PerDim: make([]PerDimStats, len(schema.Dims)), MinSample: DimStatsMinSample}
}

// Update accumulates run counts and common-bit counts from one
// patch's raw columns, then recomputes RecommendedCompression for
// every dimension. Once TotalPoints reaches MinSample the accumulator
// is frozen and later Update calls are no-ops.
//
// Reference: spec §4.7 update, §3 choice rule.
func (ds *DimStats) Update(columns []*Bytes) error {
	if ds.Frozen {
		return nil
	}
	if len(columns) != len(ds.Schema.Dims) {
		return &DataMismatchError{Reason: "column count does not match schema dimension count"}
	}
	if len(columns) == 0 {
		return nil
	}
	npoints := columns[0].NPoints
	ds.TotalPoints += npoints
	ds.TotalPatches++

	for di, col := range columns {
		raw := col
		var err error
		if col.Compression != CompressionNone {
			raw, err = col.Decode()
			if err != nil {
				return err
			}
		}
		runs, err := rleRunCountFromRaw(raw)
		if err != nil {
			return err
		}
		ds.PerDim[di].TotalRuns += runs

		d := &ds.Schema.Dims[di]
		if d.Interpretation.IsInteger() {
			_, _, common, err := sigbitsAndOr(raw)
			if err == nil {
				ds.PerDim[di].TotalCommonBits += common
			}
		}
	}

	for di := range ds.PerDim {
		ds.PerDim[di].RecommendedCompression = ds.recommend(di)
	}
	if ds.TotalPoints >= ds.MinSample {
		ds.Frozen = true
	}
	return nil
}

// recommend applies the spec §3 choice rule for dimension di.
func (ds *DimStats) recommend(di int) ByteCompression {
	d := &ds.Schema.Dims[di]
	if !d.Interpretation.IsInteger() {
		return CompressionZlib
	}
	if ds.TotalPatches == 0 || ds.TotalPoints == 0 {
		return CompressionNone
	}
	pd := ds.PerDim[di]
	size := float64(d.Size)

	rawSize := float64(ds.TotalPoints) * size
	rleSize := float64(pd.TotalRuns) * (size + 1)

	avgCommonBits := float64(pd.TotalCommonBits) / float64(ds.TotalPatches)
	sigbitsSize := float64(ds.TotalPatches)*2*size + float64(ds.TotalPoints)*(8*size-avgCommonBits)/8

	if sigbitsSize > 0 && rawSize/sigbitsSize > 4 {
		return CompressionSigBits
	}
	if rleSize > 0 && rawSize/rleSize > 4 {
		return CompressionRLE
	}
	return CompressionZlib
}
