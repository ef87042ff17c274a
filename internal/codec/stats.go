package codec

import "math"

// Stats is a patch's per-dimension (min, max, avg) summary, all
// sharing the patch's schema and stored in scaled/offset units.
//
// Reference: spec §3 Statistics, §4.6.
type Stats struct {
	Min *Point
	Max *Point
	Avg *Point
}

// NewStats zero-initializes a Stats for schema.
func NewStats(schema *Schema) *Stats {
	return &Stats{
		Min: MakePoint(schema),
		Max: MakePoint(schema),
		Avg: MakePoint(schema),
	}
}

// CalculateStats computes Stats in one pass over u's row-major data.
//
// Reference: spec §4.6 calculate.
func CalculateStats(u *Uncompressed) (*Stats, error) {
	schema := u.Schema
	st := NewStats(schema)
	if u.NPoints == 0 {
		return st, nil
	}

	ndims := len(schema.Dims)
	mins := make([]float64, ndims)
	maxs := make([]float64, ndims)
	sums := make([]float64, ndims)
	for i := range mins {
		mins[i] = math.Inf(1)
		maxs[i] = math.Inf(-1)
	}

	for pi := 0; pi < u.NPoints; pi++ {
		rec := u.Data[pi*schema.Size : (pi+1)*schema.Size]
		for di := range schema.Dims {
			d := &schema.Dims[di]
			stored, err := ReadValue(rec[d.ByteOffset:d.ByteOffset+d.Size], d.Interpretation)
			if err != nil {
				return nil, err
			}
			v := ScaleOffset(stored, d)
			if v < mins[di] {
				mins[di] = v
			}
			if v > maxs[di] {
				maxs[di] = v
			}
			sums[di] += v
		}
	}

	for di := range schema.Dims {
		if err := st.Min.SetDouble(di, mins[di]); err != nil {
			return nil, err
		}
		if err := st.Max.SetDouble(di, maxs[di]); err != nil {
			return nil, err
		}
		if err := st.Avg.SetDouble(di, sums[di]/float64(u.NPoints)); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Clone returns a deep copy of st.
func (st *Stats) Clone() *Stats {
	return &Stats{Min: st.Min.Clone(), Max: st.Max.Clone(), Avg: st.Avg.Clone()}
}
