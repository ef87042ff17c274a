package codec

import "fmt"

// Filter selects the points of p whose value at dimName satisfies op
// against v1 (and v2, for FilterBetween), returning a new patch. An
// Uncompressed or Dimensional p yields a patch of the same variant;
// GHT and LAZ patches are materialized and yield an Uncompressed
// patch. When the recorded stats show no point can match, the result
// is a zero-point Uncompressed patch whatever the variant of p.
//
// For FilterBetween, v1 and v2 may be given in either order; Filter
// swaps them when v2 < v1.
//
// Reference: spec §4.8 filter.
func Filter(p Patch, dimName string, op FilterOp, v1, v2 float64) (Patch, error) {
	if op == FilterBetween && v2 < v1 {
		v1, v2 = v2, v1
	}
	schema := p.GetHeader().Schema
	d, err := schema.GetDimensionByName(dimName)
	if err != nil {
		return nil, err
	}

	if short, ok := shortCircuitEmpty(p, d, op, v1, v2); ok {
		return short, nil
	}

	switch t := p.(type) {
	case *Uncompressed:
		return filterUncompressed(t, d, op, v1, v2)
	case *Dimensional:
		return filterDimensional(t, d, op, v1, v2)
	default:
		u, err := ToUncompressed(p)
		if err != nil {
			return nil, err
		}
		return filterUncompressed(u, d, op, v1, v2)
	}
}

// shortCircuitEmpty uses the patch's recorded per-dimension min/max to
// decide, without scanning, that no point can possibly match - e.g. a
// GT filter above the dimension's recorded max.
func shortCircuitEmpty(p Patch, d *Dimension, op FilterOp, v1, v2 float64) (Patch, bool) {
	h := p.GetHeader()
	if h.Stats == nil || h.NPoints == 0 {
		return nil, false
	}
	dmin, err1 := h.Stats.Min.GetDouble(d.Position)
	dmax, err2 := h.Stats.Max.GetDouble(d.Position)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	possible := true
	switch op {
	case FilterGT:
		possible = dmax > v1
	case FilterLT:
		possible = dmin < v1
	case FilterEQ:
		possible = dmin <= v1 && v1 <= dmax
	case FilterBetween:
		possible = dmax > v1 && dmin < v2
	}
	if possible {
		return nil, false
	}
	return emptyLikePatch(p), true
}

func emptyLikePatch(p Patch) Patch {
	return NewUncompressed(p.GetHeader().Schema, 0)
}

func filterUncompressed(u *Uncompressed, d *Dimension, op FilterOp, v1, v2 float64) (*Uncompressed, error) {
	bitmap := NewBitmap(u.NPoints)
	for i := 0; i < u.NPoints; i++ {
		rec := u.Data[i*u.Schema.Size : (i+1)*u.Schema.Size]
		stored, err := ReadValue(rec[d.ByteOffset:d.ByteOffset+d.Size], d.Interpretation)
		if err != nil {
			return nil, err
		}
		value := ScaleOffset(stored, d)
		bitmap.MatchFilter(i, value, op, v1, v2)
	}

	out := NewUncompressed(u.Schema, bitmap.NSet())
	w := 0
	for i := 0; i < u.NPoints; i++ {
		if !bitmap.Get(i) {
			continue
		}
		copy(out.Data[w*u.Schema.Size:(w+1)*u.Schema.Size], u.Data[i*u.Schema.Size:(i+1)*u.Schema.Size])
		w++
	}
	out.NPoints = w
	if err := out.recompute(); err != nil {
		return nil, err
	}
	return out, nil
}

// filterDimensional builds the selection bitmap by decoding only the
// filtered dimension's column (an RLE column is decoded as well; its
// runs are not matched run by run here), then filters every column,
// the target included, against the same bitmap via Bytes.Filter, which
// does filter RLE columns run by run. The patch is never materialized
// to Uncompressed.
//
// Reference: spec §4.8 ("a Dimensional patch filters its target
// column directly, then applies the resulting bitmap to every other
// column without a full round-trip through Uncompressed").
func filterDimensional(dp *Dimensional, d *Dimension, op FilterOp, v1, v2 float64) (*Dimensional, error) {
	targetRaw, err := dp.Columns[d.Position].Decode()
	if err != nil {
		return nil, err
	}
	bitmap := NewBitmap(dp.NPoints)
	for i := 0; i < dp.NPoints; i++ {
		stored, err := ReadValue(targetRaw.Data[i*d.Size:(i+1)*d.Size], d.Interpretation)
		if err != nil {
			return nil, err
		}
		value := ScaleOffset(stored, d)
		bitmap.MatchFilter(i, value, op, v1, v2)
	}

	ndims := len(dp.Schema.Dims)
	columns := make([]*Bytes, ndims)
	mins := make([]float64, ndims)
	maxs := make([]float64, ndims)
	avgs := make([]float64, ndims)
	for di, col := range dp.Columns {
		out, min, max, sum, err := col.Filter(bitmap)
		if err != nil {
			return nil, fmt.Errorf("filtering dimension %q: %w", dp.Schema.Dims[di].Name, err)
		}
		columns[di] = out
		mins[di] = ScaleOffset(min, &dp.Schema.Dims[di])
		maxs[di] = ScaleOffset(max, &dp.Schema.Dims[di])
		if bitmap.NSet() > 0 {
			avgs[di] = ScaleOffset(sum/float64(bitmap.NSet()), &dp.Schema.Dims[di])
		}
	}

	out := &Dimensional{Schema: dp.Schema, NPoints: bitmap.NSet(), Columns: columns}
	st := NewStats(dp.Schema)
	for di := range dp.Schema.Dims {
		if err := st.Min.SetDouble(di, mins[di]); err != nil {
			return nil, err
		}
		if err := st.Max.SetDouble(di, maxs[di]); err != nil {
			return nil, err
		}
		if err := st.Avg.SetDouble(di, avgs[di]); err != nil {
			return nil, err
		}
	}
	out.Stats = st
	b, err := out.ComputeExtent()
	if err != nil {
		return nil, err
	}
	out.Bounds = b
	return out, nil
}
