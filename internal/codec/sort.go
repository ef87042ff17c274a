package codec

import "sort"

// Sort returns a new Uncompressed patch holding p's points stably
// ordered by lexicographic comparison of dims (each compared in
// scaled/physical units), in the order given.
//
// Reference: spec §4.9 sort.
func Sort(p Patch, dims []string) (*Uncompressed, error) {
	u, err := ToUncompressed(p)
	if err != nil {
		return nil, err
	}
	schema := u.Schema
	positions := make([]int, len(dims))
	for i, name := range dims {
		d, err := schema.GetDimensionByName(name)
		if err != nil {
			return nil, err
		}
		positions[i] = d.Position
	}

	recSize := schema.Size
	order := make([]int, u.NPoints)
	for i := range order {
		order[i] = i
	}
	values := make([][]float64, u.NPoints)
	for i := 0; i < u.NPoints; i++ {
		rec := u.Data[i*recSize : (i+1)*recSize]
		row := make([]float64, len(positions))
		for k, pos := range positions {
			d := &schema.Dims[pos]
			stored, err := ReadValue(rec[d.ByteOffset:d.ByteOffset+d.Size], d.Interpretation)
			if err != nil {
				return nil, err
			}
			row[k] = ScaleOffset(stored, d)
		}
		values[i] = row
	}

	sort.SliceStable(order, func(a, b int) bool {
		va, vb := values[order[a]], values[order[b]]
		for k := range va {
			if va[k] != vb[k] {
				return va[k] < vb[k]
			}
		}
		return false
	})

	out := NewUncompressed(schema, u.NPoints)
	for w, i := range order {
		copy(out.Data[w*recSize:(w+1)*recSize], u.Data[i*recSize:(i+1)*recSize])
	}
	out.NPoints = u.NPoints
	if err := out.recompute(); err != nil {
		return nil, err
	}
	return out, nil
}

// IsSorted reports whether p's points are already ordered under the
// lexicographic order of dims: non-decreasing when strict is false,
// strictly increasing (no adjacent ties) when strict is true. A
// single-dimension Dimensional patch takes the fast path of spec
// §4.9: None is a direct linear scan, RLE walks runs without
// decoding, and SigBits/Zlib decode once then scan - none of them pay
// for a full point-list materialization.
//
// Reference: spec §4.9 is_sorted.
func IsSorted(p Patch, dims []string, strict bool) (bool, error) {
	schema := p.GetHeader().Schema
	if dp, ok := p.(*Dimensional); ok && len(dims) == 1 {
		d, err := schema.GetDimensionByName(dims[0])
		if err != nil {
			return false, err
		}
		return isSortedDimensionalColumn(dp.Columns[d.Position], strict)
	}

	u, err := ToUncompressed(p)
	if err != nil {
		return false, err
	}
	positions := make([]int, len(dims))
	for i, name := range dims {
		d, err := schema.GetDimensionByName(name)
		if err != nil {
			return false, err
		}
		positions[i] = d.Position
	}
	recSize := schema.Size
	var prev []float64
	for i := 0; i < u.NPoints; i++ {
		rec := u.Data[i*recSize : (i+1)*recSize]
		row := make([]float64, len(positions))
		for k, pos := range positions {
			d := &schema.Dims[pos]
			stored, err := ReadValue(rec[d.ByteOffset:d.ByteOffset+d.Size], d.Interpretation)
			if err != nil {
				return false, err
			}
			row[k] = ScaleOffset(stored, d)
		}
		if prev != nil {
			if strict && !lexLess(prev, row) {
				return false, nil
			}
			if !strict && lexLess(row, prev) {
				return false, nil
			}
		}
		prev = row
	}
	return true, nil
}

func lexLess(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func isSortedDimensionalColumn(col *Bytes, strict bool) (bool, error) {
	switch col.Compression {
	case CompressionRLE:
		return rleIsSorted(col, strict)
	default:
		raw := col
		var err error
		if col.Compression != CompressionNone {
			raw, err = col.Decode()
			if err != nil {
				return false, err
			}
		}
		size := raw.Interpretation.Size()
		var prev float64
		for i := 0; i < raw.NPoints; i++ {
			v, err := ReadValue(raw.Data[i*size:(i+1)*size], raw.Interpretation)
			if err != nil {
				return false, err
			}
			if i > 0 {
				if strict && v <= prev {
					return false, nil
				}
				if !strict && v < prev {
					return false, nil
				}
			}
			prev = v
		}
		return true, nil
	}
}
