package codec

// Range returns a new Uncompressed patch holding the count points of p
// starting at first, clamped to p's bounds. first or count outside
// [0, NPoints) is clamped rather than erroring; an empty result (first
// beyond NPoints, or count <= 0) yields an empty Uncompressed patch.
//
// Reference: spec §4.10 range.
func Range(p Patch, first, count int) (*Uncompressed, error) {
	u, err := ToUncompressed(p)
	if err != nil {
		return nil, err
	}
	schema := u.Schema
	if first < 0 {
		first = 0
	}
	if first >= u.NPoints || count <= 0 {
		return NewUncompressed(schema, 0), nil
	}
	last := first + count
	if last > u.NPoints {
		last = u.NPoints
	}
	n := last - first
	out := NewUncompressed(schema, n)
	copy(out.Data[:n*schema.Size], u.Data[first*schema.Size:last*schema.Size])
	out.NPoints = n
	if err := out.recompute(); err != nil {
		return nil, err
	}
	return out, nil
}
