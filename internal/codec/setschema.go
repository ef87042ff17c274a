package codec

// SetSchema re-encodes p's points under newSchema, returning a new
// Uncompressed patch.
//
// When newSchema has the same row layout as p's current schema (see
// schemasRowCompatible: same names, order, interpretations, sizes,
// byte offsets, scales and offsets), this takes a fast path: the row
// data is copied verbatim and only the schema pointer (and so pcid)
// changes. Otherwise each point is reinterpreted dimension-by-
// dimension: a dimension present (by name) in both schemas is
// rescaled through physical units; a dimension only in newSchema is
// filled with defaultValue (converted through the target
// interpretation) unless strict is set, in which case a missing
// source dimension is a DataMismatchError.
//
// Reference: spec §4.11 set_schema.
func SetSchema(p Patch, newSchema *Schema, strict bool, defaultValue float64) (*Uncompressed, error) {
	u, err := ToUncompressed(p)
	if err != nil {
		return nil, err
	}
	old := u.Schema

	if schemasRowCompatible(old, newSchema) {
		out := NewUncompressed(newSchema, u.NPoints)
		copy(out.Data[:u.NPoints*newSchema.Size], u.Data[:u.NPoints*old.Size])
		out.NPoints = u.NPoints
		if err := out.recompute(); err != nil {
			return nil, err
		}
		return out, nil
	}

	out := NewUncompressed(newSchema, u.NPoints)
	for pi := 0; pi < u.NPoints; pi++ {
		src := u.Data[pi*old.Size : (pi+1)*old.Size]
		dst := out.Data[pi*newSchema.Size : (pi+1)*newSchema.Size]
		for di := range newSchema.Dims {
			nd := &newSchema.Dims[di]
			od, err := old.GetDimensionByName(nd.Name)
			if err != nil {
				if strict {
					return nil, &DataMismatchError{Reason: "source schema has no dimension named " + nd.Name}
				}
				fillStored := UnscaleUnoffset(defaultValue, nd)
				if err := WriteValue(dst[nd.ByteOffset:nd.ByteOffset+nd.Size], nd.Interpretation, fillStored); err != nil {
					return nil, err
				}
				continue
			}
			stored, err := ReadValue(src[od.ByteOffset:od.ByteOffset+od.Size], od.Interpretation)
			if err != nil {
				return nil, err
			}
			physical := ScaleOffset(stored, od)
			newStored := UnscaleUnoffset(physical, nd)
			if err := WriteValue(dst[nd.ByteOffset:nd.ByteOffset+nd.Size], nd.Interpretation, newStored); err != nil {
				return nil, err
			}
		}
	}
	out.NPoints = u.NPoints
	if err := out.recompute(); err != nil {
		return nil, err
	}
	return out, nil
}

// schemasRowCompatible reports whether a and b describe byte-for-byte
// identical row layouts (same dimensions, in the same order, with the
// same interpretation, size, scale, and offset) so points can move
// between them without reinterpretation.
func schemasRowCompatible(a, b *Schema) bool {
	if len(a.Dims) != len(b.Dims) || a.Size != b.Size {
		return false
	}
	for i := range a.Dims {
		da, db := &a.Dims[i], &b.Dims[i]
		if da.Name != db.Name || da.Interpretation != db.Interpretation ||
			da.Size != db.Size || da.ByteOffset != db.ByteOffset ||
			da.Scale != db.Scale || da.Offset != db.Offset {
			return false
		}
	}
	return true
}
