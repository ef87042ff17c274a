package codec

import "fmt"

// Dimensional is the column-major patch variant: one Bytes column per
// dimension, each independently compressed (None, RLE, SigBits, or
// Zlib).
//
// Reference: spec §3 Dimensional patch, §4.5.
type Dimensional struct {
	Schema   *Schema
	Readonly bool
	NPoints  int
	Bounds   Bounds
	Stats    *Stats
	Columns  []*Bytes // len == Schema.NDims()
}

// Kind implements Patch.
func (d *Dimensional) Kind() PatchCompression { return PatchDimensional }

// GetHeader implements Patch.
func (d *Dimensional) GetHeader() *Header {
	return &Header{Schema: d.Schema, Readonly: d.Readonly, NPoints: d.NPoints, Bounds: d.Bounds, Stats: d.Stats}
}

// ToDimensional builds a Dimensional patch from an Uncompressed
// patch, choosing a per-dimension codec. If hint is non-nil and
// frozen, its recommendation is used for each dimension; otherwise
// every column is stored raw (CompressionNone), all-equal columns
// included.
//
// Reference: spec §4.5.1 patch_compress (None->Dimensional,
// Dimensional->Dimensional).
func ToDimensional(u *Uncompressed, hint *DimStats) (*Dimensional, error) {
	schema := u.Schema
	columns := make([]*Bytes, len(schema.Dims))
	for di := range schema.Dims {
		d := &schema.Dims[di]
		raw := MakeBytes(d.Interpretation, u.NPoints)
		for i := 0; i < u.NPoints; i++ {
			rec := u.Data[i*schema.Size : (i+1)*schema.Size]
			copy(raw.Data[i*d.Size:(i+1)*d.Size], rec[d.ByteOffset:d.ByteOffset+d.Size])
		}
		target := CompressionNone
		if hint != nil && hint.Frozen && di < len(hint.PerDim) {
			target = hint.PerDim[di].RecommendedCompression
		}
		var col *Bytes
		var err error
		if target == CompressionNone {
			col = raw
		} else {
			col, err = raw.Encode(target)
			if err != nil {
				return nil, err
			}
		}
		columns[di] = col
	}
	return &Dimensional{
		Schema:  schema,
		NPoints: u.NPoints,
		Bounds:  u.Bounds,
		Stats:   u.Stats.Clone(),
		Columns: columns,
	}, nil
}

// RecompressDimensional rebuilds dp with a (possibly refined) codec
// choice per dimension, going through Uncompressed as the pivot
// (spec §4.5.1: Dimensional->Dimensional recompresses).
func RecompressDimensional(dp *Dimensional, hint *DimStats) (*Dimensional, error) {
	u, err := ToUncompressed(dp)
	if err != nil {
		return nil, err
	}
	return ToDimensional(u, hint)
}

// ComputeExtent implements Patch: per-column min/max of the X and Y columns.
func (d *Dimensional) ComputeExtent() (Bounds, error) {
	if d.NPoints == 0 || d.Schema.XPosition < 0 || d.Schema.YPosition < 0 {
		return Bounds{}, nil
	}
	xmin, xmax, _, err := d.Columns[d.Schema.XPosition].MinMax()
	if err != nil {
		return Bounds{}, err
	}
	ymin, ymax, _, err := d.Columns[d.Schema.YPosition].MinMax()
	if err != nil {
		return Bounds{}, err
	}
	xd := &d.Schema.Dims[d.Schema.XPosition]
	yd := &d.Schema.Dims[d.Schema.YPosition]
	return Bounds{
		XMin: ScaleOffset(xmin, xd), XMax: ScaleOffset(xmax, xd),
		YMin: ScaleOffset(ymin, yd), YMax: ScaleOffset(ymax, yd),
	}, nil
}

// ToPointList implements Patch: decompress every column, then
// transpose column-major back to row-major points.
func (d *Dimensional) ToPointList() (*PointList, error) {
	raws := make([]*Bytes, len(d.Columns))
	for i, col := range d.Columns {
		raw, err := col.Decode()
		if err != nil {
			return nil, err
		}
		raws[i] = raw
	}
	l := NewPointList(d.Schema)
	for pi := 0; pi < d.NPoints; pi++ {
		rec := make([]byte, d.Schema.Size)
		for di := range d.Schema.Dims {
			dim := &d.Schema.Dims[di]
			copy(rec[dim.ByteOffset:dim.ByteOffset+dim.Size], raws[di].Data[pi*dim.Size:(pi+1)*dim.Size])
		}
		if err := l.Append(&Point{Schema: d.Schema, Data: rec}); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Serialize implements Patch: one serialized column per dimension,
// in schema order (spec §6.2.2).
func (d *Dimensional) Serialize() []byte {
	var buf []byte
	for _, col := range d.Columns {
		buf = append(buf, col.Serialize()...)
	}
	return buf
}

// DeserializeDimensional reads a Dimensional patch body for schema
// from buf.
func DeserializeDimensional(schema *Schema, npoints int, buf []byte, readonly bool) (*Dimensional, error) {
	columns := make([]*Bytes, len(schema.Dims))
	off := 0
	for di := range schema.Dims {
		d := &schema.Dims[di]
		col, n, err := DeserializeBytes(buf[off:], d.Interpretation, npoints, readonly)
		if err != nil {
			return nil, fmt.Errorf("dimension %q: %w", d.Name, err)
		}
		columns[di] = col
		off += n
	}
	dp := &Dimensional{Schema: schema, Readonly: readonly, NPoints: npoints, Columns: columns}
	b, err := dp.ComputeExtent()
	if err != nil {
		return nil, err
	}
	dp.Bounds = b

	u, err := ToUncompressed(dp)
	if err != nil {
		return nil, err
	}
	st, err := CalculateStats(u)
	if err != nil {
		return nil, err
	}
	dp.Stats = st
	return dp, nil
}
