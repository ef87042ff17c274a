package pointcloud

import "github.com/beetlebugorg/pcpatch/internal/codec"

// FilterOp is a filter comparison operator.
type FilterOp int

const (
	GT      FilterOp = FilterOp(codec.FilterGT)
	LT      FilterOp = FilterOp(codec.FilterLT)
	EQ      FilterOp = FilterOp(codec.FilterEQ)
	Between FilterOp = FilterOp(codec.FilterBetween)
)

// Bounds is the axis-aligned X/Y extent of a patch.
type Bounds struct {
	XMin, YMin, XMax, YMax float64
}

// Stats is a patch's per-dimension (min, max, avg) summary.
type Stats struct {
	Min, Max, Avg *Point
}

// Patch is a collection of points sharing one schema, held in one of
// four encodings (Uncompressed, Dimensional, GHT, or LAZ).
type Patch struct {
	inner  codec.Patch
	schema *Schema
}

func wrap(p codec.Patch, schema *Schema) *Patch {
	if p == nil {
		return nil
	}
	return &Patch{inner: p, schema: schema}
}

// FromPoints builds an Uncompressed patch from points. An empty slice
// yields a nil patch (not an empty one).
func FromPoints(schema *Schema, points []*Point) (*Patch, error) {
	l := codec.NewPointList(schema.inner)
	for _, p := range points {
		if err := l.Append(p.inner); err != nil {
			return nil, err
		}
	}
	u, err := codec.FromPointList(l)
	if err != nil {
		return nil, err
	}
	return wrap(u, schema), nil
}

// Merge combines patches sharing the same schema pcid into a single
// Uncompressed patch.
func Merge(patches []*Patch) (*Patch, error) {
	cps := make([]codec.Patch, len(patches))
	var schema *Schema
	for i, p := range patches {
		cps[i] = p.inner
		schema = p.schema
	}
	u, err := codec.FromPatchList(cps)
	if err != nil {
		return nil, err
	}
	return wrap(u, schema), nil
}

// NPoints returns the number of points in the patch.
func (p *Patch) NPoints() int { return p.inner.GetHeader().NPoints }

// Schema returns the patch's schema.
func (p *Patch) Schema() *Schema { return p.schema }

// Bounds returns the patch's recorded X/Y extent.
func (p *Patch) Bounds() Bounds {
	b := p.inner.GetHeader().Bounds
	return Bounds{XMin: b.XMin, YMin: b.YMin, XMax: b.XMax, YMax: b.YMax}
}

// Stats returns the patch's per-dimension min/max/avg.
func (p *Patch) Stats() Stats {
	st := p.inner.GetHeader().Stats
	return Stats{Min: &Point{inner: st.Min}, Max: &Point{inner: st.Max}, Avg: &Point{inner: st.Avg}}
}

// Points decompresses the patch into its constituent points.
func (p *Patch) Points() ([]*Point, error) {
	l, err := p.inner.ToPointList()
	if err != nil {
		return nil, err
	}
	out := make([]*Point, l.Len())
	for i, pt := range l.Points {
		out[i] = &Point{inner: pt}
	}
	return out, nil
}

// Compress re-encodes the patch per its schema's preferred encoding.
// hint, if non-nil and frozen, refines per-dimension codec choice for
// a Dimensional target.
func (p *Patch) Compress(hint *DimStats) (*Patch, error) {
	u, err := codec.ToUncompressed(p.inner)
	if err != nil {
		return nil, err
	}
	var cdh *codec.DimStats
	if hint != nil {
		cdh = hint.inner
	}
	out, err := codec.Compress(u, cdh)
	if err != nil {
		return nil, err
	}
	return wrap(out, p.schema), nil
}

// Decompress materializes the patch to its row-major Uncompressed form.
func (p *Patch) Decompress() (*Patch, error) {
	u, err := codec.ToUncompressed(p.inner)
	if err != nil {
		return nil, err
	}
	return wrap(u, p.schema), nil
}

// Filter selects the points whose value at dimName satisfies op
// against v1 (and v2, for Between).
func (p *Patch) Filter(dimName string, op FilterOp, v1, v2 float64) (*Patch, error) {
	out, err := codec.Filter(p.inner, dimName, codec.FilterOp(op), v1, v2)
	if err != nil {
		return nil, err
	}
	return wrap(out, p.schema), nil
}

// Sort returns a new patch holding the points stably ordered by
// lexicographic comparison of dims, in the order given.
func (p *Patch) Sort(dims []string) (*Patch, error) {
	out, err := codec.Sort(p.inner, dims)
	if err != nil {
		return nil, err
	}
	return wrap(out, p.schema), nil
}

// IsSorted reports whether the patch's points are already ordered
// under the lexicographic order of dims: non-decreasing when strict
// is false, strictly increasing when strict is true.
func (p *Patch) IsSorted(dims []string, strict bool) (bool, error) {
	return codec.IsSorted(p.inner, dims, strict)
}

// Range returns a new Uncompressed patch holding the count points
// starting at first.
func (p *Patch) Range(first, count int) (*Patch, error) {
	out, err := codec.Range(p.inner, first, count)
	if err != nil {
		return nil, err
	}
	return wrap(out, p.schema), nil
}

// SetSchema re-encodes the patch's points under newSchema. strict
// requires every dimension of newSchema to have a same-named
// counterpart in the patch's current schema; when strict is false, a
// dimension with no counterpart is filled with defaultValue.
func (p *Patch) SetSchema(newSchema *Schema, strict bool, defaultValue float64) (*Patch, error) {
	out, err := codec.SetSchema(p.inner, newSchema.inner, strict, defaultValue)
	if err != nil {
		return nil, err
	}
	return wrap(out, newSchema), nil
}

// WKB renders the patch's bounds as an OGC EWKB POLYGON.
func (p *Patch) WKB() ([]byte, error) {
	b := p.inner.GetHeader().Bounds
	return codec.BoundsWKB(codec.Bounds{XMin: b.XMin, YMin: b.YMin, XMax: b.XMax, YMax: b.YMax}, p.schema.inner.Srid)
}

// Serialize writes the patch's §6.2 wire form (common header plus
// variant-specific body).
func (p *Patch) Serialize() []byte { return codec.SerializePatch(p.inner) }

// DeserializePatch reads a §6.2 patch blob, resolving its pcid via resolve.
func DeserializePatch(resolve func(pcid int) (*Schema, error), buf []byte) (*Patch, error) {
	var resolved *Schema
	inner, err := codec.DeserializePatch(func(pcid int) (*codec.Schema, error) {
		s, err := resolve(pcid)
		if err != nil {
			return nil, err
		}
		resolved = s
		return s.inner, nil
	}, buf)
	if err != nil {
		return nil, err
	}
	return wrap(inner, resolved), nil
}

// DimStats samples early patches to recommend a per-dimension codec
// for future Dimensional encoding.
type DimStats struct {
	inner *codec.DimStats
}

// NewDimStats returns a zero-initialized chooser for schema, freezing
// after cfg.DimStatsMinSample points.
func NewDimStats(schema *Schema, cfg Config) *DimStats {
	inner := codec.NewDimStats(schema.inner)
	if cfg.DimStatsMinSample > 0 {
		inner.MinSample = cfg.DimStatsMinSample
	}
	return &DimStats{inner: inner}
}

// Update accumulates samples from one Dimensional patch's columns.
func (ds *DimStats) Update(p *Patch) error {
	dp, ok := p.inner.(*codec.Dimensional)
	if !ok {
		return &codec.DataMismatchError{Reason: "DimStats.Update requires a Dimensional patch"}
	}
	return ds.inner.Update(dp.Columns)
}

// Frozen reports whether the chooser has stopped updating its
// recommendations after seeing enough samples.
func (ds *DimStats) Frozen() bool { return ds.inner.Frozen }
