package codec

import "math"

// DefaultMaxPoints is the initial capacity of a growable Uncompressed
// patch (spec §6.4).
const DefaultMaxPoints = 64

// Uncompressed is the row-major patch variant and the pivot of the
// conversion lattice: every other variant can be materialized to it,
// and it can be re-encoded into any other variant.
//
// Point i lives at Data[i*Schema.Size : (i+1)*Schema.Size]. The
// mutable (non-readonly) variant grows Data geometrically (doubling
// MaxPoints) on Append.
//
// Reference: spec §3 Uncompressed patch, §4.5.
type Uncompressed struct {
	Schema    *Schema
	Readonly  bool
	NPoints   int
	MaxPoints int
	Bounds    Bounds
	Stats     *Stats
	Data      []byte
}

// NewUncompressed returns an empty, owned, growable Uncompressed
// patch with room for at least capacityHint points.
func NewUncompressed(schema *Schema, capacityHint int) *Uncompressed {
	max := DefaultMaxPoints
	for max < capacityHint {
		max *= 2
	}
	return &Uncompressed{
		Schema:    schema,
		MaxPoints: max,
		Stats:     NewStats(schema),
		Data:      make([]byte, max*schema.Size),
	}
}

// Kind implements Patch.
func (u *Uncompressed) Kind() PatchCompression { return PatchNone }

// GetHeader implements Patch.
func (u *Uncompressed) GetHeader() *Header {
	return &Header{Schema: u.Schema, Readonly: u.Readonly, NPoints: u.NPoints, Bounds: u.Bounds, Stats: u.Stats}
}

// Append adds a point's raw bytes to the patch, growing Data
// geometrically (doubling MaxPoints) if needed. Errors if u is
// readonly.
func (u *Uncompressed) Append(rec []byte) error {
	if u.Readonly {
		return &CodecError{Reason: "cannot append to a readonly patch"}
	}
	if len(rec) != u.Schema.Size {
		return &DataMismatchError{Reason: "point record size does not match schema size"}
	}
	if u.NPoints >= u.MaxPoints {
		newMax := u.MaxPoints * 2
		if newMax == 0 {
			newMax = DefaultMaxPoints
		}
		newData := make([]byte, newMax*u.Schema.Size)
		copy(newData, u.Data[:u.NPoints*u.Schema.Size])
		u.Data = newData
		u.MaxPoints = newMax
	}
	copy(u.Data[u.NPoints*u.Schema.Size:(u.NPoints+1)*u.Schema.Size], rec)
	u.NPoints++
	return nil
}

// recompute recomputes Bounds and Stats from the current Data/NPoints.
func (u *Uncompressed) recompute() error {
	b, err := u.ComputeExtent()
	if err != nil {
		return err
	}
	u.Bounds = b
	st, err := CalculateStats(u)
	if err != nil {
		return err
	}
	u.Stats = st
	return nil
}

// ComputeExtent implements Patch: scan X and Y across all points.
func (u *Uncompressed) ComputeExtent() (Bounds, error) {
	if u.NPoints == 0 || u.Schema.XPosition < 0 || u.Schema.YPosition < 0 {
		return Bounds{}, nil
	}
	xd := &u.Schema.Dims[u.Schema.XPosition]
	yd := &u.Schema.Dims[u.Schema.YPosition]
	b := Bounds{XMin: math.Inf(1), YMin: math.Inf(1), XMax: math.Inf(-1), YMax: math.Inf(-1)}
	for i := 0; i < u.NPoints; i++ {
		rec := u.Data[i*u.Schema.Size : (i+1)*u.Schema.Size]
		xs, err := ReadValue(rec[xd.ByteOffset:xd.ByteOffset+xd.Size], xd.Interpretation)
		if err != nil {
			return Bounds{}, err
		}
		ys, err := ReadValue(rec[yd.ByteOffset:yd.ByteOffset+yd.Size], yd.Interpretation)
		if err != nil {
			return Bounds{}, err
		}
		x := ScaleOffset(xs, xd)
		y := ScaleOffset(ys, yd)
		if x < b.XMin {
			b.XMin = x
		}
		if x > b.XMax {
			b.XMax = x
		}
		if y < b.YMin {
			b.YMin = y
		}
		if y > b.YMax {
			b.YMax = y
		}
	}
	return b, nil
}

// ToPointList implements Patch.
func (u *Uncompressed) ToPointList() (*PointList, error) {
	l := NewPointList(u.Schema)
	for i := 0; i < u.NPoints; i++ {
		rec := append([]byte(nil), u.Data[i*u.Schema.Size:(i+1)*u.Schema.Size]...)
		p := &Point{Schema: u.Schema, Data: rec}
		if err := l.Append(p); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Serialize implements Patch: npoints*schema.Size bytes of row-major data.
func (u *Uncompressed) Serialize() []byte {
	return append([]byte(nil), u.Data[:u.NPoints*u.Schema.Size]...)
}

// DeserializeUncompressed reads an Uncompressed patch body (spec
// §6.2.1) holding npoints records for schema.
func DeserializeUncompressed(schema *Schema, npoints int, buf []byte, readonly bool) (*Uncompressed, error) {
	want := npoints * schema.Size
	if len(buf) < want {
		return nil, &CodecError{Reason: "truncated uncompressed patch body"}
	}
	data := buf[:want]
	if !readonly {
		data = append([]byte(nil), data...)
	}
	u := &Uncompressed{
		Schema:    schema,
		Readonly:  readonly,
		NPoints:   npoints,
		MaxPoints: npoints,
		Data:      data,
	}
	if err := u.recompute(); err != nil {
		return nil, err
	}
	return u, nil
}
