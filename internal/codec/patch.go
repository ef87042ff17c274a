package codec

import (
	"fmt"
	"math"
)

// Bounds is the axis-aligned X/Y extent of a patch.
//
// Reference: spec §3 Bounds.
type Bounds struct {
	XMin, YMin, XMax, YMax float64
}

// Union returns the bounds covering both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		XMin: math.Min(b.XMin, o.XMin),
		YMin: math.Min(b.YMin, o.YMin),
		XMax: math.Max(b.XMax, o.XMax),
		YMax: math.Max(b.YMax, o.YMax),
	}
}

// PatchCompression identifies which of the four patch variants a
// blob or in-memory patch holds (spec §6.2 wire codes).
type PatchCompression int

const (
	PatchNone        PatchCompression = 0
	PatchGHT         PatchCompression = 1
	PatchDimensional PatchCompression = 2
	PatchLAZ         PatchCompression = 3
)

// Header is the state every patch variant shares.
//
// Reference: spec §3 (each patch variant), §4.5.
type Header struct {
	Schema   *Schema
	Readonly bool
	NPoints  int
	Bounds   Bounds
	Stats    *Stats
}

// Patch is the common contract implemented by all four patch variants
// (Uncompressed, Dimensional, GHT, LAZ).
//
// Reference: spec §4.5.
type Patch interface {
	// Kind returns which variant this patch is.
	Kind() PatchCompression
	// GetHeader returns the patch's shared header fields.
	GetHeader() *Header
	// ToPointList decompresses the patch into a point list.
	ToPointList() (*PointList, error)
	// ComputeExtent recomputes and returns the patch's X/Y bounds.
	ComputeExtent() (Bounds, error)
	// Serialize writes the patch's §6.2 wire body (the caller writes
	// the shared header).
	Serialize() []byte
}

// FromPointList builds an Uncompressed patch from l. An empty point
// list yields a nil patch (not an empty one), per spec §8 boundary
// behavior.
//
// Reference: spec §4.5 from_pointlist.
func FromPointList(l *PointList) (*Uncompressed, error) {
	if l.Len() == 0 {
		return nil, nil
	}
	schema := l.Schema
	u := NewUncompressed(schema, l.Len())
	for i, p := range l.Points {
		if p.Schema.Pcid != schema.Pcid {
			return nil, &DataMismatchError{Reason: "point pcid does not match target schema"}
		}
		copy(u.Data[i*schema.Size:(i+1)*schema.Size], p.Data)
	}
	u.NPoints = l.Len()
	if err := u.recompute(); err != nil {
		return nil, err
	}
	return u, nil
}

// FromPatchList merges patches sharing the same schema pcid into a
// single Uncompressed patch, unioning bounds and recomputing stats.
//
// Reference: spec §4.5.2 from_patchlist.
func FromPatchList(patches []Patch) (*Uncompressed, error) {
	if len(patches) == 0 {
		return nil, nil
	}
	schema := patches[0].GetHeader().Schema
	total := 0
	for _, p := range patches {
		if p.GetHeader().Schema.Pcid != schema.Pcid {
			return nil, &DataMismatchError{Reason: "cannot merge patches with different schema pcid"}
		}
		total += p.GetHeader().NPoints
	}
	if total == 0 {
		return nil, nil
	}

	out := NewUncompressed(schema, total)
	w := 0
	for _, p := range patches {
		u, err := ToUncompressed(p)
		if err != nil {
			return nil, err
		}
		copy(out.Data[w*schema.Size:(w+u.NPoints)*schema.Size], u.Data[:u.NPoints*schema.Size])
		w += u.NPoints
	}
	out.NPoints = w
	if err := out.recompute(); err != nil {
		return nil, err
	}
	return out, nil
}

// ToUncompressed materializes any patch variant to Uncompressed, the
// pivot of the conversion lattice (spec §4.5.1).
func ToUncompressed(p Patch) (*Uncompressed, error) {
	if u, ok := p.(*Uncompressed); ok {
		return u, nil
	}
	l, err := p.ToPointList()
	if err != nil {
		return nil, err
	}
	u, err := FromPointList(l)
	if err != nil {
		return nil, err
	}
	if u == nil {
		u = NewUncompressed(p.GetHeader().Schema, 0)
	}
	return u, nil
}

// Compress re-encodes an Uncompressed patch per the schema's
// preferred encoding (spec §4.5.1 patch_compress).
//
// None->None is identity. None->Dimensional builds a Dimensional
// patch, optionally refining per-dimension codec choice from hint.
// Any other source kind is an error: callers must materialize to
// Uncompressed first.
func Compress(u *Uncompressed, hint *DimStats) (Patch, error) {
	switch u.Schema.Compression {
	case PreferNone:
		return u, nil
	case PreferDimensional:
		return ToDimensional(u, hint)
	case PreferGHT:
		return ToGHT(u)
	case PreferLAZ:
		return ToLAZ(u)
	default:
		return nil, &SchemaError{Reason: fmt.Sprintf("unknown preferred compression %d", u.Schema.Compression)}
	}
}
