package codec

// GHTCodec is the opaque adapter interface for the third-party
// geohash-tree codec. The real GHT library is an external
// collaborator (spec §1); this module only defines the shape a
// concrete adapter must satisfy and wires patches through it.
type GHTCodec interface {
	// EncodeGHT serializes a point list into an opaque geohash tree blob.
	EncodeGHT(l *PointList) (blob []byte, bounds Bounds, err error)
	// DecodeGHT parses a geohash tree blob back into a point list.
	DecodeGHT(schema *Schema, blob []byte) (*PointList, error)
}

// ghtAdapter is the process-wide registered GHT adapter, nil until
// RegisterGHTCodec is called.
var ghtAdapter GHTCodec

// RegisterGHTCodec installs the GHT adapter used by ToGHT/GHT.ToPointList.
func RegisterGHTCodec(c GHTCodec) { ghtAdapter = c }

// GHT is the opaque geohash-tree patch variant.
//
// Reference: spec §3 GHT patch, §4.5.
type GHT struct {
	Schema   *Schema
	Readonly bool
	NPoints  int
	Bounds   Bounds
	Stats    *Stats
	Blob     []byte
}

func (g *GHT) Kind() PatchCompression { return PatchGHT }

func (g *GHT) GetHeader() *Header {
	return &Header{Schema: g.Schema, Readonly: g.Readonly, NPoints: g.NPoints, Bounds: g.Bounds, Stats: g.Stats}
}

// ToGHT builds a GHT patch from an Uncompressed patch via the
// registered adapter.
func ToGHT(u *Uncompressed) (*GHT, error) {
	if ghtAdapter == nil {
		return nil, &NotImplementedError{Reason: "GHT adapter not registered"}
	}
	l, err := u.ToPointList()
	if err != nil {
		return nil, err
	}
	blob, bounds, err := ghtAdapter.EncodeGHT(l)
	if err != nil {
		return nil, err
	}
	return &GHT{Schema: u.Schema, NPoints: u.NPoints, Bounds: bounds, Stats: u.Stats.Clone(), Blob: blob}, nil
}

// ToPointList implements Patch via the registered adapter.
func (g *GHT) ToPointList() (*PointList, error) {
	if ghtAdapter == nil {
		return nil, &NotImplementedError{Reason: "GHT adapter not registered"}
	}
	return ghtAdapter.DecodeGHT(g.Schema, g.Blob)
}

// ComputeExtent implements Patch: the bounds recorded at encode time
// (from the tree's own extent).
func (g *GHT) ComputeExtent() (Bounds, error) { return g.Bounds, nil }

// Serialize implements Patch (spec §6.2.3): u32 size, then the blob.
func (g *GHT) Serialize() []byte {
	buf := make([]byte, 4+len(g.Blob))
	putUint32LE(buf[0:4], uint32(len(g.Blob)))
	copy(buf[4:], g.Blob)
	return buf
}

// DeserializeGHT reads a GHT patch body from buf.
func DeserializeGHT(schema *Schema, npoints int, buf []byte, readonly bool) (*GHT, error) {
	if len(buf) < 4 {
		return nil, &CodecError{Reason: "truncated GHT patch body"}
	}
	size := int(getUint32LE(buf[0:4]))
	if len(buf) < 4+size {
		return nil, &CodecError{Reason: "truncated GHT blob"}
	}
	blob := buf[4 : 4+size]
	if !readonly {
		blob = append([]byte(nil), blob...)
	}
	g := &GHT{Schema: schema, Readonly: readonly, NPoints: npoints, Blob: blob}
	if ghtAdapter != nil {
		u, err := ToUncompressed(g)
		if err == nil {
			b, _ := u.ComputeExtent()
			g.Bounds = b
			st, _ := CalculateStats(u)
			g.Stats = st
		}
	}
	if g.Stats == nil {
		g.Stats = NewStats(schema)
	}
	return g, nil
}
