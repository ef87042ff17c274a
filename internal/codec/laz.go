package codec

// LAZCodec is the opaque adapter interface for the third-party LASzip
// point-cloud codec. The real LAZperf library is an external
// collaborator (spec §1); this module only defines the shape a
// concrete adapter must satisfy and wires patches through it.
type LAZCodec interface {
	// EncodeLAZ compresses a point list into an opaque LAZ blob.
	EncodeLAZ(l *PointList) (blob []byte, bounds Bounds, err error)
	// DecodeLAZ decompresses a LAZ blob back into a point list.
	DecodeLAZ(schema *Schema, npoints int, blob []byte) (*PointList, error)
}

// lazAdapter is the process-wide registered LAZ adapter, nil until
// RegisterLAZCodec is called.
var lazAdapter LAZCodec

// RegisterLAZCodec installs the LAZ adapter used by ToLAZ/LAZ.ToPointList.
func RegisterLAZCodec(c LAZCodec) { lazAdapter = c }

// LAZ is the opaque LASzip-compressed patch variant.
//
// Reference: spec §3 LAZ patch, §4.5.
type LAZ struct {
	Schema   *Schema
	Readonly bool
	NPoints  int
	Bounds   Bounds
	Stats    *Stats
	Blob     []byte
}

func (z *LAZ) Kind() PatchCompression { return PatchLAZ }

func (z *LAZ) GetHeader() *Header {
	return &Header{Schema: z.Schema, Readonly: z.Readonly, NPoints: z.NPoints, Bounds: z.Bounds, Stats: z.Stats}
}

// ToLAZ builds a LAZ patch from an Uncompressed patch via the
// registered adapter.
func ToLAZ(u *Uncompressed) (*LAZ, error) {
	if lazAdapter == nil {
		return nil, &NotImplementedError{Reason: "LAZ adapter not registered"}
	}
	l, err := u.ToPointList()
	if err != nil {
		return nil, err
	}
	blob, bounds, err := lazAdapter.EncodeLAZ(l)
	if err != nil {
		return nil, err
	}
	return &LAZ{Schema: u.Schema, NPoints: u.NPoints, Bounds: bounds, Stats: u.Stats.Clone(), Blob: blob}, nil
}

// ToPointList implements Patch via the registered adapter.
func (z *LAZ) ToPointList() (*PointList, error) {
	if lazAdapter == nil {
		return nil, &NotImplementedError{Reason: "LAZ adapter not registered"}
	}
	return lazAdapter.DecodeLAZ(z.Schema, z.NPoints, z.Blob)
}

// ComputeExtent implements Patch: the bounds recorded at encode time.
func (z *LAZ) ComputeExtent() (Bounds, error) { return z.Bounds, nil }

// Serialize implements Patch (spec §6.2.4): u32 size, then the blob.
func (z *LAZ) Serialize() []byte {
	buf := make([]byte, 4+len(z.Blob))
	putUint32LE(buf[0:4], uint32(len(z.Blob)))
	copy(buf[4:], z.Blob)
	return buf
}

// DeserializeLAZ reads a LAZ patch body for schema holding npoints
// points from buf.
func DeserializeLAZ(schema *Schema, npoints int, buf []byte, readonly bool) (*LAZ, error) {
	if len(buf) < 4 {
		return nil, &CodecError{Reason: "truncated LAZ patch body"}
	}
	size := int(getUint32LE(buf[0:4]))
	if len(buf) < 4+size {
		return nil, &CodecError{Reason: "truncated LAZ blob"}
	}
	blob := buf[4 : 4+size]
	if !readonly {
		blob = append([]byte(nil), blob...)
	}
	z := &LAZ{Schema: schema, Readonly: readonly, NPoints: npoints, Blob: blob}
	if lazAdapter != nil {
		u, err := ToUncompressed(z)
		if err == nil {
			b, _ := u.ComputeExtent()
			z.Bounds = b
			st, _ := CalculateStats(u)
			z.Stats = st
		}
	}
	if z.Stats == nil {
		z.Stats = NewStats(schema)
	}
	return z, nil
}
