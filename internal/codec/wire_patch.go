package codec

import "fmt"

// SchemaResolver maps a wire pcid back to the Schema it names - the
// "pure function pcid -> Schema" external collaborator spec §9
// assigns to the DB binding layer, not the codec itself.
type SchemaResolver func(pcid int) (*Schema, error)

// SerializePoint writes p's §6.1 wire form: endian flag, pcid, then
// schema.size bytes of row-major point data. Always written in this
// build's host endianness.
func SerializePoint(p *Point) []byte {
	buf := make([]byte, 5+len(p.Data))
	buf[0] = byte(hostEndian)
	hostEndian.byteOrder().PutUint32(buf[1:5], uint32(p.Schema.Pcid))
	copy(buf[5:], p.Data)
	return buf
}

// DeserializePoint reads a §6.1 point blob, resolving its pcid against
// schema (which must already carry that pcid) and flipping the point
// body if the blob's declared endianness disagrees with this host.
func DeserializePoint(schema *Schema, buf []byte) (*Point, error) {
	if len(buf) < 5 {
		return nil, &CodecError{Reason: "truncated point wire header"}
	}
	flag := EndianFlag(buf[0])
	pcid := int(flag.byteOrder().Uint32(buf[1:5]))
	if pcid != schema.Pcid {
		return nil, &DataMismatchError{Reason: fmt.Sprintf("point pcid %d does not match schema pcid %d", pcid, schema.Pcid)}
	}
	if len(buf) < 5+schema.Size {
		return nil, &DataMismatchError{Reason: "point wire data shorter than schema.size"}
	}
	data := append([]byte(nil), buf[5:5+schema.Size]...)
	if flag.needsFlip() {
		flipPointData(data, schema)
	}
	return &Point{Schema: schema, Data: data}, nil
}

// SerializePatch writes p's §6.2 common header followed by its
// variant-specific body (§6.2.1-6.2.4), in this build's host
// endianness.
func SerializePatch(p Patch) []byte {
	h := p.GetHeader()
	body := p.Serialize()
	buf := make([]byte, 13+len(body))
	buf[0] = byte(hostEndian)
	bo := hostEndian.byteOrder()
	bo.PutUint32(buf[1:5], uint32(h.Schema.Pcid))
	bo.PutUint32(buf[5:9], uint32(p.Kind()))
	bo.PutUint32(buf[9:13], uint32(h.NPoints))
	copy(buf[13:], body)
	return buf
}

// DeserializePatch reads a §6.2 patch blob, resolving its pcid via
// resolve, dispatching on the declared compression code to the
// matching variant deserializer, and flipping per-value body data
// when the blob's declared endianness disagrees with this host.
//
// Nested sub-structure sizes (column byte sizes, GHT/LAZ blob sizes)
// are always written host-endian regardless of the top-level flag -
// an explicit simplification, the same one wire.go documents for
// header integers in isolation.
func DeserializePatch(resolve SchemaResolver, buf []byte) (Patch, error) {
	if len(buf) < 13 {
		return nil, &CodecError{Reason: "truncated patch wire header"}
	}
	flag := EndianFlag(buf[0])
	bo := flag.byteOrder()
	pcid := int(bo.Uint32(buf[1:5]))
	compression := PatchCompression(bo.Uint32(buf[5:9]))
	npoints := int(bo.Uint32(buf[9:13]))
	body := buf[13:]

	schema, err := resolve(pcid)
	if err != nil {
		return nil, err
	}

	switch compression {
	case PatchNone:
		if flag.needsFlip() {
			want := npoints * schema.Size
			if len(body) < want {
				return nil, &CodecError{Reason: "truncated uncompressed patch body"}
			}
			flipped := append([]byte(nil), body[:want]...)
			for i := 0; i < npoints; i++ {
				flipPointData(flipped[i*schema.Size:(i+1)*schema.Size], schema)
			}
			body = flipped
		}
		return DeserializeUncompressed(schema, npoints, body, false)
	case PatchDimensional:
		dp, err := DeserializeDimensional(schema, npoints, body, false)
		if err != nil {
			return nil, err
		}
		if flag.needsFlip() {
			if err := flipDimensionalColumns(dp); err != nil {
				return nil, err
			}
			b, err := dp.ComputeExtent()
			if err != nil {
				return nil, err
			}
			dp.Bounds = b
		}
		return dp, nil
	case PatchGHT:
		return DeserializeGHT(schema, npoints, body, false)
	case PatchLAZ:
		return DeserializeLAZ(schema, npoints, body, false)
	default:
		return nil, &CodecError{Reason: fmt.Sprintf("unknown patch compression code %d", compression)}
	}
}

// flipDimensionalColumns flips every column's values in place. Zlib
// columns have no direct flip (spec §4.2.3): they are decoded, flipped
// raw, and re-encoded instead.
func flipDimensionalColumns(dp *Dimensional) error {
	for i, col := range dp.Columns {
		if col.Compression == CompressionZlib {
			raw, err := col.Decode()
			if err != nil {
				return err
			}
			flipRawInPlace(raw.Data, raw.Interpretation.Size())
			reencoded, err := raw.Encode(CompressionZlib)
			if err != nil {
				return err
			}
			dp.Columns[i] = reencoded
			continue
		}
		if err := col.FlipEndian(); err != nil {
			return err
		}
	}
	return nil
}
