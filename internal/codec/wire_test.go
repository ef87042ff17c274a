package codec

import "testing"

func TestPointWireRoundTrip(t *testing.T) {
	schema := xyziSchema(t)
	p, err := PointFromDoubleArray(schema, []float64{0.02, 0.03, 0.05, 6})
	if err != nil {
		t.Fatalf("PointFromDoubleArray: %v", err)
	}
	buf := SerializePoint(p)
	back, err := DeserializePoint(schema, buf)
	if err != nil {
		t.Fatalf("DeserializePoint: %v", err)
	}
	for di := 0; di < 4; di++ {
		want, _ := p.GetDouble(di)
		got, err := back.GetDouble(di)
		if err != nil {
			t.Fatalf("GetDouble: %v", err)
		}
		if got != want {
			t.Errorf("dim %d = %v, want %v", di, got, want)
		}
	}
}

// oppositeEndianPointBlob flips a host-endian point header+body into
// the declared-opposite-endian wire form, the same transform a producer
// on the other-endian host would have written.
func oppositeEndianPointBlob(t *testing.T, buf []byte, schema *Schema) []byte {
	t.Helper()
	out := append([]byte(nil), buf...)
	out[0] = byte(1 - hostEndian)
	opp := EndianFlag(out[0]).byteOrder()
	pcid := hostEndian.byteOrder().Uint32(buf[1:5])
	opp.PutUint32(out[1:5], pcid)
	flipPointData(out[5:5+schema.Size], schema)
	return out
}

// TestPointWireEndianInvariance: deserializing a blob declared in the
// opposite endianness from this host reconstructs the identical point
// that was serialized, once its body is flipped and re-declared.
func TestPointWireEndianInvariance(t *testing.T) {
	schema := xyziSchema(t)
	p, err := PointFromDoubleArray(schema, []float64{0.02, 0.03, 0.05, 6})
	if err != nil {
		t.Fatalf("PointFromDoubleArray: %v", err)
	}
	native := SerializePoint(p)
	flipped := oppositeEndianPointBlob(t, native, schema)

	back, err := DeserializePoint(schema, flipped)
	if err != nil {
		t.Fatalf("DeserializePoint: %v", err)
	}
	for di := 0; di < 4; di++ {
		want, _ := p.GetDouble(di)
		got, err := back.GetDouble(di)
		if err != nil {
			t.Fatalf("GetDouble: %v", err)
		}
		if got != want {
			t.Errorf("dim %d = %v, want %v", di, got, want)
		}
	}
}

// oppositeEndianPatchBlob performs the same transform as
// oppositeEndianPointBlob for an Uncompressed (PatchNone) patch blob:
// re-declares the header in the opposite byte order and flips every
// point record in the body.
func oppositeEndianPatchBlob(t *testing.T, buf []byte, schema *Schema, npoints int) []byte {
	t.Helper()
	out := append([]byte(nil), buf...)
	out[0] = byte(1 - hostEndian)
	opp := EndianFlag(out[0]).byteOrder()
	bo := hostEndian.byteOrder()
	opp.PutUint32(out[1:5], bo.Uint32(buf[1:5]))
	opp.PutUint32(out[5:9], bo.Uint32(buf[5:9]))
	opp.PutUint32(out[9:13], bo.Uint32(buf[9:13]))
	body := out[13:]
	for i := 0; i < npoints; i++ {
		flipPointData(body[i*schema.Size:(i+1)*schema.Size], schema)
	}
	return out
}

// TestPatchWireEndianInvariance checks the endian-invariance property
// for an Uncompressed patch: decoding a patch blob declared in the
// opposite endianness from this host reconstructs identical point
// values to the native-endian encoding.
func TestPatchWireEndianInvariance(t *testing.T) {
	schema := xyziSchema(t)
	u := makePatchFromValues(t, schema, [][4]float64{
		{0.02, 0.03, 0.05, 6},
		{0.08, 0.01, 0.11, 42},
	})
	native := SerializePatch(u)
	flipped := oppositeEndianPatchBlob(t, native, schema, u.NPoints)

	resolve := func(pcid int) (*Schema, error) { return schema, nil }
	p, err := DeserializePatch(resolve, flipped)
	if err != nil {
		t.Fatalf("DeserializePatch: %v", err)
	}
	pts, err := p.ToPointList()
	if err != nil {
		t.Fatalf("ToPointList: %v", err)
	}
	want, err := u.ToPointList()
	if err != nil {
		t.Fatalf("ToPointList (native): %v", err)
	}
	if pts.Len() != want.Len() {
		t.Fatalf("npoints = %d, want %d", pts.Len(), want.Len())
	}
	for i := range pts.Points {
		for di := 0; di < 4; di++ {
			a, _ := pts.Points[i].GetDouble(di)
			b, _ := want.Points[i].GetDouble(di)
			if a != b {
				t.Errorf("point %d dim %d = %v, want %v", i, di, a, b)
			}
		}
	}
}
