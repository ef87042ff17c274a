package codec

import "testing"

type fakeLAZ struct{}

func (fakeLAZ) EncodeLAZ(l *PointList) ([]byte, Bounds, error) {
	return []byte("laz-blob"), Bounds{XMin: 1, YMin: 2, XMax: 3, YMax: 4}, nil
}

func (fakeLAZ) DecodeLAZ(schema *Schema, npoints int, blob []byte) (*PointList, error) {
	l := NewPointList(schema)
	for i := 0; i < npoints; i++ {
		p, err := PointFromDoubleArray(schema, []float64{1, 2})
		if err != nil {
			return nil, err
		}
		if err := l.Append(p); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func TestLAZWithoutAdapterIsNotImplemented(t *testing.T) {
	lazAdapter = nil
	dims := []Dimension{
		{Name: "X", Interpretation: InterpInt32, Scale: 0.01, Position: 0},
		{Name: "Y", Interpretation: InterpInt32, Scale: 0.01, Position: 1},
	}
	schema, err := NewSchema(1, 0, dims, PreferLAZ)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	u := NewUncompressed(schema, 1)
	if _, err := ToLAZ(u); err == nil {
		t.Fatal("expected NotImplementedError without a registered LAZ adapter")
	}
}

func TestLAZRoundTripWithFakeAdapter(t *testing.T) {
	RegisterLAZCodec(fakeLAZ{})
	defer RegisterLAZCodec(nil)

	dims := []Dimension{
		{Name: "X", Interpretation: InterpInt32, Scale: 0.01, Position: 0},
		{Name: "Y", Interpretation: InterpInt32, Scale: 0.01, Position: 1},
	}
	schema, err := NewSchema(1, 0, dims, PreferLAZ)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	u := makePatchFromValues2(t, schema, [][2]float64{{1, 2}, {3, 4}})

	z, err := ToLAZ(u)
	if err != nil {
		t.Fatalf("ToLAZ: %v", err)
	}
	back, err := ToUncompressed(z)
	if err != nil {
		t.Fatalf("ToUncompressed: %v", err)
	}
	if back.NPoints != 2 {
		t.Fatalf("npoints = %d, want 2", back.NPoints)
	}

	blob := z.Serialize()
	z2, err := DeserializeLAZ(schema, 2, blob, false)
	if err != nil {
		t.Fatalf("DeserializeLAZ: %v", err)
	}
	if string(z2.Blob) != "laz-blob" {
		t.Errorf("blob = %q, want %q", z2.Blob, "laz-blob")
	}
}
