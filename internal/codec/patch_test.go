package codec

import (
	"encoding/hex"
	"testing"
)

func xyziSchema(t *testing.T) *Schema {
	t.Helper()
	dims := []Dimension{
		{Name: "X", Interpretation: InterpInt32, Scale: 0.01, Position: 0},
		{Name: "Y", Interpretation: InterpInt32, Scale: 0.01, Position: 1},
		{Name: "Z", Interpretation: InterpInt32, Scale: 0.01, Position: 2},
		{Name: "Intensity", Interpretation: InterpInt16, Scale: 1, Position: 3},
	}
	schema, err := NewSchema(7, 0, dims, PreferNone)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return schema
}

// TestPatchWireS4 decodes the literal S4 fixture: a big-endian
// Uncompressed patch blob with two points.
func TestPatchWireS4(t *testing.T) {
	schema := xyziSchema(t)
	blob, err := hex.DecodeString("0000000000000000000000000200000002000000030000000500060000000200000003000000050008")
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}

	p, err := DeserializePatch(func(pcid int) (*Schema, error) { return schema, nil }, blob)
	if err != nil {
		t.Fatalf("DeserializePatch: %v", err)
	}
	if p.GetHeader().NPoints != 2 {
		t.Fatalf("npoints = %d, want 2", p.GetHeader().NPoints)
	}

	pts, err := p.ToPointList()
	if err != nil {
		t.Fatalf("ToPointList: %v", err)
	}
	want := [][4]float64{{0.02, 0.03, 0.05, 6}, {0.02, 0.03, 0.05, 8}}
	for i, pt := range pts.Points {
		for di := 0; di < 4; di++ {
			v, err := pt.GetDouble(di)
			if err != nil {
				t.Fatalf("GetDouble: %v", err)
			}
			if v != want[i][di] {
				t.Errorf("point %d dim %d = %v, want %v", i, di, v, want[i][di])
			}
		}
	}
}

func makePatchFromValues(t *testing.T, schema *Schema, rows [][4]float64) *Uncompressed {
	t.Helper()
	l := NewPointList(schema)
	for _, row := range rows {
		p, err := PointFromDoubleArray(schema, row[:])
		if err != nil {
			t.Fatalf("PointFromDoubleArray: %v", err)
		}
		if err := l.Append(p); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	u, err := FromPointList(l)
	if err != nil {
		t.Fatalf("FromPointList: %v", err)
	}
	return u
}

// TestSortStableS5: points with equal Y retain input order.
func TestSortStableS5(t *testing.T) {
	schema := xyziSchema(t)
	u := makePatchFromValues(t, schema, [][4]float64{
		{0.08, 0.03, 0.05, 6},
		{0.02, 0.03, 0.04, 8},
		{0.02, 0.03, 0.04, 9},
	})
	sorted, err := Sort(u, []string{"Y"})
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	pts, err := sorted.ToPointList()
	if err != nil {
		t.Fatalf("ToPointList: %v", err)
	}
	wantIntensity := []float64{6, 8, 9}
	for i, pt := range pts.Points {
		v, err := pt.GetDouble(3)
		if err != nil {
			t.Fatalf("GetDouble: %v", err)
		}
		if v != wantIntensity[i] {
			t.Errorf("point %d intensity = %v, want %v", i, v, wantIntensity[i])
		}
	}
}

// TestSortSimpleS6: sorting by X reorders two points.
func TestSortSimpleS6(t *testing.T) {
	schema := xyziSchema(t)
	u := makePatchFromValues(t, schema, [][4]float64{
		{0.08, 0, 0, 0},
		{0.02, 0, 0, 0},
	})
	sorted, err := Sort(u, []string{"X"})
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	pts, err := sorted.ToPointList()
	if err != nil {
		t.Fatalf("ToPointList: %v", err)
	}
	x0, _ := pts.Points[0].GetX()
	x1, _ := pts.Points[1].GetX()
	if x0 != 0.02 || x1 != 0.08 {
		t.Errorf("sorted X = [%v, %v], want [0.02, 0.08]", x0, x1)
	}
	ok, err := IsSorted(sorted, []string{"X"}, false)
	if err != nil {
		t.Fatalf("IsSorted: %v", err)
	}
	if !ok {
		t.Error("IsSorted = false after Sort")
	}
}

// TestFilterShortCircuitS8: a filter whose threshold exceeds the
// patch's recorded max for the dimension short-circuits to empty.
func TestFilterShortCircuitS8(t *testing.T) {
	schema := xyziSchema(t)
	u := makePatchFromValues(t, schema, [][4]float64{
		{0.02, 0, 0, 0},
		{0.03, 0, 0, 0},
	})
	out, err := Filter(u, "X", FilterGT, 100, 0)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if out.GetHeader().NPoints != 0 {
		t.Errorf("npoints = %d, want 0", out.GetHeader().NPoints)
	}
}

// TestFilterMonotonic checks BETWEEN filtering keeps only matching
// points and never grows the patch.
func TestFilterMonotonic(t *testing.T) {
	schema := xyziSchema(t)
	u := makePatchFromValues(t, schema, [][4]float64{
		{0.01, 0, 0, 0},
		{0.02, 0, 0, 0},
		{0.03, 0, 0, 0},
		{0.04, 0, 0, 0},
	})
	out, err := Filter(u, "X", FilterBetween, 0.015, 0.035)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if out.GetHeader().NPoints != 2 {
		t.Fatalf("npoints = %d, want 2", out.GetHeader().NPoints)
	}
	pts, err := out.ToPointList()
	if err != nil {
		t.Fatalf("ToPointList: %v", err)
	}
	x0, _ := pts.Points[0].GetX()
	x1, _ := pts.Points[1].GetX()
	if x0 != 0.02 || x1 != 0.03 {
		t.Errorf("filtered X = [%v, %v], want [0.02, 0.03]", x0, x1)
	}
}

// TestCompressionLattice: Uncompressed -> Dimensional -> Uncompressed
// round-trips every value.
func TestCompressionLattice(t *testing.T) {
	schema := xyziSchema(t)
	u := makePatchFromValues(t, schema, [][4]float64{
		{0.01, 0.02, 0.03, 1},
		{0.01, 0.02, 0.03, 1},
		{0.05, 0.06, 0.07, 9},
	})
	dp, err := ToDimensional(u, nil)
	if err != nil {
		t.Fatalf("ToDimensional: %v", err)
	}
	back, err := ToUncompressed(dp)
	if err != nil {
		t.Fatalf("ToUncompressed: %v", err)
	}
	if back.NPoints != u.NPoints {
		t.Fatalf("npoints = %d, want %d", back.NPoints, u.NPoints)
	}
	for i := 0; i < u.NPoints; i++ {
		a := u.Data[i*schema.Size : (i+1)*schema.Size]
		b := back.Data[i*schema.Size : (i+1)*schema.Size]
		if string(a) != string(b) {
			t.Errorf("point %d mismatch after lattice round trip", i)
		}
	}
}

// TestPatchWireRoundTrip serializes and reparses a patch in this
// build's native endianness.
func TestPatchWireRoundTrip(t *testing.T) {
	schema := xyziSchema(t)
	u := makePatchFromValues(t, schema, [][4]float64{
		{0.01, 0.02, 0.03, 1},
		{0.05, 0.06, 0.07, 9},
	})
	blob := SerializePatch(u)
	p, err := DeserializePatch(func(pcid int) (*Schema, error) { return schema, nil }, blob)
	if err != nil {
		t.Fatalf("DeserializePatch: %v", err)
	}
	pts, err := p.ToPointList()
	if err != nil {
		t.Fatalf("ToPointList: %v", err)
	}
	if pts.Len() != 2 {
		t.Fatalf("npoints = %d, want 2", pts.Len())
	}
}

// TestEmptyPointListYieldsNilPatch checks the documented boundary
// behavior: an empty point list produces a nil patch, not an empty one.
func TestEmptyPointListYieldsNilPatch(t *testing.T) {
	schema := xyziSchema(t)
	l := NewPointList(schema)
	p, err := FromPointList(l)
	if err != nil {
		t.Fatalf("FromPointList: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil patch for empty point list, got %v", p)
	}
}
