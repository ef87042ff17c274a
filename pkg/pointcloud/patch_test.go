package pointcloud

import "testing"

func makePatch(t *testing.T, schema *Schema, rows [][4]float64) *Patch {
	t.Helper()
	pts := make([]*Point, len(rows))
	for i, row := range rows {
		p, err := NewPoint(schema, row[:])
		if err != nil {
			t.Fatalf("NewPoint: %v", err)
		}
		pts[i] = p
	}
	patch, err := FromPoints(schema, pts)
	if err != nil {
		t.Fatalf("FromPoints: %v", err)
	}
	return patch
}

func TestPatchFromPointsAndPoints(t *testing.T) {
	schema := xyziSchema(t)
	p := makePatch(t, schema, [][4]float64{
		{0.02, 0.03, 0.05, 6},
		{0.08, 0.01, 0.11, 42},
	})
	if p.NPoints() != 2 {
		t.Fatalf("NPoints = %d, want 2", p.NPoints())
	}
	pts, err := p.Points()
	if err != nil {
		t.Fatalf("Points: %v", err)
	}
	if len(pts) != 2 {
		t.Fatalf("len(Points) = %d, want 2", len(pts))
	}
	x, _ := pts[1].X()
	if x != 0.08 {
		t.Errorf("point 1 X = %v, want 0.08", x)
	}
}

func TestPatchCompressDecompressRoundTrip(t *testing.T) {
	dims := []Dimension{
		{Name: "X", Interp: Int32, Scale: 0.01},
		{Name: "Y", Interp: Int32, Scale: 0.01},
	}
	schema, err := NewSchema(3, 0, dims, PreferDimensional)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	pts := []*Point{}
	for _, xy := range [][2]float64{{0.01, 0.02}, {0.01, 0.02}, {0.05, 0.09}} {
		p, err := NewPoint(schema, xy[:])
		if err != nil {
			t.Fatalf("NewPoint: %v", err)
		}
		pts = append(pts, p)
	}
	patch, err := FromPoints(schema, pts)
	if err != nil {
		t.Fatalf("FromPoints: %v", err)
	}

	compressed, err := patch.Compress(nil)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	back, err := compressed.Decompress()
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if back.NPoints() != patch.NPoints() {
		t.Fatalf("NPoints = %d, want %d", back.NPoints(), patch.NPoints())
	}
}

func TestPatchFilterAndSort(t *testing.T) {
	schema := xyziSchema(t)
	p := makePatch(t, schema, [][4]float64{
		{0.01, 0, 0, 0},
		{0.02, 0, 0, 0},
		{0.03, 0, 0, 0},
		{0.04, 0, 0, 0},
	})
	filtered, err := p.Filter("X", Between, 0.015, 0.035)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if filtered.NPoints() != 2 {
		t.Fatalf("NPoints = %d, want 2", filtered.NPoints())
	}

	unsorted := makePatch(t, schema, [][4]float64{
		{0.08, 0, 0, 0},
		{0.02, 0, 0, 0},
	})
	sorted, err := unsorted.Sort([]string{"X"})
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	ok, err := sorted.IsSorted([]string{"X"}, false)
	if err != nil {
		t.Fatalf("IsSorted: %v", err)
	}
	if !ok {
		t.Error("IsSorted = false after Sort")
	}
}

func TestPatchRange(t *testing.T) {
	schema := xyziSchema(t)
	p := makePatch(t, schema, [][4]float64{
		{0.01, 0, 0, 1},
		{0.02, 0, 0, 2},
		{0.03, 0, 0, 3},
	})
	out, err := p.Range(1, 2)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if out.NPoints() != 2 {
		t.Fatalf("NPoints = %d, want 2", out.NPoints())
	}
	pts, err := out.Points()
	if err != nil {
		t.Fatalf("Points: %v", err)
	}
	v, _ := pts[0].Get("Intensity")
	if v != 2 {
		t.Errorf("first ranged point Intensity = %v, want 2", v)
	}
}

func TestPatchSerializeRoundTrip(t *testing.T) {
	schema := xyziSchema(t)
	p := makePatch(t, schema, [][4]float64{
		{0.02, 0.03, 0.05, 6},
		{0.08, 0.01, 0.11, 42},
	})
	buf := p.Serialize()
	back, err := DeserializePatch(func(pcid int) (*Schema, error) { return schema, nil }, buf)
	if err != nil {
		t.Fatalf("DeserializePatch: %v", err)
	}
	if back.NPoints() != p.NPoints() {
		t.Fatalf("NPoints = %d, want %d", back.NPoints(), p.NPoints())
	}
}

func TestPatchWKBAndStats(t *testing.T) {
	schema := xyziSchema(t)
	p := makePatch(t, schema, [][4]float64{
		{0.01, 0.02, 0.03, 1},
		{0.05, 0.09, 0.07, 9},
	})
	buf, err := p.WKB()
	if err != nil {
		t.Fatalf("WKB: %v", err)
	}
	if len(buf) == 0 {
		t.Error("empty WKB output")
	}
	st := p.Stats()
	maxX, err := st.Max.Get("X")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if maxX != 0.05 {
		t.Errorf("max X = %v, want 0.05", maxX)
	}
}

func TestPatchSetSchema(t *testing.T) {
	schema := xyziSchema(t)
	p := makePatch(t, schema, [][4]float64{{0.01, 0.02, 0.03, 5}})

	dims := []Dimension{
		{Name: "X", Interp: Int32, Scale: 0.01},
		{Name: "Classification", Interp: Uint8, Scale: 1},
	}
	newSchema, err := NewSchema(9, 0, dims, PreferNone)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	if _, err := p.SetSchema(newSchema, true, 0); err == nil {
		t.Fatal("expected strict SetSchema to fail on a missing dimension")
	}
	out, err := p.SetSchema(newSchema, false, 7)
	if err != nil {
		t.Fatalf("SetSchema: %v", err)
	}
	pts, err := out.Points()
	if err != nil {
		t.Fatalf("Points: %v", err)
	}
	cls, err := pts[0].Get("Classification")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cls != 7 {
		t.Errorf("Classification = %v, want 7 (default_value)", cls)
	}
}

func TestMergePatches(t *testing.T) {
	schema := xyziSchema(t)
	a := makePatch(t, schema, [][4]float64{{0.01, 0, 0, 1}})
	b := makePatch(t, schema, [][4]float64{{0.02, 0, 0, 2}})
	merged, err := Merge([]*Patch{a, b})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.NPoints() != 2 {
		t.Fatalf("NPoints = %d, want 2", merged.NPoints())
	}
}

func TestDimStatsUpdateRequiresDimensionalPatch(t *testing.T) {
	schema := xyziSchema(t)
	p := makePatch(t, schema, [][4]float64{{0.01, 0, 0, 1}})
	ds := NewDimStats(schema, DefaultConfig())
	if err := ds.Update(p); err == nil {
		t.Fatal("expected error updating DimStats from an Uncompressed patch")
	}
}

func TestDimStatsFreezesAtConfiguredMinSample(t *testing.T) {
	dims := []Dimension{{Name: "X", Interp: Uint8}}
	schema, err := NewSchema(5, 0, dims, PreferDimensional)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	rows := make([][1]float64, 4)
	pts := make([]*Point, len(rows))
	for i := range rows {
		p, err := NewPoint(schema, []float64{1})
		if err != nil {
			t.Fatalf("NewPoint: %v", err)
		}
		pts[i] = p
	}
	u, err := FromPoints(schema, pts)
	if err != nil {
		t.Fatalf("FromPoints: %v", err)
	}
	dimensional, err := u.Compress(nil)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	cfg := DefaultConfig()
	cfg.DimStatsMinSample = 4
	ds := NewDimStats(schema, cfg)
	if err := ds.Update(dimensional); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !ds.Frozen() {
		t.Error("expected DimStats to freeze once TotalPoints reaches the configured MinSample")
	}
}
