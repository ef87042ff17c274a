package codec

import "testing"

func TestBitmapSetTracksNSet(t *testing.T) {
	b := NewBitmap(5)
	if b.NSet() != 0 {
		t.Fatalf("NSet = %d, want 0", b.NSet())
	}
	b.Set(1, true)
	b.Set(3, true)
	if b.NSet() != 2 {
		t.Errorf("NSet = %d, want 2", b.NSet())
	}
	if !b.Get(1) || !b.Get(3) || b.Get(0) {
		t.Error("Get does not reflect Set calls")
	}
	b.Set(1, true) // redundant set must not double-count
	if b.NSet() != 2 {
		t.Errorf("NSet after redundant Set = %d, want 2", b.NSet())
	}
	b.Set(1, false)
	if b.NSet() != 1 || b.Get(1) {
		t.Error("Set(false) did not clear and decrement")
	}
}

func TestMatchFilterOps(t *testing.T) {
	cases := []struct {
		op       FilterOp
		v, v1, v2 float64
		want     bool
	}{
		{FilterGT, 5, 3, 0, true},
		{FilterGT, 2, 3, 0, false},
		{FilterLT, 2, 3, 0, true},
		{FilterEQ, 3, 3, 0, true},
		{FilterEQ, 3.0001, 3, 0, false},
		{FilterBetween, 5, 1, 10, true},
		{FilterBetween, 1, 1, 10, false},
		{FilterBetween, 10, 1, 10, false},
	}
	for _, c := range cases {
		b := NewBitmap(1)
		b.MatchFilter(0, c.v, c.op, c.v1, c.v2)
		if b.Get(0) != c.want {
			t.Errorf("op=%v v=%v v1=%v v2=%v got=%v want=%v", c.op, c.v, c.v1, c.v2, b.Get(0), c.want)
		}
	}
}
