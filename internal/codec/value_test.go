package codec

import "testing"

func TestRoundAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{0.5, 1},
		{1.5, 2},
		{-0.5, -1},
		{-1.5, -2},
		{2.4, 2},
		{2.6, 3},
		{0, 0},
	}
	for _, c := range cases {
		got := roundAwayFromZero(c.in)
		if got != c.want {
			t.Errorf("roundAwayFromZero(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestScaleOffsetRoundTrip(t *testing.T) {
	d := &Dimension{Interpretation: InterpInt32, Scale: 0.01, Offset: 0}
	stored := UnscaleUnoffset(123.45, d)
	physical := ScaleOffset(stored, d)
	if physical != 123.45 {
		t.Errorf("round trip 123.45 -> %v -> %v", stored, physical)
	}
}

func TestReadWriteValueRoundTrip(t *testing.T) {
	interps := []Interpretation{InterpInt8, InterpUint8, InterpInt16, InterpUint16, InterpInt32, InterpUint32, InterpInt64, InterpUint64, InterpFloat, InterpDouble}
	for _, interp := range interps {
		buf := make([]byte, interp.Size())
		if err := WriteValue(buf, interp, 5); err != nil {
			t.Fatalf("WriteValue(%v): %v", interp, err)
		}
		v, err := ReadValue(buf, interp)
		if err != nil {
			t.Fatalf("ReadValue(%v): %v", interp, err)
		}
		if v != 5 {
			t.Errorf("%v round trip = %v, want 5", interp, v)
		}
	}
}
