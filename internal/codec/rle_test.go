package codec

import "testing"

func rawBytesOf(s string) *Bytes {
	b, err := NewBytesFromRaw(InterpUint8, len(s), []byte(s), false)
	if err != nil {
		panic(err)
	}
	return b
}

// TestRLEEncodeS1 checks the literal S1 fixture: "aaaabbbbccdde".
func TestRLEEncodeS1(t *testing.T) {
	raw := rawBytesOf("aaaabbbbccdde")

	runs, err := raw.RunCount()
	if err != nil {
		t.Fatalf("RunCount: %v", err)
	}
	if runs != 5 {
		t.Errorf("run count = %d, want 5", runs)
	}

	enc, err := raw.Encode(CompressionRLE)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{4, 'a', 4, 'b', 2, 'c', 2, 'd', 1, 'e'}
	if string(enc.Data) != string(want) {
		t.Errorf("rle encoded = %v, want %v", enc.Data, want)
	}

	dec, err := enc.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(dec.Data) != "aaaabbbbccdde" {
		t.Errorf("decoded = %q, want %q", dec.Data, "aaaabbbbccdde")
	}
}

// TestRLERunCapSplit verifies a run longer than 255 repeats splits at
// exactly 255 and decodes back to the identical input.
func TestRLERunCapSplit(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = 'x'
	}
	raw, err := NewBytesFromRaw(InterpUint8, len(data), data, false)
	if err != nil {
		t.Fatalf("NewBytesFromRaw: %v", err)
	}

	enc, err := raw.Encode(CompressionRLE)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// 300 = 255 + 45, two physical runs, same logical run.
	if len(enc.Data) != 4 {
		t.Fatalf("expected 2 physical run entries (4 bytes), got %d bytes", len(enc.Data))
	}
	if enc.Data[0] != 255 || enc.Data[2] != 45 {
		t.Errorf("run split = %d,%d, want 255,45", enc.Data[0], enc.Data[2])
	}

	dec, err := enc.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(dec.Data) != string(data) {
		t.Errorf("round trip mismatch after 255-run split")
	}
}

// TestRLEFilterS7 checks the S7 fixture: "aaaabbbbccdd" filtered > 'b'.
func TestRLEFilterS7(t *testing.T) {
	raw := rawBytesOf("aaaabbbbccdd")
	bitmap := NewBitmap(raw.NPoints)
	for i := 0; i < raw.NPoints; i++ {
		bitmap.MatchFilter(i, float64(raw.Data[i]), FilterGT, float64('b'), 0)
	}
	out, _, _, _, err := raw.Filter(bitmap)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if string(out.Data) != "ccdd" {
		t.Errorf("raw filter = %q, want %q", out.Data, "ccdd")
	}

	rle, err := raw.Encode(CompressionRLE)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	rleOut, _, _, _, err := rle.Filter(bitmap)
	if err != nil {
		t.Fatalf("RLE Filter: %v", err)
	}
	want := []byte{2, 'c', 2, 'd'}
	if string(rleOut.Data) != string(want) {
		t.Errorf("rle filter encoded = %v, want %v", rleOut.Data, want)
	}
	dec, err := rleOut.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(dec.Data) != "ccdd" {
		t.Errorf("rle filter decoded = %q, want %q", dec.Data, "ccdd")
	}
}
