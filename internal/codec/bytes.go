package codec

import "fmt"

// ByteCompression is the compression state of a Bytes column.
//
// Reference: spec §3 Bytes.
type ByteCompression int

const (
	CompressionNone ByteCompression = iota
	CompressionRLE
	CompressionSigBits
	CompressionZlib
)

// Bytes is a length-tagged column of same-type values, the unit of
// per-dimension storage in a Dimensional patch.
//
// When Compression is None, len(Data) == NPoints*Interpretation.Size().
// When Readonly, Data aliases external memory and must not be
// mutated; FlipEndian on a readonly multi-byte column is a CodecError.
//
// Reference: spec §3 Bytes, §4.2.
type Bytes struct {
	NPoints        int
	Interpretation Interpretation
	Compression    ByteCompression
	Readonly       bool
	Data           []byte
}

// MakeBytes returns a new, owned, zero-filled raw (uncompressed)
// column sized for npoints values of the given interpretation.
func MakeBytes(interp Interpretation, npoints int) *Bytes {
	size := interp.Size()
	return &Bytes{
		NPoints:        npoints,
		Interpretation: interp,
		Compression:    CompressionNone,
		Data:           make([]byte, npoints*size),
	}
}

// NewBytesFromRaw wraps pre-populated raw column data. If readonly,
// the returned Bytes aliases buf rather than copying it.
func NewBytesFromRaw(interp Interpretation, npoints int, buf []byte, readonly bool) (*Bytes, error) {
	want := npoints * interp.Size()
	if len(buf) != want {
		return nil, &DataMismatchError{Reason: fmt.Sprintf("raw column size %d does not match npoints*size %d", len(buf), want)}
	}
	data := buf
	if !readonly {
		data = append([]byte(nil), buf...)
	}
	return &Bytes{
		NPoints:        npoints,
		Interpretation: interp,
		Compression:    CompressionNone,
		Readonly:       readonly,
		Data:           data,
	}, nil
}

// Decode returns a new, owned, raw (CompressionNone) Bytes equivalent
// to pcb, regardless of pcb's current compression state.
//
// Reference: spec §4.2 decode.
func (pcb *Bytes) Decode() (*Bytes, error) {
	switch pcb.Compression {
	case CompressionNone:
		out := MakeBytes(pcb.Interpretation, pcb.NPoints)
		copy(out.Data, pcb.Data)
		return out, nil
	case CompressionRLE:
		return rleDecode(pcb)
	case CompressionSigBits:
		return sigbitsDecode(pcb)
	case CompressionZlib:
		return zlibDecode(pcb)
	default:
		return nil, &CodecError{Reason: fmt.Sprintf("unknown column compression %d", pcb.Compression)}
	}
}

// Encode returns a new Bytes holding pcb's values re-encoded into
// target compression, decoding first if pcb is not already raw.
//
// Reference: spec §4.2 encode.
func (pcb *Bytes) Encode(target ByteCompression) (*Bytes, error) {
	raw := pcb
	if pcb.Compression != CompressionNone {
		decoded, err := pcb.Decode()
		if err != nil {
			return nil, err
		}
		raw = decoded
	}
	switch target {
	case CompressionNone:
		out := MakeBytes(raw.Interpretation, raw.NPoints)
		copy(out.Data, raw.Data)
		return out, nil
	case CompressionRLE:
		return rleEncode(raw)
	case CompressionSigBits:
		return sigbitsEncode(raw)
	case CompressionZlib:
		return zlibEncode(raw)
	default:
		return nil, &CodecError{Reason: fmt.Sprintf("unknown target compression %d", target)}
	}
}

// RunCount returns the number of distinct-adjacent runs in the
// column's decoded values, used by the dimension-statistics chooser.
//
// Reference: spec §4.2 run_count.
func (pcb *Bytes) RunCount() (int, error) {
	if pcb.Compression == CompressionRLE {
		return rleRunCountFromEncoded(pcb)
	}
	raw := pcb
	if pcb.Compression != CompressionNone {
		decoded, err := pcb.Decode()
		if err != nil {
			return 0, err
		}
		raw = decoded
	}
	return rleRunCountFromRaw(raw)
}

// SigBitsCount returns the number of leading bits shared by every
// value in the column, for the interpretation's natural word size.
//
// Reference: spec §4.2 sigbits_count, §4.2.2.
func (pcb *Bytes) SigBitsCount() (int, error) {
	raw := pcb
	if pcb.Compression != CompressionNone {
		decoded, err := pcb.Decode()
		if err != nil {
			return 0, err
		}
		raw = decoded
	}
	_, _, common, err := sigbitsAndOr(raw)
	if err != nil {
		return 0, err
	}
	return common, nil
}

// MinMax scans the column for min, max, and arithmetic mean, without a
// full decode where the compression state allows it.
//
// Reference: spec §4.2 minmax.
func (pcb *Bytes) MinMax() (min, max, avg float64, err error) {
	switch pcb.Compression {
	case CompressionRLE:
		return rleMinMax(pcb)
	default:
		raw := pcb
		if pcb.Compression != CompressionNone {
			raw, err = pcb.Decode()
			if err != nil {
				return 0, 0, 0, err
			}
		}
		return rawMinMax(raw)
	}
}

func rawMinMax(raw *Bytes) (min, max, avg float64, err error) {
	if raw.NPoints == 0 {
		return 0, 0, 0, nil
	}
	size := raw.Interpretation.Size()
	sum := 0.0
	min, err = ReadValue(raw.Data[0:size], raw.Interpretation)
	if err != nil {
		return 0, 0, 0, err
	}
	max = min
	for i := 0; i < raw.NPoints; i++ {
		v, err := ReadValue(raw.Data[i*size:(i+1)*size], raw.Interpretation)
		if err != nil {
			return 0, 0, 0, err
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	return min, max, sum / float64(raw.NPoints), nil
}

// FlipEndian flips pcb's raw values in place. Errors on a readonly
// multi-byte column. Sig-bits data flips only its two header words;
// zlib data is never flipped (its decoded output is flipped later by
// the caller instead).
//
// Reference: spec §4.2 flip_endian, §4.2.2, §4.2.3.
func (pcb *Bytes) FlipEndian() error {
	if pcb.Readonly && pcb.Interpretation.Size() > 1 {
		return &CodecError{Reason: "cannot flip endian of a readonly multi-byte column"}
	}
	switch pcb.Compression {
	case CompressionNone:
		flipRawInPlace(pcb.Data, pcb.Interpretation.Size())
		return nil
	case CompressionRLE:
		return rleFlipEndian(pcb)
	case CompressionSigBits:
		return sigbitsFlipEndianHeader(pcb)
	case CompressionZlib:
		return nil
	default:
		return &CodecError{Reason: fmt.Sprintf("unknown column compression %d", pcb.Compression)}
	}
}

func flipRawInPlace(data []byte, size int) {
	if size <= 1 {
		return
	}
	for off := 0; off+size <= len(data); off += size {
		for i, j := off, off+size-1; i < j; i, j = i+1, j-1 {
			data[i], data[j] = data[j], data[i]
		}
	}
}

// Filter copies the entries of pcb selected by bitmap into a new
// Bytes, tracking min/max/sum of the selected values in the same
// pass so callers can fold them into Stats.
//
// Reference: spec §4.2 filter, §4.8 (RLE direct-filter fast path).
func (pcb *Bytes) Filter(bitmap *Bitmap) (out *Bytes, min, max, sum float64, err error) {
	if pcb.Compression == CompressionRLE {
		return rleFilter(pcb, bitmap)
	}
	raw := pcb
	if pcb.Compression != CompressionNone {
		raw, err = pcb.Decode()
		if err != nil {
			return nil, 0, 0, 0, err
		}
	}
	return rawFilter(raw, bitmap)
}

func rawFilter(raw *Bytes, bitmap *Bitmap) (*Bytes, float64, float64, float64, error) {
	size := raw.Interpretation.Size()
	out := MakeBytes(raw.Interpretation, bitmap.NSet())
	min, max, sum := 0.0, 0.0, 0.0
	first := true
	w := 0
	for i := 0; i < raw.NPoints; i++ {
		if !bitmap.Get(i) {
			continue
		}
		v, err := ReadValue(raw.Data[i*size:(i+1)*size], raw.Interpretation)
		if err != nil {
			return nil, 0, 0, 0, err
		}
		copy(out.Data[w*size:(w+1)*size], raw.Data[i*size:(i+1)*size])
		w++
		if first {
			min, max = v, v
			first = false
		} else {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		sum += v
	}
	return out, min, max, sum, nil
}

// Serialize writes pcb's wire representation (spec §6.2.2 column
// body): u8 compression, u32 size, size bytes of data.
func (pcb *Bytes) Serialize() []byte {
	buf := make([]byte, 1+4+len(pcb.Data))
	buf[0] = byte(pcb.Compression)
	putUint32LE(buf[1:5], uint32(len(pcb.Data)))
	copy(buf[5:], pcb.Data)
	return buf
}

// DeserializeBytes reads a serialized column for npoints values of
// interp from buf, returning the Bytes and the number of bytes
// consumed.
func DeserializeBytes(buf []byte, interp Interpretation, npoints int, readonly bool) (*Bytes, int, error) {
	if len(buf) < 5 {
		return nil, 0, &CodecError{Reason: "truncated column header"}
	}
	compression := ByteCompression(buf[0])
	if compression > CompressionZlib {
		return nil, 0, &CodecError{Reason: fmt.Sprintf("unknown compression code %d on deserialize", compression)}
	}
	size := int(getUint32LE(buf[1:5]))
	if len(buf) < 5+size {
		return nil, 0, &CodecError{Reason: "truncated column body"}
	}
	data := buf[5 : 5+size]
	if !readonly {
		data = append([]byte(nil), data...)
	}
	return &Bytes{
		NPoints:        npoints,
		Interpretation: interp,
		Compression:    compression,
		Readonly:       readonly,
		Data:           data,
	}, 5 + size, nil
}
