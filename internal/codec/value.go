package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ReadValue reads one scalar at the given interpretation from the
// front of buf and returns it as a float64, unscaled.
//
// Reference: spec §4.1.
func ReadValue(buf []byte, interp Interpretation) (float64, error) {
	size := interp.Size()
	if size == 0 {
		return 0, &CodecError{Reason: fmt.Sprintf("unknown interpretation %v", interp)}
	}
	if len(buf) < size {
		return 0, &OutOfRangeError{Reason: "buffer too small to read value"}
	}
	switch interp {
	case InterpInt8:
		return float64(int8(buf[0])), nil
	case InterpUint8:
		return float64(buf[0]), nil
	case InterpInt16:
		return float64(int16(binary.LittleEndian.Uint16(buf))), nil
	case InterpUint16:
		return float64(binary.LittleEndian.Uint16(buf)), nil
	case InterpInt32:
		return float64(int32(binary.LittleEndian.Uint32(buf))), nil
	case InterpUint32:
		return float64(binary.LittleEndian.Uint32(buf)), nil
	case InterpInt64:
		return float64(int64(binary.LittleEndian.Uint64(buf))), nil
	case InterpUint64:
		return float64(binary.LittleEndian.Uint64(buf)), nil
	case InterpFloat:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf))), nil
	case InterpDouble:
		return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
	default:
		return 0, &CodecError{Reason: fmt.Sprintf("unknown interpretation %v", interp)}
	}
}

// WriteValue writes v (already unscaled, in stored units) into the
// front of buf at the given interpretation.
//
// Reference: spec §4.1.
func WriteValue(buf []byte, interp Interpretation, v float64) error {
	size := interp.Size()
	if size == 0 {
		return &CodecError{Reason: fmt.Sprintf("unknown interpretation %v", interp)}
	}
	if len(buf) < size {
		return &OutOfRangeError{Reason: "buffer too small to write value"}
	}
	switch interp {
	case InterpInt8:
		buf[0] = byte(int8(roundAwayFromZero(v)))
	case InterpUint8:
		buf[0] = byte(uint8(roundAwayFromZero(v)))
	case InterpInt16:
		binary.LittleEndian.PutUint16(buf, uint16(int16(roundAwayFromZero(v))))
	case InterpUint16:
		binary.LittleEndian.PutUint16(buf, uint16(roundAwayFromZero(v)))
	case InterpInt32:
		binary.LittleEndian.PutUint32(buf, uint32(int32(roundAwayFromZero(v))))
	case InterpUint32:
		binary.LittleEndian.PutUint32(buf, uint32(roundAwayFromZero(v)))
	case InterpInt64:
		binary.LittleEndian.PutUint64(buf, uint64(int64(roundAwayFromZero(v))))
	case InterpUint64:
		binary.LittleEndian.PutUint64(buf, uint64(roundAwayFromZero(v)))
	case InterpFloat:
		binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(v)))
	case InterpDouble:
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	default:
		return &CodecError{Reason: fmt.Sprintf("unknown interpretation %v", interp)}
	}
	return nil
}

// roundAwayFromZero rounds v to the nearest integer, ties away from
// zero (lround semantics). Integer writes in the ported source use
// lround, not round-half-to-even; this is documented explicitly per
// spec §9 Open Questions rather than silently assuming banker's
// rounding.
func roundAwayFromZero(v float64) int64 {
	if v >= 0 {
		return int64(math.Floor(v + 0.5))
	}
	return int64(math.Ceil(v - 0.5))
}

// ScaleOffset applies a dimension's affine: physical = stored*scale + offset.
//
// Reference: spec §3 Dimension.
func ScaleOffset(stored float64, d *Dimension) float64 {
	return stored*d.Scale + d.Offset
}

// UnscaleUnoffset inverts ScaleOffset: stored = (value-offset)/scale.
// No rounding happens here; WriteValue rounds (away from zero) only
// when writing an integer interpretation, leaving FLOAT/DOUBLE dims to
// truncate precision via a plain cast, same as the quotient itself.
//
// Reference: spec §3 Dimension, §4.1.
func UnscaleUnoffset(value float64, d *Dimension) float64 {
	return (value - d.Offset) / d.Scale
}
